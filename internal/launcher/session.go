package launcher

import (
	"errors"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/oklog/ulid/v2"

	"github.com/RevCBH/docketeer/internal/browserflags"
	"github.com/RevCBH/docketeer/internal/container"
	"github.com/RevCBH/docketeer/internal/proc"
)

// NamePrefix starts every container name docketeer creates.
const NamePrefix = "docketeer_"

// ErrTornDown is returned when starting a session that was already torn down.
var ErrTornDown = errors.New("session already torn down")

// NewName returns a fresh container name. ULIDs carry 80 random bits, so
// concurrent launchers do not collide.
func NewName() string {
	return NamePrefix + strings.ToLower(ulid.Make().String())
}

// Session is one browser container owned by this process.
type Session struct {
	Name         string
	Image        string
	ExecPath     string
	Port         int // 0 = no port binding
	ExtraRunArgs []string
	Flags        []string

	mu         sync.Mutex
	child      proc.Process
	torndown   bool
	escalation chan struct{} // closed when a signal-triggered shutdown finishes
	done       chan struct{} // closed once the child has been reaped
}

// NewSession creates a session for a container called name.
func NewSession(name string) *Session {
	return &Session{
		Name: name,
		done: make(chan struct{}),
	}
}

// RunConfig describes the container: the browser listens on all interfaces
// so the published port reaches it.
func (s *Session) RunConfig() container.RunConfig {
	cmd := make([]string, 0, len(s.Flags)+2)
	cmd = append(cmd, s.ExecPath)
	cmd = append(cmd, s.Flags...)
	cmd = append(cmd, browserflags.ListenAllFlag)

	return container.RunConfig{
		Name:      s.Name,
		Image:     s.Image,
		Command:   cmd,
		Port:      s.Port,
		ExtraArgs: s.ExtraRunArgs,
	}
}

// Args returns the runtime arguments for this session.
func (s *Session) Args() []string {
	return s.RunConfig().Args()
}

// Start spawns the container client. The lock is held while spawning so a
// concurrent Teardown either prevents the spawn or signals the new child.
func (s *Session) Start(rt container.Manager) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.torndown {
		return ErrTornDown
	}
	if s.child != nil {
		return errors.New("session already started")
	}

	child, err := rt.Spawn(s.Args())
	if err != nil {
		return err
	}
	s.child = child
	return nil
}

// Wait reaps the child and returns its exit status.
func (s *Session) Wait() (int, error) {
	s.mu.Lock()
	child := s.child
	s.mu.Unlock()
	if child == nil {
		return 1, errors.New("session not started")
	}

	code, err := child.Wait()
	close(s.done)
	return code, err
}

// Done is closed once Wait has reaped the child.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Teardown asks the container client to stop, once. It returns false if the
// session was already torn down. It does not wait for the child to exit.
func (s *Session) Teardown() bool {
	return s.teardown(nil)
}

// TornDown reports whether Teardown has run.
func (s *Session) TornDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.torndown
}

func (s *Session) teardown(escalation chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.torndown {
		return false
	}
	s.torndown = true
	s.escalation = escalation

	if s.child != nil {
		// Best-effort; the child may already be gone.
		_ = s.child.Signal(syscall.SIGTERM)
	}
	return true
}

func (s *Session) started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.child != nil
}

func (s *Session) kill() error {
	s.mu.Lock()
	child := s.child
	s.mu.Unlock()
	if child == nil {
		return nil
	}
	if err := child.Signal(syscall.SIGKILL); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// awaitEscalation blocks until an in-flight signal-triggered shutdown is over.
func (s *Session) awaitEscalation() {
	s.mu.Lock()
	esc := s.escalation
	s.mu.Unlock()
	if esc != nil {
		<-esc
	}
}
