// Package launcher impersonates a browser executable: it turns the browser
// flags an automation tool passes into a container run and makes sure the
// container goes away when this process does.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/RevCBH/docketeer/internal/browserflags"
	"github.com/RevCBH/docketeer/internal/config"
	"github.com/RevCBH/docketeer/internal/container"
	"github.com/RevCBH/docketeer/internal/runargs"
)

// Launcher runs browser sessions in containers.
type Launcher struct {
	cfg     *config.Config
	runtime container.Manager
	logger  *log.Logger
}

// New creates a Launcher. cfg must be validated.
func New(cfg *config.Config, runtime container.Manager, logger *log.Logger) *Launcher {
	return &Launcher{
		cfg:     cfg,
		runtime: runtime,
		logger:  logger,
	}
}

// Prepare builds a session from the browser flags in argv. Configuration
// errors are returned here, before anything is spawned.
func (l *Launcher) Prepare(argv []string) (*Session, error) {
	s := NewSession(NewName())

	tr, err := browserflags.Translate(argv)
	if err != nil {
		return nil, err
	}

	extra, err := runargs.Split(l.cfg.DockerRunArgs)
	if err != nil {
		return nil, err
	}

	s.Image = l.cfg.Image
	s.ExecPath = l.cfg.ExecPath
	s.Port = tr.Port
	s.ExtraRunArgs = extra
	s.Flags = tr.Flags
	return s, nil
}

// Run starts the container and blocks until the client exits, returning its
// exit status. The session is always torn down before Run returns.
func (l *Launcher) Run(s *Session) (int, error) {
	l.debugf("starting container %s: %s", s.Name, runargs.Join(s.Args()))

	if err := s.Start(l.runtime); err != nil {
		if errors.Is(err, ErrTornDown) {
			l.debugf("shutdown requested before container %s started", s.Name)
			return 1, nil
		}
		return 1, fmt.Errorf("start container: %w", err)
	}
	defer s.awaitEscalation()
	defer s.Teardown()

	code, err := s.Wait()
	if err != nil {
		return code, fmt.Errorf("container %s: %w", s.Name, err)
	}
	l.debugf("container %s exited with code %d", s.Name, code)
	return code, nil
}

// Shutdown tears the session down in response to a signal. If the client is
// still running after the stop timeout it is killed and the container is
// force-removed, since killing the client alone leaves the container behind.
func (l *Launcher) Shutdown(ctx context.Context, s *Session) {
	finished := make(chan struct{})
	if !s.teardown(finished) {
		return
	}
	defer close(finished)

	grace := l.cfg.StopTimeout
	if grace <= 0 || !s.started() {
		return
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-s.Done():
		return
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	l.logger.Printf("container %s did not stop within %s, killing it", s.Name, grace)
	if err := s.kill(); err != nil {
		l.logger.Printf("kill container client: %v", err)
	}
	if err := l.runtime.Remove(ctx, s.Name); err != nil {
		l.logger.Printf("%v", err)
	}
}

func (l *Launcher) debugf(format string, args ...any) {
	if !l.cfg.Debug {
		return
	}
	l.logger.Printf(format, args...)
}
