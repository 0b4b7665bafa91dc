package testutil

import (
	"os"
	"sync"
	"syscall"

	"github.com/RevCBH/docketeer/internal/proc"
)

// FakeProcess is an in-memory proc.Process. It records every signal it
// receives and exits when told to, or when it receives a signal configured
// with ExitOn. SIGKILL always ends it with status 1.
type FakeProcess struct {
	mu      sync.Mutex
	signals []os.Signal
	exitOn  map[os.Signal]int
	code    int
	done    chan struct{}
	once    sync.Once
}

// NewFakeProcess returns a running process that ignores signals other than
// SIGKILL until configured otherwise.
func NewFakeProcess() *FakeProcess {
	return &FakeProcess{
		exitOn: make(map[os.Signal]int),
		done:   make(chan struct{}),
	}
}

// ExitOn makes the process exit with code when it receives sig.
func (p *FakeProcess) ExitOn(sig os.Signal, code int) *FakeProcess {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exitOn[sig] = code
	return p
}

// Exit ends the process with code. Later calls have no effect.
func (p *FakeProcess) Exit(code int) {
	p.once.Do(func() {
		p.mu.Lock()
		p.code = code
		p.mu.Unlock()
		close(p.done)
	})
}

// Exited reports whether the process has ended.
func (p *FakeProcess) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Signal records sig. It returns os.ErrProcessDone once the process exited.
func (p *FakeProcess) Signal(sig os.Signal) error {
	if p.Exited() {
		return os.ErrProcessDone
	}

	p.mu.Lock()
	p.signals = append(p.signals, sig)
	code, exits := p.exitOn[sig]
	p.mu.Unlock()

	if sig == syscall.SIGKILL {
		code, exits = 1, true
	}
	if exits {
		p.Exit(code)
	}
	return nil
}

// Wait blocks until the process exits.
func (p *FakeProcess) Wait() (int, error) {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code, nil
}

// Signals returns a copy of the signals received so far.
func (p *FakeProcess) Signals() []os.Signal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]os.Signal(nil), p.signals...)
}

// SignalCount returns how many times sig was received.
func (p *FakeProcess) SignalCount(sig os.Signal) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, s := range p.signals {
		if s == sig {
			count++
		}
	}
	return count
}

var _ proc.Process = (*FakeProcess)(nil)
