package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// stopWait bounds how long Stop waits for an in-progress shutdown.
const stopWait = 100 * time.Millisecond

// SignalHandler reacts to the first SIGINT or SIGTERM: it cancels the
// context, runs the registered callbacks in order with the signal, and stops
// listening. A second signal therefore gets the default behaviour.
type SignalHandler struct {
	incoming chan os.Signal
	fired    chan struct{} // closed after callbacks ran
	quit     chan struct{} // closed by Stop
	exited   chan struct{} // closed when the listener returns
	quitOnce sync.Once

	cancel context.CancelFunc
	logger *log.Logger

	mu        sync.Mutex
	callbacks []func(os.Signal)
}

// NewSignalHandler creates a handler that calls cancel, if non-nil, on the
// first signal.
func NewSignalHandler(cancel context.CancelFunc) *SignalHandler {
	return &SignalHandler{
		incoming:  make(chan os.Signal, 1),
		fired:     make(chan struct{}),
		quit:      make(chan struct{}),
		exited:    make(chan struct{}),
		cancel:    cancel,
		callbacks: make([]func(os.Signal), 0),
	}
}

// SetLogger enables a log line for the handled signal.
func (h *SignalHandler) SetLogger(logger *log.Logger) {
	h.logger = logger
}

// OnShutdown registers fn to run with the received signal.
func (h *SignalHandler) OnShutdown(fn func(os.Signal)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, fn)
}

// Start subscribes to SIGINT and SIGTERM and begins listening.
func (h *SignalHandler) Start() {
	h.StartWithNotify(true)
}

// StartWithNotify begins listening. Unit tests pass false and feed the
// channel directly, leaving process-wide signal state alone.
func (h *SignalHandler) StartWithNotify(notify bool) {
	if notify {
		signal.Notify(h.incoming, syscall.SIGINT, syscall.SIGTERM)
	}

	ready := make(chan struct{})
	go h.listen(ready)
	<-ready
}

func (h *SignalHandler) listen(ready chan<- struct{}) {
	defer close(h.exited)
	close(ready)

	select {
	case sig := <-h.incoming:
		signal.Stop(h.incoming)
		h.fire(sig)
	case <-h.quit:
	}
}

func (h *SignalHandler) fire(sig os.Signal) {
	defer close(h.fired)

	if h.logger != nil {
		h.logger.Printf("received signal: %v", sig)
	}
	if h.cancel != nil {
		h.cancel()
	}

	h.mu.Lock()
	callbacks := make([]func(os.Signal), len(h.callbacks))
	copy(callbacks, h.callbacks)
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn(sig)
	}
}

// Wait blocks until the callbacks for a received signal have run.
func (h *SignalHandler) Wait() {
	<-h.fired
}

// Stop unsubscribes and ends the listener. If callbacks are running it
// waits briefly, then returns anyway.
func (h *SignalHandler) Stop() {
	signal.Stop(h.incoming)
	h.quitOnce.Do(func() { close(h.quit) })

	select {
	case <-h.exited:
	case <-time.After(stopWait):
	}
}
