package cli

import (
	"bytes"
	"context"
	"log"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitShutdown(t *testing.T, h *SignalHandler) {
	t.Helper()
	select {
	case <-h.fired:
	case <-time.After(1 * time.Second):
		t.Fatal("Shutdown did not complete in time")
	}
}

func TestSignalHandler_New(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewSignalHandler(cancel)
	require.NotNil(t, handler)

	assert.NotNil(t, handler.cancel)
	assert.NotNil(t, handler.incoming)
	assert.NotNil(t, handler.fired)
	assert.NotNil(t, handler.callbacks)
}

func TestSignalHandler_PassesSignalToCallbacks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	handler := NewSignalHandler(cancel)

	var mu sync.Mutex
	var got []os.Signal
	for i := 0; i < 3; i++ {
		handler.OnShutdown(func(sig os.Signal) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, sig)
		})
	}

	handler.StartWithNotify(false)
	defer handler.Stop()

	handler.incoming <- syscall.SIGTERM
	waitShutdown(t, handler)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []os.Signal{syscall.SIGTERM, syscall.SIGTERM, syscall.SIGTERM}, got)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestSignalHandler_CallbackOrder(t *testing.T) {
	handler := NewSignalHandler(nil)

	var mu sync.Mutex
	callOrder := []int{}
	for _, n := range []int{1, 2, 3} {
		handler.OnShutdown(func(os.Signal) {
			mu.Lock()
			callOrder = append(callOrder, n)
			mu.Unlock()
		})
	}

	handler.StartWithNotify(false)
	defer handler.Stop()

	handler.incoming <- syscall.SIGINT
	waitShutdown(t, handler)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, callOrder)
}

func TestSignalHandler_OnlyFirstSignalHandled(t *testing.T) {
	handler := NewSignalHandler(nil)

	var mu sync.Mutex
	calls := 0
	handler.OnShutdown(func(os.Signal) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	handler.StartWithNotify(false)
	defer handler.Stop()

	handler.incoming <- syscall.SIGINT
	waitShutdown(t, handler)

	// Nobody reads the channel any more.
	select {
	case handler.incoming <- syscall.SIGINT:
	default:
	}
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestSignalHandler_Logger(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSignalHandler(nil)
	handler.SetLogger(log.New(&buf, "", 0))

	handler.StartWithNotify(false)
	defer handler.Stop()

	handler.incoming <- syscall.SIGTERM
	waitShutdown(t, handler)

	assert.Contains(t, buf.String(), "received signal: terminated")
}

func TestSignalHandler_Wait(t *testing.T) {
	handler := NewSignalHandler(nil)
	handler.StartWithNotify(false)
	defer handler.Stop()

	waited := make(chan struct{})
	go func() {
		handler.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait should block until shutdown is triggered")
	case <-time.After(50 * time.Millisecond):
	}

	handler.incoming <- syscall.SIGINT

	select {
	case <-waited:
	case <-time.After(1 * time.Second):
		t.Fatal("Wait did not unblock after shutdown was triggered")
	}
}

func TestSignalHandler_Stop(t *testing.T) {
	handler := NewSignalHandler(nil)
	called := false
	handler.OnShutdown(func(os.Signal) { called = true })
	handler.StartWithNotify(false)

	// Stop should not panic
	handler.Stop()

	// The goroutine has exited; the buffered send is never consumed.
	handler.incoming <- os.Interrupt
	time.Sleep(50 * time.Millisecond)
	assert.False(t, called)
}
