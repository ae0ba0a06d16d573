package cli

import (
	"bytes"
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, h *SignalHandler) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("shutdown did not complete in time")
	}
}

func TestSignalHandler_CancelsAndRunsCallbacksInOrder(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGINT, syscall.SIGTERM} {
		t.Run(sig.String(), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			h := NewSignalHandler(cancel, zerolog.Nop())

			var (
				mu    sync.Mutex
				order []int
			)
			for i := 1; i <= 3; i++ {
				h.OnShutdown(func() {
					mu.Lock()
					order = append(order, i)
					mu.Unlock()
					// callbacks run after cancellation
					assert.Error(t, ctx.Err())
				})
			}

			h.listen()
			h.signals <- sig
			waitDone(t, h)

			assert.ErrorIs(t, ctx.Err(), context.Canceled)
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, []int{1, 2, 3}, order)
		})
	}
}

func TestSignalHandler_Wait(t *testing.T) {
	h := NewSignalHandler(nil, zerolog.Nop())
	h.listen()

	waited := make(chan struct{})
	go func() {
		h.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned before a signal")
	case <-time.After(20 * time.Millisecond):
	}

	h.signals <- os.Interrupt
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after signal")
	}
}

func TestSignalHandler_LogsSignal(t *testing.T) {
	var buf bytes.Buffer
	h := NewSignalHandler(func() {}, zerolog.New(&buf))
	h.listen()

	h.signals <- syscall.SIGTERM
	waitDone(t, h)

	assert.Contains(t, buf.String(), `"signal":"terminated"`)
	assert.Contains(t, buf.String(), "shutting down")
}

func TestSignalHandler_StopWithoutSignal(t *testing.T) {
	called := false
	h := NewSignalHandler(func() { called = true }, zerolog.Nop())
	h.listen()

	h.Stop()
	h.Stop()

	select {
	case <-h.exited:
	default:
		t.Fatal("listener still running after Stop")
	}

	// a late signal is buffered but never handled
	h.signals <- os.Interrupt
	time.Sleep(20 * time.Millisecond)
	require.False(t, called)
	select {
	case <-h.Done():
		t.Fatal("shutdown ran after Stop")
	default:
	}
}
