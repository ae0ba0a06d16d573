package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// shutdownSignals end the service gracefully
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// SignalHandler cancels the service context on SIGINT or SIGTERM and then
// runs the registered shutdown callbacks in order.
type SignalHandler struct {
	cancel context.CancelFunc
	logger zerolog.Logger

	signals chan os.Signal
	done    chan struct{} // closed once shutdown callbacks have run
	quit    chan struct{} // closed by Stop
	exited  chan struct{} // closed when the listener returns

	mu        sync.Mutex
	callbacks []func()
	quitOnce  sync.Once
}

// NewSignalHandler creates a signal handler with the given context cancel
func NewSignalHandler(cancel context.CancelFunc, logger zerolog.Logger) *SignalHandler {
	return &SignalHandler{
		cancel:  cancel,
		logger:  logger,
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

// Start registers for shutdown signals and begins listening
func (h *SignalHandler) Start() {
	signal.Notify(h.signals, shutdownSignals...)
	h.listen()
}

// listen starts the listener goroutine without touching process signal
// state; tests deliver signals on h.signals directly.
func (h *SignalHandler) listen() {
	running := make(chan struct{})
	go func() {
		defer close(h.exited)
		close(running)

		select {
		case sig := <-h.signals:
			h.shutdown(sig)
		case <-h.quit:
		}
	}()
	<-running
}

func (h *SignalHandler) shutdown(sig os.Signal) {
	h.logger.Info().Stringer("signal", sig).Msg("shutting down")
	if h.cancel != nil {
		h.cancel()
	}

	h.mu.Lock()
	callbacks := append([]func(){}, h.callbacks...)
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	close(h.done)
}

// OnShutdown registers a callback to run after the context is cancelled
func (h *SignalHandler) OnShutdown(fn func()) {
	h.mu.Lock()
	h.callbacks = append(h.callbacks, fn)
	h.mu.Unlock()
}

// Done is closed once a signal has been handled
func (h *SignalHandler) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until shutdown is triggered
func (h *SignalHandler) Wait() {
	<-h.done
}

// Stop unregisters the signals and ends the listener. It waits briefly for
// callbacks already running.
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	h.quitOnce.Do(func() { close(h.quit) })

	select {
	case <-h.exited:
	case <-time.After(100 * time.Millisecond):
	}
}
