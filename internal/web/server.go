// Package web serves the report service's state and a live event stream
// over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/RevCBH/roomreport/internal/events"
	"github.com/rs/zerolog"
)

// Server exposes the store and hub over HTTP.
type Server struct {
	addr   string
	store  *Store
	hub    *Hub
	logger zerolog.Logger

	httpServer *http.Server
}

// New creates a status server. Does not start listening - call Start().
func New(cfg Config, logger zerolog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	store := NewStore()
	hub := NewHub()
	logger = logger.With().Str("component", "web").Logger()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", StateHandler(store))
	mux.HandleFunc("GET /api/events", EventsHandler(hub, logger))
	mux.HandleFunc("GET /healthz", HealthHandler(store))

	return &Server{
		addr:   cfg.Addr,
		store:  store,
		hub:    hub,
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the bus handler that feeds the store and the event stream.
func (s *Server) Handler() events.Handler {
	return func(e events.Event) {
		s.store.HandleEvent(e)
		s.hub.Publish(e)
	}
}

// Start begins listening. Non-blocking - the server runs in a goroutine.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("HTTP listen: %w", err)
	}
	// actual address, for ephemeral ports
	s.addr = listener.Addr().String()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("status server stopped")
		}
	}()

	s.logger.Info().Str("addr", s.addr).Msg("status server listening")
	return nil
}

// Stop closes open event streams and shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Close()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (s *Server) Addr() string {
	return s.addr
}
