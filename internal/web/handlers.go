package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/RevCBH/roomreport/internal/events"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// StateHandler returns the current state snapshot as JSON.
// GET /api/state
func StateHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(store.Snapshot())
	}
}

// HealthHandler reports 200 while the service runs and 503 otherwise.
// GET /healthz
func HealthHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := store.Snapshot().Status
		if status != StatusRunning {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		fmt.Fprintln(w, status)
	}
}

// EventsHandler streams bus events as server-sent events, one JSON
// object per message named after the event type.
// GET /api/events
func EventsHandler(hub *Hub, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		client, ok := hub.Subscribe(ulid.Make().String())
		if !ok {
			http.Error(w, "server shutting down", http.StatusServiceUnavailable)
			return
		}
		defer hub.Unsubscribe(client)

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")

		fmt.Fprintf(w, ": stream %s\n\n", client.id)
		flusher.Flush()

		log := logger.With().Str("stream", client.id).Logger()
		log.Debug().Msg("event stream opened")
		defer log.Debug().Msg("event stream closed")

		for {
			select {
			case <-r.Context().Done():
				return
			case e, open := <-client.events:
				if !open {
					return
				}
				if err := writeEvent(w, e); err != nil {
					log.Debug().Err(err).Str("type", string(e.Type)).Msg("dropping event")
					continue
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w io.Writer, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)
	return err
}
