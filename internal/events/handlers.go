package events

import (
	"github.com/rs/zerolog"
)

// LogHandler returns a handler that writes each event as a structured log
// line. Failure events are logged at error level, everything else at info.
func LogHandler(logger zerolog.Logger) Handler {
	return func(e Event) {
		var ev *zerolog.Event
		switch {
		case e.IsFailure():
			ev = logger.Error()
		case e.Type == SequenceAbandoned:
			ev = logger.Debug()
		default:
			ev = logger.Info()
		}

		ev = ev.Str("event", string(e.Type))
		if e.Pass != 0 {
			ev = ev.Uint64("pass", e.Pass)
		}
		if e.ReportID != "" {
			ev = ev.Str("report_id", e.ReportID)
		}
		if len(e.Payload) > 0 {
			ev = ev.Fields(e.Payload)
		}
		if e.Error != "" {
			ev = ev.Str("error", e.Error)
		}
		ev.Msg(string(e.Type))
	}
}

// ChannelHandler returns a handler that forwards events to ch without
// blocking the bus; events are dropped if ch is full.
func ChannelHandler(ch chan<- Event) Handler {
	return func(e Event) {
		select {
		case ch <- e:
		default:
		}
	}
}
