// Package delivery posts assembled reports to a messaging space.
package delivery

import "context"

// Message is one report addressed to a destination space
type Message struct {
	RoomID   string // Webex room (space) id
	Text     string // Rendered report
	ReportID string // Correlation id, not sent
}

// Sender is the interface for delivering a message to a backend
type Sender interface {
	// Send makes a single delivery attempt.
	// Returns nil if the backend accepted the message.
	// Implementations should respect context cancellation.
	Send(ctx context.Context, m Message) error

	// Name returns the sender type for logging
	Name() string
}

// Result is the outcome of one delivery attempt
type Result struct {
	Message Message
	Sender  string
	Err     error
}

// OK reports whether the attempt succeeded
func (r Result) OK() bool {
	return r.Err == nil
}
