package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Terminal writes messages to a writer instead of sending them. Used for
// dry runs.
type Terminal struct {
	mu sync.Mutex // Protects concurrent writes
	w  io.Writer
}

// NewTerminal creates a terminal sender writing to stderr
func NewTerminal() *Terminal {
	return &Terminal{w: os.Stderr}
}

// NewTerminalWriter creates a terminal sender writing to w
func NewTerminalWriter(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Send writes the message
func (t *Terminal) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := fmt.Fprintf(t.w, "\n--- message to %s ---\n%s\n", m.RoomID, m.Text); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Name returns "terminal"
func (t *Terminal) Name() string {
	return "terminal"
}
