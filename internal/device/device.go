// Package device defines the collaboration endpoint surface the report
// workflow runs against: status queries, on-screen UI commands and the UI
// event stream.
package device

import (
	"context"
	"fmt"
	"time"
)

// MaxPromptOptions is the most options a single-choice prompt can carry.
const MaxPromptOptions = 5

// Device is the device-control facility. Implementations must be safe for
// concurrent use.
type Device interface {
	// ContactAddress returns the device's registered address, e.g.
	// "memhq-room1@hww.room.ciscospark.com".
	ContactAddress(ctx context.Context) (string, error)
	SerialNumber(ctx context.Context) (string, error)
	SoftwareName(ctx context.Context) (string, error)
	IPv4Address(ctx context.Context) (string, error)

	SavePanel(ctx context.Context, p Panel) error
	DisplayPrompt(ctx context.Context, p Prompt) error
	DisplayTextInput(ctx context.Context, in TextInput) error
	DisplayAlert(ctx context.Context, a Alert) error

	// Events subscribes to UI events. The channel is closed when the
	// underlying connection ends or ctx is cancelled.
	Events(ctx context.Context) (<-chan Event, error)

	Close() error
}

// Prompt is a single-choice dialog.
type Prompt struct {
	FeedbackID string
	Title      string
	Text       string
	Options    []string
	Duration   time.Duration // 0 leaves the prompt up until answered
}

// TextInput is a free-text dialog.
type TextInput struct {
	FeedbackID  string
	Title       string
	Text        string
	Placeholder string
	InputText   string
	Duration    time.Duration
}

// Alert is a transient notification.
type Alert struct {
	Title    string
	Text     string
	Duration time.Duration
}

// EventKind identifies what the user did on the device.
type EventKind string

const (
	EventPanelClicked      EventKind = "panel.clicked"
	EventPromptResponse    EventKind = "prompt.response"
	EventPromptCleared     EventKind = "prompt.cleared"
	EventTextInputResponse EventKind = "textinput.response"
	EventTextInputCleared  EventKind = "textinput.cleared"
)

// Event is a normalized UI event.
type Event struct {
	Kind       EventKind
	PanelID    string // panel events
	FeedbackID string // prompt and text input events
	OptionID   int    // prompt responses, 1-based
	Text       string // text input responses
}

func (e Event) String() string {
	switch e.Kind {
	case EventPanelClicked:
		return fmt.Sprintf("%s panel=%s", e.Kind, e.PanelID)
	case EventPromptResponse:
		return fmt.Sprintf("%s feedback=%s option=%d", e.Kind, e.FeedbackID, e.OptionID)
	default:
		return fmt.Sprintf("%s feedback=%s", e.Kind, e.FeedbackID)
	}
}

// Info is the device identity captured once at startup.
type Info struct {
	SerialNumber    string
	SoftwareVersion string
	IPAddress       string
}

// FetchInfo queries the device's serial number, software and IPv4 address.
func FetchInfo(ctx context.Context, d Device) (Info, error) {
	var info Info
	var err error

	if info.SerialNumber, err = d.SerialNumber(ctx); err != nil {
		return Info{}, fmt.Errorf("serial number: %w", err)
	}
	if info.SoftwareVersion, err = d.SoftwareName(ctx); err != nil {
		return Info{}, fmt.Errorf("software name: %w", err)
	}
	if info.IPAddress, err = d.IPv4Address(ctx); err != nil {
		return Info{}, fmt.Errorf("ipv4 address: %w", err)
	}
	return info, nil
}
