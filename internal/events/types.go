package events

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single occurrence in the report workflow
type Event struct {
	// Time is when the event occurred (set by bus on emit)
	Time time.Time `json:"time"`

	// Type identifies what happened
	Type EventType `json:"type"`

	// Pass is the sequencer pass this event belongs to (0 for service events)
	Pass uint64 `json:"pass,omitempty"`

	// ReportID is set once a report has been assembled
	ReportID string `json:"report_id,omitempty"`

	// Payload contains event-specific data
	Payload map[string]any `json:"payload,omitempty"`

	// Error contains error message if this is a failure event
	Error string `json:"error,omitempty"`
}

// EventType is a string constant identifying the event category
type EventType string

// Service lifecycle events
const (
	ServiceStarted EventType = "service.started"
	ServiceStopped EventType = "service.stopped"

	// DeviceCommandFailed is emitted when a UI command to the device fails.
	// Payload: command (string)
	DeviceCommandFailed EventType = "device.command.failed"
)

// Sequence events
const (
	SequenceStarted   EventType = "sequence.started"
	SequenceRejected  EventType = "sequence.rejected"
	SequenceAbandoned EventType = "sequence.abandoned"

	// Payload: category (string)
	CategorySelected    EventType = "step.category"
	DescriptionReceived EventType = "step.description"
	NameReceived        EventType = "step.name"
)

// Report and delivery events
const (
	// ReportAssembled payload: destination (string), campus (string), room (string)
	ReportAssembled EventType = "report.assembled"

	// ReportUnresolved is emitted when the device address cannot be mapped
	// to a destination; no delivery is attempted.
	ReportUnresolved EventType = "report.unresolved"

	// Payload: sender (string)
	DeliverySucceeded EventType = "delivery.succeeded"
	DeliveryFailed    EventType = "delivery.failed"
)

// NewEvent creates an event with the given type and pass
func NewEvent(eventType EventType, pass uint64) Event {
	return Event{
		Type: eventType,
		Pass: pass,
	}
}

// WithReport returns a copy of the event with the report id set
func (e Event) WithReport(id string) Event {
	e.ReportID = id
	return e
}

// With returns a copy of the event with key added to the payload
func (e Event) With(key string, value any) Event {
	payload := make(map[string]any, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value
	e.Payload = payload
	return e
}

// WithError returns a copy of the event with the error message set
func (e Event) WithError(err error) Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// IsFailure returns true if this is a failure event type
func (e Event) IsFailure() bool {
	return strings.HasSuffix(string(e.Type), ".failed") || e.Type == ReportUnresolved
}

// String returns a human-readable representation of the event
func (e Event) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", e.Type))

	if e.Pass != 0 {
		parts = append(parts, fmt.Sprintf("pass=%d", e.Pass))
	}
	if e.ReportID != "" {
		parts = append(parts, "report="+e.ReportID)
	}
	if e.Error != "" {
		parts = append(parts, "error="+e.Error)
	}

	return strings.Join(parts, " ")
}
