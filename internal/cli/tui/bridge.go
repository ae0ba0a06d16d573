package tui

import (
	"fmt"

	"github.com/RevCBH/roomreport/internal/events"
)

// Bridge connects the event bus to the program
type Bridge struct {
	program Sender
}

// NewBridge creates a new bridge for the given program
func NewBridge(program Sender) *Bridge {
	return &Bridge{
		program: program,
	}
}

// Handler returns an event handler function for the event bus
func (b *Bridge) Handler() events.Handler {
	return func(evt events.Event) {
		if msg, ok := eventToMsg(evt); ok {
			b.program.Send(msg)
		}
	}
}

// eventToMsg converts the workflow events worth showing into a WorkflowMsg
func eventToMsg(evt events.Event) (WorkflowMsg, bool) {
	var line string
	switch evt.Type {
	case events.SequenceStarted:
		line = fmt.Sprintf("%s report #%d started", IconEvent, evt.Pass)
	case events.SequenceAbandoned:
		line = fmt.Sprintf("%s report #%d abandoned: %v", IconEvent, evt.Pass, evt.Payload["reason"])
	case events.SequenceRejected:
		line = fmt.Sprintf("%s activation rejected: %v", IconEvent, evt.Payload["reason"])
	case events.CategorySelected:
		line = fmt.Sprintf("%s category: %v", IconEvent, evt.Payload["category"])
	case events.ReportAssembled:
		line = fmt.Sprintf("%s report %s for %v/%v", IconEvent, evt.ReportID, evt.Payload["campus"], evt.Payload["room"])
	case events.ReportUnresolved:
		line = fmt.Sprintf("%s report #%d not sent: %s", IconFailed, evt.Pass, evt.Error)
	case events.DeliverySucceeded:
		line = fmt.Sprintf("%s report %s delivered via %v", IconOK, evt.ReportID, evt.Payload["sender"])
	case events.DeliveryFailed:
		line = fmt.Sprintf("%s report %s delivery failed: %s", IconFailed, evt.ReportID, evt.Error)
	case events.DeviceCommandFailed:
		line = fmt.Sprintf("%s %v failed: %s", IconFailed, evt.Payload["command"], evt.Error)
	default:
		return WorkflowMsg{}, false
	}
	return WorkflowMsg{Line: line, Failed: evt.IsFailure()}, true
}

// SendDone sends a DoneMsg to the program
func (b *Bridge) SendDone() {
	b.program.Send(DoneMsg{})
}

// SendQuit sends a QuitMsg to the program
func (b *Bridge) SendQuit() {
	b.program.Send(QuitMsg{})
}
