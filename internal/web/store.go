package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/RevCBH/roomreport/internal/events"
)

// Store maintains the service state seen on the event bus.
// It is safe for concurrent access.
type Store struct {
	mu         sync.RWMutex
	status     string
	startedAt  time.Time
	device     DeviceState
	pass       uint64
	step       string
	summary    StateSummary
	lastReport *ReportState
	lastError  string
}

// NewStore creates an empty state store in "waiting" status.
func NewStore() *Store {
	return &Store{
		status: StatusWaiting,
		step:   StepIdle,
	}
}

// HandleEvent processes an event and updates state accordingly.
// Events from a pass older than the current one only update counters.
func (s *Store) HandleEvent(e events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := e.Pass == 0 || e.Pass >= s.pass

	switch e.Type {
	case events.ServiceStarted:
		s.status = StatusRunning
		s.startedAt = e.Time
		s.device = DeviceState{
			Serial:   payloadString(e, "serial"),
			Software: payloadString(e, "software"),
			IP:       payloadString(e, "ip"),
		}

	case events.ServiceStopped:
		s.status = StatusStopped
		if e.Error != "" {
			s.status = StatusFailed
			s.lastError = e.Error
		}
		s.step = StepIdle

	case events.SequenceStarted:
		s.summary.Started++
		s.pass = e.Pass
		s.step = StepCategory

	case events.CategorySelected:
		if current {
			s.step = StepDescription
		}

	case events.DescriptionReceived:
		if current {
			s.step = StepName
		}

	case events.NameReceived:
		if current {
			s.step = StepSubmitting
		}

	case events.SequenceAbandoned:
		s.summary.Abandoned++
		if current {
			s.step = StepIdle
		}

	case events.SequenceRejected:
		s.summary.Rejected++

	case events.ReportAssembled:
		s.lastReport = &ReportState{
			ID:     e.ReportID,
			Campus: payloadString(e, "campus"),
			Room:   payloadString(e, "room"),
			Status: "sending",
			Time:   e.Time,
		}
		if current {
			s.step = StepIdle
		}

	case events.ReportUnresolved:
		s.summary.Unresolved++
		s.lastError = e.Error
		if current {
			s.step = StepIdle
		}

	case events.DeliverySucceeded:
		s.summary.Delivered++
		s.finishReport(e, "delivered")

	case events.DeliveryFailed:
		s.summary.Failed++
		s.lastError = e.Error
		s.finishReport(e, "failed")

	case events.DeviceCommandFailed:
		s.lastError = fmt.Sprintf("%s: %s", payloadString(e, "command"), e.Error)
		if current {
			s.step = StepIdle
		}
	}
}

func (s *Store) finishReport(e events.Event, status string) {
	if s.lastReport == nil || s.lastReport.ID != e.ReportID {
		s.lastReport = &ReportState{ID: e.ReportID}
	}
	s.lastReport.Status = status
	s.lastReport.Sender = payloadString(e, "sender")
	s.lastReport.Error = e.Error
	s.lastReport.Time = e.Time
}

// Snapshot returns a copy of the current state.
// Thread-safe for concurrent reads.
func (s *Store) Snapshot() *StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := &StateSnapshot{
		Status:    s.status,
		Device:    s.device,
		Pass:      s.pass,
		Step:      s.step,
		Summary:   s.summary,
		LastError: s.lastError,
	}
	if s.lastReport != nil {
		report := *s.lastReport
		snapshot.LastReport = &report
	}

	// Only set StartedAt if it's not zero
	if !s.startedAt.IsZero() {
		started := s.startedAt
		snapshot.StartedAt = &started
	}

	return snapshot
}

func payloadString(e events.Event, key string) string {
	v, ok := e.Payload[key]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}
