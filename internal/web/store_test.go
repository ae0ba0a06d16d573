package web

import (
	"errors"
	"testing"
	"time"

	"github.com/RevCBH/roomreport/internal/events"
)

func TestStore_Initial(t *testing.T) {
	s := NewStore().Snapshot()
	if s.Status != StatusWaiting {
		t.Errorf("expected waiting, got %s", s.Status)
	}
	if s.Step != StepIdle {
		t.Errorf("expected idle, got %s", s.Step)
	}
	if s.StartedAt != nil {
		t.Error("StartedAt should be unset before the service starts")
	}
}

func TestStore_ServiceStarted(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	e := events.NewEvent(events.ServiceStarted, 0).
		With("serial", "FOC1").
		With("software", "RoomOS 11").
		With("ip", "10.0.0.5")
	e.Time = now
	store.HandleEvent(e)

	s := store.Snapshot()
	if s.Status != StatusRunning {
		t.Errorf("expected running, got %s", s.Status)
	}
	if s.StartedAt == nil || !s.StartedAt.Equal(now) {
		t.Errorf("expected started at %v, got %v", now, s.StartedAt)
	}
	want := DeviceState{Serial: "FOC1", Software: "RoomOS 11", IP: "10.0.0.5"}
	if s.Device != want {
		t.Errorf("expected device %+v, got %+v", want, s.Device)
	}
}

func TestStore_StepsThroughPass(t *testing.T) {
	store := NewStore()

	steps := []struct {
		evt  events.Event
		want string
	}{
		{events.NewEvent(events.SequenceStarted, 1), StepCategory},
		{events.NewEvent(events.CategorySelected, 1).With("category", "Audio"), StepDescription},
		{events.NewEvent(events.DescriptionReceived, 1), StepName},
		{events.NewEvent(events.NameReceived, 1), StepSubmitting},
		{events.NewEvent(events.ReportAssembled, 1).WithReport("R1").With("campus", "MEMHQ").With("room", "101"), StepIdle},
	}
	for _, st := range steps {
		store.HandleEvent(st.evt)
		if got := store.Snapshot().Step; got != st.want {
			t.Fatalf("after %s: expected step %s, got %s", st.evt.Type, st.want, got)
		}
	}

	s := store.Snapshot()
	if s.Pass != 1 {
		t.Errorf("expected pass 1, got %d", s.Pass)
	}
	if s.LastReport == nil || s.LastReport.Status != "sending" || s.LastReport.Campus != "MEMHQ" {
		t.Errorf("unexpected last report: %+v", s.LastReport)
	}

	store.HandleEvent(events.NewEvent(events.DeliverySucceeded, 1).WithReport("R1").With("sender", "webex"))
	s = store.Snapshot()
	if s.Summary.Delivered != 1 {
		t.Errorf("expected 1 delivered, got %d", s.Summary.Delivered)
	}
	if s.LastReport.Status != "delivered" || s.LastReport.Sender != "webex" || s.LastReport.Room != "101" {
		t.Errorf("unexpected last report: %+v", s.LastReport)
	}
}

func TestStore_StaleEventsDoNotMoveStep(t *testing.T) {
	store := NewStore()
	store.HandleEvent(events.NewEvent(events.SequenceStarted, 1))
	store.HandleEvent(events.NewEvent(events.SequenceStarted, 2))

	// pass 1 was superseded; its abandonment is counted but the step stays
	store.HandleEvent(events.NewEvent(events.SequenceAbandoned, 1).With("reason", "restarted"))

	s := store.Snapshot()
	if s.Step != StepCategory {
		t.Errorf("expected category step, got %s", s.Step)
	}
	if s.Summary.Started != 2 || s.Summary.Abandoned != 1 {
		t.Errorf("unexpected summary: %+v", s.Summary)
	}
}

func TestStore_Failures(t *testing.T) {
	store := NewStore()
	store.HandleEvent(events.NewEvent(events.SequenceStarted, 1))
	store.HandleEvent(events.NewEvent(events.ReportUnresolved, 1).WithError(errors.New("no location for nyc")))

	s := store.Snapshot()
	if s.Summary.Unresolved != 1 || s.Step != StepIdle {
		t.Errorf("unexpected state: %+v", s)
	}
	if s.LastError != "no location for nyc" {
		t.Errorf("unexpected last error: %q", s.LastError)
	}

	store.HandleEvent(events.NewEvent(events.DeliveryFailed, 2).WithReport("R2").WithError(errors.New("HTTP 401")))
	s = store.Snapshot()
	if s.Summary.Failed != 1 || s.LastReport.ID != "R2" || s.LastReport.Status != "failed" {
		t.Errorf("unexpected state: %+v / %+v", s.Summary, s.LastReport)
	}

	store.HandleEvent(events.NewEvent(events.DeviceCommandFailed, 0).With("command", "prompt display").WithError(errors.New("closed")))
	if got := store.Snapshot().LastError; got != "prompt display: closed" {
		t.Errorf("unexpected last error: %q", got)
	}

	store.HandleEvent(events.NewEvent(events.SequenceRejected, 3))
	if got := store.Snapshot().Summary.Rejected; got != 1 {
		t.Errorf("expected 1 rejected, got %d", got)
	}
}

func TestStore_ServiceStopped(t *testing.T) {
	store := NewStore()
	store.HandleEvent(events.NewEvent(events.ServiceStarted, 0))
	store.HandleEvent(events.NewEvent(events.ServiceStopped, 0))
	if got := store.Snapshot().Status; got != StatusStopped {
		t.Errorf("expected stopped, got %s", got)
	}

	store.HandleEvent(events.NewEvent(events.ServiceStopped, 0).WithError(errors.New("event stream closed")))
	s := store.Snapshot()
	if s.Status != StatusFailed || s.LastError != "event stream closed" {
		t.Errorf("unexpected state: %+v", s)
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.HandleEvent(events.NewEvent(events.ReportAssembled, 1).WithReport("R1"))

	s := store.Snapshot()
	s.LastReport.Status = "tampered"

	if got := store.Snapshot().LastReport.Status; got != "sending" {
		t.Errorf("snapshot mutation leaked into store: %s", got)
	}
}
