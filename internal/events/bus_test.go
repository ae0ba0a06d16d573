package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInOrder(t *testing.T) {
	bus := NewBus(10)

	var got []EventType
	bus.Subscribe(func(e Event) {
		got = append(got, e.Type)
	})

	bus.Emit(NewEvent(SequenceStarted, 1))
	bus.Emit(NewEvent(CategorySelected, 1))
	bus.Emit(NewEvent(DeliverySucceeded, 1))
	require.NoError(t, bus.Close())

	assert.Equal(t, []EventType{SequenceStarted, CategorySelected, DeliverySucceeded}, got)
}

func TestBus_SetsTime(t *testing.T) {
	bus := NewBus(1)
	var evt Event
	bus.Subscribe(func(e Event) { evt = e })
	bus.Emit(NewEvent(ServiceStarted, 0))
	require.NoError(t, bus.Close())

	assert.False(t, evt.Time.IsZero())
}

func TestBus_EmitAfterCloseIsNoop(t *testing.T) {
	bus := NewBus(1)
	require.NoError(t, bus.Close())
	bus.Emit(NewEvent(ServiceStopped, 0))
	require.NoError(t, bus.Close())
}

func TestBus_DropsWhenFull(t *testing.T) {
	bus := NewBus(1)
	block := make(chan struct{})
	bus.Subscribe(func(Event) { <-block })

	// first event is taken by the dispatcher and blocks, the second fills
	// the buffer, further ones are dropped
	for i := 0; i < 10; i++ {
		bus.Emit(NewEvent(SequenceStarted, uint64(i)))
	}
	assert.Greater(t, bus.Dropped(), 0)

	close(block)
	require.NoError(t, bus.Close())
}

func TestEvent_Builders(t *testing.T) {
	base := NewEvent(ReportAssembled, 3)
	e := base.WithReport("01J").With("destination", "ROOM_ID_1").WithError(errors.New("boom"))

	assert.Equal(t, "01J", e.ReportID)
	assert.Equal(t, "ROOM_ID_1", e.Payload["destination"])
	assert.Equal(t, "boom", e.Error)
	assert.Nil(t, base.Payload, "With must not mutate the receiver")

	assert.Equal(t, "[report.assembled] pass=3 report=01J error=boom", e.String())
}

func TestEvent_IsFailure(t *testing.T) {
	assert.True(t, NewEvent(DeliveryFailed, 1).IsFailure())
	assert.True(t, NewEvent(DeviceCommandFailed, 1).IsFailure())
	assert.True(t, NewEvent(ReportUnresolved, 1).IsFailure())
	assert.False(t, NewEvent(DeliverySucceeded, 1).IsFailure())
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := LogHandler(zerolog.New(&buf))

	handler(NewEvent(DeliveryFailed, 2).WithReport("01J").With("sender", "webex").WithError(errors.New("503")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "delivery.failed", line["event"])
	assert.Equal(t, float64(2), line["pass"])
	assert.Equal(t, "01J", line["report_id"])
	assert.Equal(t, "webex", line["sender"])
	assert.Equal(t, "503", line["error"])
}

func TestLogHandler_AbandonedIsDebug(t *testing.T) {
	var buf bytes.Buffer
	handler := LogHandler(zerolog.New(&buf).Level(zerolog.InfoLevel))

	handler(NewEvent(SequenceAbandoned, 1))
	assert.Empty(t, buf.String())
}

func TestChannelHandler(t *testing.T) {
	ch := make(chan Event, 1)
	h := ChannelHandler(ch)
	h(NewEvent(SequenceStarted, 1))
	h(NewEvent(SequenceStarted, 2)) // dropped, channel full

	e := <-ch
	assert.Equal(t, uint64(1), e.Pass)
	assert.Empty(t, ch)
}

func TestJSONEmitter(t *testing.T) {
	var buf bytes.Buffer
	em := NewJSONEmitter(&buf)

	em.Handler()(NewEvent(SequenceStarted, 1))
	require.NoError(t, em.Emit(NewEvent(DeliverySucceeded, 1).WithReport("01J")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var evt Event
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &evt))
	assert.Equal(t, DeliverySucceeded, evt.Type)
	assert.Equal(t, "01J", evt.ReportID)
}

func TestJSONMode(t *testing.T) {
	assert.True(t, JSONMode(true, nil))
	assert.True(t, JSONMode(false, nil))

	f, err := os.CreateTemp(t.TempDir(), "events")
	require.NoError(t, err)
	defer f.Close()
	// regular files are never terminals
	assert.True(t, JSONMode(false, f))
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write([]byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestJSONEmitter_StickyError(t *testing.T) {
	w := &failingWriter{}
	em := NewJSONEmitter(w)

	require.Error(t, em.Emit(NewEvent(ServiceStarted, 0)))
	require.Error(t, em.Emit(NewEvent(ServiceStopped, 0)))
	assert.Equal(t, 1, w.calls)
}
