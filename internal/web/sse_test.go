package web

import (
	"testing"

	"github.com/RevCBH/roomreport/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribe(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()
	c, ok := hub.Subscribe(id)
	require.True(t, ok)
	return c
}

func TestHub_PublishReachesEveryStream(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	a, b := subscribe(t, hub, "a"), subscribe(t, hub, "b")
	require.Equal(t, 2, hub.Count())

	hub.Publish(events.NewEvent(events.SequenceStarted, 1))

	for _, c := range []*Client{a, b} {
		require.Len(t, c.events, 1, "stream %s", c.id)
		assert.Equal(t, events.SequenceStarted, (<-c.events).Type)
	}

	hub.Unsubscribe(a)
	assert.Equal(t, 1, hub.Count())
	_, open := <-a.events
	assert.False(t, open)

	// second unsubscribe is a no-op
	hub.Unsubscribe(a)
}

func TestHub_LaggingStreamLosesEvents(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	c := subscribe(t, hub, "slow")
	for i := range clientBuffer + 10 {
		hub.Publish(events.NewEvent(events.SequenceStarted, uint64(i+1)))
	}

	assert.Len(t, c.events, clientBuffer)
	first := <-c.events
	assert.Equal(t, uint64(1), first.Pass)
}

func TestHub_CloseEndsStreams(t *testing.T) {
	hub := NewHub()
	c := subscribe(t, hub, "c")

	hub.Close()
	hub.Close()

	_, open := <-c.events
	assert.False(t, open)
	assert.Zero(t, hub.Count())

	hub.Publish(events.NewEvent(events.ServiceStopped, 0))
	hub.Unsubscribe(c)
	_, ok := hub.Subscribe("late")
	assert.False(t, ok)
}
