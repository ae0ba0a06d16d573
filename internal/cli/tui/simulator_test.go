package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RevCBH/roomreport/internal/device"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgram records messages instead of running a bubbletea program.
type fakeProgram struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (f *fakeProgram) Send(msg tea.Msg) {
	f.mu.Lock()
	f.msgs = append(f.msgs, msg)
	f.mu.Unlock()
}

func (f *fakeProgram) messages() []tea.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tea.Msg(nil), f.msgs...)
}

func TestSimulator_Status(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(Status{Address: "room-101@MEMHQ", Serial: "FOC1", Software: "RoomOS 11", IP: "10.0.0.5"})

	info, err := device.FetchInfo(ctx, sim)
	require.NoError(t, err)
	assert.Equal(t, "FOC1", info.SerialNumber)
	assert.Equal(t, "RoomOS 11", info.SoftwareVersion)
	assert.Equal(t, "10.0.0.5", info.IPAddress)

	addr, err := sim.ContactAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, "room-101@MEMHQ", addr)
}

func TestSimulator_CommandsBecomeMessages(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(Status{})

	assert.ErrorIs(t, sim.DisplayAlert(ctx, device.Alert{}), ErrDetached)

	prog := &fakeProgram{}
	sim.Attach(prog)

	require.NoError(t, sim.SavePanel(ctx, device.Panel{ID: "p"}))
	require.NoError(t, sim.DisplayPrompt(ctx, device.Prompt{FeedbackID: "c"}))
	require.NoError(t, sim.DisplayTextInput(ctx, device.TextInput{FeedbackID: "d"}))
	require.NoError(t, sim.DisplayAlert(ctx, device.Alert{Title: "t"}))

	assert.Equal(t, []tea.Msg{
		PanelMsg{Panel: device.Panel{ID: "p"}},
		PromptMsg{Prompt: device.Prompt{FeedbackID: "c"}},
		TextInputMsg{Input: device.TextInput{FeedbackID: "d"}},
		AlertMsg{Alert: device.Alert{Title: "t"}},
	}, prog.messages())

	require.NoError(t, sim.Close())
	assert.ErrorIs(t, sim.DisplayAlert(ctx, device.Alert{}), ErrDetached)
}

func TestSimulator_Events(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := NewSimulator(Status{})
	stream, err := sim.Events(ctx)
	require.NoError(t, err)

	want := device.Event{Kind: device.EventPanelClicked, PanelID: "report-issue"}
	go sim.Emit(want)

	select {
	case got := <-stream:
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	require.NoError(t, sim.Close())
	select {
	case _, ok := <-stream:
		assert.False(t, ok, "stream closes with the simulator")
	case <-time.After(time.Second):
		t.Fatal("stream not closed")
	}

	// emitting after close must not block
	sim.Emit(want)
}

func TestSimulator_EventsStopOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sim := NewSimulator(Status{})
	defer sim.Close()

	stream, err := sim.Events(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-stream:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("stream not closed after cancel")
	}
}
