package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/RevCBH/roomreport/internal/device"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	mu     sync.Mutex
	events []device.Event
}

func (e *emitted) emit(ev device.Event) {
	e.mu.Lock()
	e.events = append(e.events, ev)
	e.mu.Unlock()
}

func newTestModel() (*Model, *emitted) {
	rec := &emitted{}
	m := NewModel(Status{Address: "room-101@MEMHQ.example.org", Serial: "FOC1"}, rec.emit)
	return m, rec
}

// run executes cmd and returns the message it produced, running emit
// side effects along the way.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_PanelClick(t *testing.T) {
	m, rec := newTestModel()

	_, cmd := m.Update(key("r"))
	assert.Nil(t, cmd, "no panel saved yet")

	m.Update(PanelMsg{Panel: device.Panel{ID: "report-issue", Name: "Report Issue"}})
	_, cmd = m.Update(key("r"))
	run(cmd)

	require.Len(t, rec.events, 1)
	assert.Equal(t, device.Event{Kind: device.EventPanelClicked, PanelID: "report-issue"}, rec.events[0])
}

func TestModel_PromptResponse(t *testing.T) {
	m, rec := newTestModel()
	m.Update(PromptMsg{Prompt: device.Prompt{FeedbackID: "issue-category", Options: []string{"a", "b", "c"}}})
	require.NotNil(t, m.Prompt)

	_, cmd := m.Update(key("4"))
	assert.Nil(t, cmd)
	assert.NotNil(t, m.Prompt, "out of range option keeps the prompt open")

	_, cmd = m.Update(key("2"))
	run(cmd)

	assert.Nil(t, m.Prompt)
	require.Len(t, rec.events, 1)
	assert.Equal(t, device.Event{Kind: device.EventPromptResponse, FeedbackID: "issue-category", OptionID: 2}, rec.events[0])
}

func TestModel_PromptCleared(t *testing.T) {
	m, rec := newTestModel()
	m.Update(PromptMsg{Prompt: device.Prompt{FeedbackID: "issue-category", Options: []string{"a"}}})

	_, cmd := m.Update(key("esc"))
	run(cmd)

	assert.Nil(t, m.Prompt)
	require.Len(t, rec.events, 1)
	assert.Equal(t, device.EventPromptCleared, rec.events[0].Kind)
}

func TestModel_TextInputResponse(t *testing.T) {
	m, rec := newTestModel()
	m.Update(TextInputMsg{Input: device.TextInput{FeedbackID: "issue-comment"}})
	require.NotNil(t, m.Input)

	for _, r := range "hdmi" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	// q is text while the input is open
	m.Update(key("q"))
	assert.False(t, m.Quitting)

	_, cmd := m.Update(key("enter"))
	run(cmd)

	assert.Nil(t, m.Input)
	require.Len(t, rec.events, 1)
	assert.Equal(t, device.Event{Kind: device.EventTextInputResponse, FeedbackID: "issue-comment", Text: "hdmiq"}, rec.events[0])
}

func TestModel_TextInputCleared(t *testing.T) {
	m, rec := newTestModel()
	m.Update(TextInputMsg{Input: device.TextInput{FeedbackID: "issue-name"}})

	_, cmd := m.Update(key("esc"))
	run(cmd)

	require.Len(t, rec.events, 1)
	assert.Equal(t, device.Event{Kind: device.EventTextInputCleared, FeedbackID: "issue-name"}, rec.events[0])
}

func TestModel_DialogExpiry(t *testing.T) {
	m, rec := newTestModel()
	m.Update(PromptMsg{Prompt: device.Prompt{FeedbackID: "first", Options: []string{"a"}, Duration: time.Minute}})
	stale := m.dialog
	m.Update(PromptMsg{Prompt: device.Prompt{FeedbackID: "second", Options: []string{"a"}, Duration: time.Minute}})

	_, cmd := m.Update(dialogExpiredMsg{dialog: stale})
	assert.Nil(t, cmd)
	require.NotNil(t, m.Prompt)
	assert.Equal(t, "second", m.Prompt.FeedbackID)

	_, cmd = m.Update(dialogExpiredMsg{dialog: m.dialog})
	run(cmd)

	assert.Nil(t, m.Prompt)
	require.Len(t, rec.events, 1)
	assert.Equal(t, device.Event{Kind: device.EventPromptCleared, FeedbackID: "second"}, rec.events[0])
}

func TestModel_NoExpiryWithoutDuration(t *testing.T) {
	m, _ := newTestModel()
	cmd := m.openDialog(0)
	assert.Nil(t, cmd)
}

func TestModel_AlertsExpire(t *testing.T) {
	m, _ := newTestModel()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.Update(AlertMsg{Alert: device.Alert{Title: "Report sent", Duration: 5 * time.Second}})
	m.Update(AlertMsg{Alert: device.Alert{Title: "Sticky"}})
	require.Len(t, m.Alerts, 2)

	m.Update(TickMsg(now.Add(4 * time.Second)))
	assert.Len(t, m.Alerts, 2)

	m.Update(TickMsg(now.Add(5 * time.Second)))
	require.Len(t, m.Alerts, 1)
	assert.Equal(t, "Sticky", m.Alerts[0].Title)

	m.Update(key("esc"))
	assert.Empty(t, m.Alerts)
}

func TestModel_WorkflowAndLogsAreLimited(t *testing.T) {
	m, _ := newTestModel()
	m.WorkflowLimit = 2
	m.LogLimit = 2

	for _, line := range []string{"one", "two", "three"} {
		m.Update(WorkflowMsg{Line: line})
		m.Update(LogMsg{Line: line})
	}

	assert.Len(t, m.Workflow, 2)
	assert.Equal(t, []string{"two", "three"}, m.LogLines)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel()
	_, cmd := m.Update(key("q"))
	assert.True(t, m.Quitting)
	assert.NotNil(t, cmd)

	m, _ = newTestModel()
	m.Update(TextInputMsg{Input: device.TextInput{FeedbackID: "x"}})
	m.Update(key("ctrl+c"))
	assert.True(t, m.Quitting)

	m, _ = newTestModel()
	m.Update(DoneMsg{})
	assert.True(t, m.Done)
	assert.Empty(t, m.View())
}

func TestModel_ToggleLogs(t *testing.T) {
	m, _ := newTestModel()
	require.True(t, m.ShowLogs)
	m.Update(key("l"))
	assert.False(t, m.ShowLogs)
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel()
	view := m.View()
	assert.Contains(t, view, "room-101@MEMHQ.example.org")
	assert.Contains(t, view, "no panel registered")

	m.Update(PanelMsg{Panel: device.Panel{ID: "report-issue", Name: "Report Issue", Color: "#FC5143"}})
	m.Update(PromptMsg{Prompt: device.Prompt{
		Title:   "Report issue in this room:",
		Text:    "What type of issue?",
		Options: []string{"Video", "Audio"},
	}})
	m.Update(AlertMsg{Alert: device.Alert{Title: "Report sent", Text: "Thank you"}})
	m.Update(WorkflowMsg{Line: "report #1 started"})

	view = m.View()
	assert.Contains(t, view, "Report Issue")
	assert.Contains(t, view, "What type of issue?")
	assert.Contains(t, view, "Audio")
	assert.Contains(t, view, "Report sent")
	assert.Contains(t, view, "report #1 started")
	assert.Contains(t, view, "choose")
}
