package tui

import (
	"strconv"
	"time"

	"github.com/RevCBH/roomreport/internal/device"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height

	case TickMsg:
		m.expireAlerts(time.Time(msg))
		return m, tickCmd()

	case DoneMsg:
		m.Done = true
		return m, tea.Quit

	case QuitMsg:
		m.Quitting = true
		return m, tea.Quit

	case PanelMsg:
		p := msg.Panel
		m.Panel = &p

	case PromptMsg:
		p := msg.Prompt
		m.Prompt, m.Input = &p, nil
		m.field.Blur()
		return m, m.openDialog(p.Duration)

	case TextInputMsg:
		in := msg.Input
		m.Prompt, m.Input = nil, &in
		m.field.Reset()
		m.field.Placeholder = in.Placeholder
		m.field.SetValue(in.InputText)
		return m, tea.Batch(m.field.Focus(), m.openDialog(in.Duration))

	case AlertMsg:
		a := activeAlert{Alert: msg.Alert}
		if msg.Alert.Duration > 0 {
			a.Expires = m.now().Add(msg.Alert.Duration)
		}
		m.Alerts = append(m.Alerts, a)

	case dialogExpiredMsg:
		if msg.dialog == m.dialog {
			return m, m.clearDialog()
		}

	case WorkflowMsg:
		style := m.Styles.EventOK
		if msg.Failed {
			style = m.Styles.EventFailed
		}
		m.Workflow = appendLimited(m.Workflow, style.Render(msg.Line), m.WorkflowLimit)

	case LogMsg:
		m.LogLines = appendLimited(m.LogLines, msg.Line, m.LogLimit)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	// an open text input takes every other key
	if m.Input != nil {
		switch key {
		case "enter":
			ev := device.Event{Kind: device.EventTextInputResponse, FeedbackID: m.Input.FeedbackID, Text: m.field.Value()}
			m.closeDialog()
			return m, m.send(ev)
		case "esc":
			return m, m.clearDialog()
		}
		var cmd tea.Cmd
		m.field, cmd = m.field.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		m.Quitting = true
		return m, tea.Quit

	case "r":
		if m.Panel == nil {
			return m, nil
		}
		return m, m.send(device.Event{Kind: device.EventPanelClicked, PanelID: m.Panel.ID})

	case "1", "2", "3", "4", "5":
		if m.Prompt == nil {
			return m, nil
		}
		n, _ := strconv.Atoi(key)
		if n > len(m.Prompt.Options) {
			return m, nil
		}
		ev := device.Event{Kind: device.EventPromptResponse, FeedbackID: m.Prompt.FeedbackID, OptionID: n}
		m.closeDialog()
		return m, m.send(ev)

	case "esc":
		if m.Prompt != nil {
			return m, m.clearDialog()
		}
		m.Alerts = nil

	case "l":
		m.ShowLogs = !m.ShowLogs
	}

	return m, nil
}

// openDialog starts a new dialog generation and schedules its expiry.
func (m *Model) openDialog(d time.Duration) tea.Cmd {
	m.dialog++
	if d <= 0 {
		return nil
	}
	n := m.dialog
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dialogExpiredMsg{dialog: n}
	})
}

func (m *Model) closeDialog() {
	m.Prompt, m.Input = nil, nil
	m.field.Blur()
	m.dialog++
}

// clearDialog dismisses the open dialog without an answer, as the device
// does on timeout or when the user closes it.
func (m *Model) clearDialog() tea.Cmd {
	var ev device.Event
	switch {
	case m.Prompt != nil:
		ev = device.Event{Kind: device.EventPromptCleared, FeedbackID: m.Prompt.FeedbackID}
	case m.Input != nil:
		ev = device.Event{Kind: device.EventTextInputCleared, FeedbackID: m.Input.FeedbackID}
	default:
		return nil
	}
	m.closeDialog()
	return m.send(ev)
}

func (m *Model) send(ev device.Event) tea.Cmd {
	if m.emit == nil {
		return nil
	}
	return func() tea.Msg {
		m.emit(ev)
		return nil
	}
}

func (m *Model) expireAlerts(now time.Time) {
	kept := m.Alerts[:0]
	for _, a := range m.Alerts {
		if a.Expires.IsZero() || now.Before(a.Expires) {
			kept = append(kept, a)
		}
	}
	m.Alerts = kept
}

func appendLimited(lines []string, line string, limit int) []string {
	lines = append(lines, line)
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}
