package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.Done || m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	if d := m.renderDialog(); d != "" {
		b.WriteString(d)
		b.WriteString("\n")
	}

	for _, a := range m.Alerts {
		b.WriteString(m.renderAlert(a))
		b.WriteString("\n")
	}

	if len(m.Workflow) > 0 {
		b.WriteString("\n")
		for _, line := range m.Workflow {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	if m.ShowLogs && len(m.LogLines) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title and the simulated device identity
func (m *Model) renderHeader() string {
	status := fmt.Sprintf("%s  serial %s  %s  %s", m.Status.Address, m.Status.Serial, m.Status.Software, m.Status.IP)
	return fmt.Sprintf("%s  %s",
		m.Styles.Title.Render("RoomOS simulator"),
		m.Styles.Status.Render(status),
	)
}

// renderStatusBar renders the activation button once the panel is saved
func (m *Model) renderStatusBar() string {
	if m.Panel == nil {
		return m.Styles.Status.Render("  (no panel registered)")
	}
	button := m.Styles.PanelButton.Background(panelColor(m.Panel.Color)).Render(m.Panel.Name)
	key := m.Styles.FooterKey.Render("r")
	return fmt.Sprintf("  %s  press %s", button, key)
}

// renderDialog renders the open prompt or text input
func (m *Model) renderDialog() string {
	var body strings.Builder
	switch {
	case m.Prompt != nil:
		body.WriteString(m.Styles.DialogTitle.Render(m.Prompt.Title))
		body.WriteString("\n")
		body.WriteString(m.Styles.DialogText.Render(m.Prompt.Text))
		body.WriteString("\n")
		for i, opt := range m.Prompt.Options {
			fmt.Fprintf(&body, "\n%s %s", m.Styles.OptionKey.Render(fmt.Sprintf("[%d]", i+1)), m.Styles.Option.Render(opt))
		}
	case m.Input != nil:
		body.WriteString(m.Styles.DialogTitle.Render(m.Input.Title))
		body.WriteString("\n")
		body.WriteString(m.Styles.DialogText.Render(m.Input.Text))
		body.WriteString("\n\n")
		body.WriteString(m.field.View())
	default:
		return ""
	}
	return m.Styles.Dialog.Render(body.String())
}

func (m *Model) renderAlert(a activeAlert) string {
	return m.Styles.Alert.Render(m.Styles.AlertTitle.Render(a.Title) + "\n" + a.Text)
}

// renderLogs renders the tail of the log pane
func (m *Model) renderLogs() string {
	var b strings.Builder
	b.WriteString(m.Styles.LogTitle.Render("Logs"))
	b.WriteString("\n")

	lines := m.LogLines
	if max := m.logRows(); len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	for _, line := range lines {
		b.WriteString(m.Styles.LogLine.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) logRows() int {
	if m.Height <= 0 {
		return 10
	}
	return max(m.Height/3, 3)
}

// renderFooter renders the key help for the current screen
func (m *Model) renderFooter() string {
	k := m.Styles.FooterKey.Render
	var help string
	switch {
	case m.Input != nil:
		help = fmt.Sprintf("%s submit  %s dismiss  %s quit", k("enter"), k("esc"), k("ctrl+c"))
	case m.Prompt != nil:
		help = fmt.Sprintf("%s choose  %s dismiss  %s quit", k("1-5"), k("esc"), k("q"))
	default:
		help = fmt.Sprintf("%s report issue  %s logs  %s quit", k("r"), k("l"), k("q"))
	}
	return m.Styles.Footer.Render("  " + help)
}
