package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all lipgloss styles for the simulator
type Styles struct {
	// Header styling
	Title  lipgloss.Style
	Status lipgloss.Style

	// Status bar button
	PanelButton lipgloss.Style

	// Dialogs
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	DialogText  lipgloss.Style
	Option      lipgloss.Style
	OptionKey   lipgloss.Style

	// Alerts
	Alert      lipgloss.Style
	AlertTitle lipgloss.Style

	// Workflow events
	EventOK     lipgloss.Style
	EventFailed lipgloss.Style

	// Footer styling
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Log area styling
	LogTitle lipgloss.Style
	LogLine  lipgloss.Style
}

// DefaultStyles returns the default simulator styles
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		PanelButton: lipgloss.NewStyle().Bold(true).Padding(0, 1),

		Dialog:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 2),
		DialogTitle: lipgloss.NewStyle().Bold(true),
		DialogText:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Option:      lipgloss.NewStyle(),
		OptionKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),

		Alert:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("42")).Padding(0, 1),
		AlertTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),

		EventOK:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		EventFailed: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		FooterKey: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),

		LogTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
		LogLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// panelColor falls back to the default accent when the panel color is
// not a usable hex value.
func panelColor(hex string) lipgloss.Color {
	if len(hex) == 7 && hex[0] == '#' {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color("#FC5143")
}

// Icons used in the simulator
const (
	IconOK     = "✓"
	IconFailed = "✗"
	IconEvent  = "●"
)
