package tui

import (
	"time"

	"github.com/RevCBH/roomreport/internal/device"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// activeAlert is an alert on screen. A zero Expires means it stays until
// dismissed.
type activeAlert struct {
	device.Alert
	Expires time.Time
}

// Model is the bubbletea model for the simulated device screen.
type Model struct {
	Styles Styles
	Status Status

	// Screen state
	Panel  *device.Panel
	Prompt *device.Prompt
	Input  *device.TextInput
	Alerts []activeAlert

	// dialog increments whenever a dialog is shown so a stale expiry
	// cannot close its successor
	dialog int
	field  textinput.Model

	// Workflow holds recent bus events, newest last
	Workflow      []string
	WorkflowLimit int

	LogLines []string
	LogLimit int
	ShowLogs bool

	Width  int
	Height int

	Quitting bool
	Done     bool

	emit func(device.Event)
	now  func() time.Time
}

// NewModel creates the screen model. emit receives the UI events produced
// by key presses; it is called from a tea.Cmd, never from Update itself.
func NewModel(status Status, emit func(device.Event)) *Model {
	field := textinput.New()
	field.CharLimit = 500

	return &Model{
		Styles:        DefaultStyles(),
		Status:        status,
		field:         field,
		WorkflowLimit: 8,
		LogLimit:      200,
		ShowLogs:      true,
		emit:          emit,
		now:           time.Now,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// TickMsg is sent every second to expire alerts
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// DoneMsg signals the program should exit
type DoneMsg struct{}

// QuitMsg signals the user requested quit (q or Ctrl+C)
type QuitMsg struct{}

// PanelMsg places the activation button on the status bar
type PanelMsg struct {
	Panel device.Panel
}

// PromptMsg shows a single-choice prompt
type PromptMsg struct {
	Prompt device.Prompt
}

// TextInputMsg shows a free-text dialog
type TextInputMsg struct {
	Input device.TextInput
}

// AlertMsg shows a transient alert
type AlertMsg struct {
	Alert device.Alert
}

// WorkflowMsg is a line describing a workflow event from the bus
type WorkflowMsg struct {
	Line   string
	Failed bool
}

// dialogExpiredMsg closes dialog n if it is still the current one
type dialogExpiredMsg struct {
	dialog int
}
