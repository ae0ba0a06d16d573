// Package sequencer drives the three-step report collection dialog as a
// finite-state machine.
//
// Transition is pure: given the current state, session and an event it returns
// the next state, session and the effects the caller must carry out. The
// Sequencer type wraps it with owned state for the service loop.
package sequencer

import (
	"fmt"
	"time"

	"github.com/RevCBH/roomreport/internal/device"
)

// State is a position in the report dialog.
type State int

const (
	Idle State = iota
	AwaitingCategory
	AwaitingDescription
	AwaitingName
	Delivering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingCategory:
		return "awaiting_category"
	case AwaitingDescription:
		return "awaiting_description"
	case AwaitingName:
		return "awaiting_name"
	case Delivering:
		return "delivering"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ActivationPolicy decides what a panel click does while a pass is in flight.
type ActivationPolicy string

const (
	// PolicyRestart discards the current pass and starts a fresh one.
	PolicyRestart ActivationPolicy = "restart"
	// PolicyReject keeps the current pass and refuses the new activation.
	PolicyReject ActivationPolicy = "reject"
)

// Flow is the static dialog configuration.
type Flow struct {
	PanelID     string
	Category    device.Prompt
	Description device.TextInput
	Name        device.TextInput

	// NameDelay separates the description and name dialogs so the device
	// has dismissed the first before the second is shown.
	NameDelay time.Duration

	Policy ActivationPolicy
}

// CategoryLabel maps a 1-based option id to its label.
func (f Flow) CategoryLabel(optionID int) (string, bool) {
	if optionID < 1 || optionID > len(f.Category.Options) || optionID > device.MaxPromptOptions {
		return "", false
	}
	return f.Category.Options[optionID-1], true
}

// feedbackID returns the feedback id the given state is waiting on.
func (f Flow) feedbackID(s State) string {
	switch s {
	case AwaitingCategory:
		return f.Category.FeedbackID
	case AwaitingDescription:
		return f.Description.FeedbackID
	case AwaitingName:
		return f.Name.FeedbackID
	}
	return ""
}

// Session holds the answers collected during one pass.
type Session struct {
	// Pass increments on every activation; timers and delayed dialogs
	// carry it so stale ones can be told apart.
	Pass uint64

	Category     string
	Description  string
	ReporterName string

	// Filled counts answers stored in order: 1 category, 2 description,
	// 3 name.
	Filled int
}

// Complete reports whether all three answers were stored this pass.
func (s Session) Complete() bool {
	return s.Filled >= 3
}

// Sequencer owns the dialog state. It is not safe for concurrent use.
type Sequencer struct {
	flow    Flow
	state   State
	session Session
}

// New creates an idle Sequencer.
func New(flow Flow) *Sequencer {
	return &Sequencer{flow: flow}
}

// Handle applies ev and returns the effects to execute.
func (s *Sequencer) Handle(ev Event) []Effect {
	var effects []Effect
	s.state, s.session, effects = Transition(s.flow, s.state, s.session, ev)
	return effects
}

// State returns the current state.
func (s *Sequencer) State() State {
	return s.state
}

// Session returns a copy of the current session.
func (s *Sequencer) Session() Session {
	return s.session
}

// Flow returns the dialog configuration.
func (s *Sequencer) Flow() Flow {
	return s.flow
}

// AwaitingFeedback returns the feedback id of the dialog the current step
// is waiting on, or "" outside the dialog steps.
func (s *Sequencer) AwaitingFeedback() string {
	return s.flow.feedbackID(s.state)
}
