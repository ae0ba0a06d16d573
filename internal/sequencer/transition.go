package sequencer

import (
	"time"

	"github.com/RevCBH/roomreport/internal/device"
)

// Event is an input to the state machine.
type Event interface {
	isEvent()
}

// PanelActivated is a click on a UI extension panel.
type PanelActivated struct {
	PanelID string
}

// CategorySelected is a response to the category prompt.
type CategorySelected struct {
	FeedbackID string
	OptionID   int
}

// TextSubmitted is a response to a text input dialog.
type TextSubmitted struct {
	FeedbackID string
	Text       string
}

// PromptExpired fires when a dialog's response window elapses.
type PromptExpired struct {
	Step State
	Pass uint64
}

// PromptCleared is the device reporting that a dialog was dismissed without
// an answer.
type PromptCleared struct {
	FeedbackID string
}

// Aborted ends a pass after a device command failed.
type Aborted struct {
	Pass   uint64
	Reason string
}

// DeliveryStarted is fed once the completed report has been handed off.
type DeliveryStarted struct{}

func (PanelActivated) isEvent()   {}
func (CategorySelected) isEvent() {}
func (TextSubmitted) isEvent()    {}
func (PromptExpired) isEvent()    {}
func (PromptCleared) isEvent()    {}
func (Aborted) isEvent()          {}
func (DeliveryStarted) isEvent()  {}

// Effect is an action requested by a transition.
type Effect interface {
	isEffect()
}

// ShowPrompt displays the category prompt.
type ShowPrompt struct {
	Prompt device.Prompt
}

// ShowTextInput displays a text dialog after Delay. The caller must drop it
// if the session has moved past Pass by then.
type ShowTextInput struct {
	Input device.TextInput
	Delay time.Duration
	Pass  uint64
}

// ArmTimeout asks for a PromptExpired{Step, Pass} after the given duration.
type ArmTimeout struct {
	Step  State
	Pass  uint64
	After time.Duration
}

// Submit hands the completed session to report assembly and delivery.
type Submit struct {
	Session Session
}

// Abandon records that a pass ended without a report.
type Abandon struct {
	Step   State
	Pass   uint64
	Reason string
}

// Reject records a refused activation.
type Reject struct {
	Pass   uint64
	Reason string
}

func (ShowPrompt) isEffect()    {}
func (ShowTextInput) isEffect() {}
func (ArmTimeout) isEffect()    {}
func (Submit) isEffect()        {}
func (Abandon) isEffect()       {}
func (Reject) isEffect()        {}

// Transition computes the next state for ev. Events that do not apply to the
// current state leave state and session untouched and produce no effects.
func Transition(flow Flow, state State, sess Session, ev Event) (State, Session, []Effect) {
	switch ev := ev.(type) {
	case PanelActivated:
		if ev.PanelID != flow.PanelID {
			return state, sess, nil
		}
		if state != Idle && flow.Policy == PolicyReject {
			return state, sess, []Effect{Reject{Pass: sess.Pass, Reason: "report already in progress"}}
		}
		next, nsess, effects := begin(flow, sess.Pass+1)
		if awaiting(state) {
			effects = append([]Effect{Abandon{Step: state, Pass: sess.Pass, Reason: "restarted"}}, effects...)
		}
		return next, nsess, effects

	case CategorySelected:
		if state != AwaitingCategory || ev.FeedbackID != flow.Category.FeedbackID {
			return state, sess, nil
		}
		label, ok := flow.CategoryLabel(ev.OptionID)
		if !ok {
			return state, sess, nil
		}
		sess.Category = label
		sess.Filled = 1
		effects := []Effect{ShowTextInput{Input: flow.Description, Pass: sess.Pass}}
		effects = appendTimeout(effects, AwaitingDescription, sess.Pass, flow.Description.Duration)
		return AwaitingDescription, sess, effects

	case TextSubmitted:
		if state == Idle || ev.FeedbackID != flow.feedbackID(state) {
			return state, sess, nil
		}
		switch state {
		case AwaitingDescription:
			sess.Description = ev.Text
			sess.Filled = 2
			effects := []Effect{ShowTextInput{Input: flow.Name, Delay: flow.NameDelay, Pass: sess.Pass}}
			if flow.Name.Duration > 0 {
				effects = appendTimeout(effects, AwaitingName, sess.Pass, flow.NameDelay+flow.Name.Duration)
			}
			return AwaitingName, sess, effects
		case AwaitingName:
			sess.ReporterName = ev.Text
			sess.Filled = 3
			return Delivering, sess, []Effect{Submit{Session: sess}}
		}
		return state, sess, nil

	case PromptExpired:
		if ev.Step != state || ev.Pass != sess.Pass || !awaiting(state) {
			return state, sess, nil
		}
		return Idle, sess, []Effect{Abandon{Step: state, Pass: sess.Pass, Reason: "response window elapsed"}}

	case PromptCleared:
		if !awaiting(state) || ev.FeedbackID != flow.feedbackID(state) {
			return state, sess, nil
		}
		return Idle, sess, []Effect{Abandon{Step: state, Pass: sess.Pass, Reason: "dialog dismissed"}}

	case Aborted:
		if ev.Pass != sess.Pass || !awaiting(state) {
			return state, sess, nil
		}
		return Idle, sess, []Effect{Abandon{Step: state, Pass: sess.Pass, Reason: ev.Reason}}

	case DeliveryStarted:
		if state != Delivering {
			return state, sess, nil
		}
		return Idle, sess, nil
	}

	return state, sess, nil
}

func begin(flow Flow, pass uint64) (State, Session, []Effect) {
	sess := Session{Pass: pass}
	effects := []Effect{ShowPrompt{Prompt: flow.Category}}
	effects = appendTimeout(effects, AwaitingCategory, pass, flow.Category.Duration)
	return AwaitingCategory, sess, effects
}

func appendTimeout(effects []Effect, step State, pass uint64, after time.Duration) []Effect {
	if after <= 0 {
		return effects
	}
	return append(effects, ArmTimeout{Step: step, Pass: pass, After: after})
}

func awaiting(s State) bool {
	return s == AwaitingCategory || s == AwaitingDescription || s == AwaitingName
}
