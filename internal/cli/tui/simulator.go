package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/RevCBH/roomreport/internal/device"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrDetached is returned by UI commands before Attach or after Close.
var ErrDetached = errors.New("simulator: no program attached")

// Status holds the values the simulated device reports.
type Status struct {
	Address  string
	Serial   string
	Software string
	IP       string
}

// Sender is the part of *tea.Program the simulator needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Simulator is a device.Device whose screen is a bubbletea program.
// UI commands become messages to the program; key presses in the
// program come back as device events.
type Simulator struct {
	status Status

	mu      sync.Mutex
	program Sender

	raw      chan device.Event
	done     chan struct{}
	doneOnce sync.Once
}

var _ device.Device = (*Simulator)(nil)

// NewSimulator creates a detached simulator.
func NewSimulator(status Status) *Simulator {
	return &Simulator{
		status: status,
		raw:    make(chan device.Event, 16),
		done:   make(chan struct{}),
	}
}

// Attach connects the program that renders the device screen.
func (s *Simulator) Attach(p Sender) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

// Emit queues a UI event for the subscriber. It blocks until the event is
// taken or the simulator is closed, so callers inside the program's update
// loop must call it from a tea.Cmd.
func (s *Simulator) Emit(ev device.Event) {
	select {
	case s.raw <- ev:
	case <-s.done:
	}
}

func (s *Simulator) ContactAddress(context.Context) (string, error) {
	return s.status.Address, nil
}

func (s *Simulator) SerialNumber(context.Context) (string, error) {
	return s.status.Serial, nil
}

func (s *Simulator) SoftwareName(context.Context) (string, error) {
	return s.status.Software, nil
}

func (s *Simulator) IPv4Address(context.Context) (string, error) {
	return s.status.IP, nil
}

func (s *Simulator) SavePanel(_ context.Context, p device.Panel) error {
	return s.send(PanelMsg{Panel: p})
}

func (s *Simulator) DisplayPrompt(_ context.Context, p device.Prompt) error {
	return s.send(PromptMsg{Prompt: p})
}

func (s *Simulator) DisplayTextInput(_ context.Context, in device.TextInput) error {
	return s.send(TextInputMsg{Input: in})
}

func (s *Simulator) DisplayAlert(_ context.Context, a device.Alert) error {
	return s.send(AlertMsg{Alert: a})
}

// Events streams key-driven UI events until ctx is cancelled or the
// simulator is closed.
func (s *Simulator) Events(ctx context.Context) (<-chan device.Event, error) {
	out := make(chan device.Event)
	go func() {
		defer close(out)
		for {
			select {
			case ev := <-s.raw:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				case <-s.done:
					return
				}
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
	}()
	return out, nil
}

// Close detaches the program and ends the event stream.
func (s *Simulator) Close() error {
	s.doneOnce.Do(func() { close(s.done) })
	s.mu.Lock()
	s.program = nil
	s.mu.Unlock()
	return nil
}

func (s *Simulator) send(msg tea.Msg) error {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p == nil {
		return ErrDetached
	}
	p.Send(msg)
	return nil
}
