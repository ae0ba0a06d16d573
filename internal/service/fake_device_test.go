package service

import (
	"context"
	"errors"
	"sync"

	"github.com/RevCBH/roomreport/internal/delivery"
	"github.com/RevCBH/roomreport/internal/device"
)

// fakeDevice records UI commands and lets tests push UI events.
type fakeDevice struct {
	mu      sync.Mutex
	address string
	alerts  []device.Alert
	panels  []device.Panel

	// failures keyed by UI label prefix: "prompt", "textinput", "alert"
	failures map[string]error

	// ui receives one label per UI command, e.g. "prompt:issue-category"
	ui     chan string
	events chan device.Event
}

func newFakeDevice(address string) *fakeDevice {
	return &fakeDevice{
		address:  address,
		failures: map[string]error{},
		ui:       make(chan string, 64),
		events:   make(chan device.Event, 16),
	}
}

func (f *fakeDevice) setAddress(a string) {
	f.mu.Lock()
	f.address = a
	f.mu.Unlock()
}

func (f *fakeDevice) fail(kind string, err error) {
	f.mu.Lock()
	f.failures[kind] = err
	f.mu.Unlock()
}

func (f *fakeDevice) record(kind, label string) error {
	f.mu.Lock()
	err := f.failures[kind]
	f.mu.Unlock()
	f.ui <- kind + ":" + label
	return err
}

func (f *fakeDevice) ContactAddress(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.address == "" {
		return "", errors.New("no contact method")
	}
	return f.address, nil
}

func (f *fakeDevice) SerialNumber(context.Context) (string, error) { return "FOC2447N5FW", nil }
func (f *fakeDevice) SoftwareName(context.Context) (string, error) { return "RoomOS 11.14", nil }
func (f *fakeDevice) IPv4Address(context.Context) (string, error)  { return "10.10.20.31", nil }

func (f *fakeDevice) SavePanel(_ context.Context, p device.Panel) error {
	f.mu.Lock()
	f.panels = append(f.panels, p)
	f.mu.Unlock()
	return nil
}

func (f *fakeDevice) DisplayPrompt(_ context.Context, p device.Prompt) error {
	return f.record("prompt", p.FeedbackID)
}

func (f *fakeDevice) DisplayTextInput(_ context.Context, in device.TextInput) error {
	return f.record("textinput", in.FeedbackID)
}

func (f *fakeDevice) DisplayAlert(_ context.Context, a device.Alert) error {
	f.mu.Lock()
	f.alerts = append(f.alerts, a)
	f.mu.Unlock()
	return f.record("alert", a.Title)
}

func (f *fakeDevice) Events(context.Context) (<-chan device.Event, error) {
	return f.events, nil
}

func (f *fakeDevice) Close() error { return nil }

var _ device.Device = (*fakeDevice)(nil)

// recordingSender captures delivered messages.
type recordingSender struct {
	mu   sync.Mutex
	msgs []delivery.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, m delivery.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
	return r.err
}

func (r *recordingSender) Name() string { return "recording" }

func (r *recordingSender) messages() []delivery.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]delivery.Message(nil), r.msgs...)
}
