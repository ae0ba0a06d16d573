package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/RevCBH/roomreport/internal/device"
)

// Status paths queried at startup and on each report.
var (
	pathContactAddress = []any{"Status", "UserInterface", "ContactInfo", "ContactMethod", 1, "Number"}
	pathSerialNumber   = []any{"Status", "SystemUnit", "Hardware", "Module", "SerialNumber"}
	pathSoftwareName   = []any{"Status", "SystemUnit", "Software", "DisplayName"}
	pathIPv4Address    = []any{"Status", "Network", 1, "IPv4", "Address"}
)

// Event paths the workflow subscribes to.
var eventPaths = [][]any{
	{"Event", "UserInterface", "Extensions", "Panel", "Clicked"},
	{"Event", "UserInterface", "Message", "Prompt", "Response"},
	{"Event", "UserInterface", "Message", "Prompt", "Cleared"},
	{"Event", "UserInterface", "Message", "TextInput", "Response"},
	{"Event", "UserInterface", "Message", "TextInput", "Clear"},
}

// Device adapts a Client to device.Device.
type Device struct {
	client *Client
}

var _ device.Device = (*Device)(nil)

// NewDevice wraps an open client.
func NewDevice(c *Client) *Device {
	return &Device{client: c}
}

func (d *Device) ContactAddress(ctx context.Context) (string, error) {
	return d.client.GetString(ctx, pathContactAddress...)
}

func (d *Device) SerialNumber(ctx context.Context) (string, error) {
	return d.client.GetString(ctx, pathSerialNumber...)
}

func (d *Device) SoftwareName(ctx context.Context) (string, error) {
	return d.client.GetString(ctx, pathSoftwareName...)
}

func (d *Device) IPv4Address(ctx context.Context) (string, error) {
	return d.client.GetString(ctx, pathIPv4Address...)
}

// SavePanel creates or replaces the UI extension panel.
func (d *Device) SavePanel(ctx context.Context, p device.Panel) error {
	doc, err := p.XML()
	if err != nil {
		return err
	}
	_, err = d.client.Command(ctx, "UserInterface/Extensions/Panel/Save",
		map[string]any{"PanelId": p.ID}, doc)
	return err
}

func (d *Device) DisplayPrompt(ctx context.Context, p device.Prompt) error {
	params := map[string]any{
		"Title":      p.Title,
		"Text":       p.Text,
		"FeedbackId": p.FeedbackID,
	}
	for i, opt := range p.Options {
		if i >= device.MaxPromptOptions {
			break
		}
		params["Option."+strconv.Itoa(i+1)] = opt
	}
	if secs := seconds(p.Duration); secs > 0 {
		params["Duration"] = secs
	}
	_, err := d.client.Command(ctx, "UserInterface/Message/Prompt/Display", params, "")
	return err
}

func (d *Device) DisplayTextInput(ctx context.Context, in device.TextInput) error {
	params := map[string]any{
		"Title":      in.Title,
		"Text":       in.Text,
		"FeedbackId": in.FeedbackID,
		"InputText":  in.InputText,
	}
	if in.Placeholder != "" {
		params["Placeholder"] = in.Placeholder
	}
	if secs := seconds(in.Duration); secs > 0 {
		params["Duration"] = secs
	}
	_, err := d.client.Command(ctx, "UserInterface/Message/TextInput/Display", params, "")
	return err
}

func (d *Device) DisplayAlert(ctx context.Context, a device.Alert) error {
	params := map[string]any{
		"Title": a.Title,
		"Text":  a.Text,
	}
	if secs := seconds(a.Duration); secs > 0 {
		params["Duration"] = secs
	}
	_, err := d.client.Command(ctx, "UserInterface/Message/Alert/Display", params, "")
	return err
}

// Events subscribes to the UI event paths and streams decoded events.
func (d *Device) Events(ctx context.Context) (<-chan device.Event, error) {
	for _, path := range eventPaths {
		if _, err := d.client.Subscribe(ctx, path...); err != nil {
			return nil, fmt.Errorf("subscribe %s: %w", joinPath(path), err)
		}
	}

	out := make(chan device.Event, 16)
	go func() {
		defer close(out)
		for {
			select {
			case fb, ok := <-d.client.Feedback():
				if !ok {
					return
				}
				ev, ok := decodeEvent(fb.Params)
				if !ok {
					d.client.logger.Debug().RawJSON("params", fb.Params).Msg("unhandled feedback")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close ends the connection.
func (d *Device) Close() error {
	return d.client.Close()
}

// optionID accepts the option id as a JSON number or string; firmware
// versions differ.
type optionID int

func (o *optionID) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*o = optionID(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("option id: %w", err)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("option id %q: %w", s, err)
	}
	*o = optionID(n)
	return nil
}

type feedbackRef struct {
	FeedbackID string `json:"FeedbackId"`
}

type eventNotification struct {
	Event struct {
		UserInterface struct {
			Extensions struct {
				Panel struct {
					Clicked *struct {
						PanelID string `json:"PanelId"`
					} `json:"Clicked"`
				} `json:"Panel"`
			} `json:"Extensions"`
			Message struct {
				Prompt struct {
					Response *struct {
						FeedbackID string   `json:"FeedbackId"`
						OptionID   optionID `json:"OptionId"`
					} `json:"Response"`
					Cleared *feedbackRef `json:"Cleared"`
				} `json:"Prompt"`
				TextInput struct {
					Response *struct {
						FeedbackID string `json:"FeedbackId"`
						Text       string `json:"Text"`
					} `json:"Response"`
					Clear *feedbackRef `json:"Clear"`
				} `json:"TextInput"`
			} `json:"Message"`
		} `json:"UserInterface"`
	} `json:"Event"`
}

func decodeEvent(params json.RawMessage) (device.Event, bool) {
	var n eventNotification
	if err := json.Unmarshal(params, &n); err != nil {
		return device.Event{}, false
	}
	ui := n.Event.UserInterface

	switch {
	case ui.Extensions.Panel.Clicked != nil:
		return device.Event{Kind: device.EventPanelClicked, PanelID: ui.Extensions.Panel.Clicked.PanelID}, true
	case ui.Message.Prompt.Response != nil:
		r := ui.Message.Prompt.Response
		return device.Event{Kind: device.EventPromptResponse, FeedbackID: r.FeedbackID, OptionID: int(r.OptionID)}, true
	case ui.Message.Prompt.Cleared != nil:
		return device.Event{Kind: device.EventPromptCleared, FeedbackID: ui.Message.Prompt.Cleared.FeedbackID}, true
	case ui.Message.TextInput.Response != nil:
		r := ui.Message.TextInput.Response
		return device.Event{Kind: device.EventTextInputResponse, FeedbackID: r.FeedbackID, Text: r.Text}, true
	case ui.Message.TextInput.Clear != nil:
		return device.Event{Kind: device.EventTextInputCleared, FeedbackID: ui.Message.TextInput.Clear.FeedbackID}, true
	}
	return device.Event{}, false
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
