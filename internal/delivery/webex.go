package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultWebexURL is the Webex messages endpoint
const DefaultWebexURL = "https://webexapis.com/v1/messages"

// WebexPayload is the JSON body for a new Webex message
type WebexPayload struct {
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

// responseLogLimit caps how much of a success body is logged
const responseLogLimit = 512

// webexError is the error body Webex returns on 4xx/5xx
type webexError struct {
	Message    string `json:"message"`
	TrackingID string `json:"trackingId"`
}

// Webex posts messages to a Webex space as a bot
type Webex struct {
	url    string
	token  string
	client *http.Client
	logger zerolog.Logger
}

// NewWebex creates a Webex sender with a default HTTP client. Requests carry
// no deadline of their own; shutdown bounds how long the service waits.
func NewWebex(url, token string) *Webex {
	return NewWebexWithClient(url, token, &http.Client{})
}

// NewWebexWithClient creates a Webex sender with custom HTTP client
func NewWebexWithClient(url, token string, client *http.Client) *Webex {
	return &Webex{
		url:    url,
		token:  token,
		client: client,
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger that receives response bodies at debug level.
func (w *Webex) WithLogger(logger zerolog.Logger) *Webex {
	w.logger = logger
	return w
}

// Send posts the message as JSON with bearer authorization
func (w *Webex) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(WebexPayload{RoomID: m.RoomID, Text: m.Text})
	if err != nil {
		return fmt.Errorf("marshal webex payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webex request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webex request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webex returned %d%s", resp.StatusCode, describeError(resp.Body))
	}
	if e := w.logger.Debug(); e.Enabled() {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, responseLogLimit))
		e.Int("status", resp.StatusCode).Str("report_id", m.ReportID).
			Str("body", strings.TrimSpace(string(data))).Msg("webex response")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Name returns "webex"
func (w *Webex) Name() string {
	return "webex"
}

func describeError(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var we webexError
	if err := json.Unmarshal(data, &we); err != nil || we.Message == "" {
		return ": " + strings.TrimSpace(string(data))
	}
	if we.TrackingID != "" {
		return fmt.Sprintf(": %s (tracking id %s)", we.Message, we.TrackingID)
	}
	return ": " + we.Message
}
