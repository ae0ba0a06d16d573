// Package xapi talks to a RoomOS device over its xAPI WebSocket
// (JSON-RPC 2.0) interface.
package xapi

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ErrClosed is returned by calls made after the connection has ended.
var ErrClosed = errors.New("xapi: connection closed")

const (
	methodGet       = "xGet"
	methodSet       = "xSet"
	methodSubscribe = "xFeedback/Subscribe"
	methodFeedback  = "xFeedback/Event"
	commandPrefix   = "xCommand/"
)

// Options configures the connection to a device.
type Options struct {
	// Host is the device address, optionally with port.
	Host     string
	Username string
	Password string

	// Insecure disables TLS certificate verification; devices usually ship
	// with self-signed certificates.
	Insecure bool

	// Scheme defaults to "wss".
	Scheme string
	// Path defaults to "/ws".
	Path string

	HandshakeTimeout time.Duration
	// KeepAlive is the ping interval; 0 disables pings.
	KeepAlive time.Duration
}

func (o Options) url() string {
	scheme := o.Scheme
	if scheme == "" {
		scheme = "wss"
	}
	path := o.Path
	if path == "" {
		path = "/ws"
	}
	u := url.URL{Scheme: scheme, Host: o.Host, Path: path}
	return u.String()
}

// RPCError is a JSON-RPC error returned by the device.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("xapi error %d: %s (%s)", e.Code, e.Message, string(e.Data))
	}
	return fmt.Sprintf("xapi error %d: %s", e.Code, e.Message)
}

// Feedback is a notification for an active subscription.
type Feedback struct {
	SubscriptionID int
	// Params is the raw notification body, e.g. {"Event": {...}, "Id": 0}.
	Params json.RawMessage
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// Client is a JSON-RPC connection to one device. It is safe for concurrent
// use; responses are matched to calls by id.
type Client struct {
	conn   *websocket.Conn
	logger zerolog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan message
	err     error

	feedback chan Feedback
	done     chan struct{}
	closeOne sync.Once
}

// Dial connects to the device and starts the read loop.
func Dial(ctx context.Context, opts Options, logger zerolog.Logger) (*Client, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: opts.HandshakeTimeout,
	}
	if dialer.HandshakeTimeout == 0 {
		dialer.HandshakeTimeout = 10 * time.Second
	}
	if opts.Insecure {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // device certificates are self-signed
	}

	header := http.Header{}
	if opts.Username != "" {
		creds := base64.StdEncoding.EncodeToString([]byte(opts.Username + ":" + opts.Password))
		header.Set("Authorization", "Basic "+creds)
	}

	target := opts.url()
	conn, resp, err := dialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %s: %w", target, resp.Status, err)
		}
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}

	c := newClient(conn, logger)
	if opts.KeepAlive > 0 {
		go c.keepAlive(opts.KeepAlive)
	}
	return c, nil
}

func newClient(conn *websocket.Conn, logger zerolog.Logger) *Client {
	c := &Client{
		conn:     conn,
		logger:   logger.With().Str("component", "xapi").Logger(),
		pending:  make(map[int64]chan message),
		feedback: make(chan Feedback, 64),
		done:     make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Call sends a JSON-RPC request and waits for its response.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	ch := make(chan message, 1)

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return nil, err
	}
	c.nextID++
	id := c.nextID
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	req := request{JSONRPC: "2.0", ID: id, Method: method, Params: params}
	if err := c.write(req); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	select {
	case msg := <-ch:
		if msg.Error != nil {
			return nil, fmt.Errorf("%s: %w", method, msg.Error)
		}
		return msg.Result, nil
	case <-c.done:
		return nil, fmt.Errorf("%s: %w", method, c.closeErr())
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", method, ctx.Err())
	}
}

// Get reads a status or configuration value. Path elements are strings or
// 1-based integer indexes.
func (c *Client) Get(ctx context.Context, path ...any) (json.RawMessage, error) {
	return c.Call(ctx, methodGet, map[string]any{"Path": path})
}

// GetString reads a value and decodes it as a string.
func (c *Client) GetString(ctx context.Context, path ...any) (string, error) {
	raw, err := c.Get(ctx, path...)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("decode %s: %w", joinPath(path), err)
	}
	return s, nil
}

// Set writes a configuration value.
func (c *Client) Set(ctx context.Context, value any, path ...any) error {
	_, err := c.Call(ctx, methodSet, map[string]any{"Path": path, "Value": value})
	return err
}

// Command runs an xCommand such as UserInterface/Message/Alert/Display. body
// is the multiline payload some commands take; empty means none.
func (c *Client) Command(ctx context.Context, command string, params map[string]any, body string) (json.RawMessage, error) {
	if body != "" {
		p := make(map[string]any, len(params)+1)
		for k, v := range params {
			p[k] = v
		}
		p["body"] = body
		params = p
	}
	return c.Call(ctx, commandPrefix+strings.Trim(command, "/"), params)
}

// Subscribe registers for feedback on path and returns the subscription id.
// Notifications arrive on Feedback().
func (c *Client) Subscribe(ctx context.Context, path ...any) (int, error) {
	raw, err := c.Call(ctx, methodSubscribe, map[string]any{
		"Query":              path,
		"NotifyCurrentValue": false,
	})
	if err != nil {
		return 0, err
	}
	var res struct {
		ID int `json:"Id"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return 0, fmt.Errorf("decode subscription: %w", err)
	}
	return res.ID, nil
}

// Feedback returns the notification channel. It is closed once the read
// loop has stopped.
func (c *Client) Feedback() <-chan Feedback {
	return c.feedback
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns why the connection ended, or nil while it is open.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close sends a close frame and tears down the connection.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()

	err := c.conn.Close()
	c.shutdown(ErrClosed)
	return err
}

func (c *Client) write(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *Client) readLoop() {
	defer close(c.feedback)
	for {
		var msg message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Error().Err(err).Msg("xapi connection lost")
			}
			c.shutdown(fmt.Errorf("%w: %v", ErrClosed, err))
			return
		}

		switch {
		case msg.ID != nil && msg.Method == "":
			c.mu.Lock()
			ch, ok := c.pending[*msg.ID]
			c.mu.Unlock()
			if ok {
				ch <- msg
			} else {
				c.logger.Debug().Int64("id", *msg.ID).Msg("response for unknown request")
			}

		case msg.Method == methodFeedback:
			var head struct {
				ID int `json:"Id"`
			}
			_ = json.Unmarshal(msg.Params, &head)
			select {
			case c.feedback <- Feedback{SubscriptionID: head.ID, Params: msg.Params}:
			case <-c.done:
				return
			}

		default:
			c.logger.Debug().Str("method", msg.Method).Msg("ignoring message")
		}
	}
}

func (c *Client) keepAlive(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(every))
			c.writeMu.Unlock()
			if err != nil {
				c.logger.Warn().Err(err).Msg("xapi ping failed")
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) shutdown(err error) {
	c.closeOne.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		close(c.done)
	})
}

func (c *Client) closeErr() error {
	if err := c.Err(); err != nil {
		return err
	}
	return ErrClosed
}

func joinPath(path []any) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, "/")
}
