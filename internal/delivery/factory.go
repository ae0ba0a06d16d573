package delivery

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Config holds delivery backend configuration
type Config struct {
	Backends []string
	WebexURL string
	Token    string

	// Client overrides the HTTP client for the webex backend
	Client *http.Client

	// TerminalOutput overrides stderr for the terminal backend
	TerminalOutput io.Writer

	// Logger receives webex response bodies at debug level
	Logger zerolog.Logger
}

// FromConfig creates a Sender from configuration
func FromConfig(cfg Config) (Sender, error) {
	var senders []Sender

	terminal := func() Sender {
		if cfg.TerminalOutput != nil {
			return NewTerminalWriter(cfg.TerminalOutput)
		}
		return NewTerminal()
	}

	for _, backend := range cfg.Backends {
		switch backend {
		case "terminal":
			senders = append(senders, terminal())
		case "webex":
			if cfg.Token == "" {
				return nil, fmt.Errorf("webex backend requires a bot token")
			}
			url := cfg.WebexURL
			if url == "" {
				url = DefaultWebexURL
			}
			webex := NewWebex(url, cfg.Token)
			if cfg.Client != nil {
				webex = NewWebexWithClient(url, cfg.Token, cfg.Client)
			}
			senders = append(senders, webex.WithLogger(cfg.Logger))
		default:
			return nil, fmt.Errorf("unknown delivery backend: %s", backend)
		}
	}

	if len(senders) == 0 {
		return terminal(), nil
	}

	if len(senders) == 1 {
		return senders[0], nil
	}

	return NewMulti(senders...), nil
}
