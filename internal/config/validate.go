package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/RevCBH/roomreport/internal/device"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config) error {
	var errs []error
	add := func(field string, value any, msg string) {
		errs = append(errs, &ValidationError{Field: field, Value: value, Message: msg})
	}

	if cfg.Panel.ID == "" {
		add("panel.id", cfg.Panel.ID, "must not be empty")
	}

	// Category needs 1..5 non-empty options
	if n := len(cfg.Category.Options); n < 1 || n > device.MaxPromptOptions {
		add("category.options", n, fmt.Sprintf("must have between 1 and %d options", device.MaxPromptOptions))
	}
	for i, opt := range cfg.Category.Options {
		if strings.TrimSpace(opt) == "" {
			add(fmt.Sprintf("category.options[%d]", i), opt, "must not be empty")
		}
	}

	// Feedback ids route responses to steps, so they must be distinct
	seen := map[string]string{}
	for _, f := range []struct{ field, id string }{
		{"category.feedback_id", cfg.Category.FeedbackID},
		{"description.feedback_id", cfg.Description.FeedbackID},
		{"name.feedback_id", cfg.Name.FeedbackID},
	} {
		if f.id == "" {
			add(f.field, f.id, "must not be empty")
			continue
		}
		if prev, ok := seen[f.id]; ok {
			add(f.field, f.id, "duplicates "+prev)
			continue
		}
		seen[f.id] = f.field
	}

	durations := map[string]string{
		"device.keep_alive":           cfg.Device.KeepAlive,
		"category.duration":           cfg.Category.Duration,
		"description.duration":        cfg.Description.Duration,
		"name.duration":               cfg.Name.Duration,
		"name_prompt_delay":           cfg.NamePromptDelay,
		"alerts.sent.duration":        cfg.Alerts.Sent.Duration,
		"alerts.failed.duration":      cfg.Alerts.Failed.Duration,
		"alerts.in_progress.duration": cfg.Alerts.InProgress.Duration,
	}
	parsed := map[string]time.Duration{}
	for _, field := range sortedKeys(durations) {
		d, err := time.ParseDuration(durations[field])
		if err != nil {
			add(field, durations[field], fmt.Sprintf("invalid duration: %v", err))
			continue
		}
		if d < 0 {
			add(field, durations[field], "must not be negative")
			continue
		}
		parsed[field] = d
	}

	switch cfg.ActivationPolicy {
	case "restart":
	case "reject":
		// A rejected activation cannot recover a dialog that never expires
		for _, field := range []string{"category.duration", "description.duration", "name.duration"} {
			if d, ok := parsed[field]; ok && d == 0 {
				add(field, durations[field], "must be positive with activation_policy reject")
			}
		}
	default:
		add("activation_policy", cfg.ActivationPolicy, "must be one of: restart, reject")
	}

	if len(cfg.Delivery.Backends) == 0 {
		add("delivery.backends", cfg.Delivery.Backends, "must name at least one backend")
	}
	for i, b := range cfg.Delivery.Backends {
		switch b {
		case "terminal":
		case "webex":
			if cfg.Webex.Token == "" {
				add("webex.token", "", "required when the webex backend is enabled")
			}
			if cfg.Webex.APIURL == "" {
				add("webex.api_url", "", "required when the webex backend is enabled")
			}
		default:
			add(fmt.Sprintf("delivery.backends[%d]", i), b, "must be one of: webex, terminal")
		}
	}

	if len(cfg.Locations) == 0 {
		add("locations", 0, "must map at least one location tag to a room id")
	}
	for _, tag := range sortedKeys(cfg.Locations) {
		if strings.TrimSpace(tag) == "" {
			add("locations", tag, "location tag must not be empty")
		}
		if cfg.Locations[tag] == "" {
			add("locations."+tag, "", "room id must not be empty")
		}
	}

	// LogLevel must be one of: debug, info, warn, error (case-sensitive)
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		add("log_level", cfg.LogLevel, "must be one of: debug, info, warn, error")
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		add("log_format", cfg.LogFormat, "must be one of: json, console")
	}

	if cfg.Status.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Status.Listen); err != nil {
			add("status.listen", cfg.Status.Listen, "must be host:port")
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ValidateDevice checks the settings needed to connect to a real device.
func (c *Config) ValidateDevice() error {
	if c.Device.Host == "" {
		return &ValidationError{
			Field:   "device.host",
			Value:   "",
			Message: "must be set (or ROOMREPORT_DEVICE_HOST)",
		}
	}
	return nil
}
