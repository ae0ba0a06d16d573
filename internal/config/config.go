package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when no path is given.
const DefaultConfigFile = "roomreport.yaml"

// Config holds all configuration for the report service.
// It is immutable after creation via LoadConfig().
type Config struct {
	// Device is the RoomOS endpoint the service drives
	Device DeviceConfig `yaml:"device"`

	// Webex holds the bot credentials used to post reports
	Webex WebexConfig `yaml:"webex"`

	// Delivery selects the outbound backends
	Delivery DeliveryConfig `yaml:"delivery"`

	// Panel is the activation button registered on the device
	Panel PanelConfig `yaml:"panel"`

	// Category is the first, single-choice prompt
	Category PromptConfig `yaml:"category"`

	// Description and Name are the two free-text steps
	Description TextInputConfig `yaml:"description"`
	Name        TextInputConfig `yaml:"name"`

	// NamePromptDelay separates the description and name dialogs
	NamePromptDelay string `yaml:"name_prompt_delay"`

	// Alerts holds the outcome notifications
	Alerts AlertsConfig `yaml:"alerts"`

	// ActivationPolicy is "restart" or "reject"
	ActivationPolicy string `yaml:"activation_policy"`

	// Locations maps a location tag (case-insensitive) to a Webex room id
	Locations map[string]string `yaml:"locations"`

	// LogLevel controls log verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" env:"ROOMREPORT_LOG_LEVEL"`

	// LogFormat is "json" or "console"
	LogFormat string `yaml:"log_format" env:"ROOMREPORT_LOG_FORMAT"`

	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Status is the optional HTTP status endpoint of the run command
	Status StatusConfig `yaml:"status"`
}

// DeviceConfig identifies the device and how to reach it.
type DeviceConfig struct {
	// Host is the device address, optionally with port
	Host     string `yaml:"host" env:"ROOMREPORT_DEVICE_HOST"`
	Username string `yaml:"username" env:"ROOMREPORT_DEVICE_USERNAME"`
	Password string `yaml:"password" env:"ROOMREPORT_DEVICE_PASSWORD"`

	// Insecure skips TLS verification for self-signed device certificates
	Insecure bool `yaml:"insecure" env:"ROOMREPORT_DEVICE_INSECURE"`

	// KeepAlive is the WebSocket ping interval; "0s" disables pings
	KeepAlive string `yaml:"keep_alive"`
}

// WebexConfig holds Webex messaging settings.
type WebexConfig struct {
	Token  string `yaml:"token" env:"ROOMREPORT_WEBEX_TOKEN"`
	APIURL string `yaml:"api_url" env:"ROOMREPORT_WEBEX_API_URL"`
}

// DeliveryConfig lists the backends every report is sent to.
type DeliveryConfig struct {
	// Backends is any of "webex", "terminal"
	Backends []string `yaml:"backends" env:"ROOMREPORT_DELIVERY_BACKENDS"`
}

// PanelConfig describes the UI extension button.
type PanelConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Icon     string `yaml:"icon"`
	Color    string `yaml:"color"`
	Type     string `yaml:"type"`
	Location string `yaml:"location"`
}

// PromptConfig is a single-choice dialog.
type PromptConfig struct {
	FeedbackID string   `yaml:"feedback_id"`
	Title      string   `yaml:"title"`
	Text       string   `yaml:"text"`
	Options    []string `yaml:"options"`

	// Duration is how long the prompt stays up; "0s" means until answered
	Duration string `yaml:"duration"`
}

// TextInputConfig is a free-text dialog.
type TextInputConfig struct {
	FeedbackID  string `yaml:"feedback_id"`
	Title       string `yaml:"title"`
	Text        string `yaml:"text"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Duration    string `yaml:"duration"`
}

// AlertConfig is one on-screen notification.
type AlertConfig struct {
	Title    string `yaml:"title"`
	Text     string `yaml:"text"`
	Duration string `yaml:"duration"`
}

// AlertsConfig holds the notifications shown at the end of a pass.
type AlertsConfig struct {
	Sent       AlertConfig `yaml:"sent"`
	Failed     AlertConfig `yaml:"failed"`
	InProgress AlertConfig `yaml:"in_progress"`
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	// OTLPEndpoint enables tracing when set, e.g. http://localhost:4318
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"ROOMREPORT_OTEL_ENDPOINT"`
	ServiceName  string `yaml:"service_name"`
}

// StatusConfig controls the HTTP status server.
type StatusConfig struct {
	// Listen is a host:port; empty disables the server
	Listen string `yaml:"listen" env:"ROOMREPORT_STATUS_LISTEN"`
}

// KeepAliveDuration parses the device keep-alive interval.
func (c *Config) KeepAliveDuration() (time.Duration, error) {
	return time.ParseDuration(c.Device.KeepAlive)
}

// Override adjusts a loaded configuration before validation, e.g. from
// command line flags.
type Override func(*Config)

// LoadConfig loads configuration from path, or DefaultConfigFile in the
// working directory when path is empty. It applies defaults, then file
// values, then environment overrides, then overrides, then validates.
//
// A missing default file is not an error; a missing explicit path is.
func LoadConfig(path string, overrides ...Override) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	for _, o := range overrides {
		o(cfg)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
