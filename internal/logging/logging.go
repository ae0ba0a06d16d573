// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Formats accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config selects level, encoding and destination.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Output is "stdout" or "stderr" (default). Ignored when Writer is set.
	Output string `yaml:"output"`

	// Writer overrides Output, e.g. to feed the simulator's log pane.
	Writer io.Writer `yaml:"-"`
}

// Init builds a logger from cfg and installs it as the zerolog global.
func Init(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	out := cfg.Writer
	if out == nil {
		switch cfg.Output {
		case "", "stderr":
			out = os.Stderr
		case "stdout":
			out = os.Stdout
		default:
			return zerolog.Nop(), fmt.Errorf("log output %q: want stdout or stderr", cfg.Output)
		}
	}

	switch cfg.Format {
	case "", FormatJSON:
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: cfg.Writer != nil}
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: want json or console", cfg.Format)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger, nil
}

// Component returns a child logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
