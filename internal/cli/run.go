package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/RevCBH/roomreport/internal/config"
	"github.com/RevCBH/roomreport/internal/delivery"
	"github.com/RevCBH/roomreport/internal/events"
	"github.com/RevCBH/roomreport/internal/logging"
	"github.com/RevCBH/roomreport/internal/web"
	"github.com/RevCBH/roomreport/internal/xapi"
	"github.com/spf13/cobra"
)

// RunOptions holds flags for the run command
type RunOptions struct {
	JSONEvents       bool          // Write workflow events to stdout as JSON lines
	HandshakeTimeout time.Duration // WebSocket handshake timeout
	Listen           string        // Status server address, overrides status.listen
}

// NewRunCmd creates the run command
func NewRunCmd(app *App) *cobra.Command {
	opts := RunOptions{
		HandshakeTimeout: 10 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the report service against a device",
		Long: `Run connects to the device's xAPI WebSocket, registers the report panel
and serves report sequences until interrupted.

The device host and credentials come from the config file or the
ROOMREPORT_DEVICE_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunService(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSONEvents, "json-events", false, "Write workflow events to stdout as JSON lines")
	cmd.Flags().DurationVar(&opts.HandshakeTimeout, "handshake-timeout", opts.HandshakeTimeout, "Device connection timeout")
	cmd.Flags().StringVar(&opts.Listen, "listen", "", "Serve state and live events over HTTP on this address")

	return cmd
}

// RunService connects to the configured device and runs the report service
func (a *App) RunService(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := a.loadConfig(func(c *config.Config) {
		if opts.Listen != "" {
			c.Status.Listen = opts.Listen
		}
	})
	if err != nil {
		return err
	}
	if err := cfg.ValidateDevice(); err != nil {
		return err
	}
	keepAlive, err := cfg.KeepAliveDuration()
	if err != nil {
		return fmt.Errorf("device.keep_alive: %w", err)
	}

	logger, err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}

	// Create cancellable context
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler := NewSignalHandler(cancel, logger)
	handler.Start()
	defer handler.Stop()

	client, err := xapi.Dial(ctx, xapi.Options{
		Host:             cfg.Device.Host,
		Username:         cfg.Device.Username,
		Password:         cfg.Device.Password,
		Insecure:         cfg.Device.Insecure,
		HandshakeTimeout: opts.HandshakeTimeout,
		KeepAlive:        keepAlive,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Device.Host, err)
	}
	dev := xapi.NewDevice(client)
	defer dev.Close()

	dc := cfg.DeliveryConfig()
	dc.Logger = logger
	sender, err := delivery.FromConfig(dc)
	if err != nil {
		return err
	}

	rt, err := WireService(ctx, cfg, dev, sender, logger)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := rt.Close(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("shutdown")
		}
	}()

	if opts.JSONEvents || events.JSONMode(false, os.Stdout) {
		rt.Events.Subscribe(events.NewJSONEmitter(os.Stdout).Handler())
	}

	if cfg.Status.Listen != "" {
		status := web.New(web.Config{Addr: cfg.Status.Listen}, logger)
		if err := status.Start(); err != nil {
			return err
		}
		rt.Events.Subscribe(status.Handler())
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			if err := status.Stop(stopCtx); err != nil {
				logger.Warn().Err(err).Msg("status server shutdown")
			}
		}()
	}

	logger.Info().
		Str("host", cfg.Device.Host).
		Str("delivery", sender.Name()).
		Int("locations", rt.Config.Directory().Len()).
		Msg("connected to device")

	return rt.Run(ctx)
}
