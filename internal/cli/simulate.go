package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/RevCBH/roomreport/internal/cli/tui"
	"github.com/RevCBH/roomreport/internal/config"
	"github.com/RevCBH/roomreport/internal/delivery"
	"github.com/RevCBH/roomreport/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrNoTerminal is returned when simulate is started without a TTY
var ErrNoTerminal = errors.New("simulate requires an interactive terminal")

// SimulateOptions holds flags for the simulate command
type SimulateOptions struct {
	Address  string
	Serial   string
	Software string
	IP       string

	// DryRun sends reports to the log pane instead of the configured backends
	DryRun bool

	// Locations are merged over the configured directory
	Locations map[string]string
}

// override applies the simulator flags to the loaded config
func (opts SimulateOptions) override(c *config.Config) {
	if opts.DryRun {
		c.Delivery.Backends = []string{"terminal"}
	}
	if len(opts.Locations) > 0 {
		merged := maps.Clone(c.Locations)
		if merged == nil {
			merged = make(map[string]string, len(opts.Locations))
		}
		maps.Copy(merged, opts.Locations)
		c.Locations = merged
	}
}

func (opts SimulateOptions) status() tui.Status {
	return tui.Status{
		Address:  opts.Address,
		Serial:   opts.Serial,
		Software: opts.Software,
		IP:       opts.IP,
	}
}

// NewSimulateCmd creates the simulate command
func NewSimulateCmd(app *App) *cobra.Command {
	opts := SimulateOptions{
		Address:  "memhq-101@example.org",
		Serial:   "SIM0000001",
		Software: "RoomOS simulated",
		IP:       "127.0.0.1",
	}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the report service against a terminal device simulator",
		Long: `Simulate runs the report service against a device drawn in the terminal.

Press r to click the report panel, 1-5 to pick a category, type and press
enter to answer text inputs, esc to dismiss a dialog and q to quit.

With --dry-run reports are written to the log pane instead of being posted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunSimulator(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Address, "address", opts.Address, "Contact address the device reports")
	cmd.Flags().StringVar(&opts.Serial, "serial", opts.Serial, "Serial number the device reports")
	cmd.Flags().StringVar(&opts.Software, "software", opts.Software, "Software version the device reports")
	cmd.Flags().StringVar(&opts.IP, "ip", opts.IP, "IPv4 address the device reports")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Write reports to the log pane instead of delivering them")
	cmd.Flags().StringToStringVar(&opts.Locations, "location", nil, "Extra location tag=room-id entries")

	return cmd
}

// RunSimulator runs the service with the bubbletea simulator as its device
func (a *App) RunSimulator(ctx context.Context, opts SimulateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	cfg, err := a.loadConfig(opts.override)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	status := opts.status()
	sim := tui.NewSimulator(status)
	defer sim.Close()

	model := tui.NewModel(status, sim.Emit)
	program := tea.NewProgram(model, tea.WithAltScreen())
	sim.Attach(program)
	bridge := tui.NewBridge(program)

	logs := tui.NewLogWriter(program)
	defer logs.Close()

	logger, err := logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: logging.FormatConsole,
		Writer: logs,
	})
	if err != nil {
		return err
	}

	dc := cfg.DeliveryConfig()
	dc.TerminalOutput = logs
	dc.Logger = logger
	sender, err := delivery.FromConfig(dc)
	if err != nil {
		return err
	}

	rt, err := WireService(ctx, cfg, sim, sender, logger)
	if err != nil {
		return err
	}
	rt.Events.Subscribe(bridge.Handler())

	handler := NewSignalHandler(cancel, logger)
	handler.OnShutdown(bridge.SendQuit)
	handler.Start()
	defer handler.Stop()

	svcErr := make(chan error, 1)
	go func() {
		err := rt.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("service stopped")
		}
		bridge.SendDone()
		svcErr <- err
	}()

	_, tuiErr := program.Run()

	// the program is gone: stop the service and release anything blocked on it
	cancel()
	_ = sim.Close()
	err = <-svcErr

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	closeErr := rt.Close(flushCtx)

	if tuiErr != nil {
		return fmt.Errorf("simulator: %w", tuiErr)
	}
	return errors.Join(err, closeErr)
}
