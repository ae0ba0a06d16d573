package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/RevCBH/roomreport/internal/config"
	"github.com/RevCBH/roomreport/internal/delivery"
	"github.com/RevCBH/roomreport/internal/device"
	"github.com/RevCBH/roomreport/internal/events"
	"github.com/RevCBH/roomreport/internal/logging"
	"github.com/RevCBH/roomreport/internal/service"
	"github.com/RevCBH/roomreport/internal/telemetry"
	"github.com/rs/zerolog"
)

// eventBusCapacity bounds the events queued for slow handlers
const eventBusCapacity = 1000

// Runtime holds all wired components for one service run
type Runtime struct {
	Config  *config.Config
	Events  *events.Bus
	Gateway *delivery.Gateway
	Service *service.Service

	shutdownTelemetry telemetry.Shutdown
}

// WireService assembles the report service around dev. Telemetry is set up
// here so the gateway's spans reach the configured exporter.
func WireService(ctx context.Context, cfg *config.Config, dev device.Device, sender delivery.Sender, logger zerolog.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	flow, err := cfg.Flow()
	if err != nil {
		return nil, err
	}
	alerts, err := serviceAlerts(cfg.Alerts)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	// Create event bus first (other components depend on it)
	bus := events.NewBus(eventBusCapacity)
	bus.Subscribe(events.LogHandler(logging.Component(logger, "events")))

	gateway := delivery.NewGateway(sender, bus, logger)

	svc := service.New(service.Config{
		Flow:   flow,
		Panel:  cfg.PanelDefinition(),
		Alerts: alerts,
	}, service.Dependencies{
		Device:    dev,
		Directory: cfg.Directory(),
		Gateway:   gateway,
		Bus:       bus,
		Logger:    logger,
	})

	return &Runtime{
		Config:            cfg,
		Events:            bus,
		Gateway:           gateway,
		Service:           svc,
		shutdownTelemetry: shutdown,
	}, nil
}

// Run starts the service and processes events until ctx ends.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.Service.Start(ctx); err != nil {
		return err
	}
	return r.Service.Run(ctx)
}

// Close drains the event bus and flushes telemetry.
func (r *Runtime) Close(ctx context.Context) error {
	busErr := r.Events.Close()
	return errors.Join(busErr, r.shutdownTelemetry(ctx))
}

func serviceAlerts(cfg config.AlertsConfig) (service.Alerts, error) {
	var (
		alerts service.Alerts
		err    error
	)
	if alerts.Sent, err = cfg.Sent.Alert(); err != nil {
		return alerts, fmt.Errorf("alerts.sent: %w", err)
	}
	if alerts.Failed, err = cfg.Failed.Alert(); err != nil {
		return alerts, fmt.Errorf("alerts.failed: %w", err)
	}
	if alerts.InProgress, err = cfg.InProgress.Alert(); err != nil {
		return alerts, fmt.Errorf("alerts.in_progress: %w", err)
	}
	return alerts, nil
}
