package delivery

import (
	"context"
	"sync"

	"github.com/RevCBH/roomreport/internal/events"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/RevCBH/roomreport/internal/delivery"

// Gateway sends messages in the background. Each Deliver call makes exactly
// one attempt; there is no retry or queueing.
type Gateway struct {
	sender Sender
	bus    *events.Bus
	logger zerolog.Logger
	tracer trace.Tracer

	wg sync.WaitGroup
}

// NewGateway creates a Gateway. bus may be nil.
func NewGateway(sender Sender, bus *events.Bus, logger zerolog.Logger) *Gateway {
	return &Gateway{
		sender: sender,
		bus:    bus,
		logger: logger.With().Str("component", "delivery").Str("sender", sender.Name()).Logger(),
		tracer: otel.Tracer(tracerName),
	}
}

// Deliver starts one delivery attempt and returns immediately. The outcome is
// logged, published on the bus and passed to onResult when it is non-nil.
// Cancelling ctx does not abort an attempt that has already started.
func (g *Gateway) Deliver(ctx context.Context, pass uint64, m Message, onResult func(Result)) {
	ctx = context.WithoutCancel(ctx)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		ctx, span := g.tracer.Start(ctx, "delivery.send", trace.WithAttributes(
			attribute.String("report.id", m.ReportID),
			attribute.String("delivery.sender", g.sender.Name()),
			attribute.String("webex.room_id", m.RoomID),
		))
		defer span.End()

		err := g.sender.Send(ctx, m)
		res := Result{Message: m, Sender: g.sender.Name(), Err: err}

		evt := events.NewEvent(events.DeliverySucceeded, pass).
			WithReport(m.ReportID).
			With("sender", res.Sender)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			g.logger.Error().Err(err).Str("report_id", m.ReportID).Msg("error posting report")
			evt.Type = events.DeliveryFailed
			evt = evt.WithError(err)
		} else {
			g.logger.Info().Str("report_id", m.ReportID).Str("room_id", m.RoomID).Msg("report posted")
		}

		if g.bus != nil {
			g.bus.Emit(evt)
		}
		if onResult != nil {
			onResult(res)
		}
	}()
}

// Wait blocks until all started deliveries have finished.
func (g *Gateway) Wait() {
	g.wg.Wait()
}

// Name returns the underlying sender's name.
func (g *Gateway) Name() string {
	return g.sender.Name()
}
