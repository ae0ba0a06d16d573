// Package service runs the incident report workflow against a device.
//
// A single loop goroutine owns the sequencer. Device events and timer
// callbacks are funnelled into that loop, so sequencer state is never
// touched concurrently. Deliveries run in the background through the
// gateway and never block the loop.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RevCBH/roomreport/internal/delivery"
	"github.com/RevCBH/roomreport/internal/device"
	"github.com/RevCBH/roomreport/internal/directory"
	"github.com/RevCBH/roomreport/internal/events"
	"github.com/RevCBH/roomreport/internal/report"
	"github.com/RevCBH/roomreport/internal/sequencer"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrEventStreamClosed is returned by Run when the device stops sending
// events, usually because the connection dropped.
var ErrEventStreamClosed = errors.New("device event stream closed")

// DefaultShutdownTimeout bounds how long Run waits for in-flight deliveries.
const DefaultShutdownTimeout = 15 * time.Second

// Alerts are the notifications shown at the end of a pass.
type Alerts struct {
	Sent       device.Alert
	Failed     device.Alert
	InProgress device.Alert
}

// Config holds the static workflow settings.
type Config struct {
	Flow   sequencer.Flow
	Panel  device.Panel
	Alerts Alerts

	ShutdownTimeout time.Duration
}

// Dependencies are the collaborators the service drives.
type Dependencies struct {
	Device    device.Device
	Directory *directory.Directory
	Gateway   *delivery.Gateway
	Bus       *events.Bus
	Logger    zerolog.Logger

	// OnResult, if set, receives every delivery outcome.
	OnResult func(delivery.Result)
}

// Service wires the sequencer to a device and the delivery gateway.
type Service struct {
	cfg      Config
	dev      device.Device
	dir      *directory.Directory
	gateway  *delivery.Gateway
	bus      *events.Bus
	logger   zerolog.Logger
	onResult func(delivery.Result)

	seq  *sequencer.Sequencer
	info device.Info

	deviceEvents <-chan device.Event
	internal     chan func(context.Context)
	stopped      chan struct{}

	// timers armed for the current pass; only touched by the loop
	timers []*time.Timer
}

// New creates a Service. Call Start, then Run.
func New(cfg Config, deps Dependencies) *Service {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Service{
		cfg:      cfg,
		dev:      deps.Device,
		dir:      deps.Directory,
		gateway:  deps.Gateway,
		bus:      deps.Bus,
		logger:   deps.Logger.With().Str("component", "service").Logger(),
		onResult: deps.OnResult,
		seq:      sequencer.New(cfg.Flow),
		internal: make(chan func(context.Context)),
		stopped:  make(chan struct{}),
	}
}

// Start captures the device identity, registers the panel and subscribes to
// UI events. Any failure is fatal to startup. ctx bounds the event
// subscription, so it should live as long as Run.
func (s *Service) Start(ctx context.Context) error {
	info, err := device.FetchInfo(ctx, s.dev)
	if err != nil {
		return fmt.Errorf("fetch device info: %w", err)
	}
	s.info = info

	if err := s.dev.SavePanel(ctx, s.cfg.Panel); err != nil {
		return fmt.Errorf("save panel %s: %w", s.cfg.Panel.ID, err)
	}

	ch, err := s.dev.Events(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to device events: %w", err)
	}
	s.deviceEvents = ch

	s.logger.Info().
		Str("serial", info.SerialNumber).
		Str("software", info.SoftwareVersion).
		Str("ip", info.IPAddress).
		Str("panel", s.cfg.Panel.ID).
		Msg("report service started")
	s.emit(events.NewEvent(events.ServiceStarted, 0).
		With("serial", info.SerialNumber).
		With("software", info.SoftwareVersion).
		With("ip", info.IPAddress))
	return nil
}

// Info returns the identity captured by Start.
func (s *Service) Info() device.Info {
	return s.info
}

// Run processes events until ctx is cancelled or the device event stream
// ends. It then waits, up to the shutdown timeout, for in-flight
// deliveries. Cancellation is a clean shutdown and returns nil.
func (s *Service) Run(ctx context.Context) error {
	if s.deviceEvents == nil {
		return errors.New("service not started")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loop(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		s.drainDeliveries()
		return nil
	})
	err := g.Wait()

	s.emit(events.NewEvent(events.ServiceStopped, 0).WithError(err))
	return err
}

func (s *Service) loop(ctx context.Context) error {
	defer close(s.stopped)
	defer s.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.deviceEvents:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrEventStreamClosed
			}
			s.handleDeviceEvent(ctx, ev)
		case fn := <-s.internal:
			fn(ctx)
		}
	}
}

func (s *Service) drainDeliveries() {
	if s.gateway == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		s.gateway.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(s.cfg.ShutdownTimeout):
		s.logger.Warn().Dur("timeout", s.cfg.ShutdownTimeout).Msg("deliveries still in flight at shutdown")
	}
}

func (s *Service) handleDeviceEvent(ctx context.Context, ev device.Event) {
	s.logger.Debug().Stringer("event", ev).Msg("device event")

	var se sequencer.Event
	switch ev.Kind {
	case device.EventPanelClicked:
		se = sequencer.PanelActivated{PanelID: ev.PanelID}
	case device.EventPromptResponse:
		se = sequencer.CategorySelected{FeedbackID: ev.FeedbackID, OptionID: ev.OptionID}
	case device.EventTextInputResponse:
		se = sequencer.TextSubmitted{FeedbackID: ev.FeedbackID, Text: ev.Text}
	case device.EventPromptCleared, device.EventTextInputCleared:
		se = sequencer.PromptCleared{FeedbackID: ev.FeedbackID}
	default:
		return
	}
	s.dispatch(ctx, se)
}

// dispatch feeds one event to the sequencer and carries out its effects.
func (s *Service) dispatch(ctx context.Context, ev sequencer.Event) {
	prevState, prevPass := s.seq.State(), s.seq.Session().Pass
	effects := s.seq.Handle(ev)
	state, sess := s.seq.State(), s.seq.Session()

	if sess.Pass != prevPass || state == sequencer.Idle {
		s.stopTimers()
	}
	if sess.Pass == prevPass {
		s.emitStep(prevState, state, sess)
	}

	for _, eff := range effects {
		if !s.execute(ctx, eff) {
			return
		}
	}
}

func (s *Service) emitStep(from, to sequencer.State, sess sequencer.Session) {
	var evt events.Event
	switch {
	case from == sequencer.AwaitingCategory && to == sequencer.AwaitingDescription:
		evt = events.NewEvent(events.CategorySelected, sess.Pass).With("category", sess.Category)
	case from == sequencer.AwaitingDescription && to == sequencer.AwaitingName:
		evt = events.NewEvent(events.DescriptionReceived, sess.Pass)
	case from == sequencer.AwaitingName && to == sequencer.Delivering:
		evt = events.NewEvent(events.NameReceived, sess.Pass)
	default:
		return
	}
	s.logger.Debug().Uint64("pass", sess.Pass).Str("step", string(evt.Type)).Msg("step completed")
	s.emit(evt)
}

// execute runs one effect. It returns false when a device command failed
// and the pass was aborted, so the remaining effects must be skipped.
func (s *Service) execute(ctx context.Context, eff sequencer.Effect) bool {
	pass := s.seq.Session().Pass

	switch eff := eff.(type) {
	case sequencer.ShowPrompt:
		s.logger.Info().Uint64("pass", pass).Msg("report sequence started")
		s.emit(events.NewEvent(events.SequenceStarted, pass))
		if err := s.dev.DisplayPrompt(ctx, eff.Prompt); err != nil {
			s.commandFailed(ctx, "prompt display", pass, err)
			return false
		}

	case sequencer.ShowTextInput:
		if eff.Delay <= 0 {
			return s.showTextInput(ctx, eff.Input, eff.Pass)
		}
		s.after(eff.Delay, func(ctx context.Context) {
			if s.seq.Session().Pass != eff.Pass || s.seq.AwaitingFeedback() != eff.Input.FeedbackID {
				s.logger.Debug().Uint64("pass", eff.Pass).Str("feedback_id", eff.Input.FeedbackID).
					Msg("dropping delayed dialog for finished pass")
				return
			}
			s.showTextInput(ctx, eff.Input, eff.Pass)
		})

	case sequencer.ArmTimeout:
		s.after(eff.After, func(ctx context.Context) {
			s.dispatch(ctx, sequencer.PromptExpired{Step: eff.Step, Pass: eff.Pass})
		})

	case sequencer.Submit:
		s.submit(ctx, eff.Session)

	case sequencer.Abandon:
		s.logger.Debug().Uint64("pass", eff.Pass).Stringer("step", eff.Step).Str("reason", eff.Reason).
			Msg("report sequence abandoned")
		s.emit(events.NewEvent(events.SequenceAbandoned, eff.Pass).
			With("step", eff.Step.String()).
			With("reason", eff.Reason))

	case sequencer.Reject:
		s.logger.Info().Uint64("pass", eff.Pass).Str("reason", eff.Reason).Msg("activation rejected")
		s.emit(events.NewEvent(events.SequenceRejected, eff.Pass).With("reason", eff.Reason))
		s.alert(ctx, s.cfg.Alerts.InProgress, eff.Pass)
	}
	return true
}

func (s *Service) showTextInput(ctx context.Context, in device.TextInput, pass uint64) bool {
	if err := s.dev.DisplayTextInput(ctx, in); err != nil {
		s.commandFailed(ctx, "text input display", pass, err)
		return false
	}
	return true
}

// submit assembles the report for a completed pass and hands it to the
// gateway. It never waits for the delivery outcome.
func (s *Service) submit(ctx context.Context, sess sequencer.Session) {
	defer s.dispatch(ctx, sequencer.DeliveryStarted{})

	address, err := s.dev.ContactAddress(ctx)
	if err != nil {
		s.unresolved(ctx, sess.Pass, fmt.Errorf("contact address: %w", err))
		return
	}

	rep, err := report.Assemble(sess, s.info, address)
	if err != nil {
		s.unresolved(ctx, sess.Pass, err)
		return
	}

	dest, ok := s.dir.Lookup(rep.Campus)
	if !ok {
		s.unresolved(ctx, sess.Pass, fmt.Errorf("no destination for location %q", rep.Campus))
		return
	}

	s.logger.Info().
		Uint64("pass", sess.Pass).
		Str("report_id", rep.ID).
		Str("campus", rep.Campus).
		Str("room", rep.Room).
		Msg("report assembled")
	s.emit(events.NewEvent(events.ReportAssembled, sess.Pass).
		WithReport(rep.ID).
		With("destination", dest).
		With("campus", rep.Campus).
		With("room", rep.Room))

	s.gateway.Deliver(ctx, sess.Pass, delivery.Message{
		RoomID:   dest,
		Text:     rep.Text(),
		ReportID: rep.ID,
	}, s.onResult)

	s.alert(ctx, s.cfg.Alerts.Sent, sess.Pass)
}

func (s *Service) unresolved(ctx context.Context, pass uint64, err error) {
	s.logger.Warn().Err(err).Uint64("pass", pass).Msg("report not sent")
	s.emit(events.NewEvent(events.ReportUnresolved, pass).WithError(err))
	s.alert(ctx, s.cfg.Alerts.Failed, pass)
}

func (s *Service) alert(ctx context.Context, a device.Alert, pass uint64) {
	s.logger.Info().Uint64("pass", pass).Msgf("%s: %s", a.Title, a.Text)
	if err := s.dev.DisplayAlert(ctx, a); err != nil {
		s.logger.Error().Err(err).Uint64("pass", pass).Msg("alert display failed")
		s.emit(events.NewEvent(events.DeviceCommandFailed, pass).
			With("command", "alert display").
			WithError(err))
	}
}

// commandFailed records a failed UI command and aborts the pass.
func (s *Service) commandFailed(ctx context.Context, command string, pass uint64, err error) {
	s.logger.Error().Err(err).Uint64("pass", pass).Str("command", command).Msg("device command failed")
	s.emit(events.NewEvent(events.DeviceCommandFailed, pass).
		With("command", command).
		WithError(err))
	s.dispatch(ctx, sequencer.Aborted{Pass: pass, Reason: command + " failed"})
}

// after runs fn on the loop goroutine once d has elapsed, unless the loop
// has stopped by then.
func (s *Service) after(d time.Duration, fn func(context.Context)) {
	t := time.AfterFunc(d, func() {
		select {
		case s.internal <- fn:
		case <-s.stopped:
		}
	})
	s.timers = append(s.timers, t)
}

func (s *Service) stopTimers() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

func (s *Service) emit(e events.Event) {
	if s.bus != nil {
		s.bus.Emit(e)
	}
}
