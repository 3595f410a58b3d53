package timer

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pomitik/tik/internal/clock"
	"github.com/pomitik/tik/internal/observability"
	"github.com/pomitik/tik/internal/render"
)

// TickInterval is the redraw cadence of the countdown loop.
const TickInterval = 250 * time.Millisecond

// CompletionGrace is how long the final frame stays up before the
// surface is torn down.
const CompletionGrace = time.Second

// Terminal is the exclusive rendering surface the engine draws into.
// *render.Surface implements it.
type Terminal interface {
	Enter() error
	Leave()
	Keys() <-chan render.Key
}

// Renderer paints one frame of the active phase.
type Renderer interface {
	Draw(frame render.Frame) error
}

// Engine drives one phase from start to outcome.
type Engine struct {
	surface  Terminal
	renderer Renderer

	// now, tick and grace are injectable for tests; they default to
	// time.Now, TickInterval and CompletionGrace.
	now   func() time.Time
	tick  time.Duration
	grace time.Duration
}

// New returns an engine drawing into surface through renderer.
func New(surface Terminal, renderer Renderer) *Engine {
	return &Engine{
		surface:  surface,
		renderer: renderer,
		now:      time.Now,
		tick:     TickInterval,
		grace:    CompletionGrace,
	}
}

// Run drives one phase to its outcome. The surface is held on entry and
// released on every exit except Skipped, where the caller keeps it so
// the next phase starts without a flicker. Context cancellation is
// treated as a quit request.
func (e *Engine) Run(ctx context.Context, phase Phase) Outcome {
	ctx, span := observability.Tracer("tik.timer").Start(ctx, "phase.run",
		trace.WithAttributes(
			attribute.String("phase.name", phase.Name),
			attribute.String("phase.context", phase.Context.String()),
			attribute.Int64("phase.total_secs", int64(phase.Total/time.Second)),
		),
	)
	defer span.End()

	log := observability.FromContext(ctx)

	if err := e.surface.Enter(); err != nil {
		log.Error("terminal surface unavailable",
			slog.String("phase", phase.Name),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, "surface acquisition failed")

		return Quit
	}

	sig := newSignals()
	stop := make(chan struct{})
	listenerDone := make(chan struct{})

	go func() {
		defer close(listenerDone)
		e.listen(phase, sig, stop)
	}()

	// The next phase must never contend with this one's listener for
	// the key stream.
	defer func() {
		close(stop)
		<-listenerDone
	}()

	outcome := e.loop(ctx, phase, sig, log)

	span.SetAttributes(attribute.String("phase.outcome", outcome.String()))
	log.Debug("phase finished",
		slog.String("phase", phase.Name),
		slog.String("outcome", outcome.String()))

	return outcome
}

// loop is the fixed-cadence redraw loop. Signal checks run in quit,
// skip, stop priority order, so quit pre-empts the others when several
// fire in the same interval.
func (e *Engine) loop(ctx context.Context, phase Phase, sig *signals, log *slog.Logger) Outcome {
	clk := clock.New(phase.Total, e.now())

	for {
		if sig.QuitRequested() || ctx.Err() != nil {
			e.surface.Leave()
			return Quit
		}

		if sig.SkipRequested() {
			// Surface intentionally stays held.
			return Skipped
		}

		if sig.StopRequested() {
			e.surface.Leave()
			return StoppedEarly
		}

		now := e.now()

		if paused := sig.Paused(); paused != clk.Paused() {
			clk.Toggle(now)
		}

		elapsed := clk.Elapsed(now).Truncate(time.Second)

		remaining := phase.Total - elapsed
		if remaining < 0 {
			remaining = 0
		}

		frame := render.Frame{
			Remaining: remaining,
			Total:     phase.Total,
			Elapsed:   elapsed,
			Paused:    clk.Paused(),
			Title:     phase.Title,
			Round:     phase.Round,
		}
		if phase.Target != nil {
			frame.Target = phase.Target.Load()
		}

		if err := e.renderer.Draw(frame); err != nil {
			log.Error("frame draw failed",
				slog.String("phase", phase.Name),
				slog.String("error", err.Error()))
			e.surface.Leave()

			return Quit
		}

		if clk.Done(now) {
			// Hold the final frame briefly before tearing down.
			e.sleep(ctx, e.grace)
			e.surface.Leave()

			return Completed
		}

		e.sleep(ctx, e.tick)
	}
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func (e *Engine) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
