// Package session orchestrates work/break cycles: a round banner, a
// work phase, a break phase, repeated until the live round target is
// reached or the user bails out.
package session

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pomitik/tik/internal/config"
	"github.com/pomitik/tik/internal/duration"
	tikerrors "github.com/pomitik/tik/internal/errors"
	"github.com/pomitik/tik/internal/journal"
	"github.com/pomitik/tik/internal/observability"
	"github.com/pomitik/tik/internal/timer"
)

// HeaderHold is how long the round banner stays up before the phase
// countdown starts.
const HeaderHold = 2 * time.Second

// Engine drives one phase to an outcome. *timer.Engine implements it.
type Engine interface {
	Run(ctx context.Context, phase timer.Phase) timer.Outcome
}

// Surface is the terminal the session holds across phases.
// *render.Surface implements it.
type Surface interface {
	Enter() error
	Leave()
}

// HeaderRenderer paints the round banner between phases.
// *render.Renderer implements it.
type HeaderRenderer interface {
	DrawHeader(round, target int, name, display string) error
}

// Journal persists completed intervals. *journal.Store implements it.
type Journal interface {
	Append(entry journal.Entry) error
}

// Notifier announces completed intervals. *notify.Notifier implements it.
type Notifier interface {
	SendCompletion(name, durationDisplay string)
}

// PresetResolver looks up preset literals by name. *config.Config
// implements it.
type PresetResolver interface {
	ResolvePreset(name string) (string, bool)
}

// Interval pairs a phase's display name with its resolved length. The
// name is whatever the config held, a preset name or a literal, and is
// what headers, notifications, and journal entries show.
type Interval struct {
	Name   string
	Length time.Duration
}

// Plan is a session resolved to concrete durations.
type Plan struct {
	Name      string
	Work      Interval
	Break     Interval
	LongBreak Interval
	Rounds    int
}

// ResolvePlan turns a configured session into concrete durations.
// Interval fields resolve as a preset name first, then as a duration
// literal.
func ResolvePlan(name string, spec config.Session, presets PresetResolver) (Plan, error) {
	if spec.Rounds < 1 {
		return Plan{}, tikerrors.InvalidSession(name, "rounds", nil)
	}

	plan := Plan{Name: name, Rounds: spec.Rounds}

	fields := []struct {
		field    string
		value    string
		interval *Interval
	}{
		{"work", spec.Work, &plan.Work},
		{"break", spec.Break, &plan.Break},
		{"long_break", spec.LongBreak, &plan.LongBreak},
	}

	for _, f := range fields {
		length, err := resolveInterval(presets, f.value)
		if err != nil {
			return Plan{}, tikerrors.InvalidSession(name, f.field, err)
		}

		*f.interval = Interval{Name: f.value, Length: length}
	}

	return plan, nil
}

func resolveInterval(presets PresetResolver, value string) (time.Duration, error) {
	if literal, ok := presets.ResolvePreset(value); ok {
		value = literal
	}

	return duration.Parse(value)
}

// Result summarizes a finished session.
type Result struct {
	// Finished counts fully completed work phases.
	Finished int

	// Aborted is set when a stop or quit ended the session before the
	// round target was reached.
	Aborted bool
}

// Options wires a Runner's collaborators.
type Options struct {
	Engine   Engine
	Surface  Surface
	Header   HeaderRenderer
	Journal  Journal
	Notifier Notifier
}

// Runner executes one resolved session plan.
type Runner struct {
	engine   Engine
	surface  Surface
	header   HeaderRenderer
	journal  Journal
	notifier Notifier

	// hold and now are injectable for tests.
	hold time.Duration
	now  func() time.Time
}

// New returns a Runner over the given collaborators.
func New(opts Options) *Runner {
	return &Runner{
		engine:   opts.Engine,
		surface:  opts.Surface,
		header:   opts.Header,
		journal:  opts.Journal,
		notifier: opts.Notifier,
		hold:     HeaderHold,
		now:      time.Now,
	}
}

// Run executes the plan round by round. The round target is re-read on
// every loop iteration, so add/drop keys pressed during a phase move
// the finish line of the running session.
func (r *Runner) Run(ctx context.Context, plan Plan) Result {
	ctx, span := observability.Tracer("tik.session").Start(ctx, "session.run",
		trace.WithAttributes(
			attribute.String("session.name", plan.Name),
			attribute.Int("session.rounds", plan.Rounds),
		),
	)
	defer span.End()

	log := observability.FromContext(ctx)
	target := timer.NewRoundTarget(plan.Rounds)

	// The surface outlives individual phases so a skipped interval
	// flows straight into the next banner. Leave is idempotent, so the
	// releases on the engine's own exit paths stay safe.
	defer r.surface.Leave()

	var result Result

	for round := 1; round <= target.Load(); round++ {
		outcome, ok := r.phase(ctx, span, round, target, plan.Work, timer.Work)
		if !ok {
			result.Aborted = true
			break
		}

		if outcome == timer.Completed {
			result.Finished++
		}

		interval := plan.Break
		if round == target.Load() {
			interval = plan.LongBreak
		}

		if _, ok := r.phase(ctx, span, round, target, interval, timer.Break); !ok {
			result.Aborted = true
			break
		}
	}

	span.SetAttributes(
		attribute.Int("session.finished_rounds", result.Finished),
		attribute.Bool("session.aborted", result.Aborted),
	)
	log.Debug("session finished",
		slog.String("session", plan.Name),
		slog.Int("rounds", result.Finished),
		slog.Bool("aborted", result.Aborted))

	return result
}

// phase shows the round banner, runs one interval, and handles its
// outcome. ok is false when the session must abort.
func (r *Runner) phase(ctx context.Context, span trace.Span, round int, target *timer.RoundTarget, interval Interval, kind timer.Context) (timer.Outcome, bool) {
	log := observability.FromContext(ctx)

	if err := r.showHeader(ctx, round, target.Load(), interval); err != nil {
		log.Error("round banner failed",
			slog.String("name", interval.Name),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, "round banner failed")

		return timer.Quit, false
	}

	outcome := r.engine.Run(ctx, timer.Phase{
		Name:    interval.Name,
		Total:   interval.Length,
		Context: kind,
		Title:   interval.Name,
		Round:   round,
		Target:  target,
	})

	switch outcome {
	case timer.Completed:
		r.record(ctx, interval)
	case timer.Skipped:
		log.Debug("interval skipped",
			slog.String("name", interval.Name),
			slog.Int("round", round))
	case timer.StoppedEarly, timer.Quit:
		return outcome, false
	}

	return outcome, true
}

func (r *Runner) showHeader(ctx context.Context, round, target int, interval Interval) error {
	if err := r.surface.Enter(); err != nil {
		return err
	}

	if err := r.header.DrawHeader(round, target, interval.Name, duration.FormatClock(interval.Length)); err != nil {
		return err
	}

	r.sleep(ctx, r.hold)

	return nil
}

// record journals and announces a completed interval. Neither failure
// interrupts the session.
func (r *Runner) record(ctx context.Context, interval Interval) {
	display := duration.FormatClock(interval.Length)

	r.notifier.SendCompletion(interval.Name, display)

	entry := journal.Entry{
		Name:         interval.Name,
		DurationSecs: int64(interval.Length / time.Second),
		CompletedAt:  r.now(),
	}
	if err := r.journal.Append(entry); err != nil {
		observability.FromContext(ctx).Warn("journal append failed",
			slog.String("name", interval.Name),
			slog.String("error", err.Error()))
	}
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) {
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
