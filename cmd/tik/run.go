package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pomitik/tik/internal/config"
	"github.com/pomitik/tik/internal/duration"
	clierrors "github.com/pomitik/tik/internal/errors"
	"github.com/pomitik/tik/internal/journal"
	"github.com/pomitik/tik/internal/notify"
	"github.com/pomitik/tik/internal/observability"
	"github.com/pomitik/tik/internal/output"
	"github.com/pomitik/tik/internal/render"
	"github.com/pomitik/tik/internal/session"
	"github.com/pomitik/tik/internal/timer"
)

// timerJob is what the positional argument resolved to: a full session
// plan, or a single standalone countdown.
type timerJob struct {
	plan   *session.Plan
	name   string
	length time.Duration
}

// resolveInput classifies the positional argument. Resolution order:
// session name, then duration literal, then preset name. A name that is
// both a session and a preset runs as the session.
func resolveInput(cfg *config.Config, input string) (timerJob, error) {
	if spec, ok := cfg.ResolveSession(input); ok {
		plan, err := session.ResolvePlan(input, spec, cfg)
		if err != nil {
			return timerJob{}, err
		}

		return timerJob{plan: &plan}, nil
	}

	length, parseErr := duration.Parse(input)
	if parseErr == nil {
		return timerJob{name: input, length: length}, nil
	}

	// "0m" is a duration literal, just a worthless one. Report it as
	// such instead of falling through to the preset lookup.
	if errors.Is(parseErr, duration.ErrZero) {
		return timerJob{}, clierrors.InvalidDuration(input, parseErr)
	}

	literal, ok := cfg.ResolvePreset(input)
	if !ok {
		return timerJob{}, clierrors.UnknownInput(input)
	}

	length, err := duration.Parse(literal)
	if err != nil {
		return timerJob{}, clierrors.InvalidDuration(literal, err).
			WithHint(fmt.Sprintf("The %q preset holds this value; fix it in the file shown by 'tik config path'", input))
	}

	return timerJob{name: input, length: length}, nil
}

// runTimer resolves the positional argument and runs the countdown or
// session it names.
func runTimer(ctx context.Context, input string, silent bool) error {
	out := output.FromContext(ctx)

	job, err := resolveInput(config.Load(), input)
	if err != nil {
		return err
	}

	// The countdown takes over the whole screen and puts stdin in raw
	// mode; refuse to start behind a pipe or redirect.
	if !out.Terminal().InteractiveEnabled() {
		return clierrors.NotATerminal()
	}

	// In raw mode Ctrl+C arrives as a key, but SIGTERM (and SIGINT sent
	// from outside) must still tear the terminal down cleanly.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := observability.FromContext(ctx)
	surface := render.NewSurface()
	renderer := render.NewRenderer(surface)
	engine := timer.New(surface, renderer)
	notifier := notify.New(silent, logger)

	store := openJournal(logger)

	if job.plan != nil {
		return runSession(ctx, out, *job.plan, session.Options{
			Engine:   engine,
			Surface:  surface,
			Header:   renderer,
			Journal:  store,
			Notifier: notifier,
		})
	}

	return runStandalone(ctx, out, surface, engine, notifier, store, job)
}

func runSession(ctx context.Context, out *output.Writer, plan session.Plan, opts session.Options) error {
	result := session.New(opts).Run(ctx, plan)

	if result.Aborted {
		out.Print("Session cancelled. %s finished.\n", roundCount(result.Finished))
		return nil
	}

	out.Print("Session complete! %s finished.\n", roundCount(result.Finished))

	return nil
}

func runStandalone(ctx context.Context, out *output.Writer, surface *render.Surface, engine *timer.Engine, notifier *notify.Notifier, store session.Journal, job timerJob) error {
	// A skipped phase leaves the surface held for a follow-up phase;
	// standalone timers have none, so always release here.
	defer surface.Leave()

	outcome := engine.Run(ctx, timer.Phase{
		Name:    job.name,
		Total:   job.length,
		Context: timer.Standalone,
	})

	display := duration.FormatClock(job.length)

	switch outcome {
	case timer.Completed:
		notifier.SendCompletion(job.name, display)
		appendEntry(ctx, store, job.name, job.length)
		out.Print("Timer complete: %s\n", display)
	case timer.Skipped:
		out.Print("Timer skipped.\n")
	case timer.StoppedEarly:
		out.Print("Timer stopped.\n")
	case timer.Quit:
		out.Print("Timer cancelled.\n")
	}

	return nil
}

// openJournal resolves the default journal store. Recording is best
// effort: when the state directory cannot be resolved at all, timers
// still run and entries are dropped.
func openJournal(logger *slog.Logger) session.Journal {
	store, err := journal.OpenDefault()
	if err != nil {
		logger.Warn("session journal unavailable", slog.String("error", err.Error()))

		return discardJournal{}
	}

	return store
}

// discardJournal swallows entries when no journal location exists.
type discardJournal struct{}

func (discardJournal) Append(journal.Entry) error { return nil }

func appendEntry(ctx context.Context, store session.Journal, name string, length time.Duration) {
	entry := journal.Entry{
		Name:         name,
		DurationSecs: int64(length / time.Second),
		CompletedAt:  time.Now(),
	}

	if err := store.Append(entry); err != nil {
		observability.FromContext(ctx).Warn("journal append failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
	}
}

func roundCount(n int) string {
	if n == 1 {
		return "1 round"
	}

	return fmt.Sprintf("%d rounds", n)
}
