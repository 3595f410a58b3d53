// Package timer drives one countdown phase: the redraw loop, the
// keyboard listener, and the signal cells between them. A phase resolves
// to exactly one Outcome, which the session orchestrator (or the CLI for
// standalone timers) turns into the next action.
package timer

import "time"

// Context tells the engine and listener which controls are legal for a
// phase. Round adjustment keys only apply inside sessions.
type Context uint8

const (
	// Standalone is a one-off timer outside any session.
	Standalone Context = iota
	// Work is a session work interval.
	Work
	// Break is a session break interval.
	Break
)

func (c Context) String() string {
	switch c {
	case Work:
		return "work"
	case Break:
		return "break"
	default:
		return "standalone"
	}
}

// Outcome is the terminal result of one phase invocation.
type Outcome uint8

const (
	// Completed means the countdown ran to zero.
	Completed Outcome = iota
	// Skipped means the user skipped ahead; the terminal surface stays
	// held for the next phase.
	Skipped
	// StoppedEarly means the user stopped the phase before it finished.
	StoppedEarly
	// Quit means the user quit outright, or the phase aborted on a
	// terminal failure.
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Skipped:
		return "skipped"
	case StoppedEarly:
		return "stopped"
	default:
		return "quit"
	}
}

// Phase describes one countdown to run.
type Phase struct {
	Name    string        // label for journal entries and notifications
	Total   time.Duration // fixed at start
	Context Context
	Title   string       // optional banner above the clock
	Round   int          // 1-based round number; 0 outside sessions
	Target  *RoundTarget // live round bound; nil outside sessions
}

// adjustable reports whether the round adjustment keys apply to this
// phase.
func (p Phase) adjustable() bool {
	return (p.Context == Work || p.Context == Break) && p.Target != nil
}
