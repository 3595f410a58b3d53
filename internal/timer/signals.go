package timer

import "sync/atomic"

// signals is the per-phase set of single-slot cells written by the
// listener and read by the redraw loop. Each cell has exactly one writer
// and one reader, so plain atomic loads and stores suffice.
type signals struct {
	pause atomic.Bool
	quit  atomic.Bool
	skip  atomic.Bool
	stop  atomic.Bool
}

func newSignals() *signals {
	return &signals{}
}

// TogglePause flips the pause flag. Only the listener writes it.
func (s *signals) TogglePause() {
	s.pause.Store(!s.pause.Load())
}

func (s *signals) Paused() bool {
	return s.pause.Load()
}

func (s *signals) RequestQuit() {
	s.quit.Store(true)
}

func (s *signals) QuitRequested() bool {
	return s.quit.Load()
}

func (s *signals) RequestSkip() {
	s.skip.Store(true)
}

func (s *signals) SkipRequested() bool {
	return s.skip.Load()
}

func (s *signals) RequestStop() {
	s.stop.Store(true)
}

func (s *signals) StopRequested() bool {
	return s.stop.Load()
}
