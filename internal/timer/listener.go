package timer

import "github.com/pomitik/tik/internal/render"

// listen consumes decoded keys for one phase and republishes them as
// signal writes. It returns as soon as quit, skip, or stop fires, or
// when the engine closes stop at teardown. Exactly one listener consumes
// the key stream at a time.
func (e *Engine) listen(phase Phase, sig *signals, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case key := <-e.surface.Keys():
			switch key {
			case render.KeySpace:
				sig.TogglePause()
			case render.KeyQuit:
				sig.RequestQuit()
				return
			case render.KeySkip:
				if skipSuppressed(phase) {
					continue
				}

				sig.RequestSkip()

				return
			case render.KeyStop:
				sig.RequestStop()
				return
			case render.KeyAddRound:
				if phase.adjustable() {
					phase.Target.Add()
				}
			case render.KeyDropRound:
				if phase.adjustable() {
					phase.Target.Drop(phase.Round)
				}
			}
		}
	}
}

// skipSuppressed reports whether the skip key is a no-op. The work phase
// of the final round has nothing left to skip to; the final break does
// not get the same treatment since skipping it just ends the session
// sooner. The round bound is read at keypress time so live adjustments
// change the answer.
func skipSuppressed(phase Phase) bool {
	return phase.Context == Work && phase.Target != nil && phase.Round >= phase.Target.Load()
}
