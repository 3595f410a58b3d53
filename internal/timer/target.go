package timer

import "sync/atomic"

// RoundTarget is the live round bound of a session, shared between the
// orchestrator loop and the input listeners of the phases it runs. The
// adjustment keys mutate it from the listener goroutine while the redraw
// loop and the orchestrator read it, so all access is atomic.
type RoundTarget struct {
	n atomic.Int32
}

// NewRoundTarget returns a target starting at n rounds.
func NewRoundTarget(n int) *RoundTarget {
	t := &RoundTarget{}
	t.n.Store(int32(n))

	return t
}

// Load returns the current round bound.
func (t *RoundTarget) Load() int {
	return int(t.n.Load())
}

// Add raises the bound by one.
func (t *RoundTarget) Add() {
	t.n.Add(1)
}

// Drop lowers the bound by one, never below the round currently in
// progress. Dropping at the floor is a no-op.
func (t *RoundTarget) Drop(inProgress int) {
	for {
		cur := t.n.Load()
		if cur <= int32(inProgress) {
			return
		}

		if t.n.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}
