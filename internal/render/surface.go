// Package render owns the full-screen terminal surface and the frame
// drawing for the countdown. The Surface is the process-wide exclusive
// rendering mode (raw input, alternate screen, hidden cursor); the
// Renderer paints complete frames into it.
package render

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/pomitik/tik/internal/ansi"
)

// Surface is the exclusive terminal rendering mode. Enter and Leave are
// idempotent so every exit path can release unconditionally without
// tracking which path acquired the surface.
type Surface struct {
	mu       sync.Mutex
	held     bool
	oldState *term.State

	in  *os.File
	out io.Writer

	keys     chan Key
	pumpOnce sync.Once
	// input is the pump's byte source; injectable for tests, defaults
	// to the terminal.
	input io.Reader

	// makeRaw and restoreTerm are injectable for tests; they default to
	// term.MakeRaw and term.Restore.
	makeRaw     func(fd int) (*term.State, error)
	restoreTerm func(fd int, oldState *term.State) error
}

// NewSurface returns the surface for the process terminal.
func NewSurface() *Surface {
	return &Surface{
		in:          os.Stdin,
		out:         os.Stdout,
		input:       os.Stdin,
		keys:        make(chan Key, keyBufferSize),
		makeRaw:     term.MakeRaw,
		restoreTerm: term.Restore,
	}
}

// Enter switches the terminal into raw mode on the alternate screen with
// the cursor hidden, and starts the keyboard pump on first use. Entering
// an already-held surface is a no-op.
func (s *Surface) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.held {
		return nil
	}

	oldState, err := s.makeRaw(int(s.in.Fd()))
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}

	if _, err := io.WriteString(s.out, ansi.EnterAltScreen+ansi.HideCursor); err != nil {
		_ = s.restoreTerm(int(s.in.Fd()), oldState)
		return fmt.Errorf("enter alternate screen: %w", err)
	}

	s.oldState = oldState
	s.held = true

	s.pumpOnce.Do(func() {
		go pump(s.input, s.keys)
	})

	return nil
}

// Leave restores the terminal: cursor shown, alternate screen left, raw
// mode undone. Leaving a surface that is not held is a no-op, and the
// restores are best-effort so the terminal is never left raw because a
// write failed.
func (s *Surface) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.held {
		return
	}

	_, _ = io.WriteString(s.out, ansi.ShowCursor+ansi.LeaveAltScreen)

	if s.oldState != nil {
		_ = s.restoreTerm(int(s.in.Fd()), s.oldState)
		s.oldState = nil
	}

	s.held = false
}

// Held reports whether the surface is currently acquired.
func (s *Surface) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.held
}

// Keys returns the stream of decoded keyboard commands. The channel is
// process-wide; exactly one phase listener consumes it at a time.
func (s *Surface) Keys() <-chan Key {
	return s.keys
}

// Write sends bytes to the terminal. The frame loop is the only writer
// while a phase runs, so this is a plain passthrough.
func (s *Surface) Write(p []byte) (int, error) {
	n, err := s.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("write to terminal: %w", err)
	}

	return n, nil
}

// Size reports the terminal dimensions.
func (s *Surface) Size() (width, height int, err error) {
	width, height, err = term.GetSize(int(s.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("get terminal size: %w", err)
	}

	return width, height, nil
}
