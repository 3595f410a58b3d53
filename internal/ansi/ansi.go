// Package ansi holds the escape sequences used for full-screen terminal drawing.
package ansi

import (
	"fmt"
	"strings"
)

// ANSI escape sequence constants for terminal control.
const (
	ClearScreen    = "\x1b[2J"
	MoveTo         = "\x1b[%d;%dH" // row;col (1-indexed)
	Home           = "\x1b[H"
	Reset          = "\x1b[0m"
	Bold           = "\x1b[1m"
	Faint          = "\x1b[2m"
	ShowCursor     = "\x1b[?25h"
	HideCursor     = "\x1b[?25l"
	ClearLine      = "\x1b[2K"
	EnterAltScreen = "\x1b[?1049h"
	LeaveAltScreen = "\x1b[?1049l"

	FgGreen  = "\x1b[32m"
	FgYellow = "\x1b[33m"
	FgRed    = "\x1b[31m"
	FgCyan   = "\x1b[36m"
	FgWhite  = "\x1b[37m"
	FgGray   = "\x1b[90m"
)

// Move returns an ANSI cursor movement sequence.
func Move(row, col int) string {
	return fmt.Sprintf(MoveTo, row, col)
}

// Strip removes ANSI escape sequences from a string. Unterminated
// sequences at the end of input are dropped along with their payload.
func Strip(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
