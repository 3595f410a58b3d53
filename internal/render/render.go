package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/pomitik/tik/internal/ansi"
)

// barWidth is the progress bar length in cells.
const barWidth = 30

// lastStretchRatio is the tail of the countdown drawn in yellow.
const lastStretchRatio = 0.2

// redZone is the remaining time under which the bar turns red.
const redZone = 60 * time.Second

const (
	standaloneHints = "[space] pause  [s] skip  [x] stop"
	sessionHints    = "[space] pause  [s] skip  [a] +round  [x] stop"
)

// Frame is one full-screen draw of the countdown. Remaining and Elapsed
// carry whole-second values; the caller truncates.
type Frame struct {
	Remaining time.Duration
	Total     time.Duration
	Elapsed   time.Duration
	Paused    bool
	Title     string // optional banner above the clock, empty for none
	Round     int    // current round; 0 hides the round line
	Target    int    // total rounds shown on the round line
}

// Renderer paints countdown frames and round headers into a surface.
type Renderer struct {
	out io.Writer
	// size is injectable for tests; defaults to the surface's Size.
	size func() (width, height int, err error)
}

// NewRenderer returns a renderer drawing into the given surface.
func NewRenderer(surface *Surface) *Renderer {
	return &Renderer{out: surface, size: surface.Size}
}

// Draw clears and repaints the whole alternate screen for one frame:
// centered title, round line, remaining clock, progress bar, the
// paused/elapsed label, and the key hint bar. The frame is issued as a
// single write so a redraw is atomic from the terminal's point of view.
func (r *Renderer) Draw(frame Frame) error {
	cols, rows, err := r.size()
	if err != nil {
		return err
	}

	mid := rows / 2

	var b strings.Builder

	b.WriteString(ansi.ClearScreen)

	if frame.Title != "" {
		b.WriteString(ansi.Move(clampRow(mid-3), centerCol(cols, frame.Title)))
		b.WriteString(ansi.FgWhite + ansi.Bold + frame.Title + ansi.Reset)
	}

	if frame.Round > 0 {
		round := fmt.Sprintf("Round %d/%d", frame.Round, frame.Target)
		b.WriteString(ansi.Move(clampRow(mid-2), centerCol(cols, round)))
		b.WriteString(ansi.FgCyan + ansi.Bold + round + ansi.Reset)
	}

	clock := formatTime(frame.Remaining)
	b.WriteString(ansi.Move(clampRow(mid), centerCol(cols, clock)))
	b.WriteString(ansi.Bold + clock + ansi.Reset)

	filled, empty := barCells(frame.Remaining, frame.Total)
	b.WriteString(ansi.Move(clampRow(mid+2), centerColWidth(cols, barWidth)))
	b.WriteString(barColor(frame.Remaining, frame.Total))
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(ansi.FgGray)
	b.WriteString(strings.Repeat("░", empty))
	b.WriteString(ansi.Reset)

	label := formatTime(frame.Elapsed) + " elapsed"
	if frame.Paused {
		label = "PAUSED"
	}

	b.WriteString(ansi.Move(clampRow(mid+4), centerCol(cols, label)))
	b.WriteString(ansi.FgGray + label + ansi.Reset)

	hints := standaloneHints
	if frame.Round > 0 {
		hints = sessionHints
	}

	b.WriteString(ansi.Move(clampRow(mid+6), centerCol(cols, hints)))
	b.WriteString(ansi.FgGray + hints + ansi.Reset)

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	return nil
}

// DrawHeader paints the between-phase round banner: the round count and
// the upcoming interval's name and length.
func (r *Renderer) DrawHeader(round, target int, name, display string) error {
	cols, rows, err := r.size()
	if err != nil {
		return err
	}

	mid := rows / 2

	line1 := fmt.Sprintf("Round %d/%d", round, target)
	line2 := fmt.Sprintf("%s (%s)", name, display)

	var b strings.Builder

	b.WriteString(ansi.ClearScreen)
	b.WriteString(ansi.Move(clampRow(mid), centerCol(cols, line1)))
	b.WriteString(ansi.FgCyan + ansi.Bold + line1 + ansi.Reset)
	b.WriteString(ansi.Move(clampRow(mid+2), centerCol(cols, line2)))
	b.WriteString(ansi.FgGray + line2 + ansi.Reset)

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return fmt.Errorf("draw header: %w", err)
	}

	return nil
}

// formatTime renders the big countdown clock. Unlike duration.FormatClock
// the minutes are always two digits ("05:00"), matching the frame layout.
func formatTime(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}

	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}

// barCells splits the progress bar into filled and empty cell counts.
func barCells(remaining, total time.Duration) (filled, empty int) {
	progress := 1.0
	if total > 0 {
		progress = 1.0 - float64(remaining)/float64(total)
	}

	filled = int(progress * barWidth)
	if filled < 0 {
		filled = 0
	}

	if filled > barWidth {
		filled = barWidth
	}

	return filled, barWidth - filled
}

// barColor picks the bar color: green, yellow over the last stretch,
// red inside the final minute.
func barColor(remaining, total time.Duration) string {
	switch {
	case remaining <= redZone:
		return ansi.FgRed
	case float64(remaining) <= float64(total)*lastStretchRatio:
		return ansi.FgYellow
	default:
		return ansi.FgGreen
	}
}

// centerCol returns the 1-based column that centers s, accounting for
// wide runes.
func centerCol(cols int, s string) int {
	return centerColWidth(cols, runewidth.StringWidth(s))
}

func centerColWidth(cols, width int) int {
	if width >= cols {
		return 1
	}

	return (cols-width)/2 + 1
}

func clampRow(row int) int {
	if row < 1 {
		return 1
	}

	return row
}
