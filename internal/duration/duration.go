// Package duration parses and formats the compact h/m/s literals tik
// accepts on the command line and in config files.
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// pattern matches literals like "25m", "1h30m", "90s". Components appear
// in h, m, s order and may not repeat.
var pattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

// ErrInvalid reports input that does not look like a duration literal.
var ErrInvalid = errors.New("invalid duration format")

// ErrZero reports a literal that parses to zero, like "0m".
var ErrZero = errors.New("duration must be greater than zero")

// Parse converts a literal like "1h30m15s" into a time.Duration.
// The empty string and literals totalling zero are rejected.
func Parse(text string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, text)
	}

	if m[1] == "" && m[2] == "" && m[3] == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, text)
	}

	units := []time.Duration{time.Hour, time.Minute, time.Second}

	var total time.Duration

	for i, unit := range units {
		group := m[i+1]
		if group == "" {
			continue
		}

		n, err := strconv.ParseUint(group, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, text)
		}

		total += time.Duration(n) * unit
	}

	if total == 0 {
		return 0, fmt.Errorf("%w: %q", ErrZero, text)
	}

	return total, nil
}

// FormatClock renders a duration in clock notation for headers and
// completion messages: "25:00", "0:45", or "1:30:15" once a full hour
// is involved.
func FormatClock(d time.Duration) string {
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

	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatHuman renders a duration for summaries: "25m" or "1h 30m".
func FormatHuman(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}

	h := secs / 3600
	m := (secs % 3600) / 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}

	return fmt.Sprintf("%dm", m)
}
