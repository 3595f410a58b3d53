// Package notify sends desktop notifications when intervals complete.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appName = "tik"

// Notifier posts completion notifications. The zero value is not
// usable; construct one with New.
type Notifier struct {
	// Silent skips the notification sound.
	Silent bool

	logger *slog.Logger
}

// New returns a Notifier. A nil logger falls back to slog.Default.
func New(silent bool, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Notifier{Silent: silent, logger: logger}
}

// completionMessage builds the notification title and body for a
// finished interval.
func completionMessage(name, durationDisplay string) (title, body string) {
	return fmt.Sprintf("%s complete", name), fmt.Sprintf("%s timer finished", durationDisplay)
}

// SendCompletion announces a finished interval. Delivery is best
// effort: failures are logged and never interrupt the session.
func (n *Notifier) SendCompletion(name, durationDisplay string) {
	title, body := completionMessage(name, durationDisplay)

	beeep.AppName = appName

	var err error
	if n.Silent {
		err = beeep.Notify(title, body, "")
	} else {
		err = beeep.Alert(title, body, "")
	}

	if err != nil {
		n.logger.Warn("desktop notification failed",
			slog.String("title", title),
			slog.String("error", err.Error()))
	}
}
