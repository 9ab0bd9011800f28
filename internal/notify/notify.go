// Package notify delivers user-visible outcome messages.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notifier reports an outcome to the user. Fire-and-forget: a failure to
// display is logged, never propagated as an operation failure.
type Notifier interface {
	Notify(title, body string)
}

// Desktop shows OS desktop notifications.
type Desktop struct{}

func (Desktop) Notify(title, body string) {
	if err := beeep.Notify(title, body, ""); err != nil {
		slog.Warn("desktop notification failed", "title", title, "err", err)
	}
}

// Log writes notifications to the structured log only.
type Log struct{}

func (Log) Notify(title, body string) {
	slog.Info("notify", "title", title, "body", body)
}

// Discard drops notifications.
type Discard struct{}

func (Discard) Notify(string, string) {}

// FromMode maps the notify config value to a Notifier:
// "desktop" (default), "log", or "off".
func FromMode(mode string) Notifier {
	switch mode {
	case "log":
		return Log{}
	case "off":
		return Discard{}
	default:
		return Desktop{}
	}
}
