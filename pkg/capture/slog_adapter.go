package capture

import (
	"context"
	"log/slog"
)

// SlogAdapter writes transaction events to an slog.Logger.
// Useful for development when you want to see transactions in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.Int("bus", event.Bus),
		slog.Int("addr", event.Addr),
		slog.Int("offset", event.Offset),
		slog.String("direction", event.Direction.String()),
		slog.String("outcome", event.Outcome.String()),
	}

	if event.Outcome == OutcomeOK {
		attrs = append(attrs, slog.Any("value", event.Value))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}
	if event.Simulated {
		attrs = append(attrs, slog.Bool("simulated", true))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "i2c transaction", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
