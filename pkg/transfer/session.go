package transfer

import (
	"io"

	"github.com/google/uuid"

	"github.com/edid-tools/edidflash/pkg/capture"
	"github.com/edid-tools/edidflash/pkg/i2c"
)

// Session is the immutable per-run context for EDID transfers. It binds a
// transport to a bus number, stamps every captured transaction with a
// session ID, and carries the destination for warning diagnostics.
type Session struct {
	transport i2c.Transport
	bus       int
	id        string
	warn      io.Writer
}

// NewSession creates a Session for transport on bus. When logger is
// non-nil, the transport is wrapped so every transaction is captured,
// stamped with the session's ID; simulated marks captured transactions
// that never touch a real bus. Warnings are written to warn (io.Discard
// when nil).
func NewSession(transport i2c.Transport, bus int, logger capture.Logger, simulated bool, warn io.Writer) *Session {
	id := uuid.New().String()
	if logger != nil {
		transport = i2c.NewTrace(transport, logger, id, bus, simulated)
	}
	if warn == nil {
		warn = io.Discard
	}
	return &Session{
		transport: transport,
		bus:       bus,
		id:        id,
		warn:      warn,
	}
}

// ID returns the session's unique identifier, as stamped on capture events.
func (s *Session) ID() string { return s.id }

// Bus returns the bus number the session operates on.
func (s *Session) Bus() int { return s.bus }

// Close releases the underlying transport.
func (s *Session) Close() error {
	return s.transport.Close()
}
