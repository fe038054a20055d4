package i2c

import (
	"time"

	"github.com/edid-tools/edidflash/pkg/capture"
)

// Trace wraps a Transport and records one capture event per transaction.
// Errors pass through unchanged.
type Trace struct {
	inner     Transport
	logger    capture.Logger
	sessionID string
	bus       int
	simulated bool
}

// NewTrace wraps inner so every transaction on bus is reported to logger,
// stamped with sessionID. Set simulated when inner never touches a real
// bus.
func NewTrace(inner Transport, logger capture.Logger, sessionID string, bus int, simulated bool) *Trace {
	if logger == nil {
		logger = capture.NoopLogger{}
	}
	return &Trace{
		inner:     inner,
		logger:    logger,
		sessionID: sessionID,
		bus:       bus,
		simulated: simulated,
	}
}

// ReadByte reads through to the wrapped transport and records the result.
func (t *Trace) ReadByte(offset int) (byte, error) {
	value, err := t.inner.ReadByte(offset)
	t.log(capture.DirectionRead, offset, value, err)
	return value, err
}

// WriteByte writes through to the wrapped transport and records the result.
func (t *Trace) WriteByte(offset int, value byte) error {
	err := t.inner.WriteByte(offset, value)
	t.log(capture.DirectionWrite, offset, value, err)
	return err
}

// Close closes the wrapped transport.
func (t *Trace) Close() error {
	return t.inner.Close()
}

func (t *Trace) log(dir capture.Direction, offset int, value byte, err error) {
	event := capture.Event{
		Timestamp: time.Now(),
		SessionID: t.sessionID,
		Bus:       t.bus,
		Addr:      DeviceAddr,
		Offset:    offset,
		Direction: dir,
		Simulated: t.simulated,
	}
	if err != nil {
		event.Outcome = capture.OutcomeError
		event.Error = err.Error()
	} else {
		event.Value = value
	}
	t.logger.Log(event)
}

// Compile-time interface satisfaction check.
var _ Transport = (*Trace)(nil)
