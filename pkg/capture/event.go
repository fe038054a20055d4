package capture

import "time"

// Event records one I2C transaction. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the transaction completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the run that produced the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Bus is the I2C bus number.
	Bus int `cbor:"3,keyasint"`

	// Addr is the 7-bit device address (0x50 for EDID EEPROMs).
	Addr int `cbor:"4,keyasint"`

	// Offset is the byte offset within the device's address space.
	Offset int `cbor:"5,keyasint"`

	// Direction indicates whether the byte moved from or to the device.
	Direction Direction `cbor:"6,keyasint"`

	// Value is the byte read or written. Unset when the transaction failed.
	Value byte `cbor:"7,keyasint"`

	// Outcome classifies the transaction result.
	Outcome Outcome `cbor:"8,keyasint"`

	// Error holds the transaction failure message when Outcome is
	// OutcomeError.
	Error string `cbor:"9,keyasint,omitempty"`

	// Simulated marks transactions that never touched a real bus.
	Simulated bool `cbor:"10,keyasint,omitempty"`
}

// Direction indicates the direction of byte flow.
type Direction uint8

const (
	// DirectionRead indicates a byte read from the device.
	DirectionRead Direction = 0
	// DirectionWrite indicates a byte written to the device.
	DirectionWrite Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionRead:
		return "READ"
	case DirectionWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// Outcome classifies the transaction result.
type Outcome uint8

const (
	// OutcomeOK indicates the transaction completed.
	OutcomeOK Outcome = 0
	// OutcomeError indicates the transaction failed.
	OutcomeError Outcome = 1
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "OK"
	case OutcomeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
