package i2c

import "fmt"

// DeviceAddr is the standard I2C address of a display's EDID EEPROM.
const DeviceAddr = 0x50

// BlockSize is the size of the device's byte-addressable window.
const BlockSize = 256

// Transport performs single-byte transactions against the EDID EEPROM on
// one bus. Each call is exactly one bus transaction; there is no batching
// and no retry. Calls block until the underlying transaction completes.
//
// Offsets are plain integers in [0, BlockSize). Addressing-mode encoding is
// the implementation's responsibility.
type Transport interface {
	// ReadByte reads the byte at offset.
	ReadByte(offset int) (byte, error)

	// WriteByte writes value at offset.
	WriteByte(offset int, value byte) error

	// Close releases any resources held by the transport.
	Close() error
}

// TransportError reports a failed bus transaction: device absent, bus
// error, or insufficient permission on the bus device.
type TransportError struct {
	Bus    int
	Offset int
	Op     string // "read" or "write"
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("i2c: %s at bus %d offset 0x%02x: %v", e.Op, e.Bus, e.Offset, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func checkOffset(bus, offset int, op string) error {
	if offset < 0 || offset >= BlockSize {
		return &TransportError{Bus: bus, Offset: offset, Op: op, Err: fmt.Errorf("offset out of range [0, %d)", BlockSize)}
	}
	return nil
}
