//go:build linux

package i2c

import (
	"fmt"

	expi2c "golang.org/x/exp/io/i2c"
)

// Devfs performs transactions directly against /dev/i2c-N via ioctl,
// without delegating to external tools. The device file is opened once and
// held for the life of the transport.
type Devfs struct {
	bus int
	dev *expi2c.Device
}

// OpenDevfs opens /dev/i2c-<bus> addressed at the EDID EEPROM.
func OpenDevfs(bus int) (*Devfs, error) {
	dev, err := expi2c.Open(&expi2c.Devfs{Dev: fmt.Sprintf("/dev/i2c-%d", bus)}, DeviceAddr)
	if err != nil {
		return nil, &TransportError{Bus: bus, Op: "open", Err: err}
	}
	return &Devfs{bus: bus, dev: dev}, nil
}

// ReadByte reads the byte at offset with a register-addressed read.
func (d *Devfs) ReadByte(offset int) (byte, error) {
	if err := checkOffset(d.bus, offset, "read"); err != nil {
		return 0, err
	}
	buf := make([]byte, 1)
	if err := d.dev.ReadReg(byte(offset), buf); err != nil {
		return 0, &TransportError{Bus: d.bus, Offset: offset, Op: "read", Err: err}
	}
	return buf[0], nil
}

// WriteByte writes value at offset with a register-addressed write.
func (d *Devfs) WriteByte(offset int, value byte) error {
	if err := checkOffset(d.bus, offset, "write"); err != nil {
		return err
	}
	if err := d.dev.WriteReg(byte(offset), []byte{value}); err != nil {
		return &TransportError{Bus: d.bus, Offset: offset, Op: "write", Err: err}
	}
	return nil
}

// Close releases the device file.
func (d *Devfs) Close() error {
	return d.dev.Close()
}

// Compile-time interface satisfaction check.
var _ Transport = (*Devfs)(nil)
