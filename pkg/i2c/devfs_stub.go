//go:build !linux

package i2c

import "errors"

// Devfs is only available on Linux, where /dev/i2c-N device files exist.
type Devfs struct{}

// OpenDevfs reports that the devfs transport is unsupported on this OS.
func OpenDevfs(bus int) (*Devfs, error) {
	return nil, errors.New("i2c: devfs transport requires linux")
}

func (d *Devfs) ReadByte(offset int) (byte, error) {
	return 0, errors.New("i2c: devfs transport requires linux")
}

func (d *Devfs) WriteByte(offset int, value byte) error {
	return errors.New("i2c: devfs transport requires linux")
}

func (d *Devfs) Close() error { return nil }
