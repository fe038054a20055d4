package i2c

import (
	"fmt"
	"io"
)

// Sim is a simulated transport backed by an in-memory device image. Each
// call echoes the transaction that would occur to the configured writer
// instead of touching a bus, then applies it to the image, so a written
// image reads back unchanged.
type Sim struct {
	bus   int
	image [BlockSize]byte
	echo  io.Writer
}

// NewSim creates a simulated transport for bus. Transaction echo lines are
// written to w; pass io.Discard to silence them.
func NewSim(bus int, w io.Writer) *Sim {
	return &Sim{bus: bus, echo: w}
}

// Seed replaces the simulated device image. Short data leaves the tail
// zeroed.
func (s *Sim) Seed(data []byte) {
	s.image = [BlockSize]byte{}
	copy(s.image[:], data)
}

// Image returns a copy of the current device image.
func (s *Sim) Image() [BlockSize]byte {
	return s.image
}

// ReadByte returns the image byte at offset and echoes the transaction.
func (s *Sim) ReadByte(offset int) (byte, error) {
	if err := checkOffset(s.bus, offset, "read"); err != nil {
		return 0, err
	}
	value := s.image[offset]
	fmt.Fprintf(s.echo, "would read bus %d addr 0x%02x offset 0x%02x -> 0x%02x\n",
		s.bus, DeviceAddr, offset, value)
	return value, nil
}

// WriteByte stores value at offset in the image and echoes the transaction.
func (s *Sim) WriteByte(offset int, value byte) error {
	if err := checkOffset(s.bus, offset, "write"); err != nil {
		return err
	}
	fmt.Fprintf(s.echo, "would write bus %d addr 0x%02x offset 0x%02x <- 0x%02x\n",
		s.bus, DeviceAddr, offset, value)
	s.image[offset] = value
	return nil
}

// Close is a no-op.
func (s *Sim) Close() error { return nil }

// Compile-time interface satisfaction check.
var _ Transport = (*Sim)(nil)
