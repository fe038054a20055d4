package i2c

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Tools delegates each transaction to the host's i2c-tools binaries
// (i2cget for reads, i2cset for writes). One child process per
// transaction; the process's own exit status is the transaction result.
type Tools struct {
	bus     int
	getPath string
	setPath string
}

// NewTools creates a Tools transport for bus using the given resolved
// binary paths. Paths are expected to have been located (and their absence
// reported) before any bus access is attempted.
func NewTools(bus int, getPath, setPath string) *Tools {
	return &Tools{bus: bus, getPath: getPath, setPath: setPath}
}

// ReadByte runs i2cget for a single byte at offset.
func (t *Tools) ReadByte(offset int) (byte, error) {
	if err := checkOffset(t.bus, offset, "read"); err != nil {
		return 0, err
	}
	out, err := exec.Command(t.getPath, t.readArgs(offset)...).Output()
	if err != nil {
		return 0, &TransportError{Bus: t.bus, Offset: offset, Op: "read", Err: toolErr(err)}
	}
	value, err := parseToolOutput(string(out))
	if err != nil {
		return 0, &TransportError{Bus: t.bus, Offset: offset, Op: "read", Err: err}
	}
	return value, nil
}

// WriteByte runs i2cset for a single byte at offset.
func (t *Tools) WriteByte(offset int, value byte) error {
	if err := checkOffset(t.bus, offset, "write"); err != nil {
		return err
	}
	if err := exec.Command(t.setPath, t.writeArgs(offset, value)...).Run(); err != nil {
		return &TransportError{Bus: t.bus, Offset: offset, Op: "write", Err: toolErr(err)}
	}
	return nil
}

// Close is a no-op; no resources outlive an individual transaction.
func (t *Tools) Close() error { return nil }

// readArgs builds the i2cget argument list for one byte read.
// -y suppresses the tool's own interactive confirmation.
func (t *Tools) readArgs(offset int) []string {
	return []string{
		"-y",
		strconv.Itoa(t.bus),
		fmt.Sprintf("0x%02x", DeviceAddr),
		fmt.Sprintf("0x%02x", offset),
	}
}

// writeArgs builds the i2cset argument list for one byte write.
func (t *Tools) writeArgs(offset int, value byte) []string {
	return []string{
		"-y",
		strconv.Itoa(t.bus),
		fmt.Sprintf("0x%02x", DeviceAddr),
		fmt.Sprintf("0x%02x", offset),
		fmt.Sprintf("0x%02x", value),
	}
}

// parseToolOutput parses i2cget's "0xNN" output line.
func parseToolOutput(out string) (byte, error) {
	s := strings.TrimSpace(out)
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unexpected tool output %q: %w", s, err)
	}
	return byte(v), nil
}

// toolErr folds a child process failure into a single cause, surfacing
// stderr when the tool produced any.
func toolErr(err error) error {
	if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(ee.Stderr)))
	}
	return err
}

// Compile-time interface satisfaction check.
var _ Transport = (*Tools)(nil)
