// Package i2c provides the byte transfer primitive used to access a
// display's EDID EEPROM.
//
// All access goes through the Transport interface: one 8-bit read or write
// per call at a byte offset within the device's address space. Three
// implementations are provided:
//
//   - Tools delegates each transaction to the host's i2cget/i2cset binaries.
//   - Devfs issues ioctl transactions directly against /dev/i2c-N (Linux).
//   - Sim keeps an in-memory device image and echoes the transactions that
//     would occur, for dry runs and tests.
//
// Trace wraps any Transport and records each transaction to a capture
// logger. The EEPROM device address is fixed at 0x50; it is not
// configurable.
package i2c
