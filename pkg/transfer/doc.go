// Package transfer implements the EDID transfer procedure: reading a full
// 256-byte block from a display EEPROM and writing a validated block back,
// one byte transaction at a time.
//
// The write path is a single linear sequence: probe the device signature,
// validate the input blob, confirm with the caller, then write bytes at
// ascending offsets. Any failure aborts immediately; bytes already written
// stay written (no rollback).
package transfer
