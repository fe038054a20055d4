// Package capture provides structured transaction capture for edidflash.
//
// This package defines the Logger interface and Event type for recording
// every I2C transaction a run performs (or would perform, in simulation).
// It is separate from operational output - capture provides a complete
// machine-readable transaction trace for later inspection.
//
// # Basic Usage
//
// Wrap a transport with i2c.NewTrace and give it a Logger:
//
//	// For development: log to console via slog
//	logger := capture.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	logger, _ := capture.NewFileLogger("session.elog")
//
//	// Both: use MultiLogger
//	logger := capture.NewMultiLogger(
//	    capture.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Capture files use CBOR encoding with .elog extension. The edidlog CLI
// tool provides viewing, filtering, and export capabilities.
package capture
