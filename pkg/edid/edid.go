package edid

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

const (
	// Size is the length of a full EDID block in bytes.
	Size = 256

	// SignatureSize is the length of the EDID header signature.
	SignatureSize = 8
)

// Signature is the fixed EDID header pattern. Every valid EDID block starts
// with these 8 bytes.
var Signature = [SignatureSize]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// Blob is a full 256-byte EDID block.
type Blob [Size]byte

// EncodeHex returns the blob as a contiguous lowercase hex string with no
// separators.
func (b Blob) EncodeHex() string {
	return hex.EncodeToString(b[:])
}

// FormatError reports malformed hex text or a missing EDID signature.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "edid: " + e.Reason
}

// ParseHex strips whitespace from s, validates that only hex digits remain,
// and decodes the result two characters per byte, in order.
//
// Any character outside [0-9a-fA-F] and whitespace is an error, as is a
// trailing unpaired digit. The decoded length is not bounded here; write
// truncation policy belongs to the caller.
func ParseHex(s string) ([]byte, error) {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if !isHexDigit(r) {
			return nil, &FormatError{Reason: fmt.Sprintf("invalid character %q in hex text", r)}
		}
		sb.WriteRune(r)
	}

	cleaned := sb.String()
	if len(cleaned)%2 != 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("odd number of hex digits (%d)", len(cleaned))}
	}

	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, &FormatError{Reason: "undecodable hex text: " + err.Error()}
	}
	return data, nil
}

// ValidateSignature checks that b begins with the fixed EDID header
// signature. This is the only structural check performed on a blob.
func ValidateSignature(b []byte) error {
	if len(b) < SignatureSize {
		return &FormatError{Reason: fmt.Sprintf("need at least %d bytes for signature check, got %d", SignatureSize, len(b))}
	}
	if !bytes.Equal(b[:SignatureSize], Signature[:]) {
		return &FormatError{Reason: fmt.Sprintf("header signature mismatch: got % x", b[:SignatureSize])}
	}
	return nil
}

// FromBytes copies up to Size bytes of data into a Blob. Short input leaves
// the tail zeroed; excess input is ignored.
func FromBytes(data []byte) Blob {
	var b Blob
	copy(b[:], data)
	return b
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
