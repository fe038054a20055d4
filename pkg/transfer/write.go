package transfer

import (
	"errors"
	"fmt"

	"github.com/edid-tools/edidflash/pkg/edid"
)

// ErrDeclined is returned when the confirmation callback answers
// negatively. It is an early exit, not a failure: no bytes have been
// written when it is returned.
var ErrDeclined = errors.New("transfer: write declined")

// WriteOptions controls the write procedure.
type WriteOptions struct {
	// SkipProbe skips the device signature probe. Set in simulation mode,
	// where there is no real device to protect.
	SkipProbe bool

	// Confirm is called after all validation passes and before the first
	// byte is written. Returning false aborts with ErrDeclined. A nil
	// Confirm proceeds without prompting.
	Confirm func() (bool, error)
}

// WriteEDID writes data to the device, one byte transaction per byte at
// ascending offsets starting from 0.
//
// The procedure is strictly linear: the target device's signature is probed
// first (unless opts.SkipProbe), the input blob's own signature is
// validated, the caller confirms, and only then does writing begin. Any
// validation failure or a negative confirmation aborts before the first
// write. Once writing has begun, the first failed transaction aborts
// immediately, leaving prior bytes in place.
//
// Input longer than 256 bytes is truncated at offset 255 with a warning;
// shorter input (at least the 8 signature bytes) writes only what was
// supplied and leaves the remaining device bytes untouched.
func (s *Session) WriteEDID(data []byte, opts WriteOptions) error {
	// The blob must itself look like an EDID block before anything else.
	if err := edid.ValidateSignature(data); err != nil {
		return err
	}

	if !opts.SkipProbe {
		sig, err := s.ReadSignature()
		if err != nil {
			return err
		}
		if err := edid.ValidateSignature(sig); err != nil {
			return &edid.FormatError{
				Reason: fmt.Sprintf("device on bus %d does not carry an EDID signature, refusing to write (%v)", s.bus, err),
			}
		}
	}

	if opts.Confirm != nil {
		ok, err := opts.Confirm()
		if err != nil {
			return err
		}
		if !ok {
			return ErrDeclined
		}
	}

	n := len(data)
	if n > edid.Size {
		fmt.Fprintf(s.warn, "WARNING: input is %d bytes, writing only the first %d\n", n, edid.Size)
		n = edid.Size
	}

	for offset := 0; offset < n; offset++ {
		if err := s.transport.WriteByte(offset, data[offset]); err != nil {
			return err
		}
	}
	return nil
}
