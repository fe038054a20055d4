package transfer

import (
	"github.com/edid-tools/edidflash/pkg/edid"
)

// ReadEDID reads the full 256-byte block at offsets 0..255 in ascending
// order, one transaction per byte. No validation is applied to the result:
// the point of reading is to inspect whatever the device holds, valid or
// not. The first failed transaction aborts the read.
func (s *Session) ReadEDID() (edid.Blob, error) {
	var blob edid.Blob
	for offset := 0; offset < edid.Size; offset++ {
		value, err := s.transport.ReadByte(offset)
		if err != nil {
			return edid.Blob{}, err
		}
		blob[offset] = value
	}
	return blob, nil
}

// ReadSignature reads the first 8 bytes of the device, enough to check for
// the EDID header signature before a write.
func (s *Session) ReadSignature() ([]byte, error) {
	sig := make([]byte, edid.SignatureSize)
	for offset := 0; offset < edid.SignatureSize; offset++ {
		value, err := s.transport.ReadByte(offset)
		if err != nil {
			return nil, err
		}
		sig[offset] = value
	}
	return sig, nil
}
