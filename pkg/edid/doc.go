// Package edid defines the EDID blob type and the validation rules applied
// before a blob is accepted for writing.
//
// An EDID block is 256 bytes. The only structural check this package
// performs is the fixed 8-byte header signature; checksum and field-level
// validation (manufacturer ID, timing blocks) are deliberately out of scope.
// Blobs travel as hex text, two characters per byte, with whitespace
// ignored.
package edid
