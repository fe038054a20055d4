package transfer

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edid-tools/edidflash/pkg/capture"
	"github.com/edid-tools/edidflash/pkg/edid"
	"github.com/edid-tools/edidflash/pkg/i2c"
)

// txRecord is one recorded transaction.
type txRecord struct {
	op     string // "read" or "write"
	offset int
	value  byte
}

// recordingTransport wraps a Sim and records the transaction sequence.
type recordingTransport struct {
	sim     *i2c.Sim
	records []txRecord

	// failWriteAt aborts the write at this offset when >= 0.
	failWriteAt int
	failReads   bool
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{sim: i2c.NewSim(3, io.Discard), failWriteAt: -1}
}

func (r *recordingTransport) ReadByte(offset int) (byte, error) {
	if r.failReads {
		return 0, &i2c.TransportError{Bus: 3, Offset: offset, Op: "read", Err: errors.New("no such device")}
	}
	value, err := r.sim.ReadByte(offset)
	r.records = append(r.records, txRecord{op: "read", offset: offset, value: value})
	return value, err
}

func (r *recordingTransport) WriteByte(offset int, value byte) error {
	if r.failWriteAt >= 0 && offset == r.failWriteAt {
		return &i2c.TransportError{Bus: 3, Offset: offset, Op: "write", Err: errors.New("bus error")}
	}
	r.records = append(r.records, txRecord{op: "write", offset: offset, value: value})
	return r.sim.WriteByte(offset, value)
}

func (r *recordingTransport) Close() error { return nil }

func (r *recordingTransport) writes() []txRecord {
	var out []txRecord
	for _, rec := range r.records {
		if rec.op == "write" {
			out = append(out, rec)
		}
	}
	return out
}

// validEDID returns a full valid block with a recognizable body.
func validEDID() []byte {
	data := make([]byte, edid.Size)
	copy(data, edid.Signature[:])
	for i := edid.SignatureSize; i < edid.Size; i++ {
		data[i] = byte(i * 3)
	}
	return data
}

func alwaysYes() (bool, error) { return true, nil }
func alwaysNo() (bool, error)  { return false, nil }

func TestReadEDIDReturnsFixture(t *testing.T) {
	fixture := validEDID()
	rt := newRecordingTransport()
	rt.sim.Seed(fixture)

	session := NewSession(rt, 3, nil, true, nil)
	blob, err := session.ReadEDID()
	require.NoError(t, err)

	assert.Equal(t, fixture, blob[:])

	// Exactly 256 reads at ascending offsets.
	require.Len(t, rt.records, edid.Size)
	for i, rec := range rt.records {
		require.Equal(t, "read", rec.op)
		require.Equal(t, i, rec.offset)
	}
}

func TestReadEDIDNoValidation(t *testing.T) {
	// A device full of garbage still reads back; the read path trusts the
	// device.
	rt := newRecordingTransport()
	rt.sim.Seed(bytes.Repeat([]byte{0xA5}, edid.Size))

	session := NewSession(rt, 3, nil, true, nil)
	blob, err := session.ReadEDID()
	require.NoError(t, err)
	assert.Equal(t, byte(0xA5), blob[0])
}

func TestReadEDIDAbortsOnTransportError(t *testing.T) {
	rt := newRecordingTransport()
	rt.failReads = true

	session := NewSession(rt, 3, nil, true, nil)
	_, err := session.ReadEDID()

	var te *i2c.TransportError
	require.ErrorAs(t, err, &te)
}

func TestWriteEDIDFullBlock(t *testing.T) {
	data := validEDID()
	rt := newRecordingTransport()
	rt.sim.Seed(validEDID()) // target already carries a signature

	confirmed := false
	session := NewSession(rt, 3, nil, false, nil)
	err := session.WriteEDID(data, WriteOptions{
		Confirm: func() (bool, error) {
			confirmed = true
			return true, nil
		},
	})
	require.NoError(t, err)
	require.True(t, confirmed, "confirmation callback not invoked")

	writes := rt.writes()
	require.Len(t, writes, edid.Size)
	for i, rec := range writes {
		require.Equal(t, i, rec.offset, "write %d out of order", i)
		require.Equal(t, data[i], rec.value, "write %d value mismatch", i)
	}
}

func TestWriteEDIDRoundTrip(t *testing.T) {
	data := validEDID()
	rt := newRecordingTransport()
	rt.sim.Seed(validEDID())

	session := NewSession(rt, 3, nil, false, nil)
	require.NoError(t, session.WriteEDID(data, WriteOptions{Confirm: alwaysYes}))

	blob, err := session.ReadEDID()
	require.NoError(t, err)
	assert.Equal(t, data, blob[:], "read-back differs from written blob")
}

func TestWriteEDIDTruncatesLongInput(t *testing.T) {
	data := append(validEDID(), bytes.Repeat([]byte{0xEE}, 44)...) // 300 bytes
	rt := newRecordingTransport()

	var warnings bytes.Buffer
	session := NewSession(rt, 3, nil, false, &warnings)
	err := session.WriteEDID(data, WriteOptions{SkipProbe: true, Confirm: alwaysYes})
	require.NoError(t, err, "truncation is non-fatal")

	writes := rt.writes()
	require.Len(t, writes, edid.Size, "exactly 256 writes expected")
	assert.Equal(t, edid.Size-1, writes[len(writes)-1].offset)
	assert.Contains(t, warnings.String(), "WARNING:")
	assert.Contains(t, warnings.String(), "300 bytes")
}

func TestWriteEDIDShortInput(t *testing.T) {
	data := validEDID()[:32]
	rt := newRecordingTransport()
	rt.sim.Seed(validEDID())

	session := NewSession(rt, 3, nil, false, nil)
	err := session.WriteEDID(data, WriteOptions{SkipProbe: true, Confirm: alwaysYes})
	require.NoError(t, err, "short input is written without error")

	require.Len(t, rt.writes(), 32)

	// Bytes past the input are left untouched, no zero-fill.
	image := rt.sim.Image()
	assert.Equal(t, validEDID()[100], image[100])
}

func TestWriteEDIDDeclined(t *testing.T) {
	rt := newRecordingTransport()
	rt.sim.Seed(validEDID())

	session := NewSession(rt, 3, nil, false, nil)
	err := session.WriteEDID(validEDID(), WriteOptions{Confirm: alwaysNo})

	require.ErrorIs(t, err, ErrDeclined)
	assert.Empty(t, rt.writes(), "declined write must not touch the device")
}

func TestWriteEDIDRejectsInvalidInputSignature(t *testing.T) {
	data := validEDID()
	data[0] = 0x42
	rt := newRecordingTransport()
	rt.sim.Seed(validEDID())

	session := NewSession(rt, 3, nil, false, nil)
	err := session.WriteEDID(data, WriteOptions{Confirm: alwaysYes})

	var fe *edid.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Empty(t, rt.writes())
}

func TestWriteEDIDProbesDevice(t *testing.T) {
	rt := newRecordingTransport()
	rt.sim.Seed(bytes.Repeat([]byte{0x00}, edid.Size)) // not an EDID device

	session := NewSession(rt, 3, nil, false, nil)
	err := session.WriteEDID(validEDID(), WriteOptions{Confirm: alwaysYes})

	var fe *edid.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Error(), "refusing to write")
	assert.Empty(t, rt.writes(), "probe failure must abort before any write")
}

func TestWriteEDIDSkipProbe(t *testing.T) {
	rt := newRecordingTransport()
	// Device carries garbage, but simulation skips the probe.
	rt.sim.Seed(bytes.Repeat([]byte{0x00}, edid.Size))

	session := NewSession(rt, 3, nil, true, nil)
	err := session.WriteEDID(validEDID(), WriteOptions{SkipProbe: true, Confirm: alwaysYes})
	require.NoError(t, err)
	require.Len(t, rt.writes(), edid.Size)
}

func TestWriteEDIDAbortsOnTransportError(t *testing.T) {
	rt := newRecordingTransport()
	rt.sim.Seed(validEDID())
	rt.failWriteAt = 10

	session := NewSession(rt, 3, nil, false, nil)
	err := session.WriteEDID(validEDID(), WriteOptions{Confirm: alwaysYes})

	var te *i2c.TransportError
	require.ErrorAs(t, err, &te)

	// Writes 0..9 landed, nothing after the failure, no rollback.
	writes := rt.writes()
	require.Len(t, writes, 10)
	assert.Equal(t, 9, writes[len(writes)-1].offset)
}

func TestWriteEDIDRejectsTinyInput(t *testing.T) {
	session := NewSession(newRecordingTransport(), 3, nil, true, nil)
	err := session.WriteEDID([]byte{0x00, 0xFF}, WriteOptions{SkipProbe: true})

	var fe *edid.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestSessionCaptureStamping(t *testing.T) {
	rt := newRecordingTransport()
	rt.sim.Seed(validEDID())
	logger := &memLogger{}

	session := NewSession(rt, 3, logger, true, nil)
	_, err := session.ReadEDID()
	require.NoError(t, err)

	require.Len(t, logger.events, edid.Size)
	for _, event := range logger.events {
		assert.Equal(t, session.ID(), event.SessionID)
		assert.Equal(t, 3, event.Bus)
		assert.True(t, event.Simulated)
	}
}

type memLogger struct {
	events []capture.Event
}

func (l *memLogger) Log(event capture.Event) {
	l.events = append(l.events, event)
}
