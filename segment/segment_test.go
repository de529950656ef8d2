package segment

import (
	"testing"

	"github.com/kuojiri/qrean/bitstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStream(buf []byte) *bitstream.BitStream {
	return bitstream.New(buf, uint32(len(buf)*8), bitstream.Identity)
}

func TestChooseSegmentsPureNumeric(t *testing.T) {
	segs := ChooseSegments([]byte("0123456789"), 1)
	require.Len(t, segs, 1)
	assert.Equal(t, Numeric, segs[0].Mode)
}

func TestChooseSegmentsMixedByteAndNumeric(t *testing.T) {
	segs := ChooseSegments([]byte("http://example.com/12345678901234567890"), 3)
	require.NotEmpty(t, segs)
	assert.Equal(t, Byte, segs[0].Mode)
}

func TestWriteReadRoundTripNumeric(t *testing.T) {
	buf := make([]byte, 64)
	segs := []Segment{{Mode: Numeric, Data: []byte("0123456789")}}
	bs := newTestStream(buf)
	err := Write(bs, segs, 1)
	require.NoError(t, err)

	bs2 := newTestStream(buf)
	got, err := Read(bs2, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Numeric, got[0].Mode)
	assert.Equal(t, []byte("0123456789"), got[0].Data)
}

func TestWriteReadRoundTripAlphanumeric(t *testing.T) {
	buf := make([]byte, 64)
	segs := []Segment{{Mode: Alphanumeric, Data: []byte("HELLO WORLD")}}
	bs := newTestStream(buf)
	require.NoError(t, Write(bs, segs, 1))

	bs2 := newTestStream(buf)
	got, err := Read(bs2, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("HELLO WORLD"), got[0].Data)
}

func TestWriteReadRoundTripByte(t *testing.T) {
	buf := make([]byte, 64)
	segs := []Segment{{Mode: Byte, Data: []byte("Hello, world!")}}
	bs := newTestStream(buf)
	require.NoError(t, Write(bs, segs, 1))

	bs2 := newTestStream(buf)
	got, err := Read(bs2, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("Hello, world!"), got[0].Data)
}

func TestECIDesignatorRoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	segs := []Segment{{Mode: ECI, Assignment: 26}, {Mode: Byte, Data: []byte("x")}}
	bs := newTestStream(buf)
	require.NoError(t, Write(bs, segs, 1))

	bs2 := newTestStream(buf)
	got, err := Read(bs2, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ECI, got[0].Mode)
	assert.Equal(t, uint32(26), got[0].Assignment)
}
