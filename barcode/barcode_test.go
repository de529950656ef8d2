package barcode

import (
	"testing"

	"github.com/kuojiri/qrean/bitstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStream(nbits int) (*bitstream.BitStream, []byte) {
	buf := make([]byte, (nbits+7)/8)
	return bitstream.New(buf, uint32(len(buf)*8), bitstream.Identity), buf
}

func TestCalcCheckDigitEAN13(t *testing.T) {
	// 4912345678904 is a well-known valid EAN-13 (digit 4 is the check digit).
	cd := calcCheckDigit([]byte("491234567890"))
	assert.Equal(t, 4, cd)
}

func TestWriteEAN13FixedWidth(t *testing.T) {
	bs, _ := newStream(128)
	n, err := WriteEAN(bs, EAN13, "4912345678904")
	require.NoError(t, err)
	// start(3) + 6*7 + separator(5) + 6*7 + end(3) = 95 modules, the
	// fixed width of every EAN-13 barcode regardless of content.
	assert.Equal(t, 95, n)
}

func TestWriteEAN13AutoCheckDigit(t *testing.T) {
	bsA, _ := newStream(128)
	nA, err := WriteEAN(bsA, EAN13, "491234567890")
	require.NoError(t, err)

	bsB, _ := newStream(128)
	nB, err := WriteEAN(bsB, EAN13, "4912345678904")
	require.NoError(t, err)

	assert.Equal(t, nA, nB)
}

func TestWriteEAN8FixedWidth(t *testing.T) {
	bs, _ := newStream(128)
	n, err := WriteEAN(bs, EAN8, "96385074")
	require.NoError(t, err)
	// start(3) + 4*7 + separator(5) + 4*7 + end(3) = 67 modules.
	assert.Equal(t, 67, n)
}

func TestWriteUPCAFixedWidth(t *testing.T) {
	bs, _ := newStream(128)
	n, err := WriteEAN(bs, UPCA, "036000291452")
	require.NoError(t, err)
	assert.Equal(t, 95, n)
}

func TestWriteEANRejectsNonDigits(t *testing.T) {
	bs, _ := newStream(128)
	_, err := WriteEAN(bs, EAN13, "49123ABC7890")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWriteEANRejectsWrongLength(t *testing.T) {
	bs, _ := newStream(128)
	_, err := WriteEAN(bs, EAN13, "1234")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReadEAN13RoundTrip(t *testing.T) {
	bs, buf := newStream(128)
	_, err := WriteEAN(bs, EAN13, "4912345678904")
	require.NoError(t, err)

	rs := bitstream.New(buf, uint32(len(buf)*8), bitstream.Identity)
	got, err := ReadEAN(rs, EAN13)
	require.NoError(t, err)
	assert.Equal(t, "4912345678904", got)
}

func TestReadEAN8RoundTrip(t *testing.T) {
	bs, buf := newStream(128)
	_, err := WriteEAN(bs, EAN8, "96385074")
	require.NoError(t, err)

	rs := bitstream.New(buf, uint32(len(buf)*8), bitstream.Identity)
	got, err := ReadEAN(rs, EAN8)
	require.NoError(t, err)
	assert.Equal(t, "96385074", got)
}

func TestReadUPCARoundTrip(t *testing.T) {
	bs, buf := newStream(128)
	_, err := WriteEAN(bs, UPCA, "036000291452")
	require.NoError(t, err)

	rs := bitstream.New(buf, uint32(len(buf)*8), bitstream.Identity)
	got, err := ReadEAN(rs, UPCA)
	require.NoError(t, err)
	assert.Equal(t, "036000291452", got)
}

func TestReadEANRejectsBadGuard(t *testing.T) {
	bs, buf := newStream(128)
	bs.WriteBits(0b111, 3)
	rs := bitstream.New(buf, uint32(len(buf)*8), bitstream.Identity)
	_, err := ReadEAN(rs, EAN13)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWriteCode39RoundsCharacters(t *testing.T) {
	bs, _ := newStream(512)
	n, err := WriteCode39(bs, "HELLO")
	require.NoError(t, err)
	// start(15+1 gap) + 5 chars*(15+1 gap) + stop(15).
	assert.Equal(t, 16+5*16+15, n)
}

func TestWriteCode93FixedWidth(t *testing.T) {
	bs, _ := newStream(512)
	n, err := WriteCode93(bs, "TEST93")
	require.NoError(t, err)
	// start(9) + 6 chars*9 + 2 check chars*9 + stop(9) + termination(1).
	assert.Equal(t, 9+6*9+2*9+9+1, n)
}

func TestWriteCode93RejectsUnknownChar(t *testing.T) {
	bs, _ := newStream(512)
	_, err := WriteCode93(bs, "test93")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWriteCode39RejectsUnknownChar(t *testing.T) {
	bs, _ := newStream(512)
	_, err := WriteCode39(bs, "hello")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWriteITFRequiresEvenDigits(t *testing.T) {
	bs, _ := newStream(256)
	_, err := WriteITF(bs, "123")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWriteITFRoundTripLength(t *testing.T) {
	bs, _ := newStream(256)
	n, err := WriteITF(bs, "0123456789")
	require.NoError(t, err)
	assert.True(t, n > 0)
}

func TestWriteCodabarRequiresValidStartStop(t *testing.T) {
	bs, _ := newStream(256)
	_, err := WriteCodabar(bs, "12345", '5')
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWriteCodabarRoundTripLength(t *testing.T) {
	bs, _ := newStream(256)
	n, err := WriteCodabar(bs, "12345", 'A')
	require.NoError(t, err)
	assert.True(t, n > 0)
}
