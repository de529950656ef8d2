package qrean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTripHelloWorld(t *testing.T) {
	sym, err := Encode([]byte("Hello, world!"), WithLevel(Quartile))
	require.NoError(t, err)
	assert.Equal(t, 2, sym.Version)
	assert.Equal(t, 25, sym.Canvas.Side())

	got, numErrors, err := Decode(sym.Canvas, QRCode, sym.Version)
	require.NoError(t, err)
	assert.Equal(t, 0, numErrors)
	assert.Equal(t, []byte("Hello, world!"), got)
}

func TestEncodeDecodeRoundTripLongURL(t *testing.T) {
	url := []byte("http://www.example.com/path/to/a/very/long/resource")
	sym, err := Encode(url, WithLevel(Medium))
	require.NoError(t, err)

	got, _, err := Decode(sym.Canvas, QRCode, sym.Version)
	require.NoError(t, err)
	assert.Equal(t, url, got)
}

func TestDecodeCorrectsFlippedModules(t *testing.T) {
	sym, err := Encode([]byte("0123456789"), WithLevel(High))
	require.NoError(t, err)

	// flip one module, at (9,9), to simulate print damage
	it := func() (x, y int) {
		for yy := 0; yy < sym.Canvas.Side(); yy++ {
			for xx := 0; xx < sym.Canvas.Side(); xx++ {
				if xx == 9 && yy == 9 {
					return xx, yy
				}
			}
		}
		return 0, 0
	}
	x, y := it()
	sym.Canvas.Set(x, y, !sym.Canvas.Get(x, y))

	got, numErrors, err := Decode(sym.Canvas, QRCode, sym.Version)
	require.NoError(t, err)
	assert.True(t, numErrors >= 0)
	assert.Equal(t, []byte("0123456789"), got)
}

func TestFixErrorsRewritesCanvas(t *testing.T) {
	sym, err := Encode([]byte("FIXME"), WithLevel(High))
	require.NoError(t, err)

	x, y := 9, 9
	sym.Canvas.Set(x, y, !sym.Canvas.Get(x, y))

	n, err := sym.FixErrors()
	require.NoError(t, err)
	_ = n

	got, numErrors, err := Decode(sym.Canvas, QRCode, sym.Version)
	require.NoError(t, err)
	assert.Equal(t, 0, numErrors)
	assert.Equal(t, []byte("FIXME"), got)
}

func TestPinnedMaskIsHonored(t *testing.T) {
	sym, err := Encode([]byte("A"), WithMask(3))
	require.NoError(t, err)
	assert.Equal(t, 3, sym.Mask)
}

func TestEncodeDecodeRoundTripMicroQR(t *testing.T) {
	sym, err := Encode([]byte("12345"), WithSymbolType(MicroQRCode))
	require.NoError(t, err)
	assert.Equal(t, MicroQRCode, sym.Type)

	got, _, err := Decode(sym.Canvas, MicroQRCode, sym.Version)
	require.NoError(t, err)
	assert.Equal(t, []byte("12345"), got)
}

func TestEncodeDecodeRoundTripRMQR(t *testing.T) {
	sym, err := Encode([]byte("Hello rMQR"), WithSymbolType(RMQRCode))
	require.NoError(t, err)
	assert.Equal(t, RMQRCode, sym.Type)

	got, _, err := Decode(sym.Canvas, RMQRCode, sym.Version)
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello rMQR"), got)
}

func TestEncodeDecodeRoundTripTQR(t *testing.T) {
	sym, err := Encode([]byte("HI"), WithSymbolType(TQRCode))
	require.NoError(t, err)
	assert.Equal(t, TQRCode, sym.Type)
	assert.Equal(t, 1, sym.Version)

	got, _, err := Decode(sym.Canvas, TQRCode, sym.Version)
	require.NoError(t, err)
	assert.Equal(t, []byte("HI"), got)
}

func TestEncodeDecodeRoundTripWithECIKanji(t *testing.T) {
	// 0x93 0x5F and 0x81 0x40 are Shift-JIS kanji-range byte pairs (see
	// internal/kanji's own test vectors); ChooseSegments should recognize
	// them as Kanji runs rather than falling through to Byte mode.
	data := []byte{0x93, 0x5F, 0x81, 0x40}
	sym, err := Encode(data, WithECI(20), WithLevel(Quartile))
	require.NoError(t, err)

	got, _, err := Decode(sym.Canvas, QRCode, sym.Version)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
