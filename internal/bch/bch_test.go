package bch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEncodeDecodeRoundTrip(t *testing.T) {
	for d := uint32(0); d < 32; d++ {
		codeword := EncodeFormat(d) ^ QRFormatMask
		got, ok := DecodeFormat(codeword, QRFormatMask)
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}
}

func TestFormatDecodeToleratesUpToThreeBitErrors(t *testing.T) {
	d := uint32(0b10101)
	codeword := EncodeFormat(d) ^ QRFormatMask
	corrupted := codeword ^ 0b0000000000010110 // flip 3 bits
	got, ok := DecodeFormat(uint16(corrupted), QRFormatMask)
	assert.True(t, ok)
	assert.Equal(t, d, got)
}

func TestVersionEncodeDecodeRoundTrip(t *testing.T) {
	for d := uint32(7); d <= 40; d++ {
		codeword := EncodeVersion(d)
		got, ok := DecodeVersion(codeword)
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}
}

func TestQRAndMicroQRFormatMasksAreDistinct(t *testing.T) {
	d := uint32(5)
	qr := EncodeFormat(d) ^ QRFormatMask
	mqr := EncodeFormat(d) ^ MicroQRFormatMask
	assert.NotEqual(t, qr, mqr)
}
