package qrspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolSide(t *testing.T) {
	assert.Equal(t, 21, SymbolSide(1))
	assert.Equal(t, 177, SymbolSide(40))
}

func TestAlignmentNum(t *testing.T) {
	assert.Equal(t, 0, AlignmentNum(1))
	assert.Equal(t, 1, AlignmentNum(2))
	assert.Equal(t, 6, AlignmentNum(7))
}

func TestAvailableDataBitsVersion1(t *testing.T) {
	// version 1 has no alignment patterns or version info; this cross-checks
	// variant/qr's own zigzag-derived data region count.
	assert.Equal(t, 208, AvailableDataBits(1))
}

func TestLengthFieldWidthBands(t *testing.T) {
	assert.Equal(t, 10, LengthFieldWidth(0, 1))
	assert.Equal(t, 12, LengthFieldWidth(0, 10))
	assert.Equal(t, 14, LengthFieldWidth(0, 27))
}

func TestMicroQRLengthFieldWidthUnavailableModes(t *testing.T) {
	assert.Equal(t, 0, MicroQRLengthFieldWidth(1, 1)) // alphanumeric unavailable in M1
	assert.Equal(t, 6, MicroQRLengthFieldWidth(0, 4))
}
