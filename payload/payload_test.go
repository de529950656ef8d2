package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRSizingVersion1LevelM(t *testing.T) {
	s := QRSizing(1, 1) // version 1, level M: 16 data words, 10 ec words, 1 block
	assert.Equal(t, 1, s.TotalBlocks)
	assert.Equal(t, 10, s.ErrorWordsPerBlock)
	assert.Equal(t, 16, s.DataWordsSmall)
}

func TestSplitInterleaveDeinterleaveRoundTrip(t *testing.T) {
	s := QRSizing(5, 2) // version 5, level Q: multiple blocks of differing size
	data := make([]byte, s.DataWords())
	for i := range data {
		data[i] = byte(i*7 + 3)
	}

	blocks := Split(s, data)
	codewords := Interleave(blocks)
	assert.Equal(t, s.TotalWords, len(codewords))

	recovered, numErrors, err := Deinterleave(s, codewords)
	require.NoError(t, err)
	assert.Equal(t, 0, numErrors)
	assert.Equal(t, data, recovered)
}

func TestDeinterleaveCorrectsErrors(t *testing.T) {
	s := QRSizing(5, 2)
	data := make([]byte, s.DataWords())
	for i := range data {
		data[i] = byte(i * 3)
	}
	blocks := Split(s, data)
	codewords := Interleave(blocks)

	codewords[0] ^= 0xFF
	codewords[len(codewords)-1] ^= 0x01

	recovered, numErrors, err := Deinterleave(s, codewords)
	require.NoError(t, err)
	assert.True(t, numErrors >= 1)
	assert.Equal(t, data, recovered)
}
