package kanji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][2]byte{{0x93, 0x5F}, {0x81, 0x40}, {0x9F, 0xFC}, {0xE0, 0x40}, {0xEB, 0xBF}}
	for _, c := range cases {
		idx, err := Encode(c[0], c[1])
		assert.NoError(t, err)
		hi, lo := Decode(idx)
		assert.Equal(t, c[0], hi)
		assert.Equal(t, c[1], lo)
	}
}

func TestEncodeRejectsNonKanjiRange(t *testing.T) {
	_, err := Encode(0x20, 0x20)
	assert.ErrorIs(t, err, ErrNotKanji)
}
