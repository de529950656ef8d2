package tqr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTableHas160Entries(t *testing.T) {
	assert.Len(t, dataXYPos, 160)
}

func TestDataIteratorNeverHitsFinderOrTiming(t *testing.T) {
	tq := New()
	it := tq.DataIterator(0)
	for i := uint32(0); ; i++ {
		x, y, _, end := it(i)
		if end {
			break
		}
		require.False(t, tq.IsFunctionPattern(x, y))
		require.True(t, x >= 0 && x < Side && y >= 0 && y < Side)
	}
}
