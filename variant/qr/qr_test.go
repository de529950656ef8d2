package qr

import (
	"testing"

	"github.com/kuojiri/qrean/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersion1Side(t *testing.T) {
	q := New(1)
	assert.Equal(t, 21, q.Side())
}

func TestFinderPatternsAreFunctionPatterns(t *testing.T) {
	q := New(1)
	assert.True(t, q.IsFunctionPattern(0, 0))
	assert.True(t, q.IsFunctionPattern(20, 0))
	assert.True(t, q.IsFunctionPattern(0, 20))
}

func TestDataIteratorCoversExpectedBitCount(t *testing.T) {
	q := New(1)
	count := 0
	it := q.DataIterator(0)
	for {
		_, _, _, end := it(uint32(count))
		if end {
			break
		}
		count++
	}
	assert.Equal(t, 208, count) // version 1: 26 codewords * 8 bits
}

func TestDataIteratorNeverHitsFunctionPattern(t *testing.T) {
	q := New(1)
	it := q.DataIterator(0)
	for i := uint32(0); ; i++ {
		x, y, _, end := it(i)
		if end {
			break
		}
		require.False(t, q.IsFunctionPattern(x, y))
	}
}

func TestDrawFunctionPatternsSetsFinderRing(t *testing.T) {
	q := New(1)
	c := canvas.New(q.Side())
	q.DrawFunctionPatterns(c)
	assert.True(t, c.Get(0, 0))
	assert.True(t, c.Get(3, 3)) // core of finder
	assert.False(t, c.Get(1, 1))
}
