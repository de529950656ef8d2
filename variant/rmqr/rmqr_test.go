package rmqr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataIteratorAvoidsFunctionPatterns(t *testing.T) {
	r := New(Size{Width: 59, Height: 11})
	it := r.DataIterator(0)
	for i := uint32(0); ; i++ {
		x, y, _, end := it(i)
		if end {
			break
		}
		require.False(t, r.IsFunctionPattern(x, y))
	}
}
