package microqr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideByVersion(t *testing.T) {
	assert.Equal(t, 11, M1.Side())
	assert.Equal(t, 17, M4.Side())
}

func TestDataIteratorAvoidsFunctionPatterns(t *testing.T) {
	m := New(M2)
	it := m.DataIterator(0)
	for i := uint32(0); ; i++ {
		x, y, _, end := it(i)
		if end {
			break
		}
		require.False(t, m.IsFunctionPattern(x, y))
	}
}
