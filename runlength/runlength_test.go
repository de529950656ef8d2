package runlength

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushAndCount(t *testing.T) {
	r := New()
	for _, v := range []int{3, 1, 1, 3, 1} {
		r.Push(v)
	}
	assert.Equal(t, 1, r.Count(0))
	assert.Equal(t, 3, r.Count(1))
	assert.Equal(t, 1, r.Count(2))
}

func TestAddExtendsCurrentRun(t *testing.T) {
	r := New()
	r.Push(2)
	r.Add(3)
	assert.Equal(t, 5, r.Count(0))
}

func TestMatchExactQRFinderRatio(t *testing.T) {
	r := New()
	for _, v := range []int{7, 10, 10, 30, 10, 10, 7} {
		r.Push(v)
	}
	// all 7 runs, most-recent-first: quiet zone, 1:1:3:1:1 scaled by 10, quiet zone
	assert.True(t, r.MatchExact(7, 10, 10, 30, 10, 10, 7))
}

func TestMatchRatioToleratesSkew(t *testing.T) {
	r := New()
	for _, v := range []int{9, 11, 31, 9, 11} {
		r.Push(v)
	}
	assert.True(t, r.MatchRatio(1, 1, 3, 1, 1))
}

func TestMatchRatioRejectsWrongShape(t *testing.T) {
	r := New()
	for _, v := range []int{5, 5, 5, 5, 5} {
		r.Push(v)
	}
	assert.False(t, r.MatchRatio(1, 1, 3, 1, 1))
}

func TestInsufficientHistoryFailsMatch(t *testing.T) {
	r := New()
	r.Push(1)
	assert.False(t, r.MatchExact(1, 1, 3, 1, 1))
}
