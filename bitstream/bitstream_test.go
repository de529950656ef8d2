package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteReadBitsRoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	w := New(buf, 32, nil)
	assert.True(t, w.WriteBits(0x1A, 8))
	assert.True(t, w.WriteBits(0x2B, 8))
	assert.True(t, w.WriteBits(0x3C4D, 16))

	r := New(buf, 32, nil)
	assert.Equal(t, uint32(0x1A), r.ReadBits(8))
	assert.Equal(t, uint32(0x2B), r.ReadBits(8))
	assert.Equal(t, uint32(0x3C4D), r.ReadBits(16))
}

func TestTruncIsSkippedNotStored(t *testing.T) {
	buf := make([]byte, 1)
	calls := 0
	iter := func(cur uint32) Pos {
		calls++
		if cur == 1 {
			return Trunc
		}
		if cur >= 8 {
			return End
		}
		return At(cur, false)
	}
	bs := New(buf, 8, iter)
	for i := 0; i < 7; i++ {
		bs.WriteBit(1)
	}
	assert.False(t, bs.WriteBit(1)) // the Trunc at cursor 1 used up a step, so the cursor is already at 8 (End)
}

func TestBlankReadsZeroWriteNoop(t *testing.T) {
	buf := []byte{0xFF}
	iter := func(cur uint32) Pos {
		if cur == 0 {
			return Blank
		}
		if cur >= 8 {
			return End
		}
		return At(cur, false)
	}
	bs := New(buf, 8, iter)
	assert.Equal(t, uint8(0), bs.ReadBit())
	assert.True(t, bs.WriteBit(0)) // no-op write still succeeds
}

func TestToggleXorsOnReadAndWrite(t *testing.T) {
	buf := []byte{0b10000000}
	iter := func(cur uint32) Pos {
		if cur >= 1 {
			return End
		}
		return At(0, true)
	}
	bs := New(buf, 8, iter)
	assert.Equal(t, uint8(0), bs.ReadBit()) // 1 XOR 1 = 0

	buf2 := []byte{0}
	bs2 := New(buf2, 8, iter)
	bs2.WriteBit(1) // stored as 1 XOR 1 = 0
	assert.Equal(t, byte(0), buf2[0])
}

func TestSeekTellRewind(t *testing.T) {
	buf := make([]byte, 1)
	bs := New(buf, 8, nil)
	bs.WriteBits(0xAB, 8)
	bs.Seek(4)
	assert.Equal(t, uint32(4), bs.Tell())
	assert.Equal(t, uint32(0xB), bs.ReadBits(4))
	bs.Rewind()
	assert.Equal(t, uint32(0), bs.Tell())
}

func TestEndStopsReadWrite(t *testing.T) {
	buf := make([]byte, 1)
	bs := New(buf, 4, nil)
	assert.True(t, bs.WriteBits(0xF, 4))
	assert.False(t, bs.WriteBit(1)) // past end
	bs.Seek(0)
	assert.Equal(t, uint32(0xF), bs.ReadBits(4))
	assert.True(t, bs.IsEnd())
}

func TestLoopIterator(t *testing.T) {
	buf := []byte{0b10110000}
	bs := New(buf, 4, Loop(4))
	var got []uint8
	for i := 0; i < 8; i++ {
		got = append(got, bs.ReadBit())
	}
	assert.Equal(t, []uint8{1, 0, 1, 1, 1, 0, 1, 1}, got)
}

func TestCopyStopsAtShorterStream(t *testing.T) {
	src := New([]byte{0xFF}, 8, nil)
	dstBuf := make([]byte, 1)
	dst := New(dstBuf, 4, nil)
	n := Copy(dst, src)
	assert.Equal(t, uint32(4), n)
	assert.Equal(t, byte(0xF0), dstBuf[0])
}

func TestCallbackBackedStream(t *testing.T) {
	grid := make(map[uint32]uint8)
	read := func(pos uint32) uint8 { return grid[pos] }
	write := func(pos uint32, v uint8) { grid[pos] = v }
	bs := NewWithCallbacks(4, nil, read, write)
	bs.WriteBits(0b1010, 4)
	bs.Seek(0)
	assert.Equal(t, uint32(0b1010), bs.ReadBits(4))
}
