// Package canvas implements the monochrome module grid every QR-family
// variant reads and writes through. The backing buffer is always sized
// for the largest possible symbol (177x177, classic QR version 40) so a
// single canvas can be reused across encode attempts at different
// versions without reallocating.
package canvas

import "github.com/kuojiri/qrean/bitstream"

// MaxStride is the module side of the largest symbol any variant can
// produce (classic QR version 40), and therefore the canvas's fixed
// backing-buffer stride.
const MaxStride = 177

// Canvas is a square grid of monochrome modules, addressed (x, y) with
// (0,0) at the top-left, each module either set (dark) or clear (light).
type Canvas struct {
	buf  [MaxStride * MaxStride]byte
	side int
}

// New returns a canvas cleared to all-light, sized for a symbol whose
// module side is side (side must be <= MaxStride).
func New(side int) *Canvas {
	if side <= 0 || side > MaxStride {
		panic("canvas: side out of range")
	}
	return &Canvas{side: side}
}

// Side returns the canvas's module side.
func (c *Canvas) Side() int { return c.side }

func (c *Canvas) index(x, y int) int { return y*MaxStride + x }

// Get reports whether the module at (x, y) is set. Coordinates outside
// the canvas read as clear.
func (c *Canvas) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= c.side || y >= c.side {
		return false
	}
	return c.buf[c.index(x, y)] != 0
}

// Set writes the module at (x, y). Coordinates outside the canvas are a
// no-op.
func (c *Canvas) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= c.side || y >= c.side {
		return
	}
	if v {
		c.buf[c.index(x, y)] = 1
	} else {
		c.buf[c.index(x, y)] = 0
	}
}

// Fill sets every module in the canvas to v.
func (c *Canvas) Fill(v bool) {
	for y := 0; y < c.side; y++ {
		for x := 0; x < c.side; x++ {
			c.Set(x, y, v)
		}
	}
}

// XYIterator maps a linear cursor to an (x, y) module position, the same
// role bitstream.Iterator plays for bit position — a variant's composed
// data iterator is one of these, driving a BitStream bound to the canvas
// via NewBitStream.
type XYIterator func(cursor uint32) (x, y int, end bool)

// NewBitStream binds a BitStream to this canvas through xy, so reading
// or writing a bit through the stream reads or writes the corresponding
// canvas module.
func (c *Canvas) NewBitStream(bitLen uint32, xy XYIterator) *bitstream.BitStream {
	return c.NewBitStreamInvert(bitLen, func(cursor uint32) (int, int, bool, bool) {
		x, y, end := xy(cursor)
		return x, y, false, end
	})
}

// XYInvertIterator is XYIterator with an extra invert flag, the module
// grid's analogue of bitstream.Pos's invert bit: format info and timing
// patterns toggle against a fixed polarity rather than a raw 0/1 value.
type XYInvertIterator func(cursor uint32) (x, y int, invert, end bool)

// NewBitStreamInvert binds a BitStream to this canvas through xy, XOR-ing
// the module value with 1 wherever xy reports invert.
func (c *Canvas) NewBitStreamInvert(bitLen uint32, xy XYInvertIterator) *bitstream.BitStream {
	read := func(pos uint32) uint8 {
		x, y, invert, end := xy(pos)
		if end {
			return 0
		}
		v := uint8(0)
		if c.Get(x, y) {
			v = 1
		}
		if invert {
			v ^= 1
		}
		return v
	}
	write := func(pos uint32, v uint8) {
		x, y, invert, end := xy(pos)
		if end {
			return
		}
		if invert {
			v ^= 1
		}
		c.Set(x, y, v != 0)
	}
	return bitstream.NewWithCallbacks(bitLen, bitstream.Identity, read, write)
}

// Export renders the canvas at the given per-module pixel scale with a
// quiet-zone border of margin modules, returning a row-major packed
// monochrome bitmap (1 = dark) sized (side+2*margin)*scale square, along
// with that side length in pixels.
func Export(c *Canvas, scale, margin int) (pixels []byte, side int) {
	side = (c.side + 2*margin) * scale
	pixels = make([]byte, side*side)
	for py := 0; py < side; py++ {
		for px := 0; px < side; px++ {
			mx := px/scale - margin
			my := py/scale - margin
			if c.Get(mx, my) {
				pixels[py*side+px] = 1
			}
		}
	}
	return pixels, side
}
