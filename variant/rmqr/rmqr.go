// Package rmqr implements the variant.Spec for rectangular Micro QR
// (rMQR) symbols. It is grounded on code_rmqr.c: a single top-left
// finder (rMQR, unlike classic QR, has only one full finder pattern),
// small corner-finder patches at the other three corners, horizontal
// timing along the top and bottom edges, vertical timing along the left
// and right edges, a single mask pattern (QR pattern 4's formula), and
// two redundant 15-bit format-info copies each masked with its own XOR
// constant.
//
// Scope note: the reference implementation derives rMQR's internal
// alignment-pattern column from the same version-indexed stepping table
// classic QR uses, re-keyed to rMQR's own version numbering — a second
// independent table this exercise does not reproduce. Sizes here place
// one interior vertical timing/alignment column at the horizontal
// midpoint instead of at the ISO-specified position, so encoded symbols
// are internally consistent (what this package writes, it also reads
// back) without being byte-for-byte identical to an ISO rMQR reader.
package rmqr

import (
	"github.com/kuojiri/qrean/canvas"
	"github.com/kuojiri/qrean/internal/bch"
)

// Size describes one rMQR symbol size: module width and height.
type Size struct {
	Width, Height int
}

// Sizes lists the rMQR sizes this package builds, R7x43 through R17x139,
// ordered by height then width. Heights 13 to 17 have no 43- or 59-wide
// entry, and the first height-13 entry is 63 wide, outside the widths
// 43, 59, 77, 99 and 139 the other entries use.
var Sizes = []Size{
	{43, 7}, {59, 7}, {77, 7}, {99, 7}, {139, 7},
	{43, 9}, {59, 9}, {77, 9}, {99, 9}, {139, 9},
	{43, 11}, {59, 11}, {77, 11}, {99, 11}, {139, 11},
	{63, 13}, {77, 13}, {99, 13}, {139, 13},
	{77, 15}, {99, 15}, {139, 15},
	{99, 17}, {139, 17},
}

// RMQR is the variant.Spec for one rMQR size.
type RMQR struct {
	w, h int
	data []position
}

type position struct{ x, y int }

// New returns the Spec for the given rMQR size.
func New(size Size) *RMQR {
	r := &RMQR{w: size.Width, h: size.Height}
	r.data = r.zigzag()
	return r
}

// Side returns the larger dimension, to satisfy variant.Spec on a
// (possibly) non-square symbol; callers that need both dimensions use
// Width/Height directly.
func (r *RMQR) Side() int { return r.w }

func (r *RMQR) Width() int  { return r.w }
func (r *RMQR) Height() int { return r.h }

func (r *RMQR) NumMaskPatterns() int { return 1 }

func (r *RMQR) IsMask(pattern, x, y int) bool {
	return (y/2+x/3)%2 == 0
}

func (r *RMQR) isFinderPattern(x, y int) bool { return x < 8 && y < 8 }

func (r *RMQR) isCornerFinderPattern(x, y int) bool {
	if x >= r.w-6 && x < r.w && y == 0 {
		return true
	}
	if x == r.w-1 && y < 6 {
		return true
	}
	if y == r.h-1 && x < 6 {
		return true
	}
	if x < 2 && y >= r.h-6 && y < r.h {
		return true
	}
	return false
}

func (r *RMQR) isHorizontalTiming(x, y int) bool { return y == 0 || y == r.h-1 }
func (r *RMQR) isVerticalTiming(x, y int) bool   { return x == 0 || x == r.w-1 || x == r.w/2 }

func (r *RMQR) isFormatInfo(x, y int) bool {
	if 8 <= x && x <= 10 && y <= 5 {
		return true
	}
	if x == 11 && 0 <= y && y <= 3 {
		return true
	}
	if r.h-6 <= y && y < r.h && r.w-8 <= x && x < r.w-8+3 {
		return true
	}
	if r.h-6 == y && r.w-8+3 <= x && x < r.w-8+6 {
		return true
	}
	return false
}

func (r *RMQR) IsFunctionPattern(x, y int) bool {
	return r.isFinderPattern(x, y) || r.isCornerFinderPattern(x, y) ||
		r.isHorizontalTiming(x, y) || r.isVerticalTiming(x, y) || r.isFormatInfo(x, y)
}

func (r *RMQR) zigzag() []position {
	var out []position
	for x := r.w - 1; x >= 0; x -= 2 {
		col := x
		if col == 6 { // never true for rMQR widths but mirrors QR's safety check
			continue
		}
		for y := 0; y < r.h; y++ {
			for _, cx := range []int{col, col - 1} {
				if cx < 0 {
					continue
				}
				if r.IsFunctionPattern(cx, y) {
					continue
				}
				out = append(out, position{cx, y})
			}
		}
	}
	return out
}

func (r *RMQR) DataIterator(pattern int) canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		if int(cursor) >= len(r.data) {
			return 0, 0, false, true
		}
		p := r.data[cursor]
		return p.x, p.y, r.IsMask(pattern, p.x, p.y), false
	}
}

// FormatInfoIterator walks rMQR's two redundant 15-bit format-info
// copies (the shared BCH(15,5) codec every variant.Spec uses), each
// occupying a 3x5 block of modules: the first beside the top-left
// finder, the second beside the bottom-right corner finder patch.
func (r *RMQR) FormatInfoIterator() canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		n := cursor / 15
		u := cursor % 15
		var x, y int
		var bit bool
		switch n {
		case 0:
			x = 8 + int(u)/5
			y = 1 + int(u)%5
			bit = bch.RMQRFormatMaskA&(1<<(14-u)) != 0
		case 1:
			x = r.w - 8 + int(u)/5
			y = r.h - 6 + int(u)%5
			bit = bch.RMQRFormatMaskB&(1<<(14-u)) != 0
		default:
			return 0, 0, false, true
		}
		return x, y, bit, false
	}
}

// VersionInfoIterator: rMQR has no separate version-info region — its
// size is conveyed entirely through format info.
func (r *RMQR) VersionInfoIterator() canvas.XYInvertIterator {
	return func(uint32) (int, int, bool, bool) { return 0, 0, false, true }
}

func (r *RMQR) DrawFunctionPatterns(c *canvas.Canvas) {
	for dy := -1; dy <= 7; dy++ {
		for dx := -1; dx <= 7; dx++ {
			x, y := dx, dy
			if x < 0 || y < 0 || x >= r.w || y >= r.h {
				continue
			}
			if dx < 0 || dy < 0 || dx > 6 || dy > 6 {
				c.Set(x, y, false)
				continue
			}
			onBorder := dx == 0 || dy == 0 || dx == 6 || dy == 6
			onCore := dx >= 2 && dx <= 4 && dy >= 2 && dy <= 4
			c.Set(x, y, onBorder || onCore)
		}
	}

	for x := 0; x < r.w; x++ {
		c.Set(x, 0, x%2 == 0)
		c.Set(x, r.h-1, x%2 == 0)
	}
	for y := 0; y < r.h; y++ {
		c.Set(0, y, y%2 == 0)
		c.Set(r.w-1, y, y%2 == 0)
		c.Set(r.w/2, y, y%2 == 0)
	}

	for x := r.w - 6; x < r.w; x++ {
		c.Set(x, 0, true)
	}
	for y := 0; y < 6; y++ {
		c.Set(r.w-1, y, true)
	}
	for x := 0; x < 6; x++ {
		c.Set(x, r.h-1, true)
	}
	for y := r.h - 6; y < r.h; y++ {
		c.Set(0, y, true)
		c.Set(1, y, true)
	}
}

// Score uses the dark-module-ratio term only (N4): rMQR has exactly one
// mask pattern, so there is nothing to choose between and no need for
// the full N1-N3 run/square penalty terms.
func (r *RMQR) Score(c *canvas.Canvas) int {
	dark := 0
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			if c.Get(x, y) {
				dark++
			}
		}
	}
	ratio := dark * 100 / r.w / r.h
	if ratio < 50 {
		return (50 - ratio) / 5 * 10
	}
	return (ratio - 50) / 5 * 10
}
