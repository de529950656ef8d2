// Package microqr implements the variant.Spec for Micro QR symbols (M1
// through M4), grounded on code_mqr.c: a single top-left finder pattern
// (no others — the symbol is too small), timing patterns along the two
// symbol edges rather than through row/column 6, no alignment patterns,
// no version info, 15-bit format info at Micro-QR-specific coordinates
// masked with 0x4445, and four mask patterns that are the same formulas
// as classic QR patterns 1, 4, 6, and 7.
package microqr

import (
	"github.com/kuojiri/qrean/canvas"
	"github.com/kuojiri/qrean/internal/bch"
)

// Version identifies a Micro QR size: M1=1 (11x11) .. M4=4 (17x17).
type Version int

const (
	M1 Version = 1
	M2 Version = 2
	M3 Version = 3
	M4 Version = 4
)

// Side returns the module side for a Micro QR version.
func (v Version) Side() int { return 9 + 2*int(v) }

// MicroQR is the variant.Spec for one Micro QR version.
type MicroQR struct {
	version Version
	side    int
	data    []position
}

type position struct{ x, y int }

// New returns the Spec for the given Micro QR version.
func New(version Version) *MicroQR {
	m := &MicroQR{version: version, side: version.Side()}
	m.data = m.zigzag()
	return m
}

func (m *MicroQR) Side() int            { return m.side }
func (m *MicroQR) NumMaskPatterns() int { return 4 }

// IsMask maps Micro QR's 4 mask patterns onto classic QR patterns 1, 4,
// 6, 7, per the original's inline comments.
func (m *MicroQR) IsMask(pattern, x, y int) bool {
	switch pattern {
	case 0:
		return y%2 == 0 // QR pattern 1
	case 1:
		return (y/2+x/3)%2 == 0 // QR pattern 4
	case 2:
		return ((x*y)%2+(x*y)%3)%2 == 0 // QR pattern 6
	case 3:
		return ((x*y)%3+(x+y)%2)%2 == 0 // QR pattern 7
	}
	return false
}

func (m *MicroQR) isFinderPattern(x, y int) bool { return x < 8 && y < 8 }
func (m *MicroQR) isTimingPattern(x, y int) bool { return x == 0 || y == 0 }

func (m *MicroQR) isFormatInfo(x, y int) bool {
	if y == 8 && x <= 8 {
		return true
	}
	if x == 8 && y <= 8 {
		return true
	}
	return false
}

func (m *MicroQR) IsFunctionPattern(x, y int) bool {
	return m.isFinderPattern(x, y) || m.isTimingPattern(x, y) || m.isFormatInfo(x, y)
}

func (m *MicroQR) zigzag() []position {
	var out []position
	w, h := m.side, m.side
	for i := 0; ; i++ {
		x := (w - 1) - (i % 2) - 2*(i/(2*h))
		var y int
		if i%(4*h) < 2*h {
			y = (h - 1) - (i / 2 % (2 * h))
		} else {
			y = -h + (i / 2 % (2 * h))
		}
		if x < 0 || y < 0 {
			break
		}
		if m.IsFunctionPattern(x, y) {
			continue
		}
		out = append(out, position{x, y})
	}
	return out
}

func (m *MicroQR) DataIterator(pattern int) canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		if int(cursor) >= len(m.data) {
			return 0, 0, false, true
		}
		p := m.data[cursor]
		return p.x, p.y, m.IsMask(pattern, p.x, p.y), false
	}
}

func (m *MicroQR) FormatInfoIterator() canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		if cursor >= 15 {
			return 0, 0, false, true
		}
		var x, y int
		if cursor < 8 {
			x = 8
			y = 1 + int(cursor)
		} else {
			x = 8 - (int(cursor) - 7)
			y = 8
		}
		bit := bch.MicroQRFormatMask&(1<<(14-cursor)) != 0
		return x, y, bit, false
	}
}

func (m *MicroQR) VersionInfoIterator() canvas.XYInvertIterator {
	return func(uint32) (int, int, bool, bool) { return 0, 0, false, true }
}

func (m *MicroQR) DrawFunctionPatterns(c *canvas.Canvas) {
	for dy := -1; dy <= 7; dy++ {
		for dx := -1; dx <= 7; dx++ {
			x, y := dx, dy
			if x < 0 || y < 0 || x >= m.side || y >= m.side {
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
	for i := 8; i < m.side; i++ {
		dark := i%2 == 0
		c.Set(i, 0, dark)
		c.Set(0, i, dark)
	}
}

// Score uses only the dark-module-ratio term, matching the reference's
// treatment of Micro QR scoring (its small size makes the N1-N3 terms
// unreliable discriminators between just 4 candidate masks).
func (m *MicroQR) Score(c *canvas.Canvas) int {
	dark := 0
	for y := 0; y < m.side; y++ {
		for x := 0; x < m.side; x++ {
			if c.Get(x, y) {
				dark++
			}
		}
	}
	ratio := dark * 100 / m.side / m.side
	if ratio < 50 {
		return (50 - ratio) / 5 * 10
	}
	return (ratio - 50) / 5 * 10
}
