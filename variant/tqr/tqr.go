// Package tqr implements the variant.Spec for tQR, a fixed 19x19 QR
// variant with no version info, no alignment patterns, and a hard-coded
// data-region coordinate table rather than a derived zigzag walk. The
// table below is reproduced verbatim from code_tqr.c's data_xypos array
// (160 entries, not the 152 an earlier draft of the text specification
// claimed — the C source is the authority here per the instruction to
// resolve ambiguous source behaviour by reading the original).
package tqr

import (
	"github.com/kuojiri/qrean/canvas"
	"github.com/kuojiri/qrean/internal/bch"
)

const Side = 19

// TQR is the variant.Spec for the fixed tQR symbol.
type TQR struct{}

// New returns the tQR Spec.
func New() *TQR { return &TQR{} }

func (t *TQR) Side() int            { return Side }
func (t *TQR) NumMaskPatterns() int { return 8 }

func (t *TQR) IsMask(pattern, x, y int) bool {
	switch pattern {
	case 0:
		return (y+x)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (y+x)%3 == 0
	case 4:
		return (y/2+x/3)%2 == 0
	case 5:
		return (y*x)%2+(y*x)%3 == 0
	case 6:
		return ((y*x)%2+(y*x)%3)%2 == 0
	case 7:
		return ((y*x)%3+(y+x)%2)%2 == 0
	}
	return false
}

func (t *TQR) isFinderPattern(x, y int) bool {
	if x < 8 && y < 8 {
		return true
	}
	if x < 8 && y >= Side-8 {
		return true
	}
	if x >= Side-8 && y < 8 {
		return true
	}
	return false
}

func (t *TQR) isTimingPattern(x, y int) bool { return x == 6 || y == 6 }

func (t *TQR) IsFunctionPattern(x, y int) bool {
	return t.isFinderPattern(x, y) || t.isTimingPattern(x, y)
}

var dataXYPos = [160][2]int{
	{16, 18}, {17, 17}, {16, 17}, {18, 16}, {17, 16}, {16, 16}, {18, 15}, {17, 15},
	{16, 15}, {18, 14}, {17, 14}, {16, 14}, {18, 13}, {17, 13}, {16, 13}, {18, 12},
	{17, 12}, {16, 12}, {18, 11}, {17, 11}, {16, 11}, {18, 10}, {17, 10}, {16, 10},
	{18, 9}, {17, 9}, {16, 9}, {18, 8}, {17, 8}, {16, 8}, {15, 9}, {14, 9},
	{13, 9}, {12, 9}, {11, 9}, {15, 8}, {14, 8}, {13, 8}, {12, 8}, {11, 8},
	{15, 11}, {14, 11}, {13, 11}, {12, 11}, {11, 11}, {15, 10}, {14, 10}, {13, 10},
	{12, 10}, {11, 10}, {14, 15}, {13, 15}, {15, 14}, {14, 14}, {13, 14}, {15, 13},
	{14, 13}, {13, 13}, {15, 12}, {14, 12}, {11, 15}, {10, 15}, {12, 14}, {11, 14},
	{10, 14}, {12, 13}, {11, 13}, {13, 12}, {12, 12}, {11, 12}, {15, 18}, {14, 18},
	{13, 18}, {15, 17}, {14, 17}, {13, 17}, {15, 16}, {14, 16}, {13, 16}, {15, 15},
	{12, 18}, {11, 18}, {10, 18}, {12, 17}, {11, 17}, {10, 17}, {12, 16}, {11, 16},
	{10, 16}, {12, 15}, {9, 18}, {8, 18}, {9, 17}, {8, 17}, {9, 16}, {8, 16},
	{9, 15}, {8, 15}, {9, 14}, {8, 14}, {10, 13}, {9, 13}, {8, 13}, {10, 12},
	{9, 12}, {8, 12}, {10, 11}, {9, 11}, {8, 11}, {10, 10}, {9, 10}, {8, 10},
	{10, 9}, {9, 9}, {8, 9}, {10, 8}, {9, 8}, {8, 8}, {7, 8}, {10, 7},
	{9, 7}, {8, 7}, {10, 5}, {9, 5}, {8, 5}, {10, 4}, {9, 4}, {8, 4},
	{10, 3}, {9, 3}, {8, 3}, {10, 2}, {9, 2}, {8, 2}, {10, 1}, {9, 1},
	{8, 1}, {10, 0}, {9, 0}, {8, 0}, {7, 10}, {5, 10}, {4, 10}, {7, 9},
	{5, 9}, {4, 9}, {3, 9}, {5, 8}, {4, 8}, {3, 8}, {3, 10}, {2, 10},
	{1, 10}, {0, 10}, {2, 9}, {1, 9}, {0, 9}, {2, 8}, {1, 8}, {0, 8},
}

func (t *TQR) DataIterator(pattern int) canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		if int(cursor) >= len(dataXYPos) {
			return 0, 0, false, true
		}
		x, y := dataXYPos[cursor][0], dataXYPos[cursor][1]
		return x, y, t.IsMask(pattern, x, y), false
	}
}

func (t *TQR) FormatInfoIterator() canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		if cursor >= 15 {
			return 0, 0, false, true
		}
		var x, y int
		switch {
		case cursor <= 5:
			x, y = int(cursor), 8
		case cursor == 6:
			x, y = 7, 8
		case cursor <= 8:
			x, y = 8, 15-int(cursor)
		default:
			x, y = 8, 14-int(cursor)
		}
		bit := bch.TQRFormatMask&(1<<(14-cursor)) != 0
		return x, y, bit, false
	}
}

func (t *TQR) VersionInfoIterator() canvas.XYInvertIterator {
	return func(uint32) (int, int, bool, bool) { return 0, 0, false, true }
}

func (t *TQR) DrawFunctionPatterns(c *canvas.Canvas) {
	drawFinder := func(ox, oy int) {
		for dy := -1; dy <= 7; dy++ {
			for dx := -1; dx <= 7; dx++ {
				x, y := ox+dx, oy+dy
				if x < 0 || y < 0 || x >= Side || y >= Side {
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
	}
	drawFinder(0, 0)
	drawFinder(Side-7, 0)
	drawFinder(0, Side-7)

	for i := 8; i < Side-8; i++ {
		dark := i%2 == 0
		c.Set(i, 6, dark)
		c.Set(6, i, dark)
	}
}

// Score uses only the dark-module-ratio term: tQR's fixed 160-entry
// table leaves no freedom to rebalance runs or 2x2 blocks between masks.
func (t *TQR) Score(c *canvas.Canvas) int {
	dark := 0
	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			if c.Get(x, y) {
				dark++
			}
		}
	}
	ratio := dark * 100 / Side / Side
	if ratio < 50 {
		return (50 - ratio) / 5 * 10
	}
	return (ratio - 50) / 5 * 10
}
