// Package qr implements the variant.Spec for classic QR codes (version 1
// through 40), grounded directly on code_qr.c: three corner finder
// patterns, a cross of timing patterns, a version-dependent grid of
// alignment patterns, two redundant copies of 15-bit format info and
// (version >= 7) 18-bit version info, eight mask patterns, and the N1-N4
// penalty score used to choose among them.
package qr

import (
	"github.com/kuojiri/qrean/canvas"
	"github.com/kuojiri/qrean/internal/bch"
	"github.com/kuojiri/qrean/internal/qrspec"
	"github.com/kuojiri/qrean/runlength"
)

// QR is the variant.Spec for a single classic QR version.
type QR struct {
	version int
	side    int
	data    []position
}

type position struct{ x, y int }

// New returns the Spec for the given QR version (1..40).
func New(version int) *QR {
	q := &QR{version: version, side: qrspec.SymbolSide(version)}
	q.data = q.zigzag()
	return q
}

func (q *QR) Side() int            { return q.side }
func (q *QR) NumMaskPatterns() int { return 8 }

// Version returns the classic QR version (1..40) this Spec was built for.
func (q *QR) Version() int { return q.version }

func (q *QR) IsMask(pattern, x, y int) bool {
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

func (q *QR) isFinderPattern(x, y int) bool {
	if x < 8 && y < 8 {
		return true
	}
	if x < 8 && y >= q.side-8 {
		return true
	}
	if x >= q.side-8 && y < 8 {
		return true
	}
	return false
}

func (q *QR) isTimingPattern(x, y int) bool { return x == 6 || y == 6 }

func (q *QR) isAlignmentPattern(x, y int) bool {
	const w = 2
	n := qrspec.AlignmentNum(q.version)
	for i := 0; i < n; i++ {
		cx := qrspec.AlignmentPositionX(q.version, i)
		cy := qrspec.AlignmentPositionY(q.version, i)
		if cx-w <= x && x <= cx+w && cy-w <= y && y <= cy+w {
			return true
		}
	}
	return false
}

func (q *QR) isFormatInfo(x, y int) bool {
	if y == 8 && ((0 <= x && x <= 8) || (q.side-8 <= x && x < q.side)) {
		return true
	}
	if x == 8 && ((0 <= y && y <= 8) || (q.side-8 <= y && y < q.side)) {
		return true
	}
	return false
}

func (q *QR) isVersionInfo(x, y int) bool {
	if q.version < 7 {
		return false
	}
	if x < 7 && q.side-11 <= y && y <= q.side-9 {
		return true
	}
	if y < 7 && q.side-11 <= x && x <= q.side-9 {
		return true
	}
	return false
}

func (q *QR) IsFunctionPattern(x, y int) bool {
	return q.isFinderPattern(x, y) || q.isTimingPattern(x, y) || q.isAlignmentPattern(x, y) ||
		q.isFormatInfo(x, y) || q.isVersionInfo(x, y)
}

// zigzag replicates composed_data_iter's walk order exactly: two module
// columns at a time, bottom-to-top then top-to-bottom, right-to-left
// across the symbol, skipping the vertical timing column.
func (q *QR) zigzag() []position {
	var out []position
	w, h := q.side, q.side
	for i := 0; ; i++ {
		x := (w - 1) - (i % 2) - 2*(i/(2*h))
		if i >= (w-7)*h {
			x--
		}
		var y int
		if i%(4*h) < 2*h {
			y = (h - 1) - (i / 2 % (2 * h))
		} else {
			y = -h + (i / 2 % (2 * h))
		}
		if x < 0 || y < 0 {
			break
		}
		if q.IsFunctionPattern(x, y) {
			continue
		}
		out = append(out, position{x, y})
	}
	return out
}

func (q *QR) DataIterator(pattern int) canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		if int(cursor) >= len(q.data) {
			return 0, 0, false, true
		}
		p := q.data[cursor]
		return p.x, p.y, q.IsMask(pattern, p.x, p.y), false
	}
}

func (q *QR) FormatInfoIterator() canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		n := cursor / 15
		u := cursor % 15
		if n >= 2 {
			return 0, 0, false, true
		}
		var x, y int
		if n != 0 {
			x = 8
		} else if u <= 5 {
			x = int(u)
		} else if u == 6 {
			x = 7
		} else {
			x = q.side + int(u) - 15
		}
		if n == 0 {
			y = 8
		} else if u <= 6 {
			y = q.side - 1 - int(u)
		} else if u <= 8 {
			y = 15 - int(u)
		} else {
			y = 14 - int(u)
		}
		bit := bch.QRFormatMask&(1<<(14-u)) != 0
		return x, y, bit, false
	}
}

func (q *QR) VersionInfoIterator() canvas.XYInvertIterator {
	return func(cursor uint32) (int, int, bool, bool) {
		if q.version < 7 {
			return 0, 0, false, true
		}
		n := cursor / 18
		u := cursor % 18
		if n >= 2 {
			return 0, 0, false, true
		}
		var x, y int
		if n == 0 {
			x = 5 - int(u)/3
			y = q.side - 9 - int(u)%3
		} else {
			x = q.side - 9 - int(u)%3
			y = 5 - int(u)/3
		}
		return x, y, false, false
	}
}

// DrawFunctionPatterns paints the finder rings, separators, timing
// cross, and alignment patterns. Format and version info are left for
// the façade to fill in once a mask has been chosen.
func (q *QR) DrawFunctionPatterns(c *canvas.Canvas) {
	drawFinder := func(ox, oy int) {
		for dy := -1; dy <= 7; dy++ {
			for dx := -1; dx <= 7; dx++ {
				x, y := ox+dx, oy+dy
				if x < 0 || y < 0 || x >= q.side || y >= q.side {
					continue
				}
				ring := dx
				if dy > ring {
					ring = dy
				}
				if dx < 0 || dy < 0 || dx > 6 || dy > 6 {
					c.Set(x, y, false) // separator
					continue
				}
				onBorder := dx == 0 || dy == 0 || dx == 6 || dy == 6
				onCore := dx >= 2 && dx <= 4 && dy >= 2 && dy <= 4
				c.Set(x, y, onBorder || onCore)
			}
		}
	}
	drawFinder(0, 0)
	drawFinder(q.side-7, 0)
	drawFinder(0, q.side-7)

	for i := 8; i < q.side-8; i++ {
		dark := i%2 == 0
		c.Set(i, 6, dark)
		c.Set(6, i, dark)
	}

	n := qrspec.AlignmentNum(q.version)
	for i := 0; i < n; i++ {
		cx := qrspec.AlignmentPositionX(q.version, i)
		cy := qrspec.AlignmentPositionY(q.version, i)
		if cx == 0 || cy == 0 {
			continue
		}
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				ring := dx
				if dy > ring {
					ring = dy
				}
				onBorder := dx == -2 || dx == 2 || dy == -2 || dy == 2 || (dx == 0 && dy == 0)
				c.Set(cx+dx, cy+dy, onBorder)
			}
		}
	}
}

func (q *QR) checkN3(rl *runlength.RunLength, v bool) bool {
	if !v && rl.MatchRatio(1, 1, 3, 1, 1) && rl.Count(0)/4 >= rl.Count(1) {
		return true
	}
	if v && rl.MatchRatio(1, 1, 3, 1, 1) && rl.Count(4)/4 >= rl.Count(3) {
		return true
	}
	return false
}

// Score implements the N1-N4 penalty scoring from code_qr.c's qr_score.
func (q *QR) Score(c *canvas.Canvas) int {
	const n1, n2, n3, n4 = 3, 3, 40, 10
	score := 0
	darkModules := 0

	for y := 0; y < q.side; y++ {
		for dir := 0; dir < 2; dir++ {
			lastV := -1
			rl := runlength.New()
			for x := 0; x < q.side; x++ {
				var v bool
				if dir == 0 {
					v = c.Get(x, y)
				} else {
					v = c.Get(y, x)
				}
				vi := 0
				if v {
					vi = 1
				}
				if lastV != vi {
					if rl.Count(0) >= 5 {
						score += rl.Count(0) - 5 + n1
					}
					if lastV >= 0 && q.checkN3(rl, lastV == 1) {
						score += n3
					}
					rl.Push(0)
					lastV = vi
				}
				rl.Add(1)

				if dir != 0 {
					continue
				}
				if v {
					darkModules++
				}
				if x+1 < q.side && y+1 < q.side {
					a := v
					b := c.Get(x+1, y)
					d := c.Get(x, y+1)
					e := c.Get(x+1, y+1)
					if a == b && b == d && d == e {
						score += n2
					}
				}
			}
			if rl.Count(0) >= 5 {
				score += rl.Count(0) - 5 + n1
			}
			if lastV >= 0 && q.checkN3(rl, lastV == 1) {
				score += n3
			}
		}
	}

	ratio := darkModules * 100 / q.side / q.side
	if ratio < 50 {
		score += (50 - ratio) / 5 * n4
	} else {
		score += (ratio - 50) / 5 * n4
	}
	return score
}
