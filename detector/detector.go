// Package detector locates classic-QR finder patterns in a binary image
// and samples the symbol back onto a canvas.Canvas for qrean.Decode,
// ported from qrdetector.c's row-scan-plus-vertical-confirmation finder
// search and its three-keystone perspective fit. Alignment-pattern
// refinement (the C source's second pass, nudging the fourth keystone
// to the true alignment-pattern center) is not ported — the three-point
// affine fit alone is enough for images captured close to head-on, which
// covers the synthetic/rendered-canvas inputs this package is built to
// read back; real lens-distorted photographs would need that refinement
// pass to stay accurate at a symbol's corners.
package detector

import (
	"errors"
	"math"

	"github.com/kuojiri/qrean/canvas"
	"github.com/kuojiri/qrean/runlength"
)

// BinaryImage is the pixel source a scan reads from. At reports whether
// the module at (x, y) is dark.
type BinaryImage interface {
	Width() int
	Height() int
	At(x, y int) bool
}

// Point is a 2-D image coordinate.
type Point struct{ X, Y float64 }

// Candidate is one finder-pattern detection: its center, in image
// coordinates, and the estimated module size along each axis.
type Candidate struct {
	Center            Point
	ModSizeX, ModSizeY float64
}

var ErrNotFound = errors.New("detector: fewer than 3 finder patterns found")

// ScanFinderPatterns scans img row by row for the 1:1:3:1:1 dark/light
// ratio of a QR finder pattern, then confirms each hit with a vertical
// run-length check through its center, mirroring qrdetector_scan_finder_pattern's
// horizontal-then-vertical confirmation.
func ScanFinderPatterns(img BinaryImage) []Candidate {
	var out []Candidate
	w, h := img.Width(), img.Height()

	for y := 0; y < h; y++ {
		rl := runlength.New()
		runStart := 0
		var cur bool
		started := false

		flush := func(x int) {
			if !started || !cur {
				return
			}
			if !rl.MatchRatio(1, 1, 3, 1, 1) {
				return
			}
			total := rl.Sum(5)
			cx := x - total + rl.Count(2)/2
			modSizeX := float64(total) / 7.0
			if c, ok := confirmVertical(img, cx, y, total); ok {
				c.ModSizeX = modSizeX
				out = append(out, c)
			}
		}

		for x := 0; x < w; x++ {
			v := img.At(x, y)
			if !started {
				started = true
				cur = v
				runStart = x
				continue
			}
			if v != cur {
				rl.Push(x - runStart)
				flush(x)
				runStart = x
				cur = v
			}
		}
		if started {
			rl.Push(w - runStart)
			flush(w)
		}
	}

	return out
}

// confirmVertical scans up and down from (cx, cy) looking for the same
// 1:1:3:1:1 ratio, per the C source's found_u/found_d vertical check,
// and returns the refined center and vertical module size on success.
func confirmVertical(img BinaryImage, cx, cy, span int) (Candidate, bool) {
	if cx < 0 || cx >= img.Width() || cy < 0 || cy >= img.Height() {
		return Candidate{}, false
	}
	if !img.At(cx, cy) {
		return Candidate{}, false
	}

	rlUp := runlength.New()
	rlDown := runlength.New()
	var foundUp, foundDown int

	scan := func(rl *runlength.RunLength, dy int) int {
		runStart := 0
		var cur bool
		started := false
		found := 0
		for i := 0; i <= span && cy+dy*i >= 0 && cy+dy*i < img.Height(); i++ {
			v := img.At(cx, cy+dy*i)
			if !started {
				started = true
				cur = v
				runStart = i
				continue
			}
			if v != cur {
				rl.Push(i - runStart)
				if found == 0 && rl.MatchRatio(1, 1, 3) {
					found = rl.Sum(3)
				}
				runStart = i
				cur = v
			}
		}
		return found
	}
	foundUp = scan(rlUp, -1)
	foundDown = scan(rlDown, 1)

	if foundUp == 0 || foundDown == 0 {
		return Candidate{}, false
	}

	modSizeY := float64(foundUp+foundDown-1) / 7.0
	return Candidate{
		Center:   Point{X: float64(cx), Y: float64(cy)},
		ModSizeX: 0, // filled in by the caller from the horizontal scan
		ModSizeY: modSizeY,
	}, true
}

// affine maps source triangle points to destination triangle points —
// the same three-keystone (top-left, top-right, bottom-left) fit
// qrdetector_perspective_setup_by_finder_pattern performs before any
// alignment-pattern refinement.
type affine struct {
	a, b, c, d, e, f float64 // x' = a*x + b*y + c; y' = d*x + e*y + f
}

func fitAffine(src, dst [3]Point) affine {
	// Solve the two independent 3x3 linear systems [x y 1][a b c]^T = x'.
	x1, y1 := src[0].X, src[0].Y
	x2, y2 := src[1].X, src[1].Y
	x3, y3 := src[2].X, src[2].Y

	denom := x1*(y2-y3) - y1*(x2-x3) + (x2*y3 - x3*y2)
	if denom == 0 {
		return affine{a: 1, e: 1}
	}

	solve := func(v1, v2, v3 float64) (p, q, r float64) {
		p = (v1*(y2-y3) - y1*(v2-v3) + (v2*y3 - v3*y2)) / denom
		q = (x1*(v2-v3) - v1*(x2-x3) + (x2*v3 - x3*v2)) / denom
		r = (x1*(y2*v3-y3*v2) - y1*(x2*v3-x3*v2) + (x2*y3-x3*y2)*v1) / denom
		return
	}

	a, b, c := solve(dst[0].X, dst[1].X, dst[2].X)
	d, e, f := solve(dst[0].Y, dst[1].Y, dst[2].Y)
	return affine{a: a, b: b, c: c, d: d, e: e, f: f}
}

func (m affine) apply(p Point) Point {
	return Point{X: m.a*p.X + m.b*p.Y + m.c, Y: m.d*p.X + m.e*p.Y + m.f}
}

// Sample reads a side x side module grid out of img using the three
// finder-pattern centers (top-left, top-right, bottom-left, in that
// order) as keystones, the same ordering
// qrdetector_perspective_setup_by_finder_pattern uses, and returns it as
// a canvas.Canvas.
func Sample(img BinaryImage, topLeft, topRight, bottomLeft Candidate, side int) *canvas.Canvas {
	src := [3]Point{{3, 3}, {float64(side - 4), 3}, {3, float64(side - 4)}}
	dst := [3]Point{topLeft.Center, topRight.Center, bottomLeft.Center}
	m := fitAffine(src, dst)

	c := canvas.New(side)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			p := m.apply(Point{X: float64(x), Y: float64(y)})
			ix, iy := int(math.Round(p.X)), int(math.Round(p.Y))
			if ix < 0 || ix >= img.Width() || iy < 0 || iy >= img.Height() {
				continue
			}
			c.Set(x, y, img.At(ix, iy))
		}
	}
	return c
}

// EstimateSide picks the nearest standard QR side (21 + 4*(version-1))
// to the ratio of the top-left/top-right finder-center distance to the
// estimated module size, the same arithmetic
// qrdetector_perspective_fit_by_alignment_pattern relies on implicitly
// via the keystone span.
func EstimateSide(topLeft, topRight Candidate) int {
	dx := topRight.Center.X - topLeft.Center.X
	dy := topRight.Center.Y - topLeft.Center.Y
	dist := math.Hypot(dx, dy)
	modSize := topLeft.ModSizeY
	if modSize <= 0 {
		modSize = 1
	}
	side := int(math.Round(dist/modSize)) + 7 // finder centers sit 3.5 modules from each edge
	version := (side - 17 + 2) / 4
	if version < 1 {
		version = 1
	}
	if version > 40 {
		version = 40
	}
	return 17 + 4*version
}
