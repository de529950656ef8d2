package detector

import (
	"sort"

	"github.com/kuojiri/qrean"
)

// Decode finds the three finder patterns in img, estimates the symbol's
// version from their spacing, samples the module grid, and decodes it.
// Candidates are matched to top-left/top-right/bottom-left by position:
// top-left is the one with the smallest X+Y, the remaining two are split
// by whichever has the smaller Y (top-right), and that pair is swapped
// if the top-right guess lies left of the bottom-left one.
func Decode(img BinaryImage) ([]byte, int, error) {
	candidates := ScanFinderPatterns(img)
	if len(candidates) < 3 {
		return nil, 0, ErrNotFound
	}

	tl, tr, bl := classifyCorners(candidates)
	version := EstimateVersionFromCorners(tl, tr, bl)
	side := 17 + 4*version

	c := Sample(img, tl, tr, bl, side)
	return qrean.Decode(c, qrean.QRCode, version)
}

// EstimateVersionFromCorners derives the QR version from the distance
// between the top-left and top-right finder centers, the same keystone
// span EstimateSide uses.
func EstimateVersionFromCorners(tl, tr, bl Candidate) int {
	side := EstimateSide(tl, tr)
	version := (side - 17) / 4
	if version < 1 {
		version = 1
	}
	return version
}

// classifyCorners sorts exactly 3 finder-pattern candidates into
// top-left, top-right, bottom-left order. When more than 3 are found
// (noise, or a symbol with false-positive hits), the 3 whose triangle
// has the smallest area are kept.
func classifyCorners(candidates []Candidate) (tl, tr, bl Candidate) {
	best := candidates
	if len(candidates) > 3 {
		best = tightestTriple(candidates)
	}

	sum := func(c Candidate) float64 { return c.Center.X + c.Center.Y }
	sort.Slice(best, func(i, j int) bool { return sum(best[i]) < sum(best[j]) })
	tl = best[0]

	a, b := best[1], best[2]
	if a.Center.Y <= b.Center.Y {
		tr, bl = a, b
	} else {
		tr, bl = b, a
	}
	// top-right should be to the right of top-left; swap if the
	// Y-based guess picked the wrong one.
	if tr.Center.X < bl.Center.X {
		tr, bl = bl, tr
	}
	return tl, tr, bl
}

func tightestTriple(candidates []Candidate) []Candidate {
	bestArea := -1.0
	var best []Candidate
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			for k := j + 1; k < len(candidates); k++ {
				tri := []Candidate{candidates[i], candidates[j], candidates[k]}
				area := triangleArea(tri[0], tri[1], tri[2])
				if bestArea < 0 || area < bestArea {
					bestArea = area
					best = tri
				}
			}
		}
	}
	return best
}

func triangleArea(a, b, c Candidate) float64 {
	return abs((b.Center.X-a.Center.X)*(c.Center.Y-a.Center.Y) - (c.Center.X-a.Center.X)*(b.Center.Y-a.Center.Y))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
