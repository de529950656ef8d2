// Package variant defines the Spec interface every QR-family symbol type
// (classic QR, Micro QR, rMQR, tQR) implements: the function-pattern
// layout, the composed data-region walk, the mask functions, and the
// penalty score used to pick the best mask. A façade built on a Spec can
// encode or decode any variant without caring which one it is.
package variant

import "github.com/kuojiri/qrean/canvas"

// Spec is the per-variant behaviour a QR-family symbol type supplies.
type Spec interface {
	// Side returns the module side of the symbol.
	Side() int

	// NumMaskPatterns returns how many mask patterns this variant defines.
	NumMaskPatterns() int

	// IsMask reports whether mask pattern `pattern` flips the module at
	// (x, y).
	IsMask(pattern, x, y int) bool

	// IsFunctionPattern reports whether (x, y) belongs to a finder,
	// timing, alignment, format-info, or version-info region rather than
	// the data region.
	IsFunctionPattern(x, y int) bool

	// DrawFunctionPatterns paints every finder/timing/alignment module
	// (but not format/version info, which the façade fills in once the
	// mask is chosen) onto c.
	DrawFunctionPatterns(c *canvas.Canvas)

	// DataIterator returns the composed data-region walk for the given
	// mask pattern: it zigzags through every module not claimed by
	// IsFunctionPattern, applying the mask as an invert flag.
	DataIterator(pattern int) canvas.XYInvertIterator

	// FormatInfoIterator returns the walk over every format-info module
	// (both copies, where the variant repeats it), already carrying the
	// variant's XOR mask as each position's invert flag baked into the
	// bitstream's own masking — callers just read/write the 0/1 data bit.
	FormatInfoIterator() canvas.XYInvertIterator

	// VersionInfoIterator returns the walk over every version-info
	// module, or an always-End iterator for variants without one.
	VersionInfoIterator() canvas.XYInvertIterator

	// Score returns the penalty score (lower is better) used to pick
	// amongst the variant's mask patterns.
	Score(c *canvas.Canvas) int
}
