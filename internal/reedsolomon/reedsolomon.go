// Package reedsolomon implements the Reed–Solomon codec over GF(256) used
// by every QR-family variant: generator-polynomial construction, parity
// calculation, and syndrome / Chien-search / Forney decoding.
package reedsolomon

import (
	"errors"

	"github.com/kuojiri/qrean/internal/gf256"
)

// ErrUncorrectable is returned when the number of located errors does not
// match the degree of the error-locator polynomial — more errors than the
// code can correct were present, and the decoder refuses to return a
// silently-wrong codeword.
var ErrUncorrectable = errors.New("reedsolomon: uncorrectable block")

// GeneratorPolynomial returns g(x) = prod(x - α^i), i=0..t-1, the
// degree-t generator used to compute parity for t error words.
func GeneratorPolynomial(t int) gf256.Poly {
	g := gf256.Poly{1}
	for i := 0; i < t; i++ {
		factor := gf256.Poly{gf256.Pow(i), 1} // (x - α^i), i.e. x + α^i over GF(2)
		g = gf256.PolyMul(g, factor)
	}
	return g
}

// Encode computes the t parity words for the given k data words using the
// degree-t generator polynomial: I(x) = data·x^t (data as high
// coefficients), parity = I(x) mod g(x).
func Encode(data []byte, t int) []byte {
	g := GeneratorPolynomial(t)

	// I(x): data words as the high-order coefficients, t zero low words.
	ix := make(gf256.Poly, len(data)+t)
	for i, b := range data {
		ix[len(data)+t-1-i] = b
	}

	_, rem := gf256.PolyDivMod(ix, g)
	parity := make([]byte, t)
	for i := 0; i < t; i++ {
		if i < len(rem) {
			parity[t-1-i] = rem[i]
		}
	}
	return parity
}

// Decode corrects up to floor(t/2) byte errors in-place in received
// (length k+t, data words then parity words) and returns the number of
// errors corrected. If no error is present it returns 0 without
// modifying received. If more errors are present than the code can
// correct and that is detectable (the number of located roots does not
// match the error locator's degree), it returns ErrUncorrectable and
// leaves received unmodified.
func Decode(received []byte, t int) (int, error) {
	n := len(received)

	// received(x) with received[0] as the highest-degree coefficient,
	// matching the encoder's convention; represent as a gf256.Poly with
	// index 0 = lowest degree, so reverse.
	r := make(gf256.Poly, n)
	for i, b := range received {
		r[n-1-i] = b
	}

	syndromes := make(gf256.Poly, t)
	nonzero := false
	for i := 0; i < t; i++ {
		syndromes[i] = gf256.PolyEval(r, gf256.Pow(i))
		if syndromes[i] != 0 {
			nonzero = true
		}
	}
	if !nonzero {
		return 0, nil
	}

	z := make(gf256.Poly, t+1)
	z[t] = 1 // z = x^t

	sigma, omega := gf256.SolveKeyEquation(z, syndromes)

	sigmaDeriv := gf256.PolyDerivative(sigma)
	// Denom(x) = x * sigma'(x)
	denom := gf256.PolyMul(gf256.Poly{0, 1}, sigmaDeriv)

	fixed := make(gf256.Poly, n)
	copy(fixed, r)

	numErrors := 0
	for pos := 0; pos < n; pos++ {
		root := gf256.Pow(255 - pos)
		if gf256.PolyEval(sigma, root) != 0 {
			continue
		}
		denomVal := gf256.PolyEval(denom, root)
		if denomVal == 0 {
			return 0, ErrUncorrectable
		}
		magnitude := gf256.Div(gf256.PolyEval(omega, root), denomVal)
		fixed[pos] = gf256.Add(fixed[pos], magnitude)
		numErrors++
	}

	if numErrors != sigma.Degree() {
		return 0, ErrUncorrectable
	}

	for i, b := range fixed {
		received[n-1-i] = b
	}
	return numErrors, nil
}
