// Package gf256 implements arithmetic over GF(256) with the primitive
// polynomial x^8 + x^4 + x^3 + x^2 + 1 (0x11D) and primitive element α = 2,
// plus polynomial algebra (multiply, divide, mod, derivative, Horner
// evaluation) and the extended-Euclidean key-equation solver Reed–Solomon
// decoding needs.
package gf256

const primitivePoly = 0x11D

var expTable [256]byte // exp[i] = α^i
var logTable [256]byte // log[byte] = i such that α^i == byte; logTable[0] is never consulted

func init() {
	x := byte(1)
	for i := 0; i < 255; i++ {
		expTable[i] = x
		logTable[x] = byte(i)
		x = mulNoTable(x, 2)
	}
	expTable[255] = expTable[0]
}

func mulNoTable(a, b byte) byte {
	var z int
	for i := 7; i >= 0; i-- {
		z = z<<1 ^ (z >> 7 * primitivePoly)
		z ^= int(b>>uint(i)&1) * int(a)
	}
	return byte(z)
}

// Add returns a+b in GF(256), which is XOR.
func Add(a, b byte) byte { return a ^ b }

// Sub returns a-b in GF(256), which equals Add since the field has
// characteristic 2.
func Sub(a, b byte) byte { return a ^ b }

// Mul returns a*b in GF(256).
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return ExpOf(int(logTable[a]) + int(logTable[b]))
}

// Div returns a/b in GF(256). Panics if b is zero.
func Div(a, b byte) byte {
	if b == 0 {
		panic("gf256: division by zero")
	}
	if a == 0 {
		return 0
	}
	return ExpOf(int(logTable[a]) - int(logTable[b]) + 255)
}

// Pow returns α^exp, reducing exp mod 255.
func Pow(exp int) byte { return ExpOf(exp) }

// ExpOf returns α^exp for any integer exponent, positive or negative.
func ExpOf(exp int) byte {
	e := exp % 255
	if e < 0 {
		e += 255
	}
	return expTable[e]
}

// Log returns i such that α^i == v. v must be non-zero.
func Log(v byte) byte {
	if v == 0 {
		panic("gf256: log of zero")
	}
	return logTable[v]
}

// Poly is a polynomial over GF(256), coefficients indexed by degree:
// Poly[i] is the coefficient of x^i. The zero polynomial is represented by
// an empty or all-zero slice.
type Poly []byte

// Degree returns the real (highest nonzero-coefficient) degree of p, or -1
// for the zero polynomial.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// IsZero reports whether every coefficient of p is zero.
func (p Poly) IsZero() bool { return p.Degree() < 0 }

// Clone returns a copy of p.
func (p Poly) Clone() Poly {
	c := make(Poly, len(p))
	copy(c, p)
	return c
}

// trim returns p with trailing zero coefficients removed, length at least 1.
func trim(p Poly) Poly {
	d := p.Degree()
	if d < 0 {
		return Poly{0}
	}
	return p[:d+1]
}

// PolyAdd returns a+b (equivalently a-b), coefficient-wise XOR.
func PolyAdd(a, b Poly) Poly {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	r := make(Poly, n)
	for i := 0; i < n; i++ {
		var av, bv byte
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		r[i] = av ^ bv
	}
	return trim(r)
}

// PolyMul returns the product of a and b (convolution of coefficients).
func PolyMul(a, b Poly) Poly {
	if a.IsZero() || b.IsZero() {
		return Poly{0}
	}
	r := make(Poly, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			if bv == 0 {
				continue
			}
			r[i+j] ^= Mul(av, bv)
		}
	}
	return trim(r)
}

// PolyDivMod performs polynomial long division: a = q*b + r. b must not be the
// zero polynomial.
func PolyDivMod(a, b Poly) (q, r Poly) {
	bd := b.Degree()
	if bd < 0 {
		panic("gf256: division by zero polynomial")
	}
	rem := a.Clone()
	ad := rem.Degree()
	if ad < bd {
		return Poly{0}, trim(rem)
	}
	quot := make(Poly, ad-bd+1)
	lead := b[bd]
	for rem.Degree() >= bd {
		rd := rem.Degree()
		coeff := Div(rem[rd], lead)
		shift := rd - bd
		quot[shift] = coeff
		for i := 0; i <= bd; i++ {
			rem[shift+i] ^= Mul(coeff, b[i])
		}
		rem = trim(rem)
		if rem.IsZero() {
			break
		}
	}
	return trim(quot), trim(rem)
}

// PolyDiv returns a/b (the quotient from PolyDivMod).
func PolyDiv(a, b Poly) Poly {
	q, _ := PolyDivMod(a, b)
	return q
}

// PolyMod returns a mod b (the remainder from PolyDivMod).
func PolyMod(a, b Poly) Poly {
	_, r := PolyDivMod(a, b)
	return r
}

// PolyDerivative returns the formal derivative of p over GF(2): terms of even
// degree vanish, terms of odd degree i keep their coefficient at i-1.
func PolyDerivative(p Poly) Poly {
	if len(p) <= 1 {
		return Poly{0}
	}
	r := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		if i%2 == 1 {
			r[i-1] = p[i]
		}
	}
	return trim(r)
}

// PolyEval evaluates p at x using Horner's method.
func PolyEval(p Poly, x byte) byte {
	if len(p) == 0 {
		return 0
	}
	result := p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		result = Mul(result, x) ^ p[i]
	}
	return result
}

// scaleDiv returns p with every coefficient divided by lead.
func scaleDiv(p Poly, lead byte) Poly {
	if lead == 1 {
		return p
	}
	r := make(Poly, len(p))
	for i, c := range p {
		r[i] = Div(c, lead)
	}
	return trim(r)
}

// SolveKeyEquation finds the minimum-degree (sigma, omega) such that
// sigma*s ≡ omega (mod z), via the extended Euclidean algorithm: iterate
// (m, n) <- (n, m mod n) tracking (x, y) <- (y, q*y + x) until deg(n) <
// deg(y); normalize both results by y's leading coefficient.
func SolveKeyEquation(z, s Poly) (sigma, omega Poly) {
	var m, n Poly
	if z.Degree() >= s.Degree() {
		m, n = z.Clone(), s.Clone()
	} else {
		m, n = s.Clone(), z.Clone()
	}

	x := Poly{0}
	y := Poly{1}

	for !n.IsZero() && n.Degree() >= y.Degree() {
		q, r := PolyDivMod(m, n)
		z := PolyAdd(PolyMul(q, y), x)
		x, y = y, z
		m, n = n, r
	}

	lead := byte(1)
	if d := y.Degree(); d >= 0 {
		lead = y[d]
	}
	return scaleDiv(y, lead), scaleDiv(n, lead)
}
