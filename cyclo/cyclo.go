// Package cyclo implements exact arithmetic in the cyclotomic field
// Q(zeta_m), together with the prime-ideal services the Frobenius machinery
// consumes: decomposition of rational primes, residue-field maps and
// low-precision archimedean estimates. Elements are polynomials in zeta_m
// of degree below phi(m) with rational coefficients; the ring of integers
// is Z[zeta_m], so the index of the order is one.
package cyclo

import (
	"fmt"
	"math/big"
	"strings"
)

// Field is the cyclotomic field Q(zeta_m).
type Field struct {
	m   int
	deg int
	phi []*big.Int // Phi_m, monic, length deg+1
}

// NewField constructs Q(zeta_m) for m >= 1.
func NewField(m int) (*Field, error) {
	if m < 1 {
		return nil, fmt.Errorf("cyclo: conductor must be positive, got %d", m)
	}
	phi := Cyclotomic(m)
	return &Field{m: m, deg: len(phi) - 1, phi: phi}, nil
}

// Conductor returns m, the order of the distinguished root of unity.
func (f *Field) Conductor() int { return f.m }

// Degree returns phi(m), the degree of the field over Q.
func (f *Field) Degree() int { return f.deg }

// Modulus returns a copy of the coefficients of Phi_m, constant term first.
func (f *Field) Modulus() []*big.Int {
	out := make([]*big.Int, len(f.phi))
	for i, c := range f.phi {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

// Element is a field element, stored as deg rational coefficients in the
// power basis 1, zeta, ..., zeta^(deg-1).
type Element struct {
	f *Field
	c []*big.Rat
}

func (f *Field) newElem() *Element {
	c := make([]*big.Rat, f.deg)
	for i := range c {
		c[i] = new(big.Rat)
	}
	return &Element{f: f, c: c}
}

// Zero returns the additive identity.
func (f *Field) Zero() *Element { return f.newElem() }

// One returns the multiplicative identity.
func (f *Field) One() *Element {
	e := f.newElem()
	e.c[0].SetInt64(1)
	return e
}

// FromRat embeds a rational number.
func (f *Field) FromRat(q *big.Rat) *Element {
	e := f.newElem()
	e.c[0].Set(q)
	return e
}

// FromInt64 embeds a small integer.
func (f *Field) FromInt64(v int64) *Element {
	e := f.newElem()
	e.c[0].SetInt64(v)
	return e
}

// Zeta returns the distinguished primitive m-th root of unity.
func (f *Field) Zeta() *Element {
	e := f.newElem()
	if f.deg == 1 {
		// Phi_m = x + c is linear, so zeta = -c.
		e.c[0].SetInt(new(big.Int).Neg(f.phi[0]))
		return e
	}
	e.c[1].SetInt64(1)
	return e
}

// FromCoeffs builds an element from rational coefficients in the power
// basis; missing trailing coefficients are zero.
func (f *Field) FromCoeffs(coeffs []*big.Rat) (*Element, error) {
	if len(coeffs) > f.deg {
		return nil, fmt.Errorf("cyclo: %d coefficients exceed degree %d", len(coeffs), f.deg)
	}
	e := f.newElem()
	for i, q := range coeffs {
		e.c[i].Set(q)
	}
	return e, nil
}

// Field returns the field the element belongs to.
func (e *Element) Field() *Field { return e.f }

// Coeffs returns a copy of the power-basis coefficients.
func (e *Element) Coeffs() []*big.Rat {
	out := make([]*big.Rat, len(e.c))
	for i, q := range e.c {
		out[i] = new(big.Rat).Set(q)
	}
	return out
}

func (e *Element) sameField(o *Element) {
	if e.f != o.f {
		panic("cyclo: elements of different fields")
	}
}

// Add returns e + o.
func (e *Element) Add(o *Element) *Element {
	e.sameField(o)
	out := e.f.newElem()
	for i := range out.c {
		out.c[i].Add(e.c[i], o.c[i])
	}
	return out
}

// Sub returns e - o.
func (e *Element) Sub(o *Element) *Element {
	e.sameField(o)
	out := e.f.newElem()
	for i := range out.c {
		out.c[i].Sub(e.c[i], o.c[i])
	}
	return out
}

// Neg returns -e.
func (e *Element) Neg() *Element {
	out := e.f.newElem()
	for i := range out.c {
		out.c[i].Neg(e.c[i])
	}
	return out
}

// Mul returns e * o, reduced modulo Phi_m.
func (e *Element) Mul(o *Element) *Element {
	e.sameField(o)
	deg := e.f.deg
	prod := make([]*big.Rat, 2*deg-1)
	for i := range prod {
		prod[i] = new(big.Rat)
	}
	tmp := new(big.Rat)
	for i := 0; i < deg; i++ {
		if e.c[i].Sign() == 0 {
			continue
		}
		for j := 0; j < deg; j++ {
			if o.c[j].Sign() == 0 {
				continue
			}
			prod[i+j].Add(prod[i+j], tmp.Mul(e.c[i], o.c[j]))
		}
	}
	return e.f.reduce(prod)
}

// reduce brings a coefficient slice of any length below deg modulo Phi_m.
func (f *Field) reduce(c []*big.Rat) *Element {
	tmp := new(big.Rat)
	phiQ := new(big.Rat)
	for i := len(c) - 1; i >= f.deg; i-- {
		if c[i].Sign() == 0 {
			continue
		}
		lead := new(big.Rat).Set(c[i])
		c[i].SetInt64(0)
		for j := 0; j < f.deg; j++ {
			if f.phi[j].Sign() == 0 {
				continue
			}
			phiQ.SetInt(f.phi[j])
			c[i-f.deg+j].Sub(c[i-f.deg+j], tmp.Mul(lead, phiQ))
		}
	}
	out := f.newElem()
	for i := 0; i < f.deg && i < len(c); i++ {
		out.c[i].Set(c[i])
	}
	return out
}

// IsZero reports whether e is zero.
func (e *Element) IsZero() bool {
	for _, q := range e.c {
		if q.Sign() != 0 {
			return false
		}
	}
	return true
}

// IsOne reports whether e is the multiplicative identity.
func (e *Element) IsOne() bool {
	if e.c[0].Cmp(ratOne) != 0 {
		return false
	}
	for _, q := range e.c[1:] {
		if q.Sign() != 0 {
			return false
		}
	}
	return true
}

// Equal reports exact equality.
func (e *Element) Equal(o *Element) bool {
	if e.f != o.f {
		return false
	}
	for i := range e.c {
		if e.c[i].Cmp(o.c[i]) != 0 {
			return false
		}
	}
	return true
}

// Inv returns the multiplicative inverse via the extended Euclidean
// algorithm in Q[x] against Phi_m. It panics on zero.
func (e *Element) Inv() *Element {
	if e.IsZero() {
		panic("cyclo: inverse of zero element")
	}
	// r0 = Phi_m, r1 = e; track only the Bezout coefficient of e.
	r0 := make([]*big.Rat, len(e.f.phi))
	for i, v := range e.f.phi {
		r0[i] = new(big.Rat).SetInt(v)
	}
	r1 := ratTrim(e.Coeffs())
	t0 := []*big.Rat{new(big.Rat)}
	t1 := []*big.Rat{new(big.Rat).SetInt64(1)}
	for !ratIsZero(r1) {
		q, r := ratDivMod(r0, r1)
		r0, r1 = r1, r
		t0, t1 = t1, ratSub(t0, ratMul(q, t1))
	}
	if len(r0) != 1 {
		panic("cyclo: element shares a factor with the modulus")
	}
	inv := new(big.Rat).Inv(r0[0])
	out := make([]*big.Rat, len(t0))
	for i, v := range t0 {
		out[i] = new(big.Rat).Mul(v, inv)
	}
	return e.f.reduce(out)
}

// Pow returns e raised to an integer exponent; negative exponents invert.
func (e *Element) Pow(exp *big.Int) *Element {
	if exp.Sign() == 0 {
		return e.f.One()
	}
	base := e
	if exp.Sign() < 0 {
		base = e.Inv()
		exp = new(big.Int).Neg(exp)
	}
	res := e.f.One()
	for i := exp.BitLen() - 1; i >= 0; i-- {
		res = res.Mul(res)
		if exp.Bit(i) == 1 {
			res = res.Mul(base)
		}
	}
	return res
}

// Denominator returns the least positive integer d with d*e in Z[zeta_m]:
// the lcm of the coefficient denominators.
func (e *Element) Denominator() *big.Int {
	d := big.NewInt(1)
	g := new(big.Int)
	for _, q := range e.c {
		den := q.Denom()
		g.GCD(nil, nil, d, den)
		d.Mul(d, new(big.Int).Div(den, g))
	}
	return d
}

// Norm returns the field norm N(e) over Q, computed as the determinant of
// the multiplication-by-e matrix in the power basis.
func (e *Element) Norm() *big.Rat {
	deg := e.f.deg
	// column j = coefficients of e * zeta^j
	mat := make([][]*big.Rat, deg)
	col := e
	zeta := e.f.Zeta()
	for j := 0; j < deg; j++ {
		mat[j] = col.Coeffs()
		if j+1 < deg {
			col = col.Mul(zeta)
		}
	}
	return ratDet(mat)
}

// ratDet computes a determinant by Gaussian elimination over the
// rationals. The input matrix is consumed.
func ratDet(m [][]*big.Rat) *big.Rat {
	n := len(m)
	det := new(big.Rat).SetInt64(1)
	tmp := new(big.Rat)
	for t := 0; t < n; t++ {
		pivot := -1
		for i := t; i < n; i++ {
			if m[i][t].Sign() != 0 {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			return new(big.Rat)
		}
		if pivot != t {
			m[t], m[pivot] = m[pivot], m[t]
			det.Neg(det)
		}
		det.Mul(det, m[t][t])
		inv := new(big.Rat).Inv(m[t][t])
		for i := t + 1; i < n; i++ {
			if m[i][t].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Mul(m[i][t], inv)
			for j := t; j < n; j++ {
				m[i][j].Sub(m[i][j], tmp.Mul(factor, m[t][j]))
			}
		}
	}
	return det
}

func (e *Element) String() string {
	var parts []string
	for i, q := range e.c {
		if q.Sign() == 0 {
			continue
		}
		switch i {
		case 0:
			parts = append(parts, q.RatString())
		case 1:
			parts = append(parts, q.RatString()+"*z")
		default:
			parts = append(parts, fmt.Sprintf("%s*z^%d", q.RatString(), i))
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}

// ---------------- Q[x] helpers ----------------

func ratTrim(c []*big.Rat) []*big.Rat {
	if len(c) == 0 {
		return []*big.Rat{new(big.Rat)}
	}
	i := len(c) - 1
	for i > 0 && c[i].Sign() == 0 {
		i--
	}
	return c[:i+1]
}

func ratIsZero(c []*big.Rat) bool {
	return len(c) == 1 && c[0].Sign() == 0
}

func ratSub(a, b []*big.Rat) []*big.Rat {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]*big.Rat, n)
	for i := 0; i < n; i++ {
		out[i] = new(big.Rat)
		if i < len(a) {
			out[i].Set(a[i])
		}
		if i < len(b) {
			out[i].Sub(out[i], b[i])
		}
	}
	return ratTrim(out)
}

func ratMul(a, b []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	tmp := new(big.Rat)
	for i := range a {
		if a[i].Sign() == 0 {
			continue
		}
		for j := range b {
			if b[j].Sign() == 0 {
				continue
			}
			out[i+j].Add(out[i+j], tmp.Mul(a[i], b[j]))
		}
	}
	return ratTrim(out)
}

func ratDivMod(a, b []*big.Rat) (q, r []*big.Rat) {
	a = ratTrim(a)
	b = ratTrim(b)
	if ratIsZero(b) {
		panic("cyclo: division by zero polynomial")
	}
	if len(a) < len(b) {
		return []*big.Rat{new(big.Rat)}, a
	}
	rem := make([]*big.Rat, len(a))
	for i, v := range a {
		rem[i] = new(big.Rat).Set(v)
	}
	quot := make([]*big.Rat, len(a)-len(b)+1)
	for i := range quot {
		quot[i] = new(big.Rat)
	}
	invLead := new(big.Rat).Inv(b[len(b)-1])
	tmp := new(big.Rat)
	for i := len(a) - 1; i >= len(b)-1; i-- {
		coeff := new(big.Rat).Mul(rem[i], invLead)
		if coeff.Sign() == 0 {
			continue
		}
		quot[i-(len(b)-1)].Set(coeff)
		for j := 0; j < len(b); j++ {
			rem[i-(len(b)-1)+j].Sub(rem[i-(len(b)-1)+j], tmp.Mul(coeff, b[j]))
		}
	}
	return ratTrim(quot), ratTrim(rem[:len(b)-1])
}

var ratOne = new(big.Rat).SetInt64(1)
