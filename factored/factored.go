// Package factored represents algebraic numbers as products of base
// elements raised to integer exponents, so that repeated exponentiation
// never expands intermediate values. Bases live in a cyclotomic field.
package factored

import (
	"fmt"
	"math/big"
	"strings"

	"kummer-CFT/cyclo"
)

// Pair is one (base, exponent) entry of a factored element.
type Pair struct {
	Base *cyclo.Element
	Exp  *big.Int
}

// Element is a product of base^exp pairs over a common field. The zero
// pair list represents one.
type Element struct {
	f     *cyclo.Field
	pairs []Pair
}

// New builds a factored element from pairs. All bases must be nonzero
// elements of field.
func New(field *cyclo.Field, pairs []Pair) (*Element, error) {
	out := &Element{f: field}
	for i, p := range pairs {
		if p.Base == nil || p.Base.Field() != field {
			return nil, fmt.Errorf("factored: pair %d base not in the given field", i)
		}
		if p.Base.IsZero() {
			return nil, fmt.Errorf("factored: pair %d base is zero", i)
		}
		if p.Exp == nil {
			return nil, fmt.Errorf("factored: pair %d exponent is nil", i)
		}
		if p.Exp.Sign() == 0 {
			continue
		}
		out.pairs = append(out.pairs, Pair{Base: p.Base, Exp: new(big.Int).Set(p.Exp)})
	}
	return out, nil
}

// FromElement wraps a single nonzero field element with exponent one.
func FromElement(base *cyclo.Element) (*Element, error) {
	return New(base.Field(), []Pair{{Base: base, Exp: big.NewInt(1)}})
}

// FromInt64 wraps a rational integer as a one-pair factored element.
func FromInt64(field *cyclo.Field, v int64) (*Element, error) {
	return FromElement(field.FromInt64(v))
}

// Field returns the common field of the bases.
func (e *Element) Field() *cyclo.Field { return e.f }

// Pairs returns a copy of the pair list.
func (e *Element) Pairs() []Pair {
	out := make([]Pair, len(e.pairs))
	for i, p := range e.pairs {
		out[i] = Pair{Base: p.Base, Exp: new(big.Int).Set(p.Exp)}
	}
	return out
}

// Mul returns the product, concatenating pair lists without expansion.
func (e *Element) Mul(o *Element) *Element {
	if e.f != o.f {
		panic("factored: elements of different fields")
	}
	out := &Element{f: e.f}
	out.pairs = append(out.pairs, e.Pairs()...)
	out.pairs = append(out.pairs, o.Pairs()...)
	return out
}

// Pow raises the element to an integer power by scaling every exponent.
func (e *Element) Pow(k *big.Int) *Element {
	out := &Element{f: e.f}
	if k.Sign() == 0 {
		return out
	}
	for _, p := range e.pairs {
		out.pairs = append(out.pairs, Pair{Base: p.Base, Exp: new(big.Int).Mul(p.Exp, k)})
	}
	return out
}

// ReduceExponents returns the element with every exponent reduced into
// [0, n). The result equals e up to an n-th power.
func (e *Element) ReduceExponents(n *big.Int) *Element {
	if n.Sign() <= 0 {
		panic("factored: reduction modulus must be positive")
	}
	out := &Element{f: e.f}
	for _, p := range e.pairs {
		r := new(big.Int).Mod(p.Exp, n)
		if r.Sign() == 0 {
			continue
		}
		out.pairs = append(out.pairs, Pair{Base: p.Base, Exp: r})
	}
	return out
}

// Expand multiplies the factorization out into a single field element.
// Exponents should be kept small (e.g. via ReduceExponents) before calling.
func (e *Element) Expand() *cyclo.Element {
	acc := e.f.One()
	for _, p := range e.pairs {
		acc = acc.Mul(p.Base.Pow(p.Exp))
	}
	return acc
}

// IsOne reports whether the expanded value is the identity. The pair list
// is expanded, so this is only cheap for small exponents.
func (e *Element) IsOne() bool {
	return e.Expand().IsOne()
}

// Norm returns the field norm of the product as an exact rational,
// multiplying per-base norms raised to the exponents without expanding
// the element itself.
func (e *Element) Norm() *big.Rat {
	acc := new(big.Rat).SetInt64(1)
	for _, p := range e.pairs {
		nb := p.Base.Norm()
		num := new(big.Int).Exp(nb.Num(), absInt(p.Exp), nil)
		den := new(big.Int).Exp(nb.Denom(), absInt(p.Exp), nil)
		if p.Exp.Sign() < 0 {
			num, den = den, num
		}
		acc.Mul(acc, new(big.Rat).SetFrac(num, den))
	}
	return acc
}

// Denominator returns a positive integer d with d*e integral: the product
// over the pairs of the base (or inverse-base, for negative exponents)
// denominators raised to |exp|. It is a multiple of the true denominator,
// not necessarily the least one.
func (e *Element) Denominator() *big.Int {
	acc := big.NewInt(1)
	for _, p := range e.pairs {
		b := p.Base
		if p.Exp.Sign() < 0 {
			b = b.Inv()
		}
		d := b.Denominator()
		if d.Cmp(oneInt) == 0 {
			continue
		}
		acc.Mul(acc, new(big.Int).Exp(d, absInt(p.Exp), nil))
	}
	return acc
}

// LogBound returns an upper bound on max log|sigma(e)| over the complex
// embeddings, as the exponent-weighted sum of per-base bounds.
func (e *Element) LogBound(prec uint) float64 {
	total := 0.0
	for _, p := range e.pairs {
		base := p.Base
		if p.Exp.Sign() < 0 {
			base = p.Base.Inv()
		}
		w, _ := new(big.Float).SetInt(absInt(p.Exp)).Float64()
		total += w * base.LogEmbeddingBound(prec)
	}
	return total
}

func (e *Element) String() string {
	if len(e.pairs) == 0 {
		return "1"
	}
	parts := make([]string, len(e.pairs))
	for i, p := range e.pairs {
		parts[i] = fmt.Sprintf("(%s)^%s", p.Base.String(), p.Exp.String())
	}
	return strings.Join(parts, " * ")
}

func absInt(x *big.Int) *big.Int { return new(big.Int).Abs(x) }

var oneInt = big.NewInt(1)
