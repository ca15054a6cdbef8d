package kummer

import (
	"fmt"
	"math/big"

	"kummer-CFT/cyclo"
	"kummer-CFT/factored"
)

// ReduceModPowers returns an algebraic-integer-valued factored element
// congruent to a modulo n-th powers, with a representation kept small.
// The prime data needed for the compact presentation is derived from the
// element itself; use ReduceModPowersKnown when it is already available.
func ReduceModPowers(a *factored.Element, n *big.Int) (*factored.Element, error) {
	return ReduceModPowersKnown(a, n, nil)
}

// ReduceModPowersKnown is ReduceModPowers with a caller-supplied coprime
// factorization base for the rational content of a, sparing the gcd
// splitting when the caller has already factored its inputs.
func ReduceModPowersKnown(a *factored.Element, n *big.Int, contentBase []*big.Int) (*factored.Element, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("kummer: reduction exponent must be positive")
	}
	field := a.Field()

	// exponent reduction is exact and cheap; everything below works on it
	red := a.ReduceExponents(n)
	if len(red.Pairs()) == 0 {
		return red, nil
	}

	// Size heuristic: the reduced element wins outright only when its
	// archimedean bound is below the square root of the original's, i.e.
	// half the log bound. Otherwise the compact presentation of the
	// original (through its rational content) pays for itself.
	logOrig := a.LogBound(0)
	logRed := red.LogBound(0)
	if isDegenerate(logOrig) || isDegenerate(logRed) {
		logOrig = a.LogBound(1)
		logRed = red.LogBound(1)
	}

	var b *factored.Element
	var err error
	if logRed <= logOrig/2 {
		b, err = factored.FromElement(red.Expand())
	} else {
		b, err = compactPresentation(red, n, contentBase)
	}
	if err != nil {
		return nil, fmt.Errorf("kummer: reduce mod %s-th powers: %w", n.String(), err)
	}

	// Clear the denominator by an n-th power so the result is integral.
	// When the denominator is a perfect power r^k, r raised to the next
	// multiple of n above k already suffices.
	den := b.Denominator()
	if den.Cmp(oneInt) > 0 {
		r, k := perfectPower(den)
		exp := new(big.Int).SetInt64(int64(k))
		exp.Add(exp, new(big.Int).Sub(n, oneInt))
		exp.Div(exp, n)
		exp.Mul(exp, n)
		fix, err := factored.New(field, []factored.Pair{{Base: field.FromRat(new(big.Rat).SetInt(r)), Exp: exp}})
		if err != nil {
			return nil, err
		}
		b = b.Mul(fix)
	}
	return b, nil
}

// compactPresentation splits the expansion of red into its rational
// content and a primitive part, reduces the content's exponents over a
// coprime base modulo n, and returns the two-part factorization.
func compactPresentation(red *factored.Element, n *big.Int, contentBase []*big.Int) (*factored.Element, error) {
	field := red.Field()
	u := red.Expand()
	den := u.Denominator()
	// scale to an integral element and take the coefficient gcd
	scaled := u.Mul(field.FromRat(new(big.Rat).SetInt(den)))
	content := coeffGCD(scaled)
	if contentBase == nil {
		contentBase = factored.CoprimeBase([]*big.Int{content, den})
	}
	pairs := []factored.Pair{}
	rest := new(big.Rat).SetFrac(content, den)
	for _, q := range contentBase {
		v := valuation(content, q) - valuation(den, q)
		if v == 0 {
			continue
		}
		vm := new(big.Int).Mod(big.NewInt(int64(v)), n)
		qr := new(big.Rat).SetInt(q)
		rest.Quo(rest, ratPowInt(qr, v))
		if vm.Sign() != 0 {
			pairs = append(pairs, factored.Pair{Base: field.FromRat(qr), Exp: vm})
		}
	}
	// primitive part times whatever content escaped the base
	prim := scaled.Mul(field.FromRat(new(big.Rat).Inv(new(big.Rat).SetInt(content))))
	prim = prim.Mul(field.FromRat(rest))
	if !prim.IsOne() {
		pairs = append(pairs, factored.Pair{Base: prim, Exp: big.NewInt(1)})
	}
	return factored.New(field, pairs)
}

// coeffGCD returns the gcd of the numerators of an integral element's
// coefficients, the rational content.
func coeffGCD(e *cyclo.Element) *big.Int {
	g := new(big.Int)
	for _, q := range e.Coeffs() {
		g.GCD(nil, nil, g, new(big.Int).Abs(q.Num()))
	}
	if g.Sign() == 0 {
		g.SetInt64(1)
	}
	return g
}

// valuation returns the exact power of q dividing x (x, q > 0, q > 1).
func valuation(x, q *big.Int) int {
	if x.Sign() == 0 || q.Cmp(oneInt) <= 0 {
		return 0
	}
	v := 0
	t := new(big.Int).Set(x)
	rem := new(big.Int)
	for {
		quo, r := new(big.Int).QuoRem(t, q, rem)
		if r.Sign() != 0 {
			return v
		}
		v++
		t = quo
	}
}

// perfectPower returns (r, k) with d = r^k and k maximal; k = 1 when d is
// not a proper power.
func perfectPower(d *big.Int) (*big.Int, int) {
	for k := d.BitLen(); k >= 2; k-- {
		r := iroot(d, k)
		if new(big.Int).Exp(r, big.NewInt(int64(k)), nil).Cmp(d) == 0 {
			return r, k
		}
	}
	return new(big.Int).Set(d), 1
}

// iroot returns floor(d^(1/k)) by binary search on the bit length.
func iroot(d *big.Int, k int) *big.Int {
	if d.Sign() <= 0 {
		return new(big.Int)
	}
	kBig := big.NewInt(int64(k))
	lo := big.NewInt(1)
	hi := new(big.Int).Lsh(oneInt, uint(d.BitLen()/k+1))
	for lo.Cmp(hi) < 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, oneInt)
		mid.Rsh(mid, 1)
		if new(big.Int).Exp(mid, kBig, nil).Cmp(d) <= 0 {
			lo = mid
		} else {
			hi.Sub(mid, oneInt)
		}
	}
	return lo
}

func isDegenerate(v float64) bool {
	return v != v || v > 1e308 || v < -1e308
}

func ratPowInt(q *big.Rat, v int) *big.Rat {
	out := new(big.Rat).SetInt64(1)
	abs := v
	if abs < 0 {
		abs = -abs
	}
	for i := 0; i < abs; i++ {
		out.Mul(out, q)
	}
	if v < 0 {
		out.Inv(out)
	}
	return out
}
