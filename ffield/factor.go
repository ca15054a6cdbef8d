package ffield

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// maxExhaustiveDegree bounds the productized divisor search used for
// characteristic two, where the Cantor-Zassenhaus split is unavailable.
const maxExhaustiveDegree = 16

// EqualDegreeFactors factors a squarefree polynomial known to split into
// distinct monic irreducible factors of degree f modulo the odd-or-even
// prime p, returning the factors as monic coefficient slices. The random
// splits are driven by a PRNG keyed on p, so the factor order is
// deterministic for a given prime.
func EqualDegreeFactors(p *big.Int, coeffs []*big.Int, f int) ([][]*big.Int, error) {
	g := polyNormalize(coeffs, p)
	deg := len(g) - 1
	if deg <= 0 {
		return nil, fmt.Errorf("ffield: cannot factor a constant polynomial")
	}
	if f <= 0 || deg%f != 0 {
		return nil, fmt.Errorf("ffield: degree %d is not a multiple of the factor degree %d", deg, f)
	}
	g = polyMonic(g, p)
	if deg == f {
		return [][]*big.Int{g}, nil
	}
	if p.Cmp(twoInt) == 0 {
		return factorsMod2(g, f)
	}

	key := p.Bytes()
	if len(key) > 64 {
		key = key[:64]
	}
	prng, err := utils.NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("ffield: prng: %w", err)
	}
	// exponent (p^f - 1)/2 of the Cantor-Zassenhaus probe
	exp := new(big.Int).Exp(p, big.NewInt(int64(f)), nil)
	exp.Sub(exp, big.NewInt(1))
	exp.Rsh(exp, 1)

	var out [][]*big.Int
	stack := [][]*big.Int{g}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(cur)-1 == f {
			out = append(out, cur)
			continue
		}
		h, err := splitOnce(cur, p, exp, prng)
		if err != nil {
			return nil, err
		}
		q, r := polyDivMod(cur, h, p)
		if !polyIsZero(r) {
			panic("ffield: split factor does not divide")
		}
		stack = append(stack, h, polyMonic(q, p))
	}
	return out, nil
}

// splitOnce finds a proper monic factor of g via a random probe
// r^((p^f-1)/2) - 1 and a gcd with g.
func splitOnce(g []*big.Int, p, exp *big.Int, prng utils.PRNG) ([]*big.Int, error) {
	const maxTries = 256
	for try := 0; try < maxTries; try++ {
		r := randomPoly(len(g)-2, p, prng)
		s := polyPowMod(r, exp, g, p)
		h := polyGCD(polySub(s, []*big.Int{oneInt}, p), g, p)
		if len(h)-1 > 0 && len(h) < len(g) {
			return h, nil
		}
	}
	return nil, fmt.Errorf("ffield: equal-degree split did not converge")
}

// factorsMod2 peels degree-f divisors of g off by exhaustive search. Any
// monic degree-f divisor of a squarefree equal-degree product is itself
// irreducible, so divisibility is the only test needed.
func factorsMod2(g []*big.Int, f int) ([][]*big.Int, error) {
	if f > maxExhaustiveDegree {
		return nil, fmt.Errorf("ffield: residue degree %d too large for characteristic 2", f)
	}
	p := twoInt
	var out [][]*big.Int
	for len(g)-1 > 0 {
		found := false
		for mask := 0; mask < 1<<f; mask++ {
			cand := make([]*big.Int, f+1)
			for i := 0; i < f; i++ {
				cand[i] = big.NewInt(int64((mask >> i) & 1))
			}
			cand[f] = big.NewInt(1)
			q, r := polyDivMod(g, cand, p)
			if polyIsZero(r) {
				out = append(out, cand)
				g = polyMonic(q, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("ffield: no degree-%d divisor found mod 2", f)
		}
	}
	return out, nil
}

func randomPoly(deg int, p *big.Int, prng utils.PRNG) []*big.Int {
	if deg < 1 {
		deg = 1
	}
	n := (p.BitLen() + 15) / 8
	buf := make([]byte, n)
	out := make([]*big.Int, deg+1)
	for i := range out {
		if _, err := prng.Read(buf); err != nil {
			panic(fmt.Sprintf("ffield: prng read: %v", err))
		}
		out[i] = new(big.Int).SetBytes(buf)
		out[i].Mod(out[i], p)
	}
	return polyNormalize(out, p)
}

var twoInt = big.NewInt(2)

// ---------------- F_p[X] helpers ----------------

// polyNormalize reduces coefficients into [0,p) and trims leading zeros.
func polyNormalize(c []*big.Int, p *big.Int) []*big.Int {
	out := make([]*big.Int, len(c))
	for i, v := range c {
		out[i] = new(big.Int).Mod(v, p)
	}
	i := len(out) - 1
	for i > 0 && out[i].Sign() == 0 {
		i--
	}
	return out[:i+1]
}

func polyIsZero(c []*big.Int) bool {
	return len(c) == 1 && c[0].Sign() == 0
}

// polyMonic scales c so its leading coefficient is one.
func polyMonic(c []*big.Int, p *big.Int) []*big.Int {
	c = polyNormalize(c, p)
	lead := c[len(c)-1]
	if lead.Cmp(oneInt) == 0 {
		return c
	}
	inv := new(big.Int).ModInverse(lead, p)
	if inv == nil {
		panic("ffield: leading coefficient not invertible")
	}
	out := make([]*big.Int, len(c))
	for i, v := range c {
		out[i] = new(big.Int).Mul(v, inv)
		out[i].Mod(out[i], p)
	}
	return out
}

func polySub(a, b []*big.Int, p *big.Int) []*big.Int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = new(big.Int)
		if i < len(a) {
			out[i].Set(a[i])
		}
		if i < len(b) {
			out[i].Sub(out[i], b[i])
		}
		out[i].Mod(out[i], p)
	}
	return polyNormalize(out, p)
}

func polyMul(a, b []*big.Int, p *big.Int) []*big.Int {
	out := make([]*big.Int, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i := range a {
		if a[i].Sign() == 0 {
			continue
		}
		for j := range b {
			if b[j].Sign() == 0 {
				continue
			}
			tmp.Mul(a[i], b[j])
			out[i+j].Add(out[i+j], tmp)
			out[i+j].Mod(out[i+j], p)
		}
	}
	return polyNormalize(out, p)
}

func polyDivMod(a, b []*big.Int, p *big.Int) (q, r []*big.Int) {
	a = polyNormalize(a, p)
	b = polyNormalize(b, p)
	if polyIsZero(b) {
		panic("ffield: division by zero polynomial")
	}
	if len(a) < len(b) {
		return []*big.Int{new(big.Int)}, a
	}
	rem := make([]*big.Int, len(a))
	for i, v := range a {
		rem[i] = new(big.Int).Set(v)
	}
	quot := make([]*big.Int, len(a)-len(b)+1)
	for i := range quot {
		quot[i] = new(big.Int)
	}
	invLead := new(big.Int).ModInverse(b[len(b)-1], p)
	if invLead == nil {
		panic("ffield: divisor leading coefficient not invertible")
	}
	tmp := new(big.Int)
	for i := len(a) - 1; i >= len(b)-1; i-- {
		coeff := new(big.Int).Mul(rem[i], invLead)
		coeff.Mod(coeff, p)
		if coeff.Sign() != 0 {
			quot[i-(len(b)-1)].Set(coeff)
			for j := 0; j < len(b); j++ {
				tmp.Mul(coeff, b[j])
				rem[i-(len(b)-1)+j].Sub(rem[i-(len(b)-1)+j], tmp)
				rem[i-(len(b)-1)+j].Mod(rem[i-(len(b)-1)+j], p)
			}
		}
	}
	return polyNormalize(quot, p), polyNormalize(rem[:len(b)-1], p)
}

func polyMod(a, b []*big.Int, p *big.Int) []*big.Int {
	_, r := polyDivMod(a, b, p)
	return r
}

func polyGCD(a, b []*big.Int, p *big.Int) []*big.Int {
	x := polyNormalize(a, p)
	y := polyNormalize(b, p)
	for !polyIsZero(y) {
		_, r := polyDivMod(x, y, p)
		x, y = y, r
	}
	return polyMonic(x, p)
}

func polyPowMod(base []*big.Int, exp *big.Int, modulus []*big.Int, p *big.Int) []*big.Int {
	result := []*big.Int{big.NewInt(1)}
	b := polyMod(base, modulus, p)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		result = polyMod(polyMul(result, result, p), modulus, p)
		if exp.Bit(i) == 1 {
			result = polyMod(polyMul(result, b, p), modulus, p)
		}
	}
	return result
}
