package factored

import "math/big"

// CoprimeBase returns pairwise-coprime integers greater than one such
// that every input is a product of powers of them, by repeated gcd
// splitting. A zero input yields nil; units contribute nothing.
func CoprimeBase(values []*big.Int) []*big.Int {
	var base []*big.Int
	for _, v := range values {
		if v == nil || v.Sign() == 0 {
			return nil
		}
		base = insertCoprime(base, new(big.Int).Abs(v))
	}
	return base
}

// insertCoprime refines the pairwise-coprime base so that it also covers
// v, splitting entries on nontrivial gcds until everything is coprime.
func insertCoprime(base []*big.Int, v *big.Int) []*big.Int {
	queue := []*big.Int{v}
	for len(queue) > 0 {
		x := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if x.Cmp(oneInt) <= 0 {
			continue
		}
		split := false
		for i := 0; i < len(base); i++ {
			g := new(big.Int).GCD(nil, nil, x, base[i])
			if g.Cmp(oneInt) == 0 {
				continue
			}
			if g.Cmp(base[i]) == 0 {
				// base[i] divides x: strip it off and requeue the cofactor
				queue = append(queue, new(big.Int).Div(x, g))
			} else {
				// proper common factor: refine base[i] into {g, base[i]/g}
				b := base[i]
				base = append(base[:i], base[i+1:]...)
				queue = append(queue, g, new(big.Int).Div(b, g), new(big.Int).Div(x, g))
			}
			split = true
			break
		}
		if !split {
			base = append(base, x)
		}
	}
	return base
}
