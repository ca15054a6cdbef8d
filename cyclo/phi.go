package cyclo

import "math/big"

// Cyclotomic returns the coefficients of the m-th cyclotomic polynomial
// Phi_m, constant term first. It divides x^m - 1 by the product of Phi_d
// over the proper divisors d of m; every division is exact over Z.
func Cyclotomic(m int) []*big.Int {
	if m < 1 {
		panic("cyclo: cyclotomic index must be positive")
	}
	// x^m - 1
	num := make([]*big.Int, m+1)
	for i := range num {
		num[i] = new(big.Int)
	}
	num[0].SetInt64(-1)
	num[m].SetInt64(1)
	for d := 1; d < m; d++ {
		if m%d != 0 {
			continue
		}
		num = intPolyDivExact(num, Cyclotomic(d))
	}
	return num
}

// EulerPhi returns Euler's totient of m.
func EulerPhi(m int) int {
	out := 1
	for p := 2; p*p <= m; p++ {
		if m%p != 0 {
			continue
		}
		out *= p - 1
		m /= p
		for m%p == 0 {
			out *= p
			m /= p
		}
	}
	if m > 1 {
		out *= m - 1
	}
	return out
}

// intPolyDivExact divides a by the monic polynomial b over Z. It panics if
// the division leaves a remainder.
func intPolyDivExact(a, b []*big.Int) []*big.Int {
	da, db := len(a)-1, len(b)-1
	if b[db].Cmp(bigOne) != 0 {
		panic("cyclo: divisor must be monic")
	}
	rem := make([]*big.Int, len(a))
	for i, v := range a {
		rem[i] = new(big.Int).Set(v)
	}
	q := make([]*big.Int, da-db+1)
	tmp := new(big.Int)
	for i := da; i >= db; i-- {
		c := new(big.Int).Set(rem[i])
		q[i-db] = c
		if c.Sign() == 0 {
			continue
		}
		for j := 0; j <= db; j++ {
			rem[i-db+j].Sub(rem[i-db+j], tmp.Mul(c, b[j]))
		}
	}
	for _, v := range rem {
		if v.Sign() != 0 {
			panic("cyclo: inexact cyclotomic division")
		}
	}
	return q
}

var bigOne = big.NewInt(1)
