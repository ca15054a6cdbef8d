package ffield

import "math/big"

// bigElem holds the f power-basis limbs as arbitrary-precision integers in
// [0, p).
type bigElem []*big.Int

func (bigElem) isElem() {}

// bigField mirrors wordField for characteristics beyond the word limit.
type bigField struct {
	p  *big.Int
	f  int
	pi []*big.Int // monic, length f+1, coefficients in [0, p)
}

func newBigField(p *big.Int, pi []*big.Int) *bigField {
	norm := make([]*big.Int, len(pi))
	for i, c := range pi {
		norm[i] = new(big.Int).Mod(c, p)
	}
	return &bigField{p: new(big.Int).Set(p), f: len(pi) - 1, pi: norm}
}

func (k *bigField) P() *big.Int { return new(big.Int).Set(k.p) }
func (k *bigField) Degree() int { return k.f }

func (k *bigField) Order() *big.Int {
	return new(big.Int).Exp(k.p, big.NewInt(int64(k.f)), nil)
}

func (k *bigField) zero() bigElem {
	e := make(bigElem, k.f)
	for i := range e {
		e[i] = new(big.Int)
	}
	return e
}

func (k *bigField) One() Elem {
	e := k.zero()
	e[0].SetInt64(1)
	return e
}

func (k *bigField) FromPoly(coeffs []*big.Int) Elem {
	c := make([]*big.Int, len(coeffs))
	for i, v := range coeffs {
		c[i] = new(big.Int).Mod(v, k.p)
	}
	return bigElem(k.reduce(c))
}

func (k *bigField) reduce(c []*big.Int) []*big.Int {
	tmp := new(big.Int)
	for i := len(c) - 1; i >= k.f; i-- {
		if c[i].Sign() == 0 {
			continue
		}
		lead := new(big.Int).Set(c[i])
		c[i].SetInt64(0)
		for j := 0; j < k.f; j++ {
			tmp.Mul(lead, k.pi[j])
			c[i-k.f+j].Sub(c[i-k.f+j], tmp)
			c[i-k.f+j].Mod(c[i-k.f+j], k.p)
		}
	}
	out := make([]*big.Int, k.f)
	for i := 0; i < k.f; i++ {
		if i < len(c) {
			out[i] = new(big.Int).Mod(c[i], k.p)
		} else {
			out[i] = new(big.Int)
		}
	}
	return out
}

func (k *bigField) Mul(a, b Elem) Elem {
	x, y := a.(bigElem), b.(bigElem)
	tmp := make([]*big.Int, 2*k.f)
	for i := range tmp {
		tmp[i] = new(big.Int)
	}
	prod := new(big.Int)
	for i := 0; i < k.f; i++ {
		if x[i].Sign() == 0 {
			continue
		}
		for j := 0; j < k.f; j++ {
			if y[j].Sign() == 0 {
				continue
			}
			prod.Mul(x[i], y[j])
			tmp[i+j].Add(tmp[i+j], prod)
			tmp[i+j].Mod(tmp[i+j], k.p)
		}
	}
	return bigElem(k.reduce(tmp))
}

func (k *bigField) Pow(a Elem, e *big.Int) Elem {
	if e == nil || e.Sign() == 0 {
		return k.One()
	}
	if e.Sign() < 0 {
		return k.Pow(k.Inv(a), new(big.Int).Neg(e))
	}
	res := k.One()
	for i := e.BitLen() - 1; i >= 0; i-- {
		res = k.Mul(res, res)
		if e.Bit(i) == 1 {
			res = k.Mul(res, a)
		}
	}
	return res
}

func (k *bigField) Inv(a Elem) Elem {
	if k.IsZero(a) {
		panic("ffield: inverse of zero element")
	}
	e := k.Order()
	e.Sub(e, big.NewInt(2))
	return k.Pow(a, e)
}

func (k *bigField) IsZero(a Elem) bool {
	for _, v := range a.(bigElem) {
		if v.Sign() != 0 {
			return false
		}
	}
	return true
}

func (k *bigField) IsOne(a Elem) bool {
	x := a.(bigElem)
	if x[0].Cmp(oneInt) != 0 {
		return false
	}
	for _, v := range x[1:] {
		if v.Sign() != 0 {
			return false
		}
	}
	return true
}

func (k *bigField) Equal(a, b Elem) bool {
	x, y := a.(bigElem), b.(bigElem)
	for i := range x {
		if x[i].Cmp(y[i]) != 0 {
			return false
		}
	}
	return true
}
