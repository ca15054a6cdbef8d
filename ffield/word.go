package ffield

import (
	"math/big"
	"math/bits"
)

// wordElem holds the f power-basis limbs of an element, each reduced mod p.
type wordElem []uint64

func (wordElem) isElem() {}

// wordField is F_p[X]/(pi) with word-sized characteristic.
type wordField struct {
	p  uint64
	f  int
	pi []uint64 // monic, length f+1
}

func newWordField(p uint64, pi []*big.Int) *wordField {
	pb := new(big.Int).SetUint64(p)
	w := make([]uint64, len(pi))
	tmp := new(big.Int)
	for i, c := range pi {
		w[i] = tmp.Mod(c, pb).Uint64()
	}
	return &wordField{p: p, f: len(pi) - 1, pi: w}
}

func (k *wordField) P() *big.Int { return new(big.Int).SetUint64(k.p) }
func (k *wordField) Degree() int { return k.f }

func (k *wordField) Order() *big.Int {
	q := new(big.Int).SetUint64(k.p)
	return q.Exp(q, big.NewInt(int64(k.f)), nil)
}

func (k *wordField) zero() wordElem { return make(wordElem, k.f) }

func (k *wordField) One() Elem {
	e := k.zero()
	e[0] = 1 % k.p
	return e
}

func (k *wordField) FromPoly(coeffs []*big.Int) Elem {
	pb := new(big.Int).SetUint64(k.p)
	tmp := new(big.Int)
	c := make([]uint64, len(coeffs))
	for i, v := range coeffs {
		c[i] = tmp.Mod(v, pb).Uint64()
	}
	return wordElem(k.reduce(c))
}

// reduce brings a coefficient slice of any length below degree f modulo pi.
func (k *wordField) reduce(c []uint64) []uint64 {
	for i := len(c) - 1; i >= k.f; i-- {
		lead := c[i] % k.p
		if lead == 0 {
			continue
		}
		c[i] = 0
		for j := 0; j < k.f; j++ {
			c[i-k.f+j] = modSub64(c[i-k.f+j], modMul64(lead, k.pi[j], k.p), k.p)
		}
	}
	out := make([]uint64, k.f)
	copy(out, c)
	for i := range out {
		out[i] %= k.p
	}
	return out
}

func (k *wordField) Mul(a, b Elem) Elem {
	x, y := a.(wordElem), b.(wordElem)
	tmp := make([]uint64, 2*k.f)
	for i := 0; i < k.f; i++ {
		if x[i] == 0 {
			continue
		}
		for j := 0; j < k.f; j++ {
			if y[j] == 0 {
				continue
			}
			tmp[i+j] = modAdd64(tmp[i+j], modMul64(x[i], y[j], k.p), k.p)
		}
	}
	return wordElem(k.reduce(tmp))
}

func (k *wordField) Pow(a Elem, e *big.Int) Elem {
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

func (k *wordField) Inv(a Elem) Elem {
	if k.IsZero(a) {
		panic("ffield: inverse of zero element")
	}
	e := k.Order()
	e.Sub(e, big.NewInt(2))
	return k.Pow(a, e)
}

func (k *wordField) IsZero(a Elem) bool {
	for _, v := range a.(wordElem) {
		if v%k.p != 0 {
			return false
		}
	}
	return true
}

func (k *wordField) IsOne(a Elem) bool {
	x := a.(wordElem)
	if x[0]%k.p != 1%k.p {
		return false
	}
	for _, v := range x[1:] {
		if v%k.p != 0 {
			return false
		}
	}
	return true
}

func (k *wordField) Equal(a, b Elem) bool {
	x, y := a.(wordElem), b.(wordElem)
	for i := range x {
		if x[i]%k.p != y[i]%k.p {
			return false
		}
	}
	return true
}

func modAdd64(a, b, p uint64) uint64 {
	a %= p
	b %= p
	s := a + b
	if s >= p || s < a {
		s -= p
	}
	return s
}

func modSub64(a, b, p uint64) uint64 {
	a %= p
	b %= p
	if a >= b {
		return a - b
	}
	return a + p - b
}

func modMul64(a, b, p uint64) uint64 {
	a %= p
	b %= p
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, p)
	return rem
}
