package cyclo

import (
	"math"
	"math/big"
	"math/cmplx"
)

// LogEmbeddingBound returns an upper bound on max_sigma log|sigma(e)| over
// the complex embeddings of the field, evaluated in floating point. prec
// escalates the working precision: 0 evaluates coefficients as float64,
// larger values round them through 64*(prec+1)-bit floats first, which
// matters only when coefficients overflow or cancel at double precision.
// The bound for the zero element is -Inf.
func (e *Element) LogEmbeddingBound(prec uint) float64 {
	if e.IsZero() {
		return math.Inf(-1)
	}
	coeffs := make([]complex128, len(e.c))
	for i, q := range e.c {
		coeffs[i] = complex(ratFloat(q, prec), 0)
	}
	m := float64(e.f.m)
	best := math.Inf(-1)
	for k := 1; k <= e.f.m; k++ {
		if gcdInt(k, e.f.m) != 1 {
			continue
		}
		z := cmplx.Exp(complex(0, 2*math.Pi*float64(k)/m))
		// Horner evaluation at the k-th primitive root.
		acc := complex(0, 0)
		for i := len(coeffs) - 1; i >= 0; i-- {
			acc = acc*z + coeffs[i]
		}
		if v := math.Log(cmplx.Abs(acc)); v > best {
			best = v
		}
	}
	return best
}

// ratFloat converts a rational to float64 through a big.Float of the
// requested escalated precision.
func ratFloat(q *big.Rat, prec uint) float64 {
	if prec == 0 {
		f, _ := q.Float64()
		return f
	}
	bf := new(big.Float).SetPrec(64 * (prec + 1)).SetRat(q)
	f, _ := bf.Float64()
	return f
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
