// Package ffield implements residue finite fields F_p[X]/(pi(X)) in two
// representations: word-sized limbs when the characteristic fits a machine
// word, and arbitrary-precision limbs otherwise. It also provides the
// equal-degree splitting of a squarefree modulus polynomial used to label
// the prime ideals above a rational prime.
package ffield

import (
	"fmt"
	"math/big"
)

// Elem is an opaque finite-field element. Elements may only be combined
// through the Field that created them.
type Elem interface {
	isElem()
}

// Field exposes the arithmetic the Frobenius machinery needs from a residue
// field F_{p^f}.
type Field interface {
	// P returns the residue characteristic.
	P() *big.Int
	// Degree returns f, the extension degree over the prime field.
	Degree() int
	// Order returns p^f.
	Order() *big.Int
	One() Elem
	// FromPoly maps an integer-coefficient polynomial in the residue class
	// of X to a field element, reducing coefficients mod p and the
	// polynomial mod pi.
	FromPoly(coeffs []*big.Int) Elem
	Mul(a, b Elem) Elem
	// Inv returns the multiplicative inverse. It panics on zero.
	Inv(a Elem) Elem
	Pow(a Elem, e *big.Int) Elem
	IsOne(a Elem) bool
	IsZero(a Elem) bool
	Equal(a, b Elem) bool
}

// wordLimit bounds the characteristic of the word-sized representation so
// that bits.Mul64 products never overflow the reduction.
const wordLimit = 62

// New constructs the residue field F_p[X]/(pi). pi must be monic modulo p
// of degree >= 1. The word-sized representation is chosen whenever p fits
// wordLimit bits.
func New(p *big.Int, pi []*big.Int) (Field, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, fmt.Errorf("ffield: characteristic must be positive")
	}
	f := len(pi) - 1
	if f < 1 {
		return nil, fmt.Errorf("ffield: modulus polynomial must have degree >= 1")
	}
	lead := new(big.Int).Mod(pi[f], p)
	if lead.Cmp(oneInt) != 0 {
		return nil, fmt.Errorf("ffield: modulus polynomial must be monic mod p")
	}
	if p.BitLen() <= wordLimit {
		return newWordField(p.Uint64(), pi), nil
	}
	return newBigField(p, pi), nil
}

var oneInt = big.NewInt(1)
