package kummer

import (
	"errors"
	"fmt"
	"math/big"

	"kummer-CFT/abgroup"
	"kummer-CFT/cyclo"
	"kummer-CFT/factored"
	"kummer-CFT/ffield"
)

// ErrBadPrime marks a prime that cannot be used for Frobenius evaluation:
// the residue characteristic divides the index of the order, the residue
// field does not contain the needed roots of unity, or a required image
// degenerates. Callers skip the prime and move on.
var ErrBadPrime = errors.New("kummer: prime unusable for Frobenius evaluation")

// CanonicalFrobenius returns the automorphism induced by the unramified
// prime ideal pr, as the element (a_1,...,a_k) of the automorphism group:
// the automorphism multiplies the root g_i^(1/d_i) by zeta^(n/d_i * a_i).
// Results are cached per ideal; a cached entry is returned verbatim.
func (K *Extension) CanonicalFrobenius(pr *cyclo.PrimeIdeal) (abgroup.Element, error) {
	if e, ok := K.frobCache[pr.Key()]; ok {
		return e, nil
	}
	if K.field.Ramified(pr.P) {
		return nil, fmt.Errorf("%w: %s ramifies in the base field", ErrBadPrime, pr.P.String())
	}
	if !K.field.OrderIndexCoprime(pr.P) {
		return nil, fmt.Errorf("%w: %s divides the index of the order", ErrBadPrime, pr.P.String())
	}
	qm1 := pr.Norm()
	qm1.Sub(qm1, oneInt)
	if new(big.Int).Mod(qm1, K.n).Sign() != 0 {
		return nil, fmt.Errorf("%w: norm of %s is not 1 mod %s", ErrBadPrime, pr.Key(), K.n.String())
	}
	rm, err := K.field.NewResidueMap(pr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPrime, err)
	}
	zp, err := rm.Apply(K.zeta)
	if err != nil || rm.Codomain().IsZero(zp) {
		return nil, fmt.Errorf("%w: image of the root of unity degenerates at %s", ErrBadPrime, pr.Key())
	}

	red := K.reducedGenerators()
	coords := make([]*big.Int, len(red))
	for i, g := range red {
		a, err := K.frobeniusExponent(rm, zp, g, K.orders[i], qm1)
		if err != nil {
			return nil, err
		}
		coords[i] = a
	}
	elem := abgroup.Element(coords)
	K.frobCache[pr.Key()] = elem
	return elem, nil
}

// FrobeniusOn evaluates the Frobenius action of pr on an arbitrary
// factored element a of claimed order d dividing n, returning the
// exponent in [0,d). Nothing is cached, the input varies per call.
func (K *Extension) FrobeniusOn(a *factored.Element, d *big.Int, pr *cyclo.PrimeIdeal) (*big.Int, error) {
	if new(big.Int).Mod(K.n, d).Sign() != 0 {
		return nil, fmt.Errorf("kummer: order %s does not divide the exponent %s", d.String(), K.n.String())
	}
	if K.field.Ramified(pr.P) {
		return nil, fmt.Errorf("%w: %s ramifies in the base field", ErrBadPrime, pr.P.String())
	}
	qm1 := pr.Norm()
	qm1.Sub(qm1, oneInt)
	if new(big.Int).Mod(qm1, K.n).Sign() != 0 {
		return nil, fmt.Errorf("%w: norm of %s is not 1 mod %s", ErrBadPrime, pr.Key(), K.n.String())
	}
	rm, err := K.field.NewResidueMap(pr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPrime, err)
	}
	zp, err := rm.Apply(K.zeta)
	if err != nil || rm.Codomain().IsZero(zp) {
		return nil, fmt.Errorf("%w: image of the root of unity degenerates at %s", ErrBadPrime, pr.Key())
	}
	return K.frobeniusExponent(rm, zp, a, d, qm1)
}

// frobeniusExponent computes the discrete log a in [0,d) with
// image(g)^((q-1)/d) = (zeta_p^(n/d))^a by bounded trial multiplication
// against the inverse step zeta_p^(n-1) raised to n/d.
func (K *Extension) frobeniusExponent(rm *cyclo.ResidueMap, zp ffield.Elem, g *factored.Element, d, qm1 *big.Int) (*big.Int, error) {
	k := rm.Codomain()
	img, err := K.projectFactored(rm, g)
	if err != nil {
		return nil, err
	}
	x := k.Pow(img, new(big.Int).Div(qm1, d))
	// zeta_p^(n-1) = zeta_p^(-1); stepping by its (n/d)-th power walks the
	// subgroup of order d backwards.
	step := k.Pow(k.Pow(zp, new(big.Int).Sub(K.n, oneInt)), new(big.Int).Div(K.n, d))
	a := new(big.Int)
	running := x
	for !k.IsOne(running) {
		running = k.Mul(running, step)
		a.Add(a, oneInt)
		if a.Cmp(K.n) >= 0 {
			panic(fmt.Sprintf("kummer: discrete log at %s exceeded the exponent bound; a generator does not have its claimed order", rm.Ideal().Key()))
		}
	}
	return a, nil
}

// projectFactored maps a factored element into the residue field,
// reducing exponents modulo the multiplicative group order on the way. A
// vanishing base image makes the projection degenerate.
func (K *Extension) projectFactored(rm *cyclo.ResidueMap, g *factored.Element) (ffield.Elem, error) {
	k := rm.Codomain()
	qm1 := k.Order()
	qm1.Sub(qm1, oneInt)
	acc := k.One()
	for _, p := range g.Pairs() {
		img, err := rm.Apply(p.Base)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPrime, err)
		}
		if k.IsZero(img) {
			return nil, fmt.Errorf("%w: generator base vanishes at %s", ErrBadPrime, rm.Ideal().Key())
		}
		acc = k.Mul(acc, k.Pow(img, new(big.Int).Mod(p.Exp, qm1)))
	}
	K.residueProjections++
	return acc, nil
}

var oneInt = big.NewInt(1)
