package kummer

import (
	"fmt"
	"math/big"

	"kummer-CFT/abgroup"
	"kummer-CFT/cyclo"
	"kummer-CFT/factored"
)

// EmbeddingImage is the image of one generator of the smaller extension:
// a factored element of the larger one together with its exponent vector
// with respect to the larger extension's generators.
type EmbeddingImage struct {
	Element *factored.Element
	Coords  []*big.Int
}

// Embedding is the outcome of a subfield test. When OK is false the
// images are empty; a failed match is a result, not an error.
type Embedding struct {
	OK     bool
	Images []EmbeddingImage
}

// IsSubfield decides whether K embeds into L over their common base field
// by matching Frobenius data at shared primes. K and L must live over the
// same base field and exponent(K) must divide exponent(L); violating
// either is caller misuse and fails with an error. The prime stream
// supplies the candidates for the underlying generating-prime scan.
func IsSubfield(K, L *Extension, stream *cyclo.PrimeStream) (*Embedding, error) {
	if K.field != L.field {
		return nil, fmt.Errorf("kummer: extensions live over different base fields (%s vs %s)",
			K.Fingerprint(), L.Fingerprint())
	}
	e := L.Exponent()
	if new(big.Int).Mod(e, K.n).Sign() != 0 {
		return nil, fmt.Errorf("kummer: exponent %s of K does not divide exponent %s of L", K.n.String(), e.String())
	}

	cp := embeddingExclusion(K, L)

	// Scan L for generating primes, additionally requiring each prime to
	// be usable for every generator of K, so the same prime's Frobenius
	// is defined on both sides. The K-side exponents are collected along
	// the way, lifted to the level of exponent(L).
	kside := make(map[string][]*big.Int)
	usable := func(pr *cyclo.PrimeIdeal) bool {
		lifts := make([]*big.Int, len(K.gens))
		for i, g := range K.gens {
			a, err := K.FrobeniusOn(g, K.orders[i], pr)
			if err != nil {
				return false
			}
			lifts[i] = a.Mul(a, new(big.Int).Div(e, K.orders[i]))
		}
		kside[pr.Key()] = lifts
		return true
	}
	res, err := L.scanForGenerators(stream, cp, usable)
	if err != nil {
		return nil, err
	}

	// For each K generator solve the congruence system over the accepted
	// primes: sum_t (e/m_t) a_{j,t} x_t = c_j (mod e), with a_{j,t} the
	// L-side Frobenius coordinates and c_j the lifted K-side exponent.
	lifts := make([][]*big.Int, len(res.Ideals))
	mat := make([][]*big.Int, len(res.Ideals))
	for j, pr := range res.Ideals {
		lifts[j] = kside[pr.Key()]
		row := make([]*big.Int, len(L.gens))
		for t := range L.gens {
			row[t] = new(big.Int).Div(e, L.orders[t])
			row[t].Mul(row[t], res.Frobenii[j][t])
		}
		mat[j] = row
	}
	images := make([]EmbeddingImage, len(K.gens))
	for i := range K.gens {
		b := make([]*big.Int, len(res.Ideals))
		for j := range res.Ideals {
			b[j] = lifts[j][i]
		}
		x, ok := abgroup.SolveMod(mat, b, e)
		if !ok {
			return &Embedding{OK: false}, nil
		}
		if x == nil {
			x = make([]*big.Int, len(L.gens))
			for t := range x {
				x[t] = new(big.Int)
			}
		}
		for t := range x {
			x[t].Mod(x[t], L.orders[t])
		}
		images[i] = EmbeddingImage{Element: factoredFromCoords(L, x), Coords: x}
	}
	return &Embedding{OK: true, Images: images}, nil
}

// embeddingExclusion builds the integer whose prime divisors must be
// avoided during the embedding scan: a coprime factorization base of the
// generator norms and denominators of both extensions and exponent(L).
func embeddingExclusion(K, L *Extension) *big.Int {
	values := []*big.Int{L.Exponent()}
	for _, g := range append(append([]*factored.Element{}, K.gens...), L.gens...) {
		nrm := g.Norm()
		values = append(values, new(big.Int).Set(nrm.Num()), new(big.Int).Set(nrm.Denom()))
		values = append(values, g.Denominator())
	}
	cp := big.NewInt(1)
	for _, b := range factored.CoprimeBase(values) {
		cp.Mul(cp, b)
	}
	return cp
}

// factoredFromCoords forms prod l_t^(x_t) over L's generators.
func factoredFromCoords(L *Extension, x []*big.Int) *factored.Element {
	acc, _ := factored.New(L.field, nil)
	for t, g := range L.gens {
		if x[t].Sign() == 0 {
			continue
		}
		acc = acc.Mul(g.Pow(x[t]))
	}
	return acc
}
