// Package kummer computes with Kummer extensions of a cyclotomic base
// field: canonical Frobenius automorphisms at unramified primes, minimal
// Frobenius-generating prime sets, subfield embeddings matched through
// Frobenius data, and size-controlled reduction modulo n-th powers.
package kummer

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"

	"kummer-CFT/abgroup"
	"kummer-CFT/cyclo"
	"kummer-CFT/factored"
)

// Extension is a Kummer extension of exponent n over Q(zeta_m), generated
// by the n-th (or d_i-th) roots of the given factored elements. The value
// is immutable apart from the lazily populated caches, which are written
// once per key; concurrent first population is the caller's problem, the
// intended usage is single-writer.
type Extension struct {
	field  *cyclo.Field
	n      *big.Int
	zeta   *cyclo.Element // fixed root of unity of exact order n
	gens   []*factored.Element
	orders []*big.Int
	group  *abgroup.Group

	reducedGens []*factored.Element        // lazy, §reduced generators
	frobCache   map[string]abgroup.Element // prime-ideal key -> Frobenius
	genPrimes   map[string]*ScanResult     // exclusion parameter -> scan result

	// instrumentation, read by tests
	residueProjections int
	reductionRuns      int
}

// New constructs the extension with every generator of uniform order n.
func New(field *cyclo.Field, n *big.Int, gens []*factored.Element) (*Extension, error) {
	orders := make([]*big.Int, len(gens))
	for i := range orders {
		orders[i] = new(big.Int).Set(n)
	}
	return NewWithOrders(field, n, gens, orders)
}

// NewWithOrders constructs the extension with a per-generator order
// vector; every order must divide n, and the conductor of the base field
// must be a multiple of n so that it contains the needed roots of unity.
func NewWithOrders(field *cyclo.Field, n *big.Int, gens []*factored.Element, orders []*big.Int) (*Extension, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("kummer: exponent must be positive")
	}
	if len(gens) != len(orders) {
		return nil, fmt.Errorf("kummer: %d generators but %d orders", len(gens), len(orders))
	}
	m := big.NewInt(int64(field.Conductor()))
	if new(big.Int).Mod(m, n).Sign() != 0 {
		return nil, fmt.Errorf("kummer: root-of-unity order %d is not a multiple of the exponent %s", field.Conductor(), n.String())
	}
	rem := new(big.Int)
	for i, d := range orders {
		if d == nil || d.Sign() <= 0 {
			return nil, fmt.Errorf("kummer: order of generator %d must be positive", i)
		}
		if rem.Mod(n, d).Sign() != 0 {
			return nil, fmt.Errorf("kummer: order %s of generator %d does not divide the exponent %s", d.String(), i, n.String())
		}
		if gens[i] == nil || gens[i].Field() != field {
			return nil, fmt.Errorf("kummer: generator %d not over the given base field", i)
		}
	}
	grp, err := abgroup.New(orders)
	if err != nil {
		return nil, fmt.Errorf("kummer: automorphism group: %w", err)
	}
	ords := make([]*big.Int, len(orders))
	for i, d := range orders {
		ords[i] = new(big.Int).Set(d)
	}
	zeta := field.Zeta().Pow(new(big.Int).Div(m, n))
	return &Extension{
		field:     field,
		n:         new(big.Int).Set(n),
		zeta:      zeta,
		gens:      gens,
		orders:    ords,
		group:     grp,
		frobCache: make(map[string]abgroup.Element),
		genPrimes: make(map[string]*ScanResult),
	}, nil
}

// Field returns the base field.
func (K *Extension) Field() *cyclo.Field { return K.field }

// Exponent returns n.
func (K *Extension) Exponent() *big.Int { return new(big.Int).Set(K.n) }

// Generators returns the generator list; the slice is shared, the entries
// are immutable.
func (K *Extension) Generators() []*factored.Element { return K.gens }

// Orders returns a copy of the per-generator orders.
func (K *Extension) Orders() []*big.Int {
	out := make([]*big.Int, len(K.orders))
	for i, d := range K.orders {
		out[i] = new(big.Int).Set(d)
	}
	return out
}

// Group returns the automorphism group, of order prod orders.
func (K *Extension) Group() *abgroup.Group { return K.group }

// IsCyclic reports whether the automorphism group is cyclic.
func (K *Extension) IsCyclic() bool {
	return len(K.gens) <= 1 || K.group.IsCyclic()
}

// Fingerprint returns a short stable digest of the base field and the
// generator data, used to compare extensions for same-base preconditions
// and in reports.
func (K *Extension) Fingerprint() string {
	h := sha3.NewShake256()
	fmt.Fprintf(h, "zeta:%d|n:%s", K.field.Conductor(), K.n.String())
	for i, g := range K.gens {
		fmt.Fprintf(h, "|g%d:%s^", i, K.orders[i].String())
		for _, p := range g.Pairs() {
			fmt.Fprintf(h, "(%s;%s)", p.Base.String(), p.Exp.String())
		}
	}
	var sum [16]byte
	h.Read(sum[:])
	return hex.EncodeToString(sum[:])
}

// reducedGenerators returns the generators with their exponents reduced
// modulo their own orders, computed once and reused by every Frobenius
// evaluation. The reduction is the dominant prime-independent cost.
func (K *Extension) reducedGenerators() []*factored.Element {
	if K.reducedGens != nil {
		return K.reducedGens
	}
	red := make([]*factored.Element, len(K.gens))
	for i, g := range K.gens {
		r, err := ReduceModPowers(g, K.orders[i])
		if err != nil {
			// generators are validated at construction; a failing
			// reduction means a zero base slipped through
			panic(fmt.Sprintf("kummer: reducing generator %d: %v", i, err))
		}
		red[i] = r
		K.reductionRuns++
	}
	K.reducedGens = red
	return red
}
