// Package abgroup implements finite abelian groups presented as Z^k modulo
// an integer relation matrix, with Smith-normal-form reduction, quotients by
// generating subsets and coordinate extraction in the SNF basis.
package abgroup

import (
	"fmt"
	"math/big"
)

// Element is a group element given by its coordinates with respect to the
// ambient generators of the presentation.
type Element []*big.Int

// NewElement builds an element from int64 coordinates.
func NewElement(vals ...int64) Element {
	e := make(Element, len(vals))
	for i, v := range vals {
		e[i] = big.NewInt(v)
	}
	return e
}

// Add returns e + o componentwise.
func (e Element) Add(o Element) Element {
	if len(e) != len(o) {
		panic("abgroup: element rank mismatch")
	}
	out := make(Element, len(e))
	for i := range e {
		out[i] = new(big.Int).Add(e[i], o[i])
	}
	return out
}

// Neg returns -e.
func (e Element) Neg() Element {
	out := make(Element, len(e))
	for i := range e {
		out[i] = new(big.Int).Neg(e[i])
	}
	return out
}

// Equal reports componentwise equality of the coordinate vectors.
func (e Element) Equal(o Element) bool {
	if len(e) != len(o) {
		return false
	}
	for i := range e {
		if e[i].Cmp(o[i]) != 0 {
			return false
		}
	}
	return true
}

func (e Element) String() string {
	s := "("
	for i, c := range e {
		if i > 0 {
			s += ","
		}
		s += c.String()
	}
	return s + ")"
}

// Group is a finite abelian group Z^rank / rowspace(rels).
type Group struct {
	rank int
	rels [][]*big.Int
	inv  []*big.Int   // invariant factors, one per ambient generator
	v    [][]*big.Int // column transform: SNF coords of x are (x*v) mod inv
}

// New constructs the group (Z/d_1) x ... x (Z/d_k) with one ambient
// generator per divisor. All divisors must be positive.
func New(divisors []*big.Int) (*Group, error) {
	k := len(divisors)
	rels := make([][]*big.Int, k)
	for i, d := range divisors {
		if d == nil || d.Sign() <= 0 {
			return nil, fmt.Errorf("abgroup: divisor %d must be positive", i)
		}
		rels[i] = make([]*big.Int, k)
		for j := range rels[i] {
			rels[i][j] = new(big.Int)
		}
		rels[i][i] = new(big.Int).Set(d)
	}
	return fromRelations(k, rels)
}

func fromRelations(rank int, rels [][]*big.Int) (*Group, error) {
	d, _, v := SmithNormalForm(rels)
	inv := make([]*big.Int, rank)
	for i := 0; i < rank; i++ {
		if i < len(d) && d[i][i].Sign() != 0 {
			inv[i] = new(big.Int).Set(d[i][i])
		} else {
			return nil, fmt.Errorf("abgroup: relations have rank < %d, quotient is infinite", rank)
		}
	}
	return &Group{rank: rank, rels: rels, inv: inv, v: v}, nil
}

// Rank returns the number of ambient generators of the presentation.
func (g *Group) Rank() int { return g.rank }

// Invariants returns the invariant factors d_1 | d_2 | ... | d_rank,
// including trivial ones.
func (g *Group) Invariants() []*big.Int {
	out := make([]*big.Int, len(g.inv))
	for i, d := range g.inv {
		out[i] = new(big.Int).Set(d)
	}
	return out
}

// Order returns the group order, the product of the invariant factors.
func (g *Group) Order() *big.Int {
	o := big.NewInt(1)
	for _, d := range g.inv {
		o.Mul(o, d)
	}
	return o
}

// IsTrivial reports whether the group has order one.
func (g *Group) IsTrivial() bool {
	for _, d := range g.inv {
		if d.Cmp(oneInt) != 0 {
			return false
		}
	}
	return true
}

// IsCyclic reports whether at most one invariant factor exceeds one.
func (g *Group) IsCyclic() bool {
	n := 0
	for _, d := range g.inv {
		if d.Cmp(oneInt) > 0 {
			n++
		}
	}
	return n <= 1
}

// Coords expresses x in the SNF basis, each coordinate reduced modulo the
// matching invariant factor.
func (g *Group) Coords(x Element) []*big.Int {
	if len(x) != g.rank {
		panic("abgroup: element rank mismatch")
	}
	out := make([]*big.Int, g.rank)
	tmp := new(big.Int)
	for j := 0; j < g.rank; j++ {
		out[j] = new(big.Int)
		for i := 0; i < g.rank; i++ {
			out[j].Add(out[j], tmp.Mul(x[i], g.v[i][j]))
		}
		out[j].Mod(out[j], g.inv[j])
	}
	return out
}

// IsIdentity reports whether x lies in the relation lattice.
func (g *Group) IsIdentity(x Element) bool {
	for _, c := range g.Coords(x) {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// Quotient returns the quotient of g by the subgroup generated by elems.
func (g *Group) Quotient(elems []Element) (*Group, error) {
	rels := make([][]*big.Int, 0, len(g.rels)+len(elems))
	rels = append(rels, g.rels...)
	for _, e := range elems {
		if len(e) != g.rank {
			return nil, fmt.Errorf("abgroup: quotient element rank %d != %d", len(e), g.rank)
		}
		row := make([]*big.Int, g.rank)
		for j := range e {
			row[j] = new(big.Int).Set(e[j])
		}
		rels = append(rels, row)
	}
	return fromRelations(g.rank, rels)
}

var oneInt = big.NewInt(1)
