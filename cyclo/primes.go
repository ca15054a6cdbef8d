package cyclo

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v4/ring"

	"kummer-CFT/ffield"
)

// PrimeIdeal identifies a prime of Z[zeta_m] above a rational prime p: the
// degree-f irreducible factor pi of Phi_m mod p it corresponds to, plus its
// position in the deterministic factor ordering.
type PrimeIdeal struct {
	P     *big.Int
	F     int        // residue degree
	Pi    []*big.Int // monic irreducible factor of Phi_m mod p
	Index int        // position among the conjugates above P
}

// Norm returns p^f, the absolute norm of the ideal.
func (pr *PrimeIdeal) Norm() *big.Int {
	return new(big.Int).Exp(pr.P, big.NewInt(int64(pr.F)), nil)
}

// Key returns a stable string identifying the ideal within its field,
// usable as a cache key.
func (pr *PrimeIdeal) Key() string {
	return fmt.Sprintf("%s:%d", pr.P.String(), pr.Index)
}

// Ramified reports whether the rational prime p ramifies in Q(zeta_m).
// A prime ramifies exactly when it divides m, except that 2 stays
// unramified when m = 2 mod 4 (then Q(zeta_m) = Q(zeta_{m/2})).
func (f *Field) Ramified(p *big.Int) bool {
	m := big.NewInt(int64(f.m))
	if new(big.Int).Mod(m, p).Sign() != 0 {
		return false
	}
	if p.Cmp(twoBig) == 0 && f.m%4 != 0 {
		return false
	}
	return true
}

// OrderIndexCoprime reports whether p is coprime to the index of the order
// Z[zeta_m] in the maximal order. The order is maximal, so the index is one
// and every prime passes; the check exists because Frobenius evaluation
// must refuse index divisors for a general order.
func (f *Field) OrderIndexCoprime(p *big.Int) bool { return true }

// ResidueDegree returns the multiplicative order of p modulo m, the common
// residue degree of all primes above an unramified p.
func (f *Field) ResidueDegree(p *big.Int) (int, error) {
	if f.Ramified(p) {
		return 0, fmt.Errorf("cyclo: %s ramifies in Q(zeta_%d)", p.String(), f.m)
	}
	if f.deg == 1 {
		return 1, nil
	}
	// For m = 2 mod 4 the field equals Q(zeta_{m/2}) and the order of an
	// even p must be taken modulo m/2.
	mm := f.m
	if mm%4 == 2 && new(big.Int).Mod(p, twoBig).Sign() == 0 {
		mm /= 2
	}
	mBig := big.NewInt(int64(mm))
	r := new(big.Int).Mod(p, mBig)
	acc := new(big.Int).Set(r)
	for k := 1; k <= f.deg; k++ {
		if acc.Cmp(bigOne) == 0 {
			return k, nil
		}
		acc.Mul(acc, r)
		acc.Mod(acc, mBig)
	}
	panic("cyclo: order of p mod m exceeds phi(m)")
}

// Decompose returns the primes of Z[zeta_m] above the unramified rational
// prime p, one per irreducible factor of Phi_m mod p. The factor order is
// deterministic for a given p, so conjugate ideals have stable indices.
func (f *Field) Decompose(p *big.Int) ([]*PrimeIdeal, error) {
	fdeg, err := f.ResidueDegree(p)
	if err != nil {
		return nil, err
	}
	factors, err := ffield.EqualDegreeFactors(p, f.phi, fdeg)
	if err != nil {
		return nil, fmt.Errorf("cyclo: splitting Phi_%d mod %s: %w", f.m, p.String(), err)
	}
	out := make([]*PrimeIdeal, len(factors))
	for i, pi := range factors {
		out[i] = &PrimeIdeal{P: new(big.Int).Set(p), F: fdeg, Pi: pi, Index: i}
	}
	return out, nil
}

// ResidueMap reduces field elements modulo a prime ideal into the residue
// field F_{p^f}.
type ResidueMap struct {
	pr *PrimeIdeal
	k  ffield.Field
}

// NewResidueMap builds the residue field F_p[X]/(pi) for the ideal and the
// reduction map onto it.
func (f *Field) NewResidueMap(pr *PrimeIdeal) (*ResidueMap, error) {
	k, err := ffield.New(pr.P, pr.Pi)
	if err != nil {
		return nil, fmt.Errorf("cyclo: residue field at %s: %w", pr.Key(), err)
	}
	return &ResidueMap{pr: pr, k: k}, nil
}

// Codomain returns the residue field.
func (rm *ResidueMap) Codomain() ffield.Field { return rm.k }

// Ideal returns the prime ideal the map reduces by.
func (rm *ResidueMap) Ideal() *PrimeIdeal { return rm.pr }

// Apply reduces e modulo the ideal. It fails when a coefficient
// denominator is divisible by p, since the element is then not p-integral.
func (rm *ResidueMap) Apply(e *Element) (ffield.Elem, error) {
	p := rm.pr.P
	coeffs := make([]*big.Int, len(e.c))
	tmp := new(big.Int)
	for i, q := range e.c {
		den := q.Denom()
		if tmp.Mod(den, p).Sign() == 0 {
			return nil, fmt.Errorf("cyclo: denominator of coefficient %d not coprime to %s", i, p.String())
		}
		inv := new(big.Int).ModInverse(den, p)
		coeffs[i] = new(big.Int).Mul(q.Num(), inv)
		coeffs[i].Mod(coeffs[i], p)
	}
	return rm.k.FromPoly(coeffs), nil
}

// PrimeStream enumerates rational primes in increasing order, optionally
// restricted to a congruence class modulo m. Primality testing follows the
// lattigo NTT-prime generation idiom.
type PrimeStream struct {
	next  uint64
	step  uint64 // 0 means no congruence restriction
	limit uint64
}

// NewPrimeStream starts a stream at the first prime >= start. With class
// c and modulus m (m > 0), only primes congruent to c mod m are produced.
// limit bounds the candidates inspected; 0 means the stream runs until the
// uint64 range is exhausted.
func NewPrimeStream(start uint64, class, m uint64, limit uint64) *PrimeStream {
	s := &PrimeStream{next: start, limit: limit}
	if m > 0 {
		s.step = m
		if r := s.next % m; r != class%m {
			s.next += (class%m + m - r) % m
		}
	}
	return s
}

// Next returns the next prime in the stream, or nil when the stream is
// exhausted.
func (s *PrimeStream) Next() *big.Int {
	for {
		if s.limit > 0 && s.next > s.limit {
			return nil
		}
		cand := s.next
		if s.step > 0 {
			s.next += s.step
		} else {
			s.next++
		}
		if cand < 2 {
			continue
		}
		if ring.IsPrime(cand) {
			return new(big.Int).SetUint64(cand)
		}
	}
}

var twoBig = big.NewInt(2)
