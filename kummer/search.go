package kummer

import (
	"errors"
	"fmt"
	"math/big"

	"kummer-CFT/abgroup"
	"kummer-CFT/cyclo"
)

// ScanResult carries the outcome of a generating-prime scan: the accepted
// rational primes, the prime ideals actually used, their Frobenius
// elements, and the quotient order after each acceptance.
type ScanResult struct {
	Primes         []*big.Int
	Ideals         []*cyclo.PrimeIdeal
	Frobenii       []abgroup.Element
	QuotientOrders []*big.Int
	Scanned        int
}

// ErrStreamExhausted is returned when the prime stream runs out before
// the accepted Frobenii generate the whole automorphism group.
var ErrStreamExhausted = errors.New("kummer: prime stream exhausted before the Frobenii generate the group")

// GeneratingFrobenii scans the prime stream for a short list of primes
// whose Frobenius elements generate the full automorphism group. Primes
// dividing coprimeTo (when non-nil) are skipped, as are ramified primes,
// index divisors and primes of large residue degree. The result is cached
// per exclusion parameter and returned unchanged on later calls.
func (K *Extension) GeneratingFrobenii(stream *cyclo.PrimeStream, coprimeTo *big.Int) (*ScanResult, error) {
	key := ""
	if coprimeTo != nil {
		key = coprimeTo.String()
	}
	if res, ok := K.genPrimes[key]; ok {
		return res, nil
	}
	res, err := K.scanForGenerators(stream, coprimeTo, nil)
	if err != nil {
		return res, err
	}
	K.genPrimes[key] = res
	return res, nil
}

// scanForGenerators is the fold over the prime stream. The explicit state
// is (accepted primes, accepted Frobenii, current quotient); the quotient
// is rebuilt, with its Smith normal form, after every acceptance.
// usable, when non-nil, additionally filters the prime ideals considered.
func (K *Extension) scanForGenerators(stream *cyclo.PrimeStream, coprimeTo *big.Int, usable func(*cyclo.PrimeIdeal) bool) (*ScanResult, error) {
	res := &ScanResult{}
	quot := K.group
	if quot.IsTrivial() {
		return res, nil
	}
	// residue fields of large degree are too expensive to probe
	maxDeg := K.field.Degree() / 5
	if maxDeg < 5 {
		maxDeg = 5
	}
	gcd := new(big.Int)
	for {
		p := stream.Next()
		if p == nil {
			return res, fmt.Errorf("%w: quotient still has order %s", ErrStreamExhausted, quot.Order().String())
		}
		res.Scanned++
		if coprimeTo != nil && gcd.GCD(nil, nil, p, coprimeTo).Cmp(oneInt) != 0 {
			continue
		}
		if K.field.Ramified(p) || !K.field.OrderIndexCoprime(p) {
			continue
		}
		// all conjugates above p share the residue degree, so the
		// threshold is a per-rational-prime filter
		fdeg, err := K.field.ResidueDegree(p)
		if err != nil || fdeg > maxDeg {
			continue
		}
		// Decompose factors Phi_m mod p once; every conjugate ideal
		// reuses that factorization, which amortizes the dominant cost
		// across the primes above p.
		ideals, err := K.field.Decompose(p)
		if err != nil {
			dbg("scan: decompose %s: %v\n", p.String(), err)
			continue
		}
		var frob abgroup.Element
		var used *cyclo.PrimeIdeal
		for _, pr := range ideals {
			if usable != nil && !usable(pr) {
				continue
			}
			e, err := K.CanonicalFrobenius(pr)
			if err != nil {
				if errors.Is(err, ErrBadPrime) {
					dbg("scan: skip %s: %v\n", pr.Key(), err)
					continue
				}
				return res, err
			}
			frob, used = e, pr
			break
		}
		if frob == nil {
			continue
		}
		if quot.IsIdentity(frob) {
			continue // contributes nothing to the quotient
		}
		if !shrinksQuotient(quot, frob) {
			continue
		}
		res.Primes = append(res.Primes, p)
		res.Ideals = append(res.Ideals, used)
		res.Frobenii = append(res.Frobenii, frob)
		quot, err = K.group.Quotient(res.Frobenii)
		if err != nil {
			return res, fmt.Errorf("kummer: rebuilding quotient: %w", err)
		}
		res.QuotientOrders = append(res.QuotientOrders, quot.Order())
		dbg("scan: accepted %s, quotient order %s\n", used.Key(), quot.Order().String())
		if quot.IsTrivial() {
			return res, nil
		}
	}
}

// shrinksQuotient is the acceptance heuristic: in the SNF basis of the
// quotient, at least one coordinate of the element must be coprime to the
// matching invariant factor, which guarantees the element knocks a full
// cyclic factor down rather than landing in a marginal subgroup.
func shrinksQuotient(quot *abgroup.Group, e abgroup.Element) bool {
	coords := quot.Coords(e)
	invs := quot.Invariants()
	gcd := new(big.Int)
	for j, c := range coords {
		if invs[j].Cmp(oneInt) <= 0 {
			continue
		}
		if gcd.GCD(nil, nil, c, invs[j]).Cmp(oneInt) == 0 {
			return true
		}
	}
	return false
}
