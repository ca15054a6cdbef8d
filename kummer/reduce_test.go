package kummer

import (
	"math/big"
	"testing"

	"kummer-CFT/factored"
)

// nthPowerRatio reports whether a/b is the n-th power of a rational.
func nthPowerRatio(t *testing.T, a, b *factored.Element, n int64) bool {
	t.Helper()
	ratio := a.Expand().Mul(b.Expand().Inv())
	coeffs := ratio.Coeffs()
	for _, q := range coeffs[1:] {
		if q.Sign() != 0 {
			return false
		}
	}
	q := coeffs[0]
	num := iroot(q.Num(), int(n))
	den := iroot(q.Denom(), int(n))
	nBig := big.NewInt(n)
	back := new(big.Rat).SetFrac(
		new(big.Int).Exp(num, nBig, nil),
		new(big.Int).Exp(den, nBig, nil),
	)
	return q.Sign() > 0 && back.Cmp(q) == 0
}

func TestReduceModPowersShrinksExponents(t *testing.T) {
	f := testField(t, 2)
	two, err := factored.FromInt64(f, 2)
	if err != nil {
		t.Fatalf("FromInt64: %v", err)
	}
	a := two.Pow(big.NewInt(11))
	b, err := ReduceModPowers(a, big.NewInt(2))
	if err != nil {
		t.Fatalf("ReduceModPowers: %v", err)
	}
	if !nthPowerRatio(t, a, b, 2) {
		t.Fatalf("2^11 and its reduction %s do not differ by a square", b)
	}
	// the reduced value is 2, far below 2^11
	if !b.Expand().Equal(f.FromInt64(2)) {
		t.Fatalf("reduction of 2^11 = %s, want 2", b.Expand())
	}
}

func TestReduceModPowersDropsNthPowers(t *testing.T) {
	f := testField(t, 2)
	two, err := factored.FromInt64(f, 2)
	if err != nil {
		t.Fatalf("FromInt64: %v", err)
	}
	b, err := ReduceModPowers(two.Pow(big.NewInt(10)), big.NewInt(2))
	if err != nil {
		t.Fatalf("ReduceModPowers: %v", err)
	}
	if len(b.Pairs()) != 0 {
		t.Fatalf("2^10 reduced to %s, want the empty product", b)
	}
}

func TestReduceModPowersIntegral(t *testing.T) {
	f := testField(t, 2)
	half, err := factored.FromElement(f.FromRat(big.NewRat(1, 2)))
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	b, err := ReduceModPowers(half, big.NewInt(2))
	if err != nil {
		t.Fatalf("ReduceModPowers: %v", err)
	}
	if b.Denominator().Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("reduction of 1/2 has denominator %s, want 1", b.Denominator())
	}
	if !nthPowerRatio(t, half, b, 2) {
		t.Fatalf("1/2 and %s do not differ by a square", b)
	}
}

func TestReduceModPowersIdempotent(t *testing.T) {
	f := testField(t, 2)
	six, err := factored.FromInt64(f, 6)
	if err != nil {
		t.Fatalf("FromInt64: %v", err)
	}
	a := six.Pow(big.NewInt(7))
	once, err := ReduceModPowers(a, big.NewInt(2))
	if err != nil {
		t.Fatalf("first reduction: %v", err)
	}
	twice, err := ReduceModPowers(once, big.NewInt(2))
	if err != nil {
		t.Fatalf("second reduction: %v", err)
	}
	if !nthPowerRatio(t, once, twice, 2) {
		t.Fatalf("re-reducing %s gave %s, not equal up to squares", once, twice)
	}
}

func TestReduceModPowersKnownBase(t *testing.T) {
	f := testField(t, 2)
	twelve, err := factored.FromInt64(f, 12)
	if err != nil {
		t.Fatalf("FromInt64: %v", err)
	}
	a := twelve.Pow(big.NewInt(3))
	base := factored.CoprimeBase([]*big.Int{big.NewInt(12)})
	b, err := ReduceModPowersKnown(a, big.NewInt(2), base)
	if err != nil {
		t.Fatalf("ReduceModPowersKnown: %v", err)
	}
	if !nthPowerRatio(t, a, b, 2) {
		t.Fatalf("12^3 and %s do not differ by a square", b)
	}
}

func TestReduceModPowersRejectsBadExponent(t *testing.T) {
	f := testField(t, 2)
	two, err := factored.FromInt64(f, 2)
	if err != nil {
		t.Fatalf("FromInt64: %v", err)
	}
	if _, err := ReduceModPowers(two, new(big.Int)); err == nil {
		t.Fatal("zero reduction exponent accepted")
	}
}

func TestPerfectPowerAndRoot(t *testing.T) {
	r, k := perfectPower(big.NewInt(64))
	if r.Cmp(big.NewInt(2)) != 0 || k != 6 {
		t.Fatalf("perfectPower(64) = (%s,%d), want (2,6)", r, k)
	}
	r, k = perfectPower(big.NewInt(36))
	if r.Cmp(big.NewInt(6)) != 0 || k != 2 {
		t.Fatalf("perfectPower(36) = (%s,%d), want (6,2)", r, k)
	}
	r, k = perfectPower(big.NewInt(10))
	if r.Cmp(big.NewInt(10)) != 0 || k != 1 {
		t.Fatalf("perfectPower(10) = (%s,%d), want (10,1)", r, k)
	}
	if got := iroot(big.NewInt(1000), 3); got.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("iroot(1000,3) = %s, want 10", got)
	}
	if got := iroot(big.NewInt(999), 3); got.Cmp(big.NewInt(9)) != 0 {
		t.Fatalf("iroot(999,3) = %s, want 9", got)
	}
}

func TestValuation(t *testing.T) {
	if v := valuation(big.NewInt(48), big.NewInt(2)); v != 4 {
		t.Fatalf("v_2(48) = %d, want 4", v)
	}
	if v := valuation(big.NewInt(48), big.NewInt(7)); v != 0 {
		t.Fatalf("v_7(48) = %d, want 0", v)
	}
}
