package cyclo

import (
	"math"
	"math/big"
	"testing"
)

func TestCyclotomicKnownValues(t *testing.T) {
	cases := []struct {
		m    int
		want []int64
	}{
		{1, []int64{-1, 1}},
		{2, []int64{1, 1}},
		{3, []int64{1, 1, 1}},
		{4, []int64{1, 0, 1}},
		{5, []int64{1, 1, 1, 1, 1}},
		{6, []int64{1, -1, 1}},
		{8, []int64{1, 0, 0, 0, 1}},
		{12, []int64{1, 0, -1, 0, 1}},
	}
	for _, c := range cases {
		got := Cyclotomic(c.m)
		if len(got) != len(c.want) {
			t.Fatalf("Phi_%d has degree %d, want %d", c.m, len(got)-1, len(c.want)-1)
		}
		for i, w := range c.want {
			if got[i].Cmp(big.NewInt(w)) != 0 {
				t.Fatalf("Phi_%d coefficient %d = %s, want %d", c.m, i, got[i], w)
			}
		}
	}
}

func TestEulerPhi(t *testing.T) {
	want := map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 8: 4, 9: 6, 12: 4, 30: 8}
	for m, w := range want {
		if got := EulerPhi(m); got != w {
			t.Fatalf("EulerPhi(%d) = %d, want %d", m, got, w)
		}
	}
}

func TestZetaHasExactOrder(t *testing.T) {
	for _, m := range []int{2, 3, 4, 8, 12} {
		f, err := NewField(m)
		if err != nil {
			t.Fatalf("NewField(%d): %v", m, err)
		}
		z := f.Zeta()
		if !z.Pow(big.NewInt(int64(m))).IsOne() {
			t.Fatalf("zeta_%d^%d != 1", m, m)
		}
		for k := 1; k < m; k++ {
			if z.Pow(big.NewInt(int64(k))).IsOne() {
				t.Fatalf("zeta_%d^%d = 1, order too small", m, k)
			}
		}
	}
}

func TestMulInvRoundTrip(t *testing.T) {
	f, err := NewField(8)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	a, err := f.FromCoeffs([]*big.Rat{
		big.NewRat(3, 2), big.NewRat(-1, 1), big.NewRat(0, 1), big.NewRat(5, 3),
	})
	if err != nil {
		t.Fatalf("FromCoeffs: %v", err)
	}
	if !a.Mul(a.Inv()).IsOne() {
		t.Fatal("a * a^-1 != 1")
	}
}

func TestNormOfRationalIsPower(t *testing.T) {
	f, err := NewField(5)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	n := f.FromInt64(3).Norm()
	if n.Cmp(big.NewRat(81, 1)) != 0 {
		t.Fatalf("N(3) over Q(zeta_5) = %s, want 81", n.RatString())
	}
}

func TestNormOnePlusI(t *testing.T) {
	f, err := NewField(4)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	a := f.One().Add(f.Zeta()) // 1 + i
	if got := a.Norm(); got.Cmp(big.NewRat(2, 1)) != 0 {
		t.Fatalf("N(1+i) = %s, want 2", got.RatString())
	}
}

func TestNormMultiplicative(t *testing.T) {
	f, err := NewField(8)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	a := f.One().Add(f.Zeta())
	b := f.FromInt64(2).Sub(f.Zeta().Mul(f.Zeta()))
	prod := a.Mul(b).Norm()
	want := new(big.Rat).Mul(a.Norm(), b.Norm())
	if prod.Cmp(want) != 0 {
		t.Fatalf("N(ab) = %s but N(a)N(b) = %s", prod.RatString(), want.RatString())
	}
}

func TestDenominator(t *testing.T) {
	f, err := NewField(4)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	a, err := f.FromCoeffs([]*big.Rat{big.NewRat(1, 6), big.NewRat(3, 4)})
	if err != nil {
		t.Fatalf("FromCoeffs: %v", err)
	}
	if got := a.Denominator(); got.Cmp(big.NewInt(12)) != 0 {
		t.Fatalf("denominator = %s, want 12", got)
	}
	if got := f.FromInt64(7).Denominator(); got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("denominator of an integer = %s, want 1", got)
	}
}

func TestLogEmbeddingBound(t *testing.T) {
	f, err := NewField(4)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	got := f.FromInt64(8).LogEmbeddingBound(0)
	if math.Abs(got-math.Log(8)) > 1e-9 {
		t.Fatalf("log bound of 8 = %v, want log 8", got)
	}
	if !math.IsInf(f.Zero().LogEmbeddingBound(0), -1) {
		t.Fatal("log bound of zero not -Inf")
	}
	// escalated precision agrees on benign inputs
	if esc := f.FromInt64(8).LogEmbeddingBound(2); math.Abs(esc-got) > 1e-9 {
		t.Fatalf("escalated bound %v differs from %v", esc, got)
	}
}
