package ffield

import (
	"math/big"
	"testing"
)

// checkFactors verifies that the returned factors are monic of degree f
// and that their product reproduces g mod p.
func checkFactors(t *testing.T, g []*big.Int, p *big.Int, f int, factors [][]*big.Int) {
	t.Helper()
	wantCount := (len(g) - 1) / f
	if len(factors) != wantCount {
		t.Fatalf("got %d factors, want %d", len(factors), wantCount)
	}
	prod := []*big.Int{big.NewInt(1)}
	for i, fac := range factors {
		if len(fac)-1 != f {
			t.Fatalf("factor %d has degree %d, want %d", i, len(fac)-1, f)
		}
		if new(big.Int).Mod(fac[f], p).Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("factor %d is not monic", i)
		}
		prod = polyMul(prod, fac, p)
	}
	want := polyMonic(g, p)
	if len(prod) != len(want) {
		t.Fatalf("product degree %d, want %d", len(prod)-1, len(want)-1)
	}
	for i := range prod {
		if prod[i].Cmp(want[i]) != 0 {
			t.Fatalf("product coefficient %d = %s, want %s", i, prod[i], want[i])
		}
	}
}

func TestEqualDegreeFactorsSplitPrime(t *testing.T) {
	// Phi_5 = x^4+x^3+x^2+x+1 splits into linear factors mod 11
	g := polyInt64(1, 1, 1, 1, 1)
	p := big.NewInt(11)
	factors, err := EqualDegreeFactors(p, g, 1)
	if err != nil {
		t.Fatalf("EqualDegreeFactors: %v", err)
	}
	checkFactors(t, g, p, 1, factors)
	// the roots are the four primitive 5th roots of unity mod 11
	for _, fac := range factors {
		root := new(big.Int).Neg(fac[0])
		root.Mod(root, p)
		ord := new(big.Int).Exp(root, big.NewInt(5), p)
		if ord.Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("root %s is not a 5th root of unity mod 11", root)
		}
	}
}

func TestEqualDegreeFactorsInertTowers(t *testing.T) {
	// Phi_8 = x^4+1 splits into two quadratics mod 3 (ord_8(3) = 2)
	g := polyInt64(1, 0, 0, 0, 1)
	p := big.NewInt(3)
	factors, err := EqualDegreeFactors(p, g, 2)
	if err != nil {
		t.Fatalf("EqualDegreeFactors: %v", err)
	}
	checkFactors(t, g, p, 2, factors)
}

func TestEqualDegreeFactorsIrreducible(t *testing.T) {
	// Phi_5 stays irreducible mod 2 (ord_5(2) = 4)
	g := polyInt64(1, 1, 1, 1, 1)
	factors, err := EqualDegreeFactors(big.NewInt(2), g, 4)
	if err != nil {
		t.Fatalf("EqualDegreeFactors: %v", err)
	}
	checkFactors(t, g, big.NewInt(2), 4, factors)
}

func TestEqualDegreeFactorsCharTwoSplit(t *testing.T) {
	// Phi_7 = (x^3+x+1)(x^3+x^2+1) mod 2
	g := polyInt64(1, 1, 1, 1, 1, 1, 1)
	p := big.NewInt(2)
	factors, err := EqualDegreeFactors(p, g, 3)
	if err != nil {
		t.Fatalf("EqualDegreeFactors: %v", err)
	}
	checkFactors(t, g, p, 3, factors)
}

func TestEqualDegreeFactorsDeterministic(t *testing.T) {
	g := polyInt64(1, 1, 1, 1, 1)
	p := big.NewInt(31)
	a, err := EqualDegreeFactors(p, g, 1)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := EqualDegreeFactors(p, g, 1)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j].Cmp(b[i][j]) != 0 {
				t.Fatalf("factor order differs between runs at %d,%d", i, j)
			}
		}
	}
}

func TestEqualDegreeFactorsRejectsBadDegree(t *testing.T) {
	if _, err := EqualDegreeFactors(big.NewInt(11), polyInt64(1, 1, 1, 1, 1), 3); err == nil {
		t.Fatal("degree 4 split into degree-3 factors accepted")
	}
}
