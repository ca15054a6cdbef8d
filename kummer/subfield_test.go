package kummer

import (
	"math/big"
	"testing"

	"kummer-CFT/cyclo"
)

func TestIsSubfieldRoundTrip(t *testing.T) {
	f := testField(t, 2)
	K, err := New(f, big.NewInt(2), ratGens(t, f, 2))
	if err != nil {
		t.Fatalf("K: %v", err)
	}
	L, err := New(f, big.NewInt(2), ratGens(t, f, 2, 3))
	if err != nil {
		t.Fatalf("L: %v", err)
	}
	emb, err := IsSubfield(K, L, cyclo.NewPrimeStream(3, 0, 0, 10000))
	if err != nil {
		t.Fatalf("IsSubfield: %v", err)
	}
	if !emb.OK {
		t.Fatal("Q(sqrt 2) not recognized inside Q(sqrt 2, sqrt 3)")
	}
	if len(emb.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(emb.Images))
	}
	img := emb.Images[0]
	if img.Coords[0].Cmp(big.NewInt(1)) != 0 || img.Coords[1].Sign() != 0 {
		t.Fatalf("coords = (%s,%s), want (1,0)", img.Coords[0], img.Coords[1])
	}
	// the image must reproduce the generator up to squares
	ratio := img.Element.Expand().Mul(f.FromInt64(2).Inv())
	if !isRationalSquare(ratio, f) {
		t.Fatalf("image %s does not equal 2 up to squares", img.Element)
	}
}

func TestIsSubfieldBothGenerators(t *testing.T) {
	f := testField(t, 2)
	K, err := New(f, big.NewInt(2), ratGens(t, f, 6))
	if err != nil {
		t.Fatalf("K: %v", err)
	}
	L, err := New(f, big.NewInt(2), ratGens(t, f, 2, 3))
	if err != nil {
		t.Fatalf("L: %v", err)
	}
	// sqrt 6 = sqrt 2 * sqrt 3, so the embedding needs both coordinates
	emb, err := IsSubfield(K, L, cyclo.NewPrimeStream(3, 0, 0, 10000))
	if err != nil {
		t.Fatalf("IsSubfield: %v", err)
	}
	if !emb.OK {
		t.Fatal("Q(sqrt 6) not recognized inside Q(sqrt 2, sqrt 3)")
	}
	img := emb.Images[0]
	if img.Coords[0].Cmp(big.NewInt(1)) != 0 || img.Coords[1].Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("coords = (%s,%s), want (1,1)", img.Coords[0], img.Coords[1])
	}
	ratio := img.Element.Expand().Mul(f.FromInt64(6).Inv())
	if !isRationalSquare(ratio, f) {
		t.Fatalf("image %s does not equal 6 up to squares", img.Element)
	}
}

func TestIsSubfieldMixedExponents(t *testing.T) {
	// K of exponent 2 inside L of exponent 4 over Q(zeta_4)
	f := testField(t, 4)
	K, err := New(f, big.NewInt(2), ratGens(t, f, 2))
	if err != nil {
		t.Fatalf("K: %v", err)
	}
	L, err := New(f, big.NewInt(4), ratGens(t, f, 2))
	if err != nil {
		t.Fatalf("L: %v", err)
	}
	emb, err := IsSubfield(K, L, cyclo.NewPrimeStream(3, 0, 0, 100000))
	if err != nil {
		t.Fatalf("IsSubfield: %v", err)
	}
	if !emb.OK {
		t.Fatal("exponent-2 subextension of its own exponent-4 extension not recognized")
	}
	// the image must represent 2^(4/2) = 4 up to fourth powers, i.e.
	// coordinate 2 with respect to the generator 2 of L
	if emb.Images[0].Coords[0].Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("coords = (%s), want (2)", emb.Images[0].Coords[0])
	}
}

func TestIsSubfieldPreconditions(t *testing.T) {
	f := testField(t, 4)
	other := testField(t, 4)
	K, err := New(f, big.NewInt(2), ratGens(t, f, 2))
	if err != nil {
		t.Fatalf("K: %v", err)
	}
	Kother, err := New(other, big.NewInt(2), ratGens(t, other, 2))
	if err != nil {
		t.Fatalf("Kother: %v", err)
	}
	if _, err := IsSubfield(K, Kother, cyclo.NewPrimeStream(3, 0, 0, 100)); err == nil {
		t.Fatal("distinct base-field instances accepted")
	}
	L4, err := New(f, big.NewInt(4), ratGens(t, f, 2))
	if err != nil {
		t.Fatalf("L4: %v", err)
	}
	if _, err := IsSubfield(L4, K, cyclo.NewPrimeStream(3, 0, 0, 100)); err == nil {
		t.Fatal("exponent 4 does not divide exponent 2 but the test ran")
	}
}

// isRationalSquare reports whether e is the square of a rational number.
func isRationalSquare(e *cyclo.Element, f *cyclo.Field) bool {
	coeffs := e.Coeffs()
	for _, q := range coeffs[1:] {
		if q.Sign() != 0 {
			return false
		}
	}
	q := coeffs[0]
	if q.Sign() < 0 {
		return false
	}
	num := new(big.Int).Sqrt(q.Num())
	den := new(big.Int).Sqrt(q.Denom())
	sq := new(big.Rat).SetFrac(new(big.Int).Mul(num, num), new(big.Int).Mul(den, den))
	return sq.Cmp(q) == 0
}
