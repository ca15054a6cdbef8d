package abgroup

import (
	"math/big"
	"testing"
)

func matFromInt64(rows [][]int64) [][]*big.Int {
	out := make([][]*big.Int, len(rows))
	for i, r := range rows {
		out[i] = make([]*big.Int, len(r))
		for j, v := range r {
			out[i][j] = big.NewInt(v)
		}
	}
	return out
}

func mulMat(a, b [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(a))
	tmp := new(big.Int)
	for i := range a {
		out[i] = make([]*big.Int, len(b[0]))
		for j := range out[i] {
			out[i][j] = new(big.Int)
			for k := range b {
				out[i][j].Add(out[i][j], tmp.Mul(a[i][k], b[k][j]))
			}
		}
	}
	return out
}

func TestSmithNormalFormDiagonal(t *testing.T) {
	m := matFromInt64([][]int64{
		{2, 4, 4},
		{-6, 6, 12},
		{10, -4, -16},
	})
	d, u, v := SmithNormalForm(m)
	// d must equal u*m*v
	umv := mulMat(mulMat(u, m), v)
	for i := range d {
		for j := range d[i] {
			if d[i][j].Cmp(umv[i][j]) != 0 {
				t.Fatalf("d[%d][%d] = %s but (u*m*v)[%d][%d] = %s", i, j, d[i][j], i, j, umv[i][j])
			}
			if i != j && d[i][j].Sign() != 0 {
				t.Fatalf("off-diagonal d[%d][%d] = %s", i, j, d[i][j])
			}
		}
	}
	// divisibility chain with nonnegative entries
	rem := new(big.Int)
	for i := 0; i+1 < len(d); i++ {
		if d[i][i].Sign() < 0 {
			t.Fatalf("negative diagonal entry %s", d[i][i])
		}
		if d[i][i].Sign() != 0 && d[i+1][i+1].Sign() != 0 {
			if rem.Mod(d[i+1][i+1], d[i][i]); rem.Sign() != 0 {
				t.Fatalf("%s does not divide %s", d[i][i], d[i+1][i+1])
			}
		}
	}
	// the known normal form of this matrix is diag(2, 6, 12)
	want := []int64{2, 6, 12}
	for i, w := range want {
		if d[i][i].Cmp(big.NewInt(w)) != 0 {
			t.Fatalf("d[%d][%d] = %s, want %d", i, i, d[i][i], w)
		}
	}
}

func TestSmithNormalFormZeroMatrix(t *testing.T) {
	m := matFromInt64([][]int64{{0, 0}, {0, 0}})
	d, _, _ := SmithNormalForm(m)
	for i := range d {
		for j := range d[i] {
			if d[i][j].Sign() != 0 {
				t.Fatalf("d[%d][%d] = %s, want 0", i, j, d[i][j])
			}
		}
	}
}

func TestSolveMod(t *testing.T) {
	// 3x = 5 mod 7 has solution x = 4
	a := matFromInt64([][]int64{{3}})
	b := []*big.Int{big.NewInt(5)}
	x, ok := SolveMod(a, b, big.NewInt(7))
	if !ok {
		t.Fatal("3x=5 mod 7 reported unsolvable")
	}
	if x[0].Cmp(big.NewInt(4)) != 0 {
		t.Fatalf("x = %s, want 4", x[0])
	}
}

func TestSolveModSystem(t *testing.T) {
	// x + y = 1, x - y = 1 mod 4 -> x = 1, y = 0 (among others)
	a := matFromInt64([][]int64{{1, 1}, {1, -1}})
	b := []*big.Int{big.NewInt(1), big.NewInt(1)}
	n := big.NewInt(4)
	x, ok := SolveMod(a, b, n)
	if !ok {
		t.Fatal("system reported unsolvable")
	}
	tmp := new(big.Int)
	for i, row := range a {
		sum := new(big.Int)
		for j := range row {
			sum.Add(sum, tmp.Mul(row[j], x[j]))
		}
		sum.Mod(sum, n)
		want := new(big.Int).Mod(b[i], n)
		if sum.Cmp(want) != 0 {
			t.Fatalf("row %d: a*x = %s mod 4, want %s", i, sum, want)
		}
	}
}

func TestSolveModUnsolvable(t *testing.T) {
	// 2x = 1 mod 4 has no solution
	a := matFromInt64([][]int64{{2}})
	b := []*big.Int{big.NewInt(1)}
	if _, ok := SolveMod(a, b, big.NewInt(4)); ok {
		t.Fatal("2x=1 mod 4 reported solvable")
	}
}
