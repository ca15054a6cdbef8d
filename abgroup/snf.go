package abgroup

import "math/big"

// SmithNormalForm computes the Smith normal form of an integer matrix m
// (given as rows), returning d, u, v with d = u*m*v, u and v unimodular and
// d diagonal with d[0][0] | d[1][1] | ... The input is not modified.
func SmithNormalForm(m [][]*big.Int) (d, u, v [][]*big.Int) {
	rows := len(m)
	cols := 0
	if rows > 0 {
		cols = len(m[0])
	}
	d = copyMatrix(m)
	u = identity(rows)
	v = identity(cols)

	min := rows
	if cols < min {
		min = cols
	}
	for t := 0; t < min; t++ {
		if !movePivot(d, u, v, t) {
			break // remaining block is zero
		}
		for !clearPivot(d, u, v, t) {
		}
		// Enforce the divisibility chain: d[t][t] must divide every entry
		// of the trailing block. A failing entry is pulled into row t and
		// the pivot is cleared again.
		for {
			i, j, ok := findNonDivisible(d, t)
			if !ok {
				break
			}
			_ = j
			addRow(d, u, t, i, big.NewInt(1))
			for !clearPivot(d, u, v, t) {
			}
		}
		if d[t][t].Sign() < 0 {
			negateRow(d, u, t)
		}
	}
	return d, u, v
}

// movePivot swaps a nonzero entry of minimal magnitude from the trailing
// block into position (t,t). It reports false when the block is all zero.
func movePivot(d, u, v [][]*big.Int, t int) bool {
	pi, pj := -1, -1
	var best *big.Int
	for i := t; i < len(d); i++ {
		for j := t; j < len(d[i]); j++ {
			if d[i][j].Sign() == 0 {
				continue
			}
			a := new(big.Int).Abs(d[i][j])
			if best == nil || a.Cmp(best) < 0 {
				best, pi, pj = a, i, j
			}
		}
	}
	if pi < 0 {
		return false
	}
	d[t], d[pi] = d[pi], d[t]
	u[t], u[pi] = u[pi], u[t]
	swapCols(d, t, pj)
	swapColsIn(v, t, pj)
	return true
}

// clearPivot eliminates the off-pivot entries of row t and column t by
// row/column operations. It reports false when a division left a remainder
// that became a smaller pivot, in which case the caller retries.
func clearPivot(d [][]*big.Int, u, v [][]*big.Int, t int) bool {
	p := d[t][t]
	for i := t + 1; i < len(d); i++ {
		if d[i][t].Sign() == 0 {
			continue
		}
		q := new(big.Int).Quo(d[i][t], p)
		subRow(d, u, i, t, q)
		if d[i][t].Sign() != 0 {
			// remainder smaller than pivot: promote it
			d[t], d[i] = d[i], d[t]
			u[t], u[i] = u[i], u[t]
			return false
		}
	}
	for j := t + 1; j < len(d[t]); j++ {
		if d[t][j].Sign() == 0 {
			continue
		}
		q := new(big.Int).Quo(d[t][j], p)
		subCol(d, v, j, t, q)
		if d[t][j].Sign() != 0 {
			swapCols(d, t, j)
			swapColsIn(v, t, j)
			return false
		}
	}
	return true
}

func findNonDivisible(d [][]*big.Int, t int) (int, int, bool) {
	p := d[t][t]
	r := new(big.Int)
	for i := t + 1; i < len(d); i++ {
		for j := t + 1; j < len(d[i]); j++ {
			if r.Mod(d[i][j], p); r.Sign() != 0 {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// row i -= q * row t, mirrored on u.
func subRow(d, u [][]*big.Int, i, t int, q *big.Int) {
	tmp := new(big.Int)
	for j := range d[i] {
		d[i][j] = new(big.Int).Sub(d[i][j], tmp.Mul(q, d[t][j]))
	}
	for j := range u[i] {
		u[i][j] = new(big.Int).Sub(u[i][j], tmp.Mul(q, u[t][j]))
	}
}

// row t += q * row i, mirrored on u.
func addRow(d, u [][]*big.Int, t, i int, q *big.Int) {
	tmp := new(big.Int)
	for j := range d[t] {
		d[t][j] = new(big.Int).Add(d[t][j], tmp.Mul(q, d[i][j]))
	}
	for j := range u[t] {
		u[t][j] = new(big.Int).Add(u[t][j], tmp.Mul(q, u[i][j]))
	}
}

// col j -= q * col t, mirrored on v.
func subCol(d, v [][]*big.Int, j, t int, q *big.Int) {
	tmp := new(big.Int)
	for i := range d {
		d[i][j] = new(big.Int).Sub(d[i][j], tmp.Mul(q, d[i][t]))
	}
	for i := range v {
		v[i][j] = new(big.Int).Sub(v[i][j], tmp.Mul(q, v[i][t]))
	}
}

func negateRow(d, u [][]*big.Int, t int) {
	for j := range d[t] {
		d[t][j] = new(big.Int).Neg(d[t][j])
	}
	for j := range u[t] {
		u[t][j] = new(big.Int).Neg(u[t][j])
	}
}

func swapCols(d [][]*big.Int, a, b int) {
	if a == b {
		return
	}
	for i := range d {
		d[i][a], d[i][b] = d[i][b], d[i][a]
	}
}

func swapColsIn(v [][]*big.Int, a, b int) {
	if a == b {
		return
	}
	for i := range v {
		v[i][a], v[i][b] = v[i][b], v[i][a]
	}
}

func identity(n int) [][]*big.Int {
	m := make([][]*big.Int, n)
	for i := range m {
		m[i] = make([]*big.Int, n)
		for j := range m[i] {
			if i == j {
				m[i][j] = big.NewInt(1)
			} else {
				m[i][j] = new(big.Int)
			}
		}
	}
	return m
}

func copyMatrix(m [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(m))
	for i := range m {
		out[i] = make([]*big.Int, len(m[i]))
		for j := range m[i] {
			out[i][j] = new(big.Int).Set(m[i][j])
		}
	}
	return out
}

// SolveMod solves a*x = b (mod n) for x, where a is a matrix of r rows and
// c columns, b has length r and n > 0. It returns the solution reduced into
// [0,n) and whether one exists.
func SolveMod(a [][]*big.Int, b []*big.Int, n *big.Int) ([]*big.Int, bool) {
	r := len(a)
	if r == 0 {
		return nil, true
	}
	c := len(a[0])
	// Augment with n*I so that working modulo n becomes an exact integer
	// system m*z = b with z = (x, y).
	m := make([][]*big.Int, r)
	for i := 0; i < r; i++ {
		m[i] = make([]*big.Int, c+r)
		for j := 0; j < c; j++ {
			m[i][j] = new(big.Int).Set(a[i][j])
		}
		for j := 0; j < r; j++ {
			if i == j {
				m[i][c+j] = new(big.Int).Set(n)
			} else {
				m[i][c+j] = new(big.Int)
			}
		}
	}
	d, u, v := SmithNormalForm(m)
	// Solve d*w = u*b, then z = v*w.
	w := make([]*big.Int, c+r)
	for i := range w {
		w[i] = new(big.Int)
	}
	rem := new(big.Int)
	for i := 0; i < r; i++ {
		ub := new(big.Int)
		tmp := new(big.Int)
		for j := 0; j < r; j++ {
			ub.Add(ub, tmp.Mul(u[i][j], b[j]))
		}
		if d[i][i].Sign() == 0 {
			if ub.Sign() != 0 {
				return nil, false
			}
			continue
		}
		w[i].QuoRem(ub, d[i][i], rem)
		if rem.Sign() != 0 {
			return nil, false
		}
	}
	x := make([]*big.Int, c)
	tmp := new(big.Int)
	for i := 0; i < c; i++ {
		x[i] = new(big.Int)
		for j := 0; j < c+r; j++ {
			x[i].Add(x[i], tmp.Mul(v[i][j], w[j]))
		}
		x[i].Mod(x[i], n)
	}
	return x, true
}
