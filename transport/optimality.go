// SPDX-License-Identifier: MIT

package transport

// Optimality is the outcome of one optimality test.
type Optimality struct {
	// Optimal is true when no free cell has a reduced cost above tolerance.
	Optimal bool
	// Entering is the selected free cell when Optimal is false.
	Entering Cell
	// Delta is the reduced cost of Entering.
	Delta float64
	// Violations lists every free cell with a positive reduced cost, row-major.
	Violations []Cell
}

// ReducedCost returns u[i] + v[j] - c[i][j]. A positive value means that
// shipping along (i,j) lowers the total cost.
func ReducedCost(p *Problem, pot Potentials, i, j int) float64 {
	return pot.A[i] + pot.B[j] - p.At(i, j)
}

// ReducedCosts returns the full matrix of reduced costs; basic cells read 0
// on a consistent basis.
func ReducedCosts(p *Problem, pot Potentials) [][]float64 {
	out := make([][]float64, p.M())
	for i := range out {
		out[i] = make([]float64, p.N())
		for j := range out[i] {
			out[i][j] = ReducedCost(p, pot, i, j)
		}
	}

	return out
}

// CheckOptimality tests every free cell of x and picks the entering cell by
// rule. It never mutates x.
//
//   - SteepestDescent: the largest reduced cost; the first row-major cell
//     wins on ties.
//   - FirstImproving: the first row-major cell whose reduced cost exceeds tol.
//
// Complexity: O(m·n).
func CheckOptimality(p *Problem, x *Plan, pot Potentials, rule PivotRule, tol float64) Optimality {
	var (
		out   = Optimality{Optimal: true}
		delta float64
	)
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			if x.At(i, j).IsBasic() {
				continue
			}
			delta = ReducedCost(p, pot, i, j)
			if delta <= tol {
				continue
			}
			out.Violations = append(out.Violations, Cell{Row: i, Col: j})
			switch {
			case out.Optimal:
				out.Optimal = false
				out.Entering, out.Delta = Cell{Row: i, Col: j}, delta
			case rule == SteepestDescent && delta > out.Delta:
				out.Entering, out.Delta = Cell{Row: i, Col: j}, delta
			}
		}
	}

	return out
}
