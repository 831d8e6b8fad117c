// Package transport_test holds helpers shared by the *_test.go files of this
// package: fixed instances with known optima and feasibility/optimality
// checkers used as test oracles.
package transport_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepstone/transport"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	// tolCheck is the tolerance for comparing floating totals in assertions.
	tolCheck = 1e-7

	// optimum of the 3x4 instance with a zero-cost dummy source.
	scenarioCost = 41.0
)

// -----------------------------------------------------------------------------
// Fixed instances
// -----------------------------------------------------------------------------

// scenarioCosts is shared by several 3x4 fixtures.
func scenarioCosts() [][]float64 {
	return [][]float64{
		{2, 4, 1, 3},
		{4, 8, 2, 4},
		{2, 2, 6, 5},
	}
}

// scenarioProblem: supply 18 < demand 21, so a dummy source of 3 is added.
func scenarioProblem(t testing.TB) *transport.Problem {
	t.Helper()
	p, err := transport.NewProblem([]float64{4, 6, 8}, []float64{3, 6, 5, 7}, scenarioCosts())
	require.NoError(t, err)

	return p
}

// classicProblem is a balanced 3x4 instance (75 units) with optimum 180.
func classicProblem(t testing.TB) *transport.Problem {
	t.Helper()
	p, err := transport.NewProblem([]float64{20, 30, 25}, []float64{10, 25, 20, 20}, scenarioCosts())
	require.NoError(t, err)

	return p
}

// depotProblem is the 3-source, 4-sink depot instance; demand exceeds supply
// by 52 and the optimum of the balanced problem is 1347.
func depotProblem(t testing.TB) *transport.Problem {
	t.Helper()
	p, err := transport.NewProblem(
		[]float64{12, 30, 13},
		[]float64{23, 40, 12, 32},
		[][]float64{
			{64, 32, 45, 12},
			{32, 78, 23, 90},
			{88, 67, 10, 32},
		},
	)
	require.NoError(t, err)

	return p
}

// warehouseProblem is the 7x8 network scaled by 10000; demand exceeds supply
// by 220000 and the optimum is 161230000.
func warehouseProblem(t testing.TB) *transport.Problem {
	t.Helper()
	supply := []float64{16, 15, 18, 19, 17, 20, 16}
	demand := []float64{10, 10, 12, 16, 20, 25, 22, 28}
	for i := range supply {
		supply[i] *= 10000
	}
	for j := range demand {
		demand[j] *= 10000
	}
	p, err := transport.NewProblem(supply, demand, [][]float64{
		{120, 180, 10000, 100, 110, 140, 160, 180},
		{300, 100, 180, 150, 140, 160, 125, 175},
		{200, 250, 170, 160, 190, 175, 180, 210},
		{140, 275, 190, 130, 200, 120, 195, 120},
		{190, 120, 215, 190, 210, 200, 154, 160},
		{200, 140, 170, 200, 170, 135, 137, 140},
		{220, 160, 155, 210, 145, 190, 207, 174},
	})
	require.NoError(t, err)

	return p
}

// balanced builds a clone of p and balances it.
func balanced(t testing.TB, p *transport.Problem) *transport.Problem {
	t.Helper()
	q := p.Clone()
	_, err := q.Balance()
	require.NoError(t, err)

	return q
}

// -----------------------------------------------------------------------------
// Oracles
// -----------------------------------------------------------------------------

// requireFeasible checks row/column sums and non-negativity.
func requireFeasible(t testing.TB, p *transport.Problem, x *transport.Plan) {
	t.Helper()
	require.Equal(t, p.M(), x.Rows())
	require.Equal(t, p.N(), x.Cols())
	supply, demand := p.Supply(), p.Demand()
	for i := 0; i < x.Rows(); i++ {
		require.InDeltaf(t, supply[i], x.RowSum(i), tolCheck, "row %d", i)
		for j := 0; j < x.Cols(); j++ {
			require.GreaterOrEqualf(t, x.At(i, j).Value(), 0.0, "cell (%d,%d)", i, j)
		}
	}
	for j := 0; j < x.Cols(); j++ {
		require.InDeltaf(t, demand[j], x.ColSum(j), tolCheck, "col %d", j)
	}
}

// requireCertificate checks that pot is a dual certificate for x:
// equality on basic cells and u[i]+v[j] <= c[i][j] everywhere.
func requireCertificate(t testing.TB, p *transport.Problem, x *transport.Plan, pot transport.Potentials) {
	t.Helper()
	require.Zero(t, pot.A[0])
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			d := transport.ReducedCost(p, pot, i, j)
			if x.At(i, j).IsBasic() {
				require.InDeltaf(t, 0, d, tolCheck, "basic (%d,%d)", i, j)
			} else {
				require.LessOrEqualf(t, d, tolCheck, "free (%d,%d)", i, j)
			}
		}
	}
}

// sameFloat reports a == b within tolCheck scaled by magnitude.
func sameFloat(a, b float64) bool {
	return math.Abs(a-b) <= tolCheck*math.Max(1, math.Abs(b))
}

// cells is a terse constructor for expected cell lists.
func cells(rc ...int) []transport.Cell {
	out := make([]transport.Cell, 0, len(rc)/2)
	for k := 0; k+1 < len(rc); k += 2 {
		out = append(out, transport.Cell{Row: rc[k], Col: rc[k+1]})
	}

	return out
}
