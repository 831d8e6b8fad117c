package lpcheck_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepstone/generate"
	"github.com/katalvlaran/stepstone/lpcheck"
	"github.com/katalvlaran/stepstone/transport"
)

const tolCheck = 1e-6

var costs3x4 = [][]float64{
	{2, 4, 1, 3},
	{4, 8, 2, 4},
	{2, 2, 6, 5},
}

func mustProblem(t *testing.T, a, b []float64, c [][]float64, opts ...transport.ProblemOption) *transport.Problem {
	t.Helper()
	p, err := transport.NewProblem(a, b, c, opts...)
	require.NoError(t, err)

	return p
}

func TestSolve_KnownOptima(t *testing.T) {
	tests := []struct {
		name string
		p    *transport.Problem
		want float64
	}{
		{"dummy source", mustProblem(t, []float64{4, 6, 8}, []float64{3, 6, 5, 7}, costs3x4), 41},
		{"balanced", mustProblem(t, []float64{20, 30, 25}, []float64{10, 25, 20, 20}, costs3x4), 180},
		{"depots", mustProblem(t,
			[]float64{12, 30, 13},
			[]float64{23, 40, 12, 32},
			[][]float64{{64, 32, 45, 12}, {32, 78, 23, 90}, {88, 67, 10, 32}}), 1347},
		{"priced surplus", mustProblem(t,
			[]float64{10, 5}, []float64{8}, [][]float64{{1}, {2}},
			transport.WithPenalties([]float64{3, 4}, nil)), 34},
		{"single cell", mustProblem(t, []float64{7}, []float64{7}, [][]float64{{3}}), 21},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := lpcheck.Solve(tc.p, lpcheck.DefaultTolerance)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, sol.Cost, tolCheck)

			q := tc.p.Clone()
			_, err = q.Balance()
			require.NoError(t, err)
			require.Len(t, sol.Plan, q.M())
			supply, demand := q.Supply(), q.Demand()
			for i, row := range sol.Plan {
				require.Len(t, row, q.N())
				var s float64
				for _, v := range row {
					assert.GreaterOrEqual(t, v, -tolCheck)
					s += v
				}
				assert.InDelta(t, supply[i], s, tolCheck)
			}
			for j := range demand {
				var s float64
				for i := range sol.Plan {
					s += sol.Plan[i][j]
				}
				assert.InDelta(t, demand[j], s, tolCheck, "the dropped demand row still holds")
			}
		})
	}
}

func TestSolve_DoesNotMutateInput(t *testing.T) {
	p := mustProblem(t, []float64{4, 6, 8}, []float64{3, 6, 5, 7}, costs3x4)
	_, err := lpcheck.Solve(p, lpcheck.DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, 3, p.M())
	assert.Equal(t, transport.NoDummy, p.Dummy())
}

func TestSolve_NilProblem(t *testing.T) {
	_, err := lpcheck.Solve(nil, lpcheck.DefaultTolerance)
	require.ErrorIs(t, err, transport.ErrNilProblem)
}

func TestVerify(t *testing.T) {
	p := mustProblem(t, []float64{20, 30, 25}, []float64{10, 25, 20, 20}, costs3x4)
	res, err := transport.Solve(context.Background(), p, transport.WithMethod(transport.NorthWestCorner))
	require.NoError(t, err)

	sol, err := lpcheck.Verify(p, res, 1e-9)
	require.NoError(t, err)
	assert.InDelta(t, 180, sol.Cost, tolCheck)

	bad := *res
	bad.Cost = 181
	_, err = lpcheck.Verify(p, &bad, 1e-9)
	require.ErrorIs(t, err, lpcheck.ErrMismatch)

	// 1/181 is within a relative 1e-2 but outside 1e-3
	_, err = lpcheck.Verify(p, &bad, 1e-2)
	require.NoError(t, err)
	_, err = lpcheck.Verify(p, &bad, 1e-3)
	require.ErrorIs(t, err, lpcheck.ErrMismatch)
}

// TestVerify_RandomInstances compares the stepping-stone optimum with the
// simplex optimum on generated instances of mixed balance.
func TestVerify_RandomInstances(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		m := 2 + int(seed%4)
		n := 2 + int((seed/4)%4)
		d, err := generate.Random(m, n,
			generate.WithSeed(seed),
			generate.WithQuantityRange(1, 30),
			generate.WithCostRange(1, 15),
			generate.WithImbalance(int(seed%7)-3),
		)
		require.NoError(t, err)
		p, err := d.Problem()
		require.NoError(t, err)

		for _, meth := range []transport.Method{transport.NorthWestCorner, transport.MinimumCost} {
			res, err := transport.Solve(context.Background(), p, transport.WithMethod(meth))
			require.NoError(t, err)
			_, err = lpcheck.Verify(p, res, 1e-7)
			require.NoErrorf(t, err, "seed %d, %v", seed, meth)
		}
	}
}
