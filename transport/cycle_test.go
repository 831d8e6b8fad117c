package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepstone/transport"
)

// -----------------------------------------------------------------------------
// FindCycle
// -----------------------------------------------------------------------------

func TestFindCycle_Staircase(t *testing.T) {
	_, x, _ := staircase(t)

	cyc, err := transport.FindCycle(x, transport.Cell{Row: 2, Col: 1})
	require.NoError(t, err)
	// The branch through (0,1) dead-ends at (0,0) and is backtracked.
	assert.Equal(t, cells(2, 1, 1, 1, 1, 2, 2, 2, 2, 1), cyc)
	require.NoError(t, transport.ValidateCycle(x, cyc))
}

func TestFindCycle_LongCycle(t *testing.T) {
	p := classicProblem(t)
	x := transport.PlanFromValues([][]float64{
		{10, 10, 0, 0},
		{0, 0, 20, 10},
		{0, 15, 0, 10},
	})
	require.True(t, transport.IsSpanningTree(x))

	cyc, err := transport.FindCycle(x, transport.Cell{Row: 0, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, cells(0, 2, 0, 1, 2, 1, 2, 3, 1, 3, 1, 2, 0, 2), cyc)
	require.NoError(t, transport.ValidateCycle(x, cyc))

	// Row and column sums are preserved by any θ shift along the cycle.
	_, err = transport.Recalculate(x, cyc)
	require.NoError(t, err)
	requireFeasible(t, p, x)
}

func TestFindCycle_EveryFreeCellOfATree(t *testing.T) {
	p := balanced(t, warehouseProblem(t))
	x, err := transport.InitialPlan(p, transport.NorthWestCorner)
	require.NoError(t, err)
	_, err = transport.ResolveDegeneracy(p, x)
	require.NoError(t, err)
	require.True(t, transport.IsSpanningTree(x))

	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			if x.At(i, j).IsBasic() {
				continue
			}
			cyc, err := transport.FindCycle(x, transport.Cell{Row: i, Col: j})
			require.NoErrorf(t, err, "cell (%d,%d)", i, j)
			require.NoErrorf(t, transport.ValidateCycle(x, cyc), "cell (%d,%d)", i, j)
			assert.Zero(t, (len(cyc)-1)%2, "even number of distinct cells")
		}
	}
}

func TestFindCycle_Errors(t *testing.T) {
	_, x, _ := staircase(t)

	_, err := transport.FindCycle(x, transport.Cell{Row: 0, Col: 0})
	require.ErrorIs(t, err, transport.ErrInvariantViolation, "start must be free")

	_, err = transport.FindCycle(x, transport.Cell{Row: 5, Col: 0})
	require.ErrorIs(t, err, transport.ErrInvariantViolation, "start must be inside the plan")

	lonely := transport.PlanFromValues([][]float64{{1, 0}, {0, 0}})
	_, err = transport.FindCycle(lonely, transport.Cell{Row: 1, Col: 1})
	require.ErrorIs(t, err, transport.ErrInvariantViolation, "no cycle in a non-spanning basis")
}

// -----------------------------------------------------------------------------
// ValidateCycle
// -----------------------------------------------------------------------------

func TestValidateCycle_Rejects(t *testing.T) {
	_, x, _ := staircase(t)
	cases := map[string][]transport.Cell{
		"too short":      cells(2, 1, 1, 1, 2, 1),
		"open":           cells(2, 1, 1, 1, 1, 2, 2, 2),
		"odd length":     cells(2, 1, 1, 1, 1, 2, 2, 2, 2, 3, 2, 1),
		"diagonal step":  cells(2, 1, 1, 2, 2, 2, 1, 1, 2, 1),
		"no alternation": cells(2, 1, 2, 2, 2, 3, 1, 3, 2, 1),
		"free interior":  cells(2, 0, 1, 0, 1, 1, 2, 1, 2, 0),
	}
	for name, cyc := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, transport.ValidateCycle(x, cyc), transport.ErrInvariantViolation)
		})
	}
}
