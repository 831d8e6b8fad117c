package transport_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepstone/transport"
)

// -----------------------------------------------------------------------------
// Known optima
// -----------------------------------------------------------------------------

func TestSolve_KnownOptima(t *testing.T) {
	instances := []struct {
		name  string
		build func(testing.TB) *transport.Problem
		want  float64
		dummy transport.Dummy
	}{
		{"scenario 3x4", scenarioProblem, scenarioCost, transport.DummySource},
		{"classic 3x4", classicProblem, 180, transport.NoDummy},
		{"depots 3x4", depotProblem, 1347, transport.DummySource},
		{"warehouses 7x8", warehouseProblem, 161230000, transport.DummySource},
	}
	methods := []transport.Method{transport.NorthWestCorner, transport.MinimumCost}
	rules := []transport.PivotRule{transport.SteepestDescent, transport.FirstImproving}

	for _, in := range instances {
		for _, m := range methods {
			for _, r := range rules {
				t.Run(in.name+"/"+m.String()+"/"+r.String(), func(t *testing.T) {
					res, err := transport.Solve(context.Background(), in.build(t),
						transport.WithMethod(m), transport.WithPivotRule(r))
					require.NoError(t, err)
					require.True(t, res.Optimal)
					assert.True(t, sameFloat(res.Cost, in.want), "cost %v, want %v", res.Cost, in.want)
					assert.Equal(t, in.dummy, res.Balance.Dummy)
					assert.Equal(t, m, res.Method)
					assert.Equal(t, r, res.PivotRule)

					requireFeasible(t, res.Problem, res.Plan)
					requireCertificate(t, res.Problem, res.Plan, res.Potentials)
					assert.True(t, transport.IsSpanningTree(res.Plan))
					assert.InDelta(t, res.Problem.Cost(res.Plan), res.Cost, tolCheck)
				})
			}
		}
	}
}

func TestSolve_ScenarioAddsDummySource(t *testing.T) {
	res, err := transport.Solve(context.Background(), scenarioProblem(t))
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Balance.Volume)
	assert.Equal(t, 4, res.Problem.M())
	assert.Equal(t, 4, res.Problem.N())
	assert.InDelta(t, 3.0, res.Plan.RowSum(3), tolCheck, "dummy row carries the shortage")
}

func TestSolve_SmallSurplusIsShipped(t *testing.T) {
	instances := []struct {
		name   string
		supply []float64
		demand []float64
		costs  [][]float64
		want   float64
	}{
		{"1x1", []float64{1e6 + 1e-4}, []float64{1e6}, [][]float64{{1}}, 1e6},
		{"2x1", []float64{5e5, 5e5 + 1e-4}, []float64{1e6}, [][]float64{{1}, {2}}, 1.5e6},
	}
	for _, in := range instances {
		for _, m := range []transport.Method{transport.NorthWestCorner, transport.MinimumCost} {
			t.Run(in.name+"/"+m.String(), func(t *testing.T) {
				p, err := transport.NewProblem(in.supply, in.demand, in.costs)
				require.NoError(t, err)

				res, err := transport.Solve(context.Background(), p, transport.WithMethod(m))
				require.NoError(t, err)
				require.True(t, res.Optimal)
				assert.Equal(t, transport.DummySink, res.Balance.Dummy)
				assert.InDelta(t, in.want, res.Cost, 1e-6)
				requireFeasible(t, res.Problem, res.Plan)
				assert.InDelta(t, 1e-4, res.Plan.ColSum(res.Problem.N()-1), 1e-9)
			})
		}
	}
}

func TestSolve_BalancedInputHasNoDummy(t *testing.T) {
	p, err := transport.NewProblem(
		[]float64{4, 5, 4, 5},
		[]float64{3, 8, 4, 3},
		[][]float64{{5, 3, 6, 2}, {4, 7, 9, 1}, {3, 4, 7, 5}, {8, 6, 2, 3}},
	)
	require.NoError(t, err)

	res, err := transport.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, transport.NoDummy, res.Balance.Dummy)
	assert.Equal(t, 4, res.Problem.M())
	assert.Equal(t, 52.0, res.Cost)
}

func TestSolve_PricedSurplus(t *testing.T) {
	p, err := transport.NewProblem(
		[]float64{10, 5}, []float64{8}, [][]float64{{1}, {2}},
		transport.WithPenalties([]float64{3, 4}, nil),
	)
	require.NoError(t, err)

	res, err := transport.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, transport.DummySink, res.Balance.Dummy)
	assert.Equal(t, 34.0, res.Cost)
	assert.Zero(t, res.Iterations)
}

// -----------------------------------------------------------------------------
// Trace
// -----------------------------------------------------------------------------

func TestSolve_TraceSequence(t *testing.T) {
	res, err := transport.Solve(context.Background(), classicProblem(t), transport.WithMethod(transport.MinimumCost))
	require.NoError(t, err)
	require.Equal(t, 1, res.Iterations)

	stages := make([]transport.Stage, len(res.Trace))
	for k, e := range res.Trace {
		stages[k] = e.Stage
	}
	assert.Equal(t, []transport.Stage{
		transport.StageGiven,
		transport.StageBalance,
		transport.StageInitialPlan,
		transport.StageDegeneracy,
		transport.StagePotentials,
		transport.StageOptimality,
		transport.StageCycle,
		transport.StagePivot,
		transport.StagePotentials,
		transport.StageOptimality,
		transport.StageDone,
	}, stages)

	initial := res.Trace[2]
	assert.Equal(t, transport.MinimumCost, initial.Method)
	assert.Equal(t, 230.0, initial.Cost)

	deg := res.Trace[3]
	assert.True(t, deg.Degenerate)
	assert.Equal(t, cells(1, 2), deg.EpsilonCells)
	assert.True(t, deg.Plan.At(1, 2).IsEpsilon())

	opt := res.Trace[5]
	assert.False(t, opt.Optimal)
	assert.Equal(t, transport.Cell{Row: 0, Col: 0}, opt.Entering)
	assert.Equal(t, 5.0, opt.Delta)

	cyc := res.Trace[6]
	assert.Equal(t, cells(0, 0, 0, 2, 1, 2, 1, 1, 2, 1, 2, 0, 0, 0), cyc.Cycle)

	pivot := res.Trace[7]
	assert.Equal(t, transport.Qty(10), pivot.Theta)
	assert.Equal(t, 180.0, pivot.Cost)
	assert.True(t, pivot.Plan.At(2, 0).IsEpsilon(), "second tied minus cell stays basic")

	done := res.Trace[len(res.Trace)-1]
	assert.Equal(t, 180.0, done.Cost)
	assert.Equal(t, res.Plan.String(), done.Plan.String())
}

func TestSolve_TraceSnapshotsAreIndependent(t *testing.T) {
	res, err := transport.Solve(context.Background(), classicProblem(t), transport.WithMethod(transport.NorthWestCorner))
	require.NoError(t, err)

	initial := res.Trace[2].Plan
	assert.Equal(t, [][]float64{{10, 10, 0, 0}, {0, 15, 15, 0}, {0, 0, 5, 20}}, initial.Values())
	assert.NotEqual(t, initial.String(), res.Plan.String())
}

func TestSolve_CostNeverIncreases(t *testing.T) {
	res, err := transport.Solve(context.Background(), warehouseProblem(t),
		transport.WithMethod(transport.NorthWestCorner), transport.WithPivotRule(transport.FirstImproving))
	require.NoError(t, err)

	last := res.Trace[2].Cost
	for _, e := range res.Trace {
		if e.Stage != transport.StagePivot {
			continue
		}
		assert.LessOrEqual(t, e.Cost, last+tolCheck)
		last = e.Cost
	}
}

func TestSolve_ObserverSeesEveryEvent(t *testing.T) {
	var seen []transport.Event
	res, err := transport.Solve(context.Background(), depotProblem(t),
		transport.WithObserver(func(e transport.Event) { seen = append(seen, e) }))
	require.NoError(t, err)
	require.Len(t, seen, len(res.Trace))
	assert.Equal(t, transport.StageGiven, seen[0].Stage)
	assert.Equal(t, transport.StageDone, seen[len(seen)-1].Stage)

	// The given event keeps the unbalanced input.
	assert.Equal(t, []float64{12, 30, 13}, seen[0].Supply)
	assert.Equal(t, []float64{12, 30, 13, 52}, seen[1].Supply)
}

// -----------------------------------------------------------------------------
// Errors and limits
// -----------------------------------------------------------------------------

func TestSolve_NonConvergenceReturnsPartialResult(t *testing.T) {
	res, err := transport.Solve(context.Background(), classicProblem(t),
		transport.WithMethod(transport.NorthWestCorner), transport.WithMaxIterations(2))
	require.ErrorIs(t, err, transport.ErrNonConvergence)

	var se *transport.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, transport.StageOptimality, se.Stage)

	require.NotNil(t, res)
	assert.False(t, res.Optimal)
	assert.Equal(t, 2, res.Iterations)
	requireFeasible(t, res.Problem, res.Plan)
	assert.Equal(t, transport.StageOptimality, res.Trace[len(res.Trace)-1].Stage)
}

func TestSolve_InputErrors(t *testing.T) {
	_, err := transport.Solve(context.Background(), nil)
	require.ErrorIs(t, err, transport.ErrNilProblem)
	require.ErrorIs(t, err, transport.ErrConfiguration)

	_, err = transport.Solve(context.Background(), classicProblem(t), transport.WithMethod(transport.Method(7)))
	require.ErrorIs(t, err, transport.ErrUnknownMethod)

	_, err = transport.Solve(context.Background(), classicProblem(t), transport.WithPivotRule(transport.PivotRule(7)))
	require.ErrorIs(t, err, transport.ErrUnknownRule)

	_, err = transport.Solve(context.Background(), classicProblem(t), func(o *transport.Options) { o.Tolerance = 0 })
	require.ErrorIs(t, err, transport.ErrBadOption)
}

func TestSolve_OptionPanics(t *testing.T) {
	assert.Panics(t, func() { transport.WithMaxIterations(-1) })
	assert.Panics(t, func() { transport.WithTolerance(0) })
	assert.Panics(t, func() { transport.WithTolerance(2) })
	assert.Panics(t, func() { transport.WithObserver(nil) })
}

func TestSolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := transport.Solve(ctx, classicProblem(t))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestSolve_DoesNotMutateInput(t *testing.T) {
	p := scenarioProblem(t)
	_, err := transport.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 3, p.M())
	assert.Equal(t, transport.NoDummy, p.Dummy())
}

// -----------------------------------------------------------------------------
// Ambient: run id, logging, concurrency
// -----------------------------------------------------------------------------

func TestSolve_RunID(t *testing.T) {
	res, err := transport.Solve(context.Background(), classicProblem(t))
	require.NoError(t, err)
	_, err = uuid.Parse(res.RunID)
	require.NoError(t, err)

	res, err = transport.Solve(context.Background(), classicProblem(t), transport.WithRunID("fixed"))
	require.NoError(t, err)
	assert.Equal(t, "fixed", res.RunID)
}

func TestSolve_Logging(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: transport.LevelTrace}))

	_, err := transport.Solve(context.Background(), classicProblem(t),
		transport.WithLogger(lg), transport.WithRunID("run-42"), transport.WithMethod(transport.NorthWestCorner))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=solved")
	assert.Contains(t, out, "msg=pivot")
	assert.Contains(t, out, "msg=optimality")
	assert.Contains(t, out, "run=run-42")
	assert.Contains(t, out, "component=transport")
}

func TestSolve_ConcurrentIndependentProblems(t *testing.T) {
	const workers = 8
	var (
		wg       sync.WaitGroup
		problems = make([]*transport.Problem, workers)
		costs    = make([]float64, workers)
		errs     = make([]error, workers)
	)
	for w := range problems {
		problems[w] = warehouseProblem(t)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			res, err := transport.Solve(context.Background(), problems[w])
			errs[w] = err
			if err == nil {
				costs[w] = res.Cost
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		assert.True(t, sameFloat(costs[w], 161230000))
	}
}
