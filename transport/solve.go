// SPDX-License-Identifier: MIT

package transport

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// Result is the outcome of Solve.
type Result struct {
	// RunID correlates the result with log records.
	RunID string
	// Problem is the balanced copy the plan refers to (dummy line included).
	Problem *Problem
	// Balance describes the balancing step.
	Balance BalanceResult
	// Method and PivotRule echo the options used.
	Method    Method
	PivotRule PivotRule
	// Plan is the final plan; epsilon cells may remain.
	Plan *Plan
	// Cost is Σ c·x of Plan.
	Cost float64
	// Potentials of the final basis.
	Potentials Potentials
	// Iterations counts the pivots performed.
	Iterations int
	// Optimal is false only when Solve returned ErrNonConvergence.
	Optimal bool
	// Trace holds every recorded event in order.
	Trace []Event
}

// Solve runs the full pipeline on a copy of p: balance, initial plan,
// degeneracy resolution, then potentials/optimality/pivot iterations until
// the plan is optimal.
//
// The caller's Problem is never mutated. ctx is checked once per iteration.
//
// Errors:
//   - ErrConfiguration family: nil problem or invalid options; returned
//     before any work is done.
//   - ErrNonConvergence: the pivot cap was reached; the partial Result (last
//     plan and the full trace) is returned alongside the error.
//   - ErrInvariantViolation: internal inconsistency; no Result is returned.
//   - ctx.Err() when the context is cancelled.
//
// All stage failures are wrapped in *StageError.
//
// Complexity: O(k·(m·n + (m+n)²)) for k pivots.
func Solve(ctx context.Context, p *Problem, opts ...Option) (*Result, error) {
	var (
		o   = DefaultOptions()
		err error
	)
	for _, opt := range opts {
		opt(&o)
	}
	if err = validateOptions(o); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNilProblem
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}

	s := &solver{
		opts: o,
		log:  newLogger(ctx, o.Logger, o.RunID),
		tr:   &tracer{observer: o.Observer},
		res:  &Result{RunID: o.RunID, Method: o.Method, PivotRule: o.PivotRule},
	}

	return s.run(ctx, p.Clone())
}

// solver carries the state of one Solve call.
type solver struct {
	opts Options
	log  logger
	tr   *tracer
	res  *Result
}

func (s *solver) fail(stage Stage, iter int, err error) (*Result, error) {
	s.log.warn("solve failed",
		slog.String("stage", stage.String()),
		slog.Int("iteration", iter),
		slog.String("error", err.Error()))

	return nil, &StageError{Stage: stage, Iteration: iter, Err: err}
}

func (s *solver) run(ctx context.Context, p *Problem) (*Result, error) {
	var (
		tol = s.opts.Tolerance
		x   *Plan
		err error
	)
	s.res.Problem = p

	// BALANCE
	s.tr.emit(Event{
		Stage: StageGiven, Label: "given",
		Costs: p.Costs(), Supply: p.Supply(), Demand: p.Demand(),
	})
	bal, err := p.BalanceWithin(tol)
	if err != nil {
		return s.fail(StageBalance, 0, err)
	}
	s.res.Balance = bal
	s.tr.emit(Event{
		Stage: StageBalance, Label: balanceLabel(bal),
		Balance: bal, Costs: p.Costs(), Supply: p.Supply(), Demand: p.Demand(),
	})
	s.log.debug("balanced",
		slog.Float64("difference", bal.Difference),
		slog.String("dummy", bal.Dummy.String()),
		slog.Int("m", p.M()), slog.Int("n", p.N()))

	// INITIAL_PLAN
	if x, err = initialPlan(p, s.opts.Method, tol); err != nil {
		return s.fail(StageInitialPlan, 0, err)
	}
	s.tr.emit(Event{
		Stage: StageInitialPlan, Label: "initial plan (" + s.opts.Method.String() + ")",
		Method: s.opts.Method, Plan: x.Clone(), Cost: p.Cost(x),
	})
	s.log.debug("initial plan",
		slog.String("method", s.opts.Method.String()),
		slog.Int("basic", x.BasicCount()),
		slog.Float64("cost", p.Cost(x)))

	// DEGENERACY_CHECK
	degenerate := IsDegenerate(x)
	placed, err := ResolveDegeneracy(p, x)
	if err != nil {
		return s.fail(StageDegeneracy, 0, err)
	}
	if !IsSpanningTree(x) {
		return s.fail(StageDegeneracy, 0, fmt.Errorf("%w: basis is not a spanning tree", ErrInvariantViolation))
	}
	s.tr.emit(Event{
		Stage: StageDegeneracy, Label: degeneracyLabel(degenerate),
		Degenerate: degenerate, EpsilonCells: placed, Plan: x.Clone(),
	})
	if degenerate {
		s.log.debug("degenerate plan resolved", slog.Int("epsilon", len(placed)))
	}

	return s.iterate(ctx, p, x)
}

// iterate runs POTENTIALS → OPTIMALITY_CHECK → PIVOT until optimal.
func (s *solver) iterate(ctx context.Context, p *Problem, x *Plan) (*Result, error) {
	var (
		tol      = s.opts.Tolerance
		limit    = s.opts.iterationCap(p.M(), p.N())
		cost     = p.Cost(x)
		prevCost float64
		pot      Potentials
		opt      Optimality
		cycle    []Cell
		theta    Allocation
		iter     int
		err      error
	)
	for iter = 0; ; iter++ {
		if err = ctx.Err(); err != nil {
			return s.fail(StagePotentials, iter, err)
		}

		// POTENTIALS
		if pot, err = ComputePotentials(p, x); err != nil {
			return s.fail(StagePotentials, iter, err)
		}
		s.tr.emit(Event{
			Stage: StagePotentials, Iteration: iter, Label: "potentials",
			Cost: cost, Potentials: ptr(pot.Clone()), Plan: x.Clone(),
		})

		// OPTIMALITY_CHECK
		opt = CheckOptimality(p, x, pot, s.opts.PivotRule, tol)
		s.tr.emit(Event{
			Stage: StageOptimality, Iteration: iter, Label: optimalityLabel(opt.Optimal),
			Optimal: opt.Optimal, Entering: opt.Entering, Delta: opt.Delta,
			Violations: opt.Violations, Potentials: ptr(pot.Clone()),
		})
		s.log.trace("optimality",
			slog.Int("iteration", iter),
			slog.Bool("optimal", opt.Optimal),
			slog.Int("violations", len(opt.Violations)))
		if opt.Optimal {
			break
		}

		if iter >= limit {
			s.finish(x, cost, pot, iter, false)
			s.log.warn("iteration limit reached", slog.Int("limit", limit), slog.Float64("cost", cost))

			return s.res, &StageError{Stage: StageOptimality, Iteration: iter, Err: ErrNonConvergence}
		}

		// PIVOT
		if cycle, err = FindCycle(x, opt.Entering); err != nil {
			return s.fail(StageCycle, iter+1, err)
		}
		s.tr.emit(Event{
			Stage: StageCycle, Iteration: iter + 1, Label: "cycle",
			Entering: opt.Entering, Delta: opt.Delta, Cycle: append([]Cell(nil), cycle...),
		})
		if theta, err = recalculate(x, cycle, tol); err != nil {
			return s.fail(StagePivot, iter+1, err)
		}

		prevCost, cost = cost, p.Cost(x)
		if cost > prevCost+tol*math.Max(1, math.Abs(prevCost)) {
			return s.fail(StagePivot, iter+1,
				fmt.Errorf("%w: cost rose from %g to %g", ErrInvariantViolation, prevCost, cost))
		}
		if x.BasicCount() != p.M()+p.N()-1 {
			return s.fail(StagePivot, iter+1,
				fmt.Errorf("%w: %d basic cells after pivot", ErrInvariantViolation, x.BasicCount()))
		}
		s.tr.emit(Event{
			Stage: StagePivot, Iteration: iter + 1, Label: "pivot",
			Theta: theta, Plan: x.Clone(), Cost: cost,
		})
		s.log.debug("pivot",
			slog.Int("iteration", iter+1),
			cellAttr("entering", opt.Entering),
			slog.Float64("delta", opt.Delta),
			slog.String("theta", theta.String()),
			slog.Float64("cost", cost))
	}

	s.finish(x, cost, pot, iter, true)
	s.log.info("solved",
		slog.Float64("cost", cost),
		slog.Int("iterations", iter),
		slog.String("method", s.opts.Method.String()))

	return s.res, nil
}

func (s *solver) finish(x *Plan, cost float64, pot Potentials, iter int, optimal bool) {
	s.res.Plan = x
	s.res.Cost = cost
	s.res.Potentials = pot
	s.res.Iterations = iter
	s.res.Optimal = optimal
	if optimal {
		s.tr.emit(Event{Stage: StageDone, Iteration: iter, Label: "answer", Plan: x.Clone(), Cost: cost, Potentials: ptr(pot.Clone())})
	}
	s.res.Trace = s.tr.events
}

func balanceLabel(b BalanceResult) string {
	switch b.Dummy {
	case DummySource:
		return "supply < demand: dummy source added"
	case DummySink:
		return "supply > demand: dummy sink added"
	default:
		return "balanced"
	}
}

func degeneracyLabel(degenerate bool) string {
	if degenerate {
		return "degenerate"
	}

	return "not degenerate"
}

func optimalityLabel(optimal bool) string {
	if optimal {
		return "optimal"
	}

	return "not optimal"
}

func ptr[T any](v T) *T { return &v }
