// Package transport solves the balanced transportation problem with the
// method of potentials (MODI) and stepping-stone pivots, recording every
// intermediate step as a structured trace.
//
// Given supplies a[0..m), demands b[0..n) and a per-unit cost matrix
// c[m][n], the solver finds a shipment plan x[m][n] >= 0 with
// Σ_j x[i][j] = a[i] and Σ_i x[i][j] = b[j] that minimizes Σ c[i][j]·x[i][j].
//
// Pipeline:
//
//  1. Balance: an unbalanced problem receives a dummy source or sink whose
//     volume equals the supply/demand difference. Dummy costs come from the
//     penalty vectors (zero by default).
//  2. Initial plan: North-West corner or Minimum cost (default).
//  3. Degeneracy: epsilon allocations are inserted until the plan has
//     exactly m+n-1 basic cells forming a spanning tree of the bipartite
//     row/column graph.
//  4. Loop: potentials u,v with u[0]=0 and u[i]+v[j]=c[i][j] on basic cells;
//     reduced costs Δ[i][j] = u[i]+v[j]-c[i][j] on free cells. If every
//     Δ <= tolerance the plan is optimal. Otherwise the entering cell opens
//     a stepping-stone cycle, θ is shifted around it and the loop repeats.
//
// Epsilon is a tagged Allocation variant: it is basic, counts as zero for
// cost and arithmetic, and is smaller than any positive quantity when θ is
// chosen.
//
// Tie-breaking is row-major everywhere: the first cell in (row, col)
// lexicographic order wins.
//
// Complexity:
//
//   - Initial plan:  O(m·n) North-West corner, O((m·n)²) Minimum cost.
//   - Potentials:    O((m+n)²) worst case (bounded number of passes).
//   - Optimality:    O(m·n) per iteration.
//   - Cycle search:  O((m+n)·(m+n)) per iteration on a spanning-tree basis.
//   - Space:         O(m·n).
//
// Options:
//
//   - Method:        initial plan strategy (MinimumCost, NorthWestCorner).
//   - PivotRule:     entering cell rule (SteepestDescent, FirstImproving).
//   - MaxIterations: pivot cap; 0 selects max(100, 10·m·n).
//   - Tolerance:     numeric tolerance for optimality and zero snapping.
//   - Logger:        optional *slog.Logger; nil disables logging.
//   - Observer:      optional callback receiving each trace Event.
//
// Errors (sentinel):
//
//   - ErrConfiguration      umbrella for every invalid-input error.
//   - ErrNonConvergence     pivot cap exceeded; the partial Result is returned.
//   - ErrInvariantViolation internal consistency failure; no plan is returned.
//
// Example:
//
//	p, err := transport.NewProblem(
//	    []float64{4, 6, 8},
//	    []float64{3, 6, 5, 7},
//	    [][]float64{{2, 4, 1, 3}, {4, 8, 2, 4}, {2, 2, 6, 5}},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := transport.Solve(ctx, p, transport.WithMethod(transport.NorthWestCorner))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Cost) // 41
package transport
