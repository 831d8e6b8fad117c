// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"math"
)

// InitialPlan builds an initial basic feasible plan for a balanced problem
// with the selected method. The returned plan may be degenerate; see
// ResolveDegeneracy.
//
// Errors: ErrUnknownMethod; ErrInvariantViolation if the problem is not
// balanced and the method runs out of cells with quantity left.
func InitialPlan(p *Problem, method Method) (*Plan, error) {
	return initialPlan(p, method, DefaultTolerance)
}

func initialPlan(p *Problem, method Method, tol float64) (*Plan, error) {
	switch method {
	case NorthWestCorner:
		return northWestCorner(p, tol), nil
	case MinimumCost:
		return minimumCost(p, tol)
	default:
		return nil, ErrUnknownMethod
	}
}

// northWestCorner fills cells from (0,0): each step ships min(row rest,
// column rest) and moves down when the row is exhausted, right when the
// column is exhausted, or diagonally when both are.
//
// Complexity: O(m·n) for the allocation, O(m+n) steps.
func northWestCorner(p *Problem, tol float64) *Plan {
	var (
		m, n   = p.M(), p.N()
		x      = NewPlan(m, n)
		ra     = p.Supply()
		rb     = p.Demand()
		i, j   int
		q      float64
		rowOut bool
		colOut bool
	)
	for i < m && j < n {
		q = math.Min(ra[i], rb[j])
		x.Set(i, j, Qty(q))
		ra[i] -= q
		rb[j] -= q

		// Both tests are taken before moving so a tie advances diagonally.
		rowOut = ra[i] <= tol
		colOut = rb[j] <= tol
		if rowOut {
			i++
		}
		if colOut {
			j++
		}
	}

	return x
}

// minimumCost repeatedly ships along the cheapest usable cell.
//
// A cell is usable while its row and column still have quantity left and
// it has not been filled yet. Ties resolve to the first cell in row-major
// order. When the dummy line costs nothing, its cells are held back until
// every other usable cell is exhausted, so the real routes are priced first.
//
// Complexity: O((m·n)·(m+n)) time, O(m·n) space.
func minimumCost(p *Problem, tol float64) (*Plan, error) {
	var (
		m, n     = p.M(), p.N()
		x        = NewPlan(m, n)
		ra       = p.Supply()
		rb       = p.Demand()
		used     = make([]bool, m*n)
		rowDone  = make([]bool, m)
		colDone  = make([]bool, n)
		deferred = p.DummyIsFree()
		best     Cell
		bestCost float64
		found    bool
		q        float64
	)
	for i := 0; i < m; i++ {
		rowDone[i] = ra[i] <= tol
	}
	for j := 0; j < n; j++ {
		colDone[j] = rb[j] <= tol
	}

	for {
		if allDone(rowDone) && allDone(colDone) {
			return x, nil
		}

		found = false
		bestCost = math.Inf(1)
		for i := 0; i < m; i++ {
			if rowDone[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if colDone[j] || used[i*n+j] {
					continue
				}
				if deferred && p.isDummyCell(i, j) {
					continue
				}
				// Strict comparison keeps the first row-major cell on ties.
				if c := p.At(i, j); !found || c < bestCost {
					best, bestCost, found = Cell{Row: i, Col: j}, c, true
				}
			}
		}

		if !found {
			if deferred {
				deferred = false
				continue
			}
			// One side is exhausted while the other still holds quantity.
			return nil, fmt.Errorf("%w: minimum-cost ran out of usable cells (problem not balanced?)", ErrInvariantViolation)
		}

		q = math.Min(ra[best.Row], rb[best.Col])
		x.set(best, Qty(q))
		used[best.Row*n+best.Col] = true
		ra[best.Row] -= q
		rb[best.Col] -= q
		if ra[best.Row] <= tol {
			rowDone[best.Row] = true
		}
		if rb[best.Col] <= tol {
			colDone[best.Col] = true
		}
	}
}

func allDone(v []bool) bool {
	for _, d := range v {
		if !d {
			return false
		}
	}

	return true
}
