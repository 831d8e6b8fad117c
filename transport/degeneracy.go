// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"math"
)

// ResolveDegeneracy inserts epsilon allocations into x until it has exactly
// m+n-1 basic cells forming a spanning tree. It returns the cells that
// received epsilon, in insertion order.
//
// Placement per step:
//
//  1. Isolated pair: the first row whose only basic cell (i,j) is also the
//     only basic cell of column j gets epsilon at (i+1,j), or at (i-1,j)
//     when i is the last row.
//  2. Otherwise the cheapest free cell joining two components of the basis
//     (ties in row-major order).
//
// Every placement joins two components, so the loop finishes after at most
// m+n-1 steps. A plan that already satisfies the count is left untouched.
//
// Errors: ErrInvariantViolation if the basis has too many cells or contains
// a cycle.
//
// Complexity: O((m+n)·m·n·α(m+n)).
func ResolveDegeneracy(p *Problem, x *Plan) ([]Cell, error) {
	var (
		m, n   = x.Rows(), x.Cols()
		want   = m + n - 1
		have   = x.BasicCount()
		placed []Cell
		c      Cell
		ok     bool
	)
	if p.M() != m || p.N() != n {
		return nil, fmt.Errorf("%w: plan is %dx%d, problem is %dx%d", ErrInvariantViolation, m, n, p.M(), p.N())
	}
	if have > want {
		return nil, fmt.Errorf("%w: %d basic cells, want %d", ErrInvariantViolation, have, want)
	}

	forest, acyclic := forestOf(x)
	if !acyclic {
		return nil, fmt.Errorf("%w: basic cells contain a cycle", ErrInvariantViolation)
	}

	for ; have < want; have++ {
		c, ok = isolatedPairNeighbor(x)
		if !ok || !forest.connects(c) {
			c, ok = cheapestBridge(p, x, forest)
		}
		if !ok {
			return nil, fmt.Errorf("%w: no free cell joins two components", ErrInvariantViolation)
		}
		x.set(c, Epsilon())
		forest.addCell(c)
		placed = append(placed, c)
	}

	return placed, nil
}

// isolatedPairNeighbor finds the first row i with a single basic cell (i,j)
// whose column j has no other basic cell, and returns the cell directly
// below it (or above it on the last row).
func isolatedPairNeighbor(x *Plan) (Cell, bool) {
	var (
		m, n  = x.Rows(), x.Cols()
		count int
		col   int
	)
	if m < 2 {
		return Cell{}, false
	}
	for i := 0; i < m; i++ {
		count, col = 0, -1
		for j := 0; j < n; j++ {
			if x.At(i, j).IsBasic() {
				count++
				col = j
			}
		}
		if count != 1 || columnBasicCount(x, col) != 1 {
			continue
		}
		if i == m-1 {
			return Cell{Row: i - 1, Col: col}, true
		}

		return Cell{Row: i + 1, Col: col}, true
	}

	return Cell{}, false
}

func columnBasicCount(x *Plan, j int) int {
	var k int
	for i := 0; i < x.Rows(); i++ {
		if x.At(i, j).IsBasic() {
			k++
		}
	}

	return k
}

// cheapestBridge returns the cheapest free cell whose row and column lie in
// different components.
func cheapestBridge(p *Problem, x *Plan, f *lineForest) (Cell, bool) {
	var (
		best     Cell
		bestCost = math.Inf(1)
		found    bool
		c        Cell
	)
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			c = Cell{Row: i, Col: j}
			if x.at(c).IsBasic() || !f.connects(c) {
				continue
			}
			if cost := p.At(i, j); !found || cost < bestCost {
				best, bestCost, found = c, cost, true
			}
		}
	}

	return best, found
}
