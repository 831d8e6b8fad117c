// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"math"
)

// validateInput checks raw problem data before it is copied into a Problem.
//
// Contract:
//   - len(supply) >= 1 and len(demand) >= 1.
//   - cost has len(supply) rows, each of len(demand).
//   - supply/demand entries are finite and non-negative; cost entries finite.
//   - penalty vectors, when present, match their axis and are finite.
//
// Complexity: O(m·n).
func validateInput(supply, demand []float64, cost [][]float64, ra, rb []float64) error {
	var (
		m, n int
		err  error
	)

	// Stage 1: shape.
	m, n = len(supply), len(demand)
	if m == 0 || n == 0 {
		return ErrEmptyProblem
	}
	if len(cost) != m {
		return fmt.Errorf("%w: cost has %d rows, want %d", ErrDimensionMismatch, len(cost), m)
	}
	for i := range cost {
		if len(cost[i]) != n {
			return fmt.Errorf("%w: cost row %d has %d columns, want %d", ErrDimensionMismatch, i, len(cost[i]), n)
		}
	}

	// Stage 2: quantities.
	if err = validateQuantities("supply", supply); err != nil {
		return err
	}
	if err = validateQuantities("demand", demand); err != nil {
		return err
	}

	// Stage 3: costs.
	for i := range cost {
		for j, v := range cost[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: cost[%d][%d]=%v", ErrNonFinite, i, j, v)
			}
		}
	}

	// Stage 4: optional penalties.
	if ra != nil {
		if err = validatePenalty("supply penalty", ra, m); err != nil {
			return err
		}
	}
	if rb != nil {
		if err = validatePenalty("demand penalty", rb, n); err != nil {
			return err
		}
	}

	return nil
}

func validateQuantities(name string, v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s[%d]=%v", ErrNonFinite, name, i, x)
		}
		if x < 0 {
			return fmt.Errorf("%w: %s[%d]=%v", ErrNegativeQuantity, name, i, x)
		}
	}

	return nil
}

func validatePenalty(name string, v []float64, want int) error {
	if len(v) != want {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrDimensionMismatch, name, len(v), want)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s[%d]=%v", ErrNonFinite, name, i, x)
		}
	}

	return nil
}
