// SPDX-License-Identifier: MIT

package transport

import "fmt"

// ComputePotentials solves u[i] + v[j] = c[i][j] over the basic cells of x
// with u[0] = 0.
//
// Values propagate across basic cells in full row-major passes. On a
// spanning-tree basis every pass fixes at least one more line, so at most
// m+n passes are needed; a pass that fixes nothing means the basis does not
// span and ErrInvariantViolation is returned.
//
// Complexity: O((m+n)·|basic|).
func ComputePotentials(p *Problem, x *Plan) (Potentials, error) {
	var (
		m, n     = x.Rows(), x.Cols()
		pot      = Potentials{A: make([]float64, m), B: make([]float64, n)}
		knownA   = make([]bool, m)
		knownB   = make([]bool, n)
		basic    = x.Basic()
		unknown  = m + n - 1
		progress bool
		pass     int
	)
	if m == 0 || n == 0 {
		return pot, fmt.Errorf("%w: empty plan", ErrInvariantViolation)
	}
	knownA[0] = true

	for pass = 0; unknown > 0; pass++ {
		if pass > m+n {
			break
		}
		progress = false
		for _, c := range basic {
			switch {
			case knownA[c.Row] && !knownB[c.Col]:
				pot.B[c.Col] = p.At(c.Row, c.Col) - pot.A[c.Row]
				knownB[c.Col] = true
			case knownB[c.Col] && !knownA[c.Row]:
				pot.A[c.Row] = p.At(c.Row, c.Col) - pot.B[c.Col]
				knownA[c.Row] = true
			default:
				continue
			}
			unknown--
			progress = true
		}
		if !progress {
			break
		}
	}
	if unknown > 0 {
		return pot, fmt.Errorf("%w: %d potentials undetermined after %d passes", ErrInvariantViolation, unknown, pass)
	}

	return pot, nil
}
