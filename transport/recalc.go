// SPDX-License-Identifier: MIT

package transport

import "math"

// Recalculate shifts θ around cycle and returns θ.
//
// Positions are counted on the open cycle (the closing repeat of the start
// dropped): even positions are plus cells, odd positions are minus cells,
// position 0 is the entering cell. θ is the smallest allocation among the
// minus cells, where epsilon is below every positive quantity.
//
//   - θ is epsilon: the entering cell becomes epsilon and the first minus
//     cell holding epsilon becomes free. The cost is unchanged.
//   - θ is real: the first minus cell equal to θ leaves the basis (becomes
//     zero); any other minus cell tied at θ becomes epsilon so the basis
//     keeps m+n-1 cells. Every remaining cell gets +θ (plus) or -θ (minus),
//     with epsilon read as 0.
//
// Results within tol of zero snap to an exact zero.
//
// Errors: ErrInvariantViolation for a malformed cycle.
//
// Complexity: O(len(cycle)) after validation.
func Recalculate(x *Plan, cycle []Cell) (Allocation, error) {
	return recalculate(x, cycle, DefaultTolerance)
}

func recalculate(x *Plan, cycle []Cell, tol float64) (Allocation, error) {
	if err := ValidateCycle(x, cycle); err != nil {
		return Allocation{}, err
	}

	var (
		open    = cycle[:len(cycle)-1]
		theta   = x.at(open[1])
		leaving = -1
		k       int
		a       Allocation
		v       float64
	)
	for k = 3; k < len(open); k += 2 {
		if a = x.at(open[k]); a.Less(theta) {
			theta = a
		}
	}

	if theta.IsEpsilon() {
		for k = 1; k < len(open); k += 2 {
			if x.at(open[k]).IsEpsilon() {
				x.set(open[k], Qty(0))
				break
			}
		}
		x.set(open[0], Epsilon())

		return theta, nil
	}

	for k = 0; k < len(open); k++ {
		a = x.at(open[k])
		if k%2 == 1 && math.Abs(a.Value()-theta.Value()) <= tol {
			if leaving < 0 {
				leaving = k
				x.set(open[k], Qty(0))
			} else {
				x.set(open[k], Epsilon())
			}
			continue
		}
		if k%2 == 0 {
			v = a.Value() + theta.Value()
		} else {
			v = a.Value() - theta.Value()
		}
		if math.Abs(v) <= tol {
			v = 0
		}
		x.set(open[k], Qty(v))
	}

	return theta, nil
}
