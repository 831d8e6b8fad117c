// SPDX-License-Identifier: MIT

package transport

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors returned by the transport solver.
var (
	// ErrConfiguration is the umbrella for every invalid-input error. All
	// concrete configuration sentinels below wrap it, so callers may test
	// either the family or the specific cause with errors.Is.
	ErrConfiguration = errors.New("transport: invalid configuration")

	// ErrNonConvergence indicates that the pivot cap was reached before the
	// optimality test succeeded.
	ErrNonConvergence = errors.New("transport: iteration limit exceeded")

	// ErrInvariantViolation indicates an internal consistency failure: a
	// basis that is not a spanning tree, potentials that cannot be
	// propagated, a missing cycle or an increasing objective.
	ErrInvariantViolation = errors.New("transport: invariant violation")
)

// Concrete configuration errors. Each one wraps ErrConfiguration.
var (
	// ErrNilProblem is returned when a nil *Problem is passed to Solve.
	ErrNilProblem = fmt.Errorf("%w: problem is nil", ErrConfiguration)

	// ErrEmptyProblem is returned when supply or demand is empty.
	ErrEmptyProblem = fmt.Errorf("%w: supply and demand must be non-empty", ErrConfiguration)

	// ErrDimensionMismatch is returned when the cost matrix or a penalty
	// vector does not match the supply/demand lengths.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrConfiguration)

	// ErrNegativeQuantity is returned when a supply or demand entry is negative.
	ErrNegativeQuantity = fmt.Errorf("%w: negative quantity", ErrConfiguration)

	// ErrNonFinite is returned when any input number is NaN or ±Inf.
	ErrNonFinite = fmt.Errorf("%w: non-finite value", ErrConfiguration)

	// ErrUnknownMethod is returned for a Method outside the closed set.
	ErrUnknownMethod = fmt.Errorf("%w: unknown initial plan method", ErrConfiguration)

	// ErrUnknownRule is returned for a PivotRule outside the closed set.
	ErrUnknownRule = fmt.Errorf("%w: unknown pivot rule", ErrConfiguration)

	// ErrBadOption is returned when Options carry meaningless values
	// (negative iteration cap, non-positive or non-finite tolerance).
	ErrBadOption = fmt.Errorf("%w: bad option value", ErrConfiguration)
)

// StageError attaches the solver stage and iteration to an underlying error.
// It unwraps to the sentinel, so errors.Is keeps working through it.
type StageError struct {
	Stage     Stage
	Iteration int
	Err       error
}

func (e *StageError) Error() string {
	if e.Iteration > 0 {
		return fmt.Sprintf("transport: %s (iteration %d): %v", e.Stage, e.Iteration, e.Err)
	}

	return fmt.Sprintf("transport: %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error { return e.Err }

// Method selects the initial basic feasible solution strategy.
type Method int

const (
	// MinimumCost fills the globally cheapest usable cell first.
	MinimumCost Method = iota
	// NorthWestCorner fills cells starting from (0,0) moving right/down.
	NorthWestCorner
)

// String returns the method name used in logs and reports.
func (m Method) String() string {
	switch m {
	case MinimumCost:
		return "minimum-cost"
	case NorthWestCorner:
		return "north-west-corner"
	default:
		return "method(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMethod converts a method name (as printed by String, or the short
// forms "min", "nw", "nwc") to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "minimum-cost", "min", "mincost", "min-cost":
		return MinimumCost, nil
	case "north-west-corner", "nw", "nwc", "northwest":
		return NorthWestCorner, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// PivotRule selects the entering cell among the free cells whose reduced
// cost is positive.
type PivotRule int

const (
	// SteepestDescent picks the free cell with the largest reduced cost;
	// ties go to the first cell in row-major order.
	SteepestDescent PivotRule = iota
	// FirstImproving picks the first free cell in row-major order with a
	// positive reduced cost (Bland-style anti-cycling rule).
	FirstImproving
)

// String returns the rule name used in logs and reports.
func (r PivotRule) String() string {
	switch r {
	case SteepestDescent:
		return "steepest"
	case FirstImproving:
		return "first-improving"
	default:
		return "rule(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParsePivotRule converts a rule name to a PivotRule.
func ParsePivotRule(s string) (PivotRule, error) {
	switch s {
	case "steepest", "steepest-descent", "max":
		return SteepestDescent, nil
	case "first-improving", "first", "bland":
		return FirstImproving, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// Cell addresses one position of a plan by zero-based row and column.
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the cell as "(row,col)".
func (c Cell) String() string {
	return "(" + strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col) + ")"
}

// Dummy reports which artificial line, if any, balancing added.
type Dummy int

const (
	// NoDummy means the problem was already balanced.
	NoDummy Dummy = iota
	// DummySource is an extra row absorbing excess demand.
	DummySource
	// DummySink is an extra column absorbing excess supply.
	DummySink
)

func (d Dummy) String() string {
	switch d {
	case DummySource:
		return "dummy-source"
	case DummySink:
		return "dummy-sink"
	default:
		return "none"
	}
}

// BalanceResult describes what Balance did.
type BalanceResult struct {
	// Difference is sum(supply) - sum(demand) before balancing.
	Difference float64
	// Dummy is the line that was added, if any.
	Dummy Dummy
	// Volume is the quantity carried by the dummy line (|Difference|).
	Volume float64
}

// Potentials holds the dual variables of a basis: A for rows (sources) and
// B for columns (sinks).
type Potentials struct {
	A []float64 `json:"a" yaml:"a"`
	B []float64 `json:"b" yaml:"b"`
}

// Clone returns a deep copy.
func (p Potentials) Clone() Potentials {
	return Potentials{
		A: append([]float64(nil), p.A...),
		B: append([]float64(nil), p.B...),
	}
}
