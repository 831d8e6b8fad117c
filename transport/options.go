// SPDX-License-Identifier: MIT

package transport

import (
	"log/slog"
	"math"
)

// DefaultTolerance is the numeric tolerance used for optimality tests,
// remainder exhaustion and zero snapping.
const DefaultTolerance = 1e-9

// Default iteration cap parameters: max(minIterationCap, iterationCapFactor·m·n).
const (
	minIterationCap    = 100
	iterationCapFactor = 10
)

// Options configures Solve.
//
//   - Method:        initial plan strategy (default MinimumCost).
//   - PivotRule:     entering cell rule (default SteepestDescent).
//   - MaxIterations: pivot cap; 0 selects max(100, 10·m·n) on the balanced size.
//   - Tolerance:     comparisons within Tolerance are treated as equal (default 1e-9).
//   - Logger:        optional structured logger; nil disables logging.
//   - Observer:      optional callback invoked synchronously for every trace Event.
//   - RunID:         optional correlation id; empty selects a fresh UUID.
type Options struct {
	Method        Method
	PivotRule     PivotRule
	MaxIterations int
	Tolerance     float64
	Logger        *slog.Logger
	Observer      func(Event)
	RunID         string
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Method:        MinimumCost,
		PivotRule:     SteepestDescent,
		MaxIterations: 0,
		Tolerance:     DefaultTolerance,
	}
}

// WithMethod selects the initial plan strategy.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithPivotRule selects the entering cell rule.
func WithPivotRule(r PivotRule) Option {
	return func(o *Options) { o.PivotRule = r }
}

// WithMaxIterations caps the number of pivots. Panics if n < 0.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic("transport: WithMaxIterations(n) requires n >= 0")
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithTolerance sets the numeric tolerance. Panics unless 0 < tol < 1 and finite.
func WithTolerance(tol float64) Option {
	if !(tol > 0 && tol < 1) {
		panic("transport: WithTolerance(tol) requires 0 < tol < 1")
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithObserver registers a callback receiving each trace event as it is
// recorded. Panics on a nil callback.
func WithObserver(fn func(Event)) Option {
	if fn == nil {
		panic("transport: WithObserver(nil)")
	}

	return func(o *Options) { o.Observer = fn }
}

// WithRunID sets the correlation id reported in Result and log records.
func WithRunID(id string) Option {
	return func(o *Options) { o.RunID = id }
}

// validateOptions re-checks values that may bypass the With* constructors
// through struct literals.
func validateOptions(o Options) error {
	switch o.Method {
	case MinimumCost, NorthWestCorner:
	default:
		return ErrUnknownMethod
	}
	switch o.PivotRule {
	case SteepestDescent, FirstImproving:
	default:
		return ErrUnknownRule
	}
	if o.MaxIterations < 0 {
		return ErrBadOption
	}
	if math.IsNaN(o.Tolerance) || o.Tolerance <= 0 || o.Tolerance >= 1 {
		return ErrBadOption
	}

	return nil
}

// iterationCap resolves MaxIterations for a balanced m×n problem.
func (o Options) iterationCap(m, n int) int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}

	return max(minIterationCap, iterationCapFactor*m*n)
}
