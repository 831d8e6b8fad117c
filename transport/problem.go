// SPDX-License-Identifier: MIT

package transport

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Problem holds supplies, demands, the cost matrix and the optional
// penalties that price a dummy line. Only Balance mutates it.
type Problem struct {
	supply []float64
	demand []float64
	cost   *mat.Dense

	// penalties per unit of unmet supply (ra, len m) and unmet demand (rb, len n).
	ra, rb []float64

	dummy     Dummy
	dummyFree bool
}

// ProblemOption configures NewProblem.
type ProblemOption func(*problemConfig)

type problemConfig struct {
	ra, rb []float64
}

// WithPenalties sets per-unit penalties. ra prices the dummy sink column
// (one entry per source), rb prices the dummy source row (one entry per
// sink). Either may be nil to keep zero penalties on that axis.
func WithPenalties(ra, rb []float64) ProblemOption {
	return func(c *problemConfig) {
		c.ra = ra
		c.rb = rb
	}
}

// NewProblem validates and deep-copies the input.
//
// Errors: ErrEmptyProblem, ErrDimensionMismatch, ErrNegativeQuantity,
// ErrNonFinite (all wrap ErrConfiguration).
//
// Complexity: O(m·n).
func NewProblem(supply, demand []float64, cost [][]float64, opts ...ProblemOption) (*Problem, error) {
	var cfg problemConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateInput(supply, demand, cost, cfg.ra, cfg.rb); err != nil {
		return nil, err
	}

	m, n := len(supply), len(demand)
	d := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		d.SetRow(i, cost[i])
	}
	p := &Problem{
		supply: append([]float64(nil), supply...),
		demand: append([]float64(nil), demand...),
		cost:   d,
		ra:     make([]float64, m),
		rb:     make([]float64, n),
	}
	copy(p.ra, cfg.ra)
	copy(p.rb, cfg.rb)

	return p, nil
}

// M returns the number of sources (rows), including a dummy source.
func (p *Problem) M() int { return len(p.supply) }

// N returns the number of sinks (columns), including a dummy sink.
func (p *Problem) N() int { return len(p.demand) }

// Supply returns a copy of the supply vector.
func (p *Problem) Supply() []float64 { return append([]float64(nil), p.supply...) }

// Demand returns a copy of the demand vector.
func (p *Problem) Demand() []float64 { return append([]float64(nil), p.demand...) }

// At returns c[i][j].
func (p *Problem) At(i, j int) float64 { return p.cost.At(i, j) }

// Costs returns a copy of the cost matrix.
func (p *Problem) Costs() [][]float64 {
	out := make([][]float64, p.M())
	for i := range out {
		out[i] = mat.Row(nil, i, p.cost)
	}

	return out
}

// CostMatrix returns a read-only view of the costs.
func (p *Problem) CostMatrix() mat.Matrix { return p.cost }

// Dummy reports the dummy line added by Balance, if any.
func (p *Problem) Dummy() Dummy { return p.dummy }

// HasDummyRow reports whether the last row is a dummy source.
func (p *Problem) HasDummyRow() bool { return p.dummy == DummySource }

// HasDummyCol reports whether the last column is a dummy sink.
func (p *Problem) HasDummyCol() bool { return p.dummy == DummySink }

// DummyIsFree reports whether the dummy line exists and all its costs are zero.
func (p *Problem) DummyIsFree() bool { return p.dummy != NoDummy && p.dummyFree }

// isDummyCell reports whether (i,j) lies on the dummy line.
func (p *Problem) isDummyCell(i, j int) bool {
	switch p.dummy {
	case DummySource:
		return i == p.M()-1
	case DummySink:
		return j == p.N()-1
	}

	return false
}

// Clone returns a deep copy.
func (p *Problem) Clone() *Problem {
	return &Problem{
		supply:    append([]float64(nil), p.supply...),
		demand:    append([]float64(nil), p.demand...),
		cost:      mat.DenseCopyOf(p.cost),
		ra:        append([]float64(nil), p.ra...),
		rb:        append([]float64(nil), p.rb...),
		dummy:     p.dummy,
		dummyFree: p.dummyFree,
	}
}

// SupplyDemandDifference returns sum(supply) - sum(demand).
func (p *Problem) SupplyDemandDifference() float64 {
	return floats.Sum(p.supply) - floats.Sum(p.demand)
}

// IsBalanced reports whether total supply equals total demand within tol.
func (p *Problem) IsBalanced(tol float64) bool {
	return math.Abs(p.SupplyDemandDifference()) <= tol
}

// Balance adds a dummy line when total supply and demand differ:
//
//   - difference < 0: a dummy source row with volume |difference| and costs rb;
//   - difference > 0: a dummy sink column with volume difference and costs ra;
//   - difference = 0: no change. Differences within DefaultTolerance
//     count as zero.
//
// Calling Balance on a balanced problem is a no-op, so the operation is
// idempotent.
//
// Errors: ErrEmptyProblem if supply and demand are both empty.
//
// Complexity: O(m·n) when a line is added (matrix copy), O(m+n) otherwise.
func (p *Problem) Balance() (BalanceResult, error) {
	return p.BalanceWithin(DefaultTolerance)
}

// BalanceWithin is Balance with an absolute tolerance on the difference.
// The initial plan builders treat remainders within the same tol as
// exhausted, so a difference larger than tol always gets a dummy line.
func (p *Problem) BalanceWithin(tol float64) (BalanceResult, error) {
	if len(p.supply) == 0 && len(p.demand) == 0 {
		return BalanceResult{}, ErrEmptyProblem
	}

	diff := p.SupplyDemandDifference()
	if math.Abs(diff) <= tol {
		diff = 0
	}
	res := BalanceResult{Difference: diff}
	switch {
	case diff < 0:
		m, n := p.M(), p.N()
		grown := mat.NewDense(m+1, n, nil)
		grown.Copy(p.cost)
		grown.SetRow(m, p.rb)
		p.cost = grown
		p.supply = append(p.supply, -diff)
		p.ra = append(p.ra, 0)
		p.dummy = DummySource
		p.dummyFree = isZeroVector(p.rb)
		res.Dummy, res.Volume = DummySource, -diff
	case diff > 0:
		m, n := p.M(), p.N()
		grown := mat.NewDense(m, n+1, nil)
		grown.Copy(p.cost)
		grown.SetCol(n, p.ra)
		p.cost = grown
		p.demand = append(p.demand, diff)
		p.rb = append(p.rb, 0)
		p.dummy = DummySink
		p.dummyFree = isZeroVector(p.ra)
		res.Dummy, res.Volume = DummySink, diff
	}

	return res, nil
}

// Cost returns Σ c[i][j]·x[i][j] with epsilon as 0. x must be M()×N().
//
// Complexity: O(m·n).
func (p *Problem) Cost(x *Plan) float64 {
	vals := mat.NewDense(x.Rows(), x.Cols(), nil)
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			vals.Set(i, j, x.At(i, j).Value())
		}
	}
	var prod mat.Dense
	prod.MulElem(p.cost, vals)

	return mat.Sum(&prod)
}

func isZeroVector(v []float64) bool {
	if len(v) == 0 {
		return true
	}

	return floats.Norm(v, math.Inf(1)) == 0
}
