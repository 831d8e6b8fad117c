package generate

import (
	"fmt"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/stepstone/transport"
)

// Data is a serializable transportation instance. It is also the problem
// file format read and written by the command line.
type Data struct {
	Supply        []float64   `json:"supply" yaml:"supply"`
	Demand        []float64   `json:"demand" yaml:"demand"`
	Costs         [][]float64 `json:"costs" yaml:"costs"`
	SupplyPenalty []float64   `json:"supply_penalty,omitempty" yaml:"supply_penalty,omitempty"`
	DemandPenalty []float64   `json:"demand_penalty,omitempty" yaml:"demand_penalty,omitempty"`
}

// Problem validates d and converts it to a *transport.Problem.
func (d Data) Problem() (*transport.Problem, error) {
	var opts []transport.ProblemOption
	if d.SupplyPenalty != nil || d.DemandPenalty != nil {
		opts = append(opts, transport.WithPenalties(d.SupplyPenalty, d.DemandPenalty))
	}

	return transport.NewProblem(d.Supply, d.Demand, d.Costs, opts...)
}

// Imbalance returns sum(supply) - sum(demand).
func (d Data) Imbalance() float64 {
	return floats.Sum(d.Supply) - floats.Sum(d.Demand)
}

// Random draws an m×n instance.
//
// Supplies are uniform in the quantity range. The demand total is
// sum(supply) - imbalance and is split into n non-negative integer parts at
// uniformly drawn cut points. Costs (and penalties, when enabled) are
// uniform in their ranges.
//
// Errors: ErrTooSmall if m < 1 or n < 1; ErrBadImbalance if the imbalance
// exceeds the total supply.
//
// Complexity: O(m·n + n log n).
func Random(m, n int, opts ...Option) (Data, error) {
	var (
		cfg   config
		d     Data
		total int
	)
	if m < 1 || n < 1 {
		return Data{}, fmt.Errorf("%w: m=%d n=%d", ErrTooSmall, m, n)
	}
	cfg = newConfig(opts)

	supply := make([]int, m)
	for i := range supply {
		supply[i] = uniform(cfg.rng, cfg.qtyMin, cfg.qtyMax)
		total += supply[i]
	}
	total -= cfg.imbalance
	if total < 0 {
		return Data{}, fmt.Errorf("%w: imbalance %d, supply %d", ErrBadImbalance, cfg.imbalance, total+cfg.imbalance)
	}

	d.Supply = toFloats(supply)
	d.Demand = toFloats(split(cfg.rng, total, n))
	d.Costs = make([][]float64, m)
	for i := range d.Costs {
		d.Costs[i] = make([]float64, n)
		for j := range d.Costs[i] {
			d.Costs[i][j] = float64(uniform(cfg.rng, cfg.costMin, cfg.costMax))
		}
	}
	if cfg.penalties {
		d.SupplyPenalty = make([]float64, m)
		for i := range d.SupplyPenalty {
			d.SupplyPenalty[i] = float64(uniform(cfg.rng, cfg.penMin, cfg.penMax))
		}
		d.DemandPenalty = make([]float64, n)
		for j := range d.DemandPenalty {
			d.DemandPenalty[j] = float64(uniform(cfg.rng, cfg.penMin, cfg.penMax))
		}
	}

	return d, nil
}

// Problem is Random followed by Data.Problem.
func Problem(m, n int, opts ...Option) (*transport.Problem, error) {
	d, err := Random(m, n, opts...)
	if err != nil {
		return nil, err
	}

	return d.Problem()
}

// uniform returns an integer in [lo, hi].
func uniform(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// split partitions total into n non-negative parts using n-1 sorted cuts.
func split(r *rand.Rand, total, n int) []int {
	cuts := make([]int, n+1)
	cuts[n] = total
	for k := 1; k < n; k++ {
		cuts[k] = r.Intn(total + 1)
	}
	slices.Sort(cuts[1:n])

	parts := make([]int, n)
	for k := 0; k < n; k++ {
		parts[k] = cuts[k+1] - cuts[k]
	}

	return parts
}

func toFloats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}

	return out
}
