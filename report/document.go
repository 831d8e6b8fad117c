package report

import (
	"encoding/json"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stepstone/transport"
)

// ErrNilResult is returned when a renderer receives a nil result.
var ErrNilResult = errors.New("report: nil result")

// Document is the serializable form of a transport.Result. Plans are
// rendered as strings so epsilon cells survive as "ε".
type Document struct {
	RunID      string      `json:"run_id" yaml:"run_id"`
	Method     string      `json:"method" yaml:"method"`
	PivotRule  string      `json:"pivot_rule" yaml:"pivot_rule"`
	Optimal    bool        `json:"optimal" yaml:"optimal"`
	Cost       float64     `json:"cost" yaml:"cost"`
	Iterations int         `json:"iterations" yaml:"iterations"`
	Balance    BalanceDoc  `json:"balance" yaml:"balance"`
	Supply     []float64   `json:"supply" yaml:"supply,flow"`
	Demand     []float64   `json:"demand" yaml:"demand,flow"`
	Costs      [][]float64 `json:"costs" yaml:"costs"`
	Plan       [][]string  `json:"plan" yaml:"plan"`
	Potentials *Potentials `json:"potentials,omitempty" yaml:"potentials,omitempty"`
	Steps      []Step      `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// BalanceDoc mirrors transport.BalanceResult.
type BalanceDoc struct {
	Difference float64 `json:"difference" yaml:"difference"`
	Dummy      string  `json:"dummy" yaml:"dummy"`
	Volume     float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
}

// Potentials mirrors transport.Potentials.
type Potentials struct {
	A []float64 `json:"a" yaml:"a,flow"`
	B []float64 `json:"b" yaml:"b,flow"`
}

// Step is one trace event. Fields not relevant to Stage are omitted.
type Step struct {
	Stage        string           `json:"stage" yaml:"stage"`
	Iteration    int              `json:"iteration" yaml:"iteration"`
	Label        string           `json:"label" yaml:"label"`
	Cost         *float64         `json:"cost,omitempty" yaml:"cost,omitempty"`
	Plan         [][]string       `json:"plan,omitempty" yaml:"plan,omitempty"`
	Degenerate   *bool            `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`
	EpsilonCells []transport.Cell `json:"epsilon_cells,omitempty" yaml:"epsilon_cells,omitempty"`
	Potentials   *Potentials      `json:"potentials,omitempty" yaml:"potentials,omitempty"`
	Optimal      *bool            `json:"optimal,omitempty" yaml:"optimal,omitempty"`
	Entering     *transport.Cell  `json:"entering,omitempty" yaml:"entering,omitempty"`
	Delta        *float64         `json:"delta,omitempty" yaml:"delta,omitempty"`
	Violations   []transport.Cell `json:"violations,omitempty" yaml:"violations,omitempty"`
	Cycle        []transport.Cell `json:"cycle,omitempty" yaml:"cycle,omitempty"`
	Theta        string           `json:"theta,omitempty" yaml:"theta,omitempty"`
}

// NewDocument converts res. With steps false only the summary and final
// plan are kept.
func NewDocument(res *transport.Result, steps bool) (Document, error) {
	if res == nil {
		return Document{}, ErrNilResult
	}
	d := Document{
		RunID:      res.RunID,
		Method:     res.Method.String(),
		PivotRule:  res.PivotRule.String(),
		Optimal:    res.Optimal,
		Cost:       res.Cost,
		Iterations: res.Iterations,
		Balance: BalanceDoc{
			Difference: res.Balance.Difference,
			Dummy:      res.Balance.Dummy.String(),
			Volume:     res.Balance.Volume,
		},
	}
	if res.Problem != nil {
		d.Supply = res.Problem.Supply()
		d.Demand = res.Problem.Demand()
		d.Costs = res.Problem.Costs()
	}
	if res.Plan != nil {
		d.Plan = res.Plan.Strings()
		d.Potentials = potentialsDoc(&res.Potentials)
	}
	if steps {
		d.Steps = make([]Step, 0, len(res.Trace))
		for _, e := range res.Trace {
			d.Steps = append(d.Steps, stepOf(e))
		}
	}

	return d, nil
}

func stepOf(e transport.Event) Step {
	s := Step{Stage: e.Stage.String(), Iteration: e.Iteration, Label: e.Label}
	if e.Plan != nil {
		s.Plan = e.Plan.Strings()
	}
	if e.Potentials != nil {
		s.Potentials = potentialsDoc(e.Potentials)
	}

	switch e.Stage {
	case transport.StageInitialPlan, transport.StagePotentials, transport.StagePivot, transport.StageDone:
		s.Cost = &e.Cost
	}
	switch e.Stage {
	case transport.StageDegeneracy:
		s.Degenerate = &e.Degenerate
		s.EpsilonCells = e.EpsilonCells
	case transport.StageOptimality:
		s.Optimal = &e.Optimal
		s.Violations = e.Violations
		if !e.Optimal {
			s.Entering, s.Delta = &e.Entering, &e.Delta
		}
	case transport.StageCycle:
		s.Entering, s.Delta = &e.Entering, &e.Delta
		s.Cycle = e.Cycle
	case transport.StagePivot:
		s.Theta = e.Theta.String()
	}

	return s
}

func potentialsDoc(p *transport.Potentials) *Potentials {
	if p == nil || (p.A == nil && p.B == nil) {
		return nil
	}

	return &Potentials{A: p.A, B: p.B}
}

// JSON writes the Document of res as indented JSON.
func JSON(w io.Writer, res *transport.Result, steps bool) error {
	d, err := NewDocument(res, steps)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(d)
}

// YAML writes the Document of res as YAML.
func YAML(w io.Writer, res *transport.Result, steps bool) error {
	d, err := NewDocument(res, steps)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(d); err != nil {
		return err
	}

	return enc.Close()
}
