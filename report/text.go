package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/stepstone/transport"
)

const rule = "----"

// Text writes a human-readable walk through res.Trace to w.
// Tables are aligned with text/tabwriter. A result that stopped on
// ErrNonConvergence is rendered up to its last pivot followed by a notice.
func Text(w io.Writer, res *transport.Result) error {
	if res == nil {
		return ErrNilResult
	}
	tw := &textWriter{w: w}
	for _, e := range res.Trace {
		tw.event(e)
	}
	if !res.Optimal {
		tw.printf("%s\nstopped after %d pivots without reaching optimality; cost %s\n",
			rule, res.Iterations, num(res.Cost))
	}

	return tw.err
}

// textWriter keeps the data needed across events: the current line
// quantities, the dummy line, the last plan, and the potentials waiting for
// their optimality verdict.
type textWriter struct {
	w   io.Writer
	err error

	costs  [][]float64
	supply []float64
	demand []float64
	dummy  transport.Dummy
	plan   *transport.Plan
	pot    *transport.Potentials
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) event(e transport.Event) {
	switch e.Stage {
	case transport.StageGiven:
		t.costs, t.supply, t.demand = e.Costs, e.Supply, e.Demand
		t.printf("Given:\n")
		t.quantityGrid(floatCells(t.costs))
		t.printf("%s\n", rule)

	case transport.StageBalance:
		b := e.Balance
		t.printf("Supply - demand difference: %s\n", num(b.Difference))
		t.printf("Balance condition: %t\n", b.Dummy == transport.NoDummy)
		if b.Dummy == transport.NoDummy {
			break
		}
		t.costs, t.supply, t.demand, t.dummy = e.Costs, e.Supply, e.Demand, b.Dummy
		t.printf("Added %s with volume %s:\n", b.Dummy, num(b.Volume))
		t.quantityGrid(floatCells(t.costs))
		t.printf("%s\n", rule)

	case transport.StageInitialPlan:
		t.plan = e.Plan
		t.printf("Initial plan (%s), cost %s:\n", e.Method, num(e.Cost))
		t.quantityGrid(e.Plan.Strings())

	case transport.StageDegeneracy:
		t.plan = e.Plan
		t.printf("Degenerate plan: %t\n", e.Degenerate)
		if !e.Degenerate {
			break
		}
		t.printf("%s\nEpsilon placed at %s (ε is an arbitrarily small positive quantity):\n",
			rule, cellList(e.EpsilonCells))
		t.quantityGrid(e.Plan.Strings())

	case transport.StagePotentials:
		t.plan = e.Plan
		t.pot = e.Potentials
		t.printf("%s\nIteration %d\nObjective: %s\n", rule, e.Iteration, num(e.Cost))
		t.printf("Potentials: α = %s, β = %s\n", numList(e.Potentials.A), numList(e.Potentials.B))

	case transport.StageOptimality:
		t.potentialGrid(e.Violations)
		t.printf("Optimal plan: %t\n", e.Optimal)
		if !e.Optimal {
			t.printf("Entering cell %s, Δ = %s\n", e.Entering, num(e.Delta))
		}

	case transport.StageCycle:
		t.printf("Cycle: %s\n", cellPath(e.Cycle))
		t.cycleGrid(e.Cycle)

	case transport.StagePivot:
		t.plan = e.Plan
		t.printf("θ = %s\nPlan after pivot, cost %s:\n", e.Theta, num(e.Cost))
		t.quantityGrid(e.Plan.Strings())

	case transport.StageDone:
		t.printf("%s\nAnswer:\n", rule)
		t.quantityGrid(e.Plan.Strings())
		t.printf("Objective: %s\n", num(e.Cost))
	}
}

// quantityGrid prints body framed by Bj = demand and Ai = supply headers.
func (t *textWriter) quantityGrid(body [][]string) {
	cols := make([]string, len(t.demand))
	for j, b := range t.demand {
		cols[j] = t.colName(j) + " = " + num(b)
	}
	rows := make([]string, len(t.supply))
	for i, a := range t.supply {
		rows[i] = t.rowName(i) + " = " + num(a)
	}
	t.grid(cols, rows, body)
}

// potentialGrid prints the cost matrix framed by the potentials, marking
// basic cells with "*" and violating free cells with "!".
func (t *textWriter) potentialGrid(violations []transport.Cell) {
	if t.pot == nil || t.plan == nil {
		return
	}
	bad := make(map[transport.Cell]bool, len(violations))
	for _, c := range violations {
		bad[c] = true
	}

	cols := make([]string, len(t.pot.B))
	for j, v := range t.pot.B {
		cols[j] = "β" + strconv.Itoa(j+1) + " = " + num(v)
	}
	rows := make([]string, len(t.pot.A))
	for i, v := range t.pot.A {
		rows[i] = "α" + strconv.Itoa(i+1) + " = " + num(v)
	}
	body := floatCells(t.costs)
	for i := range body {
		for j := range body[i] {
			switch {
			case t.plan.At(i, j).IsBasic():
				body[i][j] += "*"
			case bad[transport.Cell{Row: i, Col: j}]:
				body[i][j] += "!"
			}
		}
	}
	t.grid(cols, rows, body)
}

// cycleGrid prints the current plan with the cycle marked.
func (t *textWriter) cycleGrid(cycle []transport.Cell) {
	if t.plan == nil || len(cycle) == 0 {
		return
	}
	body := t.plan.Strings()
	for k, c := range cycle[:len(cycle)-1] {
		switch {
		case k == 0:
			body[c.Row][c.Col] = "[" + body[c.Row][c.Col] + "]"
		case k%2 == 1:
			body[c.Row][c.Col] = "-" + body[c.Row][c.Col]
		default:
			body[c.Row][c.Col] = "+" + body[c.Row][c.Col]
		}
	}
	t.quantityGrid(body)
}

func (t *textWriter) grid(cols, rows []string, body [][]string) {
	if t.err != nil {
		return
	}
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(cols, "\t"))
	for i, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r, strings.Join(body[i], "\t"))
	}
	t.err = tw.Flush()
}

func (t *textWriter) rowName(i int) string {
	s := "A" + strconv.Itoa(i+1)
	if t.dummy == transport.DummySource && i == len(t.supply)-1 {
		s += "*"
	}

	return s
}

func (t *textWriter) colName(j int) string {
	s := "B" + strconv.Itoa(j+1)
	if t.dummy == transport.DummySink && j == len(t.demand)-1 {
		s += "*"
	}

	return s
}

func num(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numList(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = num(x)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

func floatCells(v [][]float64) [][]string {
	out := make([][]string, len(v))
	for i, row := range v {
		out[i] = make([]string, len(row))
		for j, x := range row {
			out[i][j] = num(x)
		}
	}

	return out
}

func cellList(cs []transport.Cell) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}

	return strings.Join(parts, ", ")
}

func cellPath(cs []transport.Cell) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}

	return strings.Join(parts, " → ")
}
