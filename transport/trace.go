// SPDX-License-Identifier: MIT

package transport

// Stage identifies a step of the solver state machine.
type Stage int

const (
	// StageGiven records the input exactly as received.
	StageGiven Stage = iota
	// StageBalance records the supply/demand difference and any dummy line.
	StageBalance
	// StageInitialPlan records the plan built by the selected Method.
	StageInitialPlan
	// StageDegeneracy records the degeneracy test and the epsilon cells placed.
	StageDegeneracy
	// StagePotentials records the objective value and potentials of a basis.
	StagePotentials
	// StageOptimality records the optimality test and the entering cell.
	StageOptimality
	// StageCycle records the stepping-stone cycle of the entering cell.
	StageCycle
	// StagePivot records θ and the recalculated plan.
	StagePivot
	// StageDone records the final plan and cost.
	StageDone
)

var stageNames = [...]string{
	StageGiven:       "given",
	StageBalance:     "balance",
	StageInitialPlan: "initial-plan",
	StageDegeneracy:  "degeneracy",
	StagePotentials:  "potentials",
	StageOptimality:  "optimality",
	StageCycle:       "cycle",
	StagePivot:       "pivot",
	StageDone:        "done",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}

	return "stage?"
}

// Event is one entry of the solve trace. Only the fields relevant to Stage
// are populated; slices and plans are snapshots owned by the event.
type Event struct {
	Stage     Stage
	Iteration int
	Label     string

	// StageGiven (and StageBalance after a dummy is added).
	Costs  [][]float64
	Supply []float64
	Demand []float64

	// StageBalance.
	Balance BalanceResult

	// StageInitialPlan, StageDegeneracy, StagePivot, StageDone.
	Plan *Plan

	// StageInitialPlan.
	Method Method

	// StageDegeneracy.
	Degenerate   bool
	EpsilonCells []Cell

	// StagePotentials, StagePivot, StageDone.
	Cost       float64
	Potentials *Potentials

	// StageOptimality.
	Optimal    bool
	Entering   Cell
	Delta      float64
	Violations []Cell

	// StageCycle.
	Cycle []Cell

	// StagePivot.
	Theta Allocation
}

// tracer appends events and forwards them to the observer.
type tracer struct {
	events   []Event
	observer func(Event)
}

func (t *tracer) emit(e Event) {
	t.events = append(t.events, e)
	if t.observer != nil {
		t.observer(e)
	}
}
