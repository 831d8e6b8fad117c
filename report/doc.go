// Package report renders the trace of a transport.Solve run.
//
// Three renderings are provided:
//
//   - Text: a step-by-step account in the order the solver worked (given
//     data, balancing, initial plan, degeneracy, then potentials, optimality
//     table, cycle and pivot for every iteration, and the answer), with
//     aligned tables.
//   - JSON and YAML: a Document built from the Result, suitable for tooling.
//   - CostPlot: a gonum/plot chart of the objective value per pivot.
//
// Row and column headers use A1..Am for sources and B1..Bn for sinks; a
// dummy line is suffixed with "*".
//
// Text table markers:
//
//	[x]  the entering cell of a cycle
//	+x   a cycle cell that gains θ
//	-x   a cycle cell that loses θ
//	x!   a free cell whose reduced cost violates optimality
//	x*   a basic cell in the cost/potential table
package report
