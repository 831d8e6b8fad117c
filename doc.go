// Package stepstone is a transportation problem toolkit: balance a
// supply/demand instance, build an initial basic plan, and improve it with
// the stepping-stone method guided by MODI potentials until it is optimal.
//
// What is inside?
//
//	transport/      the solver: Problem, Plan, initial plans (north-west
//	                corner, minimum cost), epsilon degeneracy resolution,
//	                potentials, optimality test, cycle search, θ pivot and
//	                the Solve state machine with its structured trace
//	generate/       reproducible random instances (also the problem file format)
//	lpcheck/        independent LP optimum via gonum's simplex, for verification
//	report/         text walk-through, JSON/YAML documents, cost-per-pivot chart
//	cmd/stepstone/  command line: solve, gen, version
//	examples/       runnable programs and sample problem files
//
// Why stepping-stone?
//
//   - Every step is inspectable: each basis, potential vector, cycle and θ
//     is recorded, which is what teaching and auditing need.
//   - Exact on the instances it targets: a few hundred cells, solved in
//     microseconds to milliseconds.
//   - Cross-checked: lpcheck solves the same instance as a general LP.
//
// Quick example (the 3×4 depot instance):
//
//	p, _ := transport.NewProblem(
//		[]float64{12, 30, 13},
//		[]float64{23, 40, 12, 32},
//		[][]float64{{64, 32, 45, 12}, {32, 78, 23, 90}, {88, 67, 10, 32}},
//	)
//	res, _ := transport.Solve(ctx, p)
//	// res.Cost == 1347; res.Balance.Dummy == transport.DummySource
//
// From the shell:
//
//	stepstone solve --method nwc examples/data/depots.yaml
//	stepstone gen --rows 5 --cols 6 --imbalance=-4 | stepstone solve -f yaml -
package stepstone
