// Package lpcheck solves a transportation instance as a general linear
// program with gonum's simplex and compares the optimum with a
// stepping-stone result. It is a verification aid, not a solver product.
//
// The balanced problem is written in standard form
//
//	minimize   Σ c[i][j]·x[i][j]
//	subject to Σ_j x[i][j] = a[i]   for every source i
//	           Σ_i x[i][j] = b[j]   for every sink j < n-1
//	           x >= 0
//
// One demand row is dropped: on a balanced problem it is implied by the
// others, and gonum's simplex requires a constraint matrix of full row rank.
package lpcheck

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/stepstone/transport"
)

// DefaultTolerance is passed to lp.Simplex and used by Verify.
const DefaultTolerance = 1e-8

// ErrMismatch is returned by Verify when the costs differ.
var ErrMismatch = errors.New("lpcheck: objective mismatch")

// Solution is the LP optimum of a balanced instance.
type Solution struct {
	Cost float64
	Plan [][]float64
}

// Solve balances a copy of p and solves it with lp.Simplex.
//
// Complexity: the simplex works on (m+n-1) × (m·n) dense matrices.
func Solve(p *transport.Problem, tol float64) (Solution, error) {
	if p == nil {
		return Solution{}, transport.ErrNilProblem
	}
	q := p.Clone()
	if _, err := q.Balance(); err != nil {
		return Solution{}, err
	}

	c, A, b := standardForm(q)
	opt, x, err := lp.Simplex(c, A, b, tol, nil)
	if err != nil {
		return Solution{}, fmt.Errorf("lpcheck: simplex: %w", err)
	}

	m, n := q.M(), q.N()
	plan := make([][]float64, m)
	for i := range plan {
		plan[i] = append([]float64(nil), x[i*n:(i+1)*n]...)
	}

	return Solution{Cost: opt, Plan: plan}, nil
}

// standardForm returns the cost vector, equality matrix and right-hand side
// with variables x[i][j] at column i·n+j.
func standardForm(q *transport.Problem) (c []float64, A *mat.Dense, b []float64) {
	var (
		m, n   = q.M(), q.N()
		rows   = m + n - 1
		supply = q.Supply()
		demand = q.Demand()
	)
	c = make([]float64, 0, m*n)
	for i := 0; i < m; i++ {
		c = append(c, mat.Row(nil, i, q.CostMatrix())...)
	}

	A = mat.NewDense(rows, m*n, nil)
	b = make([]float64, rows)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, i*n+j, 1)
		}
		b[i] = supply[i]
	}
	for j := 0; j < n-1; j++ {
		for i := 0; i < m; i++ {
			A.Set(m+j, i*n+j, 1)
		}
		b[m+j] = demand[j]
	}

	return c, A, b
}

// Verify solves p as an LP and compares the optimum with res.Cost using an
// absolute-or-relative tolerance.
func Verify(p *transport.Problem, res *transport.Result, tol float64) (Solution, error) {
	sol, err := Solve(p, DefaultTolerance)
	if err != nil {
		return sol, err
	}
	if !scalar.EqualWithinAbsOrRel(sol.Cost, res.Cost, tol, tol) {
		return sol, fmt.Errorf("%w: stepping-stone %g, simplex %g (diff %g)",
			ErrMismatch, res.Cost, sol.Cost, math.Abs(sol.Cost-res.Cost))
	}

	return sol, nil
}
