// SPDX-License-Identifier: MIT

package transport

import (
	"strconv"
	"strings"
)

// Allocation is the content of one plan cell: either a real quantity or the
// infinitesimal epsilon. The zero value is a real zero (a free cell).
//
// Epsilon is basic, contributes 0 to cost and arithmetic, and is smaller
// than every positive real when the pivot quantity is selected.
type Allocation struct {
	qty float64
	eps bool
}

// Qty returns a real allocation of quantity q.
func Qty(q float64) Allocation { return Allocation{qty: q} }

// Epsilon returns the infinitesimal allocation.
func Epsilon() Allocation { return Allocation{eps: true} }

// IsEpsilon reports whether a is the infinitesimal variant.
func (a Allocation) IsEpsilon() bool { return a.eps }

// IsBasic reports whether the cell belongs to the basis: a non-zero real or epsilon.
func (a Allocation) IsBasic() bool { return a.eps || a.qty != 0 }

// Value returns the numeric quantity; epsilon reads as 0.
func (a Allocation) Value() float64 {
	if a.eps {
		return 0
	}

	return a.qty
}

// Less orders allocations with epsilon below every positive real.
// Two epsilons are equal; epsilon versus a real zero compares as greater.
func (a Allocation) Less(b Allocation) bool {
	switch {
	case a.eps && b.eps:
		return false
	case a.eps:
		return b.qty > 0
	case b.eps:
		return a.qty <= 0
	default:
		return a.qty < b.qty
	}
}

// String renders "ε" for epsilon and the shortest decimal form otherwise.
func (a Allocation) String() string {
	if a.eps {
		return "ε"
	}

	return strconv.FormatFloat(a.qty, 'f', -1, 64)
}

// Plan is an m×n matrix of allocations stored row-major.
type Plan struct {
	m, n  int
	cells []Allocation
}

// NewPlan returns an all-free m×n plan.
func NewPlan(m, n int) *Plan {
	if m < 0 {
		m = 0
	}
	if n < 0 {
		n = 0
	}

	return &Plan{m: m, n: n, cells: make([]Allocation, m*n)}
}

// PlanFromValues builds a plan from real quantities. Rows shorter than the
// first row are padded with zeros.
func PlanFromValues(v [][]float64) *Plan {
	var m, n int
	m = len(v)
	if m > 0 {
		n = len(v[0])
	}
	p := NewPlan(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n && j < len(v[i]); j++ {
			p.cells[i*n+j] = Qty(v[i][j])
		}
	}

	return p
}

// Rows returns m.
func (p *Plan) Rows() int { return p.m }

// Cols returns n.
func (p *Plan) Cols() int { return p.n }

// At returns the allocation at (i,j). Out-of-range indices panic like a slice access.
func (p *Plan) At(i, j int) Allocation { return p.cells[i*p.n+j] }

// Set stores a at (i,j).
func (p *Plan) Set(i, j int, a Allocation) { p.cells[i*p.n+j] = a }

func (p *Plan) at(c Cell) Allocation     { return p.cells[c.Row*p.n+c.Col] }
func (p *Plan) set(c Cell, a Allocation) { p.cells[c.Row*p.n+c.Col] = a }

// Basic returns the basic cells in row-major order.
func (p *Plan) Basic() []Cell {
	out := make([]Cell, 0, p.m+p.n)
	for i := 0; i < p.m; i++ {
		for j := 0; j < p.n; j++ {
			if p.cells[i*p.n+j].IsBasic() {
				out = append(out, Cell{Row: i, Col: j})
			}
		}
	}

	return out
}

// BasicCount returns the number of basic cells.
func (p *Plan) BasicCount() int {
	var k int
	for _, a := range p.cells {
		if a.IsBasic() {
			k++
		}
	}

	return k
}

// Epsilons returns the cells holding epsilon in row-major order.
func (p *Plan) Epsilons() []Cell {
	var out []Cell
	for idx, a := range p.cells {
		if a.eps {
			out = append(out, Cell{Row: idx / p.n, Col: idx % p.n})
		}
	}

	return out
}

// RowSum returns Σ_j x[i][j] with epsilon as 0.
func (p *Plan) RowSum(i int) float64 {
	var s float64
	for j := 0; j < p.n; j++ {
		s += p.cells[i*p.n+j].Value()
	}

	return s
}

// ColSum returns Σ_i x[i][j] with epsilon as 0.
func (p *Plan) ColSum(j int) float64 {
	var s float64
	for i := 0; i < p.m; i++ {
		s += p.cells[i*p.n+j].Value()
	}

	return s
}

// Clone returns a deep copy.
func (p *Plan) Clone() *Plan {
	return &Plan{m: p.m, n: p.n, cells: append([]Allocation(nil), p.cells...)}
}

// Values returns the quantities as a fresh [][]float64, epsilon as 0.
func (p *Plan) Values() [][]float64 {
	out := make([][]float64, p.m)
	for i := range out {
		out[i] = make([]float64, p.n)
		for j := 0; j < p.n; j++ {
			out[i][j] = p.cells[i*p.n+j].Value()
		}
	}

	return out
}

// Strings returns every cell rendered with Allocation.String; free cells
// render as "0".
func (p *Plan) Strings() [][]string {
	out := make([][]string, p.m)
	for i := range out {
		out[i] = make([]string, p.n)
		for j := 0; j < p.n; j++ {
			out[i][j] = p.cells[i*p.n+j].String()
		}
	}

	return out
}

// String renders the plan as space-separated rows.
func (p *Plan) String() string {
	var sb strings.Builder
	for i := 0; i < p.m; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j := 0; j < p.n; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.cells[i*p.n+j].String())
		}
	}

	return sb.String()
}
