// SPDX-License-Identifier: MIT

package transport

// lineForest is a disjoint-set over the m+n lines of a plan: rows are nodes
// 0..m-1 and columns are nodes m..m+n-1. A basic cell (i,j) is the edge
// between row i and column j.
type lineForest struct {
	m      int
	parent []int
	rank   []int
}

func newLineForest(m, n int) *lineForest {
	f := &lineForest{m: m, parent: make([]int, m+n), rank: make([]int, m+n)}
	for v := range f.parent {
		f.parent[v] = v
	}

	return f
}

// find walks to the root with path halving.
func (f *lineForest) find(v int) int {
	for f.parent[v] != v {
		f.parent[v] = f.parent[f.parent[v]]
		v = f.parent[v]
	}

	return v
}

// union joins the components of u and v by rank. It reports false when
// they already share a root, i.e. the edge would close a cycle.
func (f *lineForest) union(u, v int) bool {
	ru, rv := f.find(u), f.find(v)
	if ru == rv {
		return false
	}
	switch {
	case f.rank[ru] < f.rank[rv]:
		f.parent[ru] = rv
	case f.rank[ru] > f.rank[rv]:
		f.parent[rv] = ru
	default:
		f.parent[rv] = ru
		f.rank[ru]++
	}

	return true
}

// connects reports whether cell c would join two different components.
func (f *lineForest) connects(c Cell) bool {
	return f.find(c.Row) != f.find(f.m+c.Col)
}

// addCell unions the row and column of c.
func (f *lineForest) addCell(c Cell) bool {
	return f.union(c.Row, f.m+c.Col)
}

// forestOf builds the forest of the basic cells of x. acyclic is false if
// some basic cell closed a cycle.
func forestOf(x *Plan) (f *lineForest, acyclic bool) {
	f = newLineForest(x.Rows(), x.Cols())
	acyclic = true
	for _, c := range x.Basic() {
		if !f.addCell(c) {
			acyclic = false
		}
	}

	return f, acyclic
}

// IsDegenerate reports whether the number of basic cells differs from m+n-1.
func IsDegenerate(x *Plan) bool {
	return x.BasicCount() != x.Rows()+x.Cols()-1
}

// IsSpanningTree reports whether the basic cells of x are exactly m+n-1
// edges that connect all m+n lines without a cycle.
//
// Complexity: O(m·n·α(m+n)).
func IsSpanningTree(x *Plan) bool {
	if IsDegenerate(x) {
		return false
	}
	// m+n-1 acyclic edges on m+n nodes always span.
	_, acyclic := forestOf(x)

	return acyclic
}
