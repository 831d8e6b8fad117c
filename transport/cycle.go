// SPDX-License-Identifier: MIT

package transport

import "fmt"

// axis is the direction of a move between two cells of a cycle.
type axis uint8

const (
	axisAny axis = iota // no move yet (the start cell)
	axisRow             // along a row: column changes
	axisCol             // along a column: row changes
)

func moveAxis(from, to Cell) axis {
	if from.Row == to.Row {
		return axisRow
	}

	return axisCol
}

// cycleFrame is one level of the explicit search stack.
type cycleFrame struct {
	cell    Cell
	arrived axis
	cands   []Cell
	next    int
}

// FindCycle returns the stepping-stone cycle that the free cell start
// closes with the basic cells of x. The result starts and ends with start;
// consecutive cells alternate between row moves and column moves and every
// interior cell is basic.
//
// The search is an explicit-stack depth-first walk. A cell is available
// while it is basic and not on the current path, so backtracking needs no
// extra bookkeeping. Candidates are scanned in row-major order. The start
// becomes a legal target once the path holds more than three cells and the
// closing move runs on the other axis than the first move.
//
// On a spanning-tree basis the cycle exists and is unique.
//
// Errors: ErrInvariantViolation if start is basic or no cycle exists.
//
// Complexity: O((m+n)·(m+n)) on a spanning-tree basis.
func FindCycle(x *Plan, start Cell) ([]Cell, error) {
	var (
		onPath    = make(map[Cell]bool, x.Rows()+x.Cols())
		path      = make([]Cell, 0, x.Rows()+x.Cols())
		stack     = make([]cycleFrame, 0, x.Rows()+x.Cols())
		firstAxis axis
		top       *cycleFrame
		c         Cell
		mv        axis
	)
	if start.Row < 0 || start.Row >= x.Rows() || start.Col < 0 || start.Col >= x.Cols() {
		return nil, fmt.Errorf("%w: start %v outside %dx%d plan", ErrInvariantViolation, start, x.Rows(), x.Cols())
	}
	if x.at(start).IsBasic() {
		return nil, fmt.Errorf("%w: start %v is basic", ErrInvariantViolation, start)
	}

	path = append(path, start)
	onPath[start] = true
	stack = append(stack, cycleFrame{cell: start, arrived: axisAny, cands: cycleCandidates(x, start, start, axisAny)})

	for len(stack) > 0 {
		top = &stack[len(stack)-1]
		if top.next == len(top.cands) {
			// Dead end: drop the frame and its cell from the path.
			stack = stack[:len(stack)-1]
			delete(onPath, path[len(path)-1])
			path = path[:len(path)-1]
			continue
		}
		c = top.cands[top.next]
		top.next++
		mv = moveAxis(top.cell, c)

		if c == start {
			if len(path) > 3 && mv != firstAxis {
				return append(path, start), nil
			}
			continue
		}
		if onPath[c] {
			continue
		}
		if len(stack) == 1 {
			firstAxis = mv
		}
		stack = append(stack, cycleFrame{cell: c, arrived: mv, cands: cycleCandidates(x, c, start, mv)})
		path = append(path, c)
		onPath[c] = true
	}

	return nil, fmt.Errorf("%w: no cycle through %v", ErrInvariantViolation, start)
}

// cycleCandidates lists, in row-major order, the cells sharing a line with
// from that a move on the permitted axis can reach: basic cells plus the
// start cell. Arriving along a row forces a column move next and vice versa.
func cycleCandidates(x *Plan, from, start Cell, arrived axis) []Cell {
	var (
		out      []Cell
		wantRow  = arrived != axisRow
		wantCol  = arrived != axisCol
		i, j     int
		c        Cell
		eligible = func(c Cell) bool { return c == start || x.at(c).IsBasic() }
	)
	if wantCol {
		for i = 0; i < from.Row; i++ {
			if c = (Cell{Row: i, Col: from.Col}); eligible(c) {
				out = append(out, c)
			}
		}
	}
	if wantRow {
		for j = 0; j < x.Cols(); j++ {
			if j == from.Col {
				continue
			}
			if c = (Cell{Row: from.Row, Col: j}); eligible(c) {
				out = append(out, c)
			}
		}
	}
	if wantCol {
		for i = from.Row + 1; i < x.Rows(); i++ {
			if c = (Cell{Row: i, Col: from.Col}); eligible(c) {
				out = append(out, c)
			}
		}
	}

	return out
}

// ValidateCycle checks that cycle is closed, has an even number of distinct
// cells (at least four), alternates row and column moves and that every
// cell except the first is basic in x.
func ValidateCycle(x *Plan, cycle []Cell) error {
	var (
		k    = len(cycle) - 1
		prev axis
		mv   axis
	)
	if len(cycle) < 5 || cycle[0] != cycle[k] || k%2 != 0 {
		return fmt.Errorf("%w: malformed cycle of %d cells", ErrInvariantViolation, len(cycle))
	}
	for idx := 1; idx <= k; idx++ {
		a, b := cycle[idx-1], cycle[idx]
		if (a.Row != b.Row && a.Col != b.Col) || a == b {
			return fmt.Errorf("%w: cycle step %v→%v is not a line move", ErrInvariantViolation, a, b)
		}
		mv = moveAxis(a, b)
		if idx > 1 && mv == prev {
			return fmt.Errorf("%w: cycle does not alternate at %v", ErrInvariantViolation, a)
		}
		prev = mv
		if idx < k && !x.at(b).IsBasic() {
			return fmt.Errorf("%w: cycle cell %v is not basic", ErrInvariantViolation, b)
		}
	}
	return nil
}
