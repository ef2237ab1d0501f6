// seehuhn.de/go/scan - a polygon scan converter
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scan

import "math"

// activeList holds the edges crossing the current sweep position,
// singly linked in order of increasing x intercept.
type activeList struct {
	head *edge

	// minHeight is a lower bound on heightLeft over all listed
	// edges.  A value <= 0 means the bound is stale and must be
	// recomputed before use.
	minHeight int
}

func (a *activeList) reset() {
	a.head = nil
	a.minHeight = 0
}

// mergeSortedEdges merges two lists sorted by x intercept.  Runs from
// one list are walked in place; links are only written when switching
// between the lists, so merging an almost-sorted list is cheap.
func mergeSortedEdges(a, b *edge) *edge {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	var head *edge
	next := &head
	for {
		if a.x.quo <= b.x.quo {
			*next = a
			x := b.x.quo
			for a.next != nil && a.next.x.quo <= x {
				a = a.next
			}
			next = &a.next
			a = a.next
			if a == nil {
				*next = b
				return head
			}
		} else {
			*next = b
			x := a.x.quo
			for b.next != nil && b.next.x.quo <= x {
				b = b.next
			}
			next = &b.next
			b = b.next
			if b == nil {
				*next = a
				return head
			}
		}
	}
}

// sortEdges sorts the first 2^(level+1) elements of list by x
// intercept using bottom-up merging, returning the sorted list and
// the remaining unprocessed elements.  list must not be nil.
func sortEdges(list *edge, level uint) (head, remaining *edge) {
	other := list.next
	if other == nil {
		return list, nil
	}

	// Sort the first pair by hand; this halves the number of merge
	// calls.
	remaining = other.next
	if list.x.quo <= other.x.quo {
		head = list
		other.next = nil
	} else {
		head = other
		other.next = list
		list.next = nil
	}

	for i := uint(0); i < level && remaining != nil; i++ {
		var run *edge
		run, remaining = sortEdges(remaining, i)
		head = mergeSortedEdges(head, run)
	}

	return head, remaining
}

// sortEdgeList fully sorts a list by x intercept.
func sortEdgeList(list *edge) *edge {
	head, _ := sortEdges(list, math.MaxUint32)
	return head
}

// canStepFullRow reports whether the whole active list can advance by
// a full pixel row: no listed edge may end within the row, and the
// projected x intercepts must preserve the list order strictly.
func (a *activeList) canStepFullRow() bool {
	// Recompute the height bound if edges have been dropped.
	if a.minHeight <= 0 {
		minHeight := math.MaxInt
		for e := a.head; e != nil; e = e.next {
			minHeight = min(minHeight, e.heightLeft)
		}
		a.minHeight = minHeight
	}
	if a.minHeight < gridY {
		return false
	}

	prevX := int64(math.MinInt64)
	for e := a.head; e != nil; e = e.next {
		x := e.x
		if !e.vertical {
			x.quo += e.dxdyFull.quo
			x.rem += e.dxdyFull.rem
			if x.rem >= 0 {
				x.quo++
			}
		}
		if x.quo <= prevX {
			return false
		}
		prevX = x.quo
	}
	return true
}

// mergeEdges splits the edges starting at subsample row y out of
// bucket i and merges them, sorted, into the active list.
func (a *activeList) mergeEdges(p *polygon, i, y int) {
	minHeight := a.minHeight
	var subrow *edge

	ptail := &p.yBuckets[i]
	for e := *ptail; e != nil; {
		next := e.next
		if e.ytop == y {
			*ptail = next
			e.next = subrow
			subrow = e
			minHeight = min(minHeight, e.heightLeft)
		} else {
			ptail = &e.next
		}
		e = next
	}

	if subrow != nil {
		subrow = sortEdgeList(subrow)
		a.head = mergeSortedEdges(a.head, subrow)
		a.minHeight = minHeight
	}
}

// substep advances every edge by one subsample row and drops edges
// that end.  Edges that overtake their predecessor are unlinked into
// a side list, sorted, and merged back, so the list order survives
// crossings.
func (a *activeList) substep() {
	cursor := &a.head
	prevX := int64(math.MinInt64)
	var unsorted *edge

	for e := *cursor; e != nil; {
		next := e.next
		e.heightLeft--
		if e.heightLeft > 0 {
			e.x.quo += e.dxdy.quo
			e.x.rem += e.dxdy.rem
			if e.x.rem >= 0 {
				e.x.quo++
				e.x.rem -= e.dy
			}

			if e.x.quo < prevX {
				*cursor = next
				e.next = unsorted
				unsorted = e
			} else {
				prevX = e.x.quo
				cursor = &e.next
			}
		} else {
			*cursor = next
		}
		e = next
	}

	if unsorted != nil {
		unsorted = sortEdgeList(unsorted)
		a.head = mergeSortedEdges(a.head, unsorted)
	}
}

// isVertical reports whether every active edge is vertical.
func (a *activeList) isVertical() bool {
	for e := a.head; e != nil; e = e.next {
		if !e.vertical {
			return false
		}
	}
	return true
}

// stepEdges advances all edges by count full pixel rows without
// touching x intercepts.  Only valid while the list is vertical.
func (a *activeList) stepEdges(count int) {
	cursor := &a.head
	for e := *cursor; e != nil; e = *cursor {
		e.heightLeft -= gridY * count
		if e.heightLeft > 0 {
			cursor = &e.next
		} else {
			*cursor = e.next
		}
	}
}
