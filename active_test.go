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

import (
	"slices"
	"testing"
)

// linkEdges turns the given records into a linked list and returns
// its head.
func linkEdges(edges []*edge) *edge {
	for i := 0; i < len(edges)-1; i++ {
		edges[i].next = edges[i+1]
	}
	edges[len(edges)-1].next = nil
	return edges[0]
}

func listXs(head *edge) []int64 {
	var xs []int64
	for e := head; e != nil; e = e.next {
		xs = append(xs, e.x.quo)
	}
	return xs
}

func TestSortEdgeList(t *testing.T) {
	inputs := [][]int64{
		{1},
		{2, 1},
		{5, 1, 4, 2, 3},
		{1, 2, 3, 4, 5},
		{9, 8, 7, 6, 5, 4, 3, 2, 1},
		{3, 3, 1, 3, 2},
	}
	for _, xs := range inputs {
		edges := make([]*edge, len(xs))
		for i, x := range xs {
			edges[i] = &edge{x: quorem{quo: x}}
		}
		head := sortEdgeList(linkEdges(edges))

		got := listXs(head)
		want := slices.Clone(xs)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			t.Errorf("sort(%v) = %v, want %v", xs, got, want)
		}
	}
}

func TestMergeSortedEdges(t *testing.T) {
	mk := func(xs ...int64) *edge {
		edges := make([]*edge, len(xs))
		for i, x := range xs {
			edges[i] = &edge{x: quorem{quo: x}}
		}
		return linkEdges(edges)
	}

	head := mergeSortedEdges(mk(1, 4, 9), mk(2, 3, 10))
	want := []int64{1, 2, 3, 4, 9, 10}
	if got := listXs(head); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if head := mergeSortedEdges(nil, mk(7)); head == nil || head.x.quo != 7 {
		t.Error("merge with empty first list failed")
	}
	if head := mergeSortedEdges(mk(7), nil); head == nil || head.x.quo != 7 {
		t.Error("merge with empty second list failed")
	}
}

// TestSubstepReorder checks that an edge overtaking its predecessor
// is moved back into sorted position.
func TestSubstepReorder(t *testing.T) {
	// e1 stays at x=10, e2 jumps from 11 to 6
	e1 := &edge{
		x:          quorem{quo: 10, rem: -1},
		dy:         1,
		heightLeft: 10,
	}
	e2 := &edge{
		x:          quorem{quo: 11, rem: -1},
		dxdy:       quorem{quo: -5},
		dy:         1,
		heightLeft: 10,
	}

	var a activeList
	a.head = linkEdges([]*edge{e1, e2})
	a.substep()

	want := []int64{6, 10}
	if got := listXs(a.head); !slices.Equal(got, want) {
		t.Errorf("got order %v, want %v", got, want)
	}
	if e1.heightLeft != 9 || e2.heightLeft != 9 {
		t.Errorf("heights = %d, %d, want 9, 9", e1.heightLeft, e2.heightLeft)
	}
}

// TestSubstepDrop checks that edges whose height is exhausted leave
// the list.
func TestSubstepDrop(t *testing.T) {
	e1 := &edge{x: quorem{quo: 1, rem: -1}, dy: 1, heightLeft: 1}
	e2 := &edge{x: quorem{quo: 2, rem: -1}, dy: 1, heightLeft: 5}

	var a activeList
	a.head = linkEdges([]*edge{e1, e2})
	a.substep()

	if got := listXs(a.head); !slices.Equal(got, []int64{2}) {
		t.Errorf("got %v, want [2]", got)
	}
}

func TestCanStepFullRow(t *testing.T) {
	vertical := func(x int64, height int) *edge {
		return &edge{x: quorem{quo: x, rem: -1}, dy: 1, vertical: true, heightLeft: height}
	}

	t.Run("Vertical", func(t *testing.T) {
		var a activeList
		a.head = linkEdges([]*edge{vertical(1, 100), vertical(50, 100)})
		if !a.canStepFullRow() {
			t.Error("disjoint vertical edges should allow a full step")
		}
		if a.minHeight != 100 {
			t.Errorf("minHeight = %d, want 100", a.minHeight)
		}
	})

	t.Run("TooShort", func(t *testing.T) {
		var a activeList
		a.head = linkEdges([]*edge{vertical(1, gridY - 1), vertical(50, 100)})
		if a.canStepFullRow() {
			t.Error("edge ending mid-row should block the full step")
		}
	})

	t.Run("Tie", func(t *testing.T) {
		var a activeList
		a.head = linkEdges([]*edge{vertical(7, 100), vertical(7, 100)})
		if a.canStepFullRow() {
			t.Error("coincident projections should block the full step")
		}
	})

	t.Run("Crossing", func(t *testing.T) {
		// the sloped edge overtakes the vertical one within the row
		sloped := &edge{
			x:          quorem{quo: 1, rem: -gridY},
			dxdyFull:   quorem{quo: 20},
			dy:         gridY,
			heightLeft: 100,
		}
		var a activeList
		a.head = linkEdges([]*edge{sloped, vertical(10, 100)})
		if a.canStepFullRow() {
			t.Error("crossing edges should block the full step")
		}
	})
}

func TestMergeEdgesFromBucket(t *testing.T) {
	var p polygon
	p.init()
	if err := p.reset(0, 2*gridY); err != nil {
		t.Fatal(err)
	}

	// three edges in row 0, starting on different subsample rows
	p.addEdge(0, 2*gridY, 5, 0, 5, 2*gridY, +1, false)
	p.addEdge(0, 2*gridY, 3, 0, 3, 2*gridY, +1, false)
	p.addEdge(1, 2*gridY, 4, 1, 4, 2*gridY, +1, false)

	var a activeList
	a.reset()
	a.minHeight = 1000

	a.mergeEdges(&p, 0, 0)
	if got := listXs(a.head); !slices.Equal(got, []int64{3, 5}) {
		t.Errorf("after subrow 0: got %v, want [3 5]", got)
	}

	a.mergeEdges(&p, 0, 1)
	if got := listXs(a.head); !slices.Equal(got, []int64{3, 4, 5}) {
		t.Errorf("after subrow 1: got %v, want [3 4 5]", got)
	}
	if p.yBuckets[0] != nil {
		t.Error("bucket not drained")
	}
}

func TestStepEdges(t *testing.T) {
	e1 := &edge{x: quorem{quo: 1}, vertical: true, heightLeft: 2 * gridY}
	e2 := &edge{x: quorem{quo: 2}, vertical: true, heightLeft: 5 * gridY}

	var a activeList
	a.head = linkEdges([]*edge{e1, e2})
	a.stepEdges(2)

	if got := listXs(a.head); !slices.Equal(got, []int64{2}) {
		t.Errorf("got %v, want [2]", got)
	}
	if e2.heightLeft != 3*gridY {
		t.Errorf("heightLeft = %d, want %d", e2.heightLeft, 3*gridY)
	}
}
