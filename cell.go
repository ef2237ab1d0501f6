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

// cell accumulates the coverage contributions of one pixel within the
// current pixel row.
//
// coveredHeight counts subsample rows in which the pixel lies fully
// inside a span starting at or left of its left boundary; the blitter
// integrates it left to right.  uncoveredArea holds twice the area,
// in grid units, missing from the pixel relative to that running
// cover.
type cell struct {
	next *cell
	x    int

	uncoveredArea int
	coveredHeight int

	// clippedHeight will carry the clip polygon's cover once clip
	// edges feed a second accumulation channel; the blitter ignores
	// it for now.
	clippedHeight int
}

// cellList is the sparse list of cells touched in the current pixel
// row, sorted by x between two sentinels.  A forward cursor makes
// repeated lookups at non-decreasing x amortised O(1).
type cellList struct {
	head, tail cell
	cursor     *cell

	cells pool[cell]
}

func (l *cellList) init() {
	l.cells.init(cellPoolFirstCap, cellPoolChunkCap)
	l.tail.next = nil
	l.tail.x = math.MaxInt
	l.head.x = math.MinInt
	l.head.next = &l.tail
	l.rewind()
}

// rewind moves the cursor back to the start so that cells at any x
// can be found again.
func (l *cellList) rewind() {
	l.cursor = &l.head
}

// maybeRewind rewinds only if the cursor has moved past x.
func (l *cellList) maybeRewind(x int) {
	if l.cursor.x > x {
		l.rewind()
	}
}

// reset empties the list.  Called once per pixel row.
func (l *cellList) reset() {
	l.rewind()
	l.head.next = &l.tail
	l.cells.reset()
}

func (l *cellList) allocAfter(prev *cell, x int) *cell {
	c := l.cells.alloc()
	c.next = prev.next
	prev.next = c
	c.x = x
	return c
}

// find returns the cell at x, creating it if needed.  Between
// rewinds, calls must use non-decreasing x.
func (l *cellList) find(x int) *cell {
	t := l.cursor
	for t.next.x <= x {
		t = t.next
	}
	if t.x != x {
		t = l.allocAfter(t, x)
	}
	l.cursor = t
	return t
}

// findPair returns the cells at x1 and x2, x1 <= x2, creating them if
// needed.  Equivalent to two find calls with less cursor shuffling.
func (l *cellList) findPair(x1, x2 int) (c1, c2 *cell) {
	c1 = l.cursor
	for c1.next.x <= x1 {
		c1 = c1.next
	}
	if c1.x != x1 {
		c1 = l.allocAfter(c1, x1)
	}

	c2 = c1
	for c2.next.x <= x2 {
		c2 = c2.next
	}
	if c2.x != x2 {
		c2 = l.allocAfter(c2, x2)
	}

	l.cursor = c2
	return c1, c2
}

// addSubspan adds coverage for one subsample row's span [x1, x2) in
// grid units.
func (l *cellList) addSubspan(x1, x2 int) {
	ix1, fx1 := gridXSplit(x1)
	ix2, fx2 := gridXSplit(x2)

	if ix1 != ix2 {
		c1, c2 := l.findPair(ix1, ix2)
		c1.uncoveredArea += 2 * fx1
		c1.coveredHeight++
		c2.uncoveredArea -= 2 * fx2
		c2.coveredHeight--
	} else {
		c := l.find(ix1)
		c.uncoveredArea += 2 * (fx1 - fx2)
	}
}

// renderEdge adds the analytical coverage of an edge crossing the
// current pixel row and advances the edge to the next row.
//
// Callers must present the edges of a row in list order and only when
// the order is known not to change within the row: no intersections
// to pixel precision, no edges starting or ending mid-row.
func (l *cellList) renderEdge(e *edge, sign int) {
	x1 := e.x
	x2 := x1
	if !e.vertical {
		x2.quo += e.dxdyFull.quo
		x2.rem += e.dxdyFull.rem
		if x2.rem >= 0 {
			x2.quo++
			x2.rem -= e.dy
		}
		e.x = x2
	}

	ix1, fx1 := gridXSplit(int(x1.quo))
	ix2, fx2 := gridXSplit(int(x2.quo))

	// Edge entirely within a column?  Then ix1 cannot lie left of
	// the cursor, because the list order is stable within the row.
	if ix1 == ix2 {
		c := l.find(ix1)
		c.coveredHeight += sign * gridY
		c.uncoveredArea += sign * (fx1 + fx2) * gridY
		return
	}

	// Orient the edge left to right.
	dx := int(x2.quo - x1.quo)
	var y1, y2 int
	if dx >= 0 {
		y1, y2 = 0, gridY
	} else {
		ix1, ix2 = ix2, ix1
		fx1, fx2 = fx2, fx1
		dx = -dx
		sign = -sign
		y1, y2 = gridY, 0
	}
	dy := y2 - y1

	// A previous edge of the row may have dragged the cursor past
	// ix1 even though the two edges do not intersect: a steep
	// left neighbour can touch cells beyond our starting column.
	l.maybeRewind(ix1)

	y := flooredDivrem(int64((gridX-fx1)*dy), int64(dx))

	c1, c2 := l.findPair(ix1, ix1+1)
	c1.uncoveredArea += sign * int(y.quo) * (gridX + fx1)
	c1.coveredHeight += sign * int(y.quo)
	y.quo += int64(y1)

	if ix1+1 < ix2 {
		dydxFull := flooredDivrem(int64(gridX*dy), int64(dx))
		c := c2

		ix1++
		for {
			ySkip := int(dydxFull.quo)
			y.rem += dydxFull.rem
			if y.rem >= int64(dx) {
				ySkip++
				y.rem -= int64(dx)
			}

			y.quo += int64(ySkip)

			ySkip *= sign
			c.uncoveredArea += ySkip * gridX
			c.coveredHeight += ySkip

			ix1++
			c = l.find(ix1)
			if ix1 == ix2 {
				break
			}
		}

		c2 = c
	}
	c2.uncoveredArea += sign * (y2 - int(y.quo)) * fx2
	c2.coveredHeight += sign * (y2 - int(y.quo))
}

const (
	cellPoolFirstCap = 32
	cellPoolChunkCap = 256
)
