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

import "slices"

// edge is one polygon side, clipped to the converter's vertical range
// and converted to grid units.  Edges live in the polygon's arena and
// are linked into a y bucket first and the active list later; next is
// reused for both.
type edge struct {
	next *edge

	// x is the current x intercept, in grid units, at the subsample
	// row the sweep has reached.  After addEdge has filed the edge,
	// x.rem is biased by -dy so that stepping only needs a sign
	// test (see step comments in active.go).
	x quorem

	// dxdy is the x advance per subsample row, dxdyFull the advance
	// per full pixel row.  dxdyFull is only computed for edges that
	// span at least one full row.
	dxdy     quorem
	dxdyFull quorem

	// dy is the remainder divisor for x, dxdy and dxdyFull.
	dy int64

	ytop       int // first subsample row covered, after clipping
	heightLeft int // subsample rows remaining below the sweep

	dir      int  // winding contribution, +1 or -1
	vertical bool // true if the edge has no horizontal movement
	clip     bool // true for edges of the clip polygon
}

// polygon stores edges bucketed by the pixel row in which they first
// become active.  Buckets are unordered; sorting happens when a
// bucket's edges are merged into the active list.
type polygon struct {
	ymin, ymax int // vertical range in grid units

	yBuckets []*edge
	edges    pool[edge]
}

func (p *polygon) init() {
	p.edges.init(edgePoolFirstCap, edgePoolChunkCap)
}

// bucketIndex returns the bucket for an edge starting at subsample
// row y.
func (p *polygon) bucketIndex(y int) int {
	return (y - p.ymin) / gridY
}

// reset empties the polygon and prepares it to receive edges clipped
// to the vertical range [ymin, ymax) of subsample rows.  On error the
// polygon is left with an empty range.
func (p *polygon) reset(ymin, ymax int) error {
	p.edges.reset()
	p.ymin, p.ymax = 0, 0

	h := ymax - ymin
	if h < 0 || h > maxInt32-gridY {
		return errRangeOverflow
	}
	numBuckets := (ymax + gridY - 1 - ymin) / gridY

	p.yBuckets = slices.Grow(p.yBuckets[:0], numBuckets)[:numBuckets]
	clear(p.yBuckets)

	p.ymin = ymin
	p.ymax = ymax
	return nil
}

// addEdge files an edge running from (x1,y1) to (x2,y2) in grid
// units, y1 < y2, active on subsample rows [top, bot).  Edges outside
// the polygon's vertical range are dropped.
func (p *polygon) addEdge(top, bot, x1, y1, x2, y2, dir int, clip bool) {
	if top >= p.ymax || bot <= p.ymin {
		return
	}

	e := p.edges.alloc()

	dx := x2 - x1
	dy := y2 - y1
	e.dy = int64(dy)
	e.dir = dir
	e.clip = clip

	ytop := max(top, p.ymin)
	ybot := min(bot, p.ymax)
	e.ytop = ytop
	e.heightLeft = ybot - ytop

	if dx == 0 {
		e.vertical = true
		e.x.quo = int64(x1)
	} else {
		e.dxdy = flooredDivrem(int64(dx), int64(dy))
		if ytop == y1 {
			e.x.quo = int64(x1)
		} else {
			e.x = flooredMuldivrem(int64(ytop-y1), int64(dx), int64(dy))
			e.x.quo += int64(x1)
		}
		if e.heightLeft >= gridY {
			e.dxdyFull = flooredMuldivrem(gridY, int64(dx), int64(dy))
		}
	}

	ix := p.bucketIndex(ytop)
	e.next = p.yBuckets[ix]
	p.yBuckets[ix] = e

	// Bias the remainder so that stepping can test rem >= 0 instead
	// of rem >= dy.
	e.x.rem -= e.dy
}

const (
	maxInt32 = 1<<31 - 1

	edgePoolFirstCap = 32
	edgePoolChunkCap = 256
)
