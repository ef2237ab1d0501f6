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

// Package scan converts polygons to antialiased pixel coverage.
//
// The converter accepts polygon edges in 26.6 fixed-point device
// coordinates and sweeps them top to bottom on a subpixel grid.
// Coverage is delivered one pixel row at a time as a list of spans,
// each giving the x position from which a new coverage value holds.
//
// Pixel rows crossed by slanted or starting edges are supersampled in
// gridY subsample rows; rows where the active edges are known to keep
// their order are rendered analytically in a single step.  Both paths
// feed the same sparse per-row cell accumulator, so their output is
// identical for vertical geometry and differs only by subsampling
// error otherwise.
package scan

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

// FillRule selects how the winding numbers of overlapping contours
// combine into coverage.
type FillRule int

const (
	// FillRuleNonZero fills points with non-zero winding number.
	FillRuleNonZero FillRule = iota

	// FillRuleEvenOdd fills points with odd winding number.
	FillRuleEvenOdd
)

// Edge is one polygon side in 26.6 fixed-point device coordinates.
//
// The supporting line runs from P1 to P2; Top and Bottom give the
// vertical extent of the edge on that line, which may be shorter than
// the segment itself.  Dir is +1 if the contour traverses the line
// from P1 to P2, -1 for the opposite direction.
type Edge struct {
	Top, Bottom fixed.Int26_6
	P1, P2      fixed.Point26_6
	Dir         int
}

// ErrRange is returned by Reset when the requested row range is too
// large to index.
var ErrRange = errors.New("row range too large")

var errRangeOverflow = fmt.Errorf("%w: bucket index overflow", ErrRange)

// Converter is a reusable polygon scan converter.
//
// The zero value is not usable; call NewConverter.  A Converter is
// used in strict phases: Reset, any number of AddEdge/AddClipEdge
// calls, then a single Render.  After Render the converter must be
// Reset before it can take new edges.
type Converter struct {
	polygon   polygon
	active    activeList
	coverages cellList

	ymin, ymax int // vertical range in grid units

	spans []Span

	// forceSampled disables the analytic full-row step so tests can
	// compare the two row renderers.
	forceSampled bool
}

// NewConverter returns an empty converter covering no rows.  Call
// Reset to set the vertical range.
func NewConverter() *Converter {
	c := &Converter{}
	c.polygon.init()
	c.coverages.init()
	c.active.reset()
	return c
}

// Reset empties the converter and sets the vertical range of interest
// to the pixel rows [ymin, ymax).  Edges outside this range are
// clipped or dropped by AddEdge.
//
// Reset retains internal buffers, so reusing one Converter across
// many polygons does not allocate in steady state.
func (c *Converter) Reset(ymin, ymax int) error {
	c.ymin = 0
	c.ymax = 0

	ymin = intToGridScaledY(ymin)
	ymax = intToGridScaledY(ymax)

	c.active.reset()
	c.coverages.reset()
	if err := c.polygon.reset(ymin, ymax); err != nil {
		return err
	}

	c.ymin = ymin
	c.ymax = ymax
	return nil
}

// AddEdge adds a polygon edge.  Horizontal and degenerate edges, and
// edges entirely outside the converter's vertical range, are silently
// dropped.
func (c *Converter) AddEdge(e Edge) {
	c.addEdge(e, false)
}

// AddClipEdge adds an edge of a clip polygon overlaid on the filled
// polygon.  Clip edges currently contribute winding like ordinary
// edges; the flag marks them for clip-aware compositing.
func (c *Converter) AddClipEdge(e Edge) {
	c.addEdge(e, true)
}

func (c *Converter) addEdge(e Edge, clip bool) {
	top := inputToGridY(e.Top)
	bot := inputToGridY(e.Bottom)
	if top >= bot {
		return
	}

	y1 := inputToGridY(e.P1.Y)
	y2 := inputToGridY(e.P2.Y)
	if y1 == y2 {
		return
	}

	x1 := inputToGridX(e.P1.X)
	x2 := inputToGridX(e.P2.X)

	dir := e.Dir
	if y2 < y1 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
		dir = -dir
	}

	c.polygon.addEdge(top, bot, x1, y1, x2, y2, dir, clip)
}

// Render sweeps the accumulated edges and delivers coverage spans to
// r, top to bottom.  Rows with no coverage are skipped entirely;
// consecutive identical rows may be delivered as a single call with
// height > 1.
//
// Render consumes the edges; Reset the converter before reuse.  Any
// error from r aborts the sweep and is returned.
func (c *Converter) Render(rule FillRule, r Renderer) error {
	yminI := c.ymin / gridY
	ymaxI := c.ymax / gridY
	h := ymaxI - yminI

	p := &c.polygon
	active := &c.active
	coverages := &c.coverages

	for i := 0; i < h; {
		j := i + 1
		doFullStep := false

		// Can we skip this row entirely, or advance it in a single
		// analytic step?
		if p.yBuckets[i] == nil {
			if active.head == nil {
				for j < h && p.yBuckets[j] == nil {
					j++
				}
				i = j
				continue
			}
			doFullStep = !c.forceSampled && active.canStepFullRow()
		}

		if doFullStep {
			if rule == FillRuleNonZero {
				nonzeroFullRow(active, coverages)
			} else {
				evenoddFullRow(active, coverages)
			}

			// While all remaining edges are vertical the row pattern
			// repeats, so following empty rows can reuse this row's
			// coverage.
			if active.isVertical() {
				for j < h &&
					p.yBuckets[j] == nil &&
					active.minHeight >= 2*gridY {
					active.minHeight -= gridY
					j++
				}
				if j != i+1 {
					active.stepEdges(j - (i + 1))
				}
			}
		} else {
			for suby := 0; suby < gridY; suby++ {
				y := (i+yminI)*gridY + suby

				if p.yBuckets[i] != nil {
					active.mergeEdges(p, i, y)
				}

				if rule == FillRuleNonZero {
					nonzeroSubrow(active, coverages)
				} else {
					evenoddSubrow(active, coverages)
				}

				active.substep()
			}
		}

		if err := c.blitRow(i+yminI, j-i, r); err != nil {
			return err
		}
		coverages.reset()

		if active.head == nil {
			active.minHeight = math.MaxInt
		} else {
			active.minHeight -= gridY
		}

		i = j
	}

	return nil
}

// nonzeroSubrow walks the active list once and adds a subspan for
// every region with non-zero winding number on the current subsample
// row.
func nonzeroSubrow(active *activeList, coverages *cellList) {
	coverages.rewind()

	edge := active.head
	for edge != nil {
		xstart := int(edge.x.quo)
		winding := edge.dir

		for {
			edge = edge.next
			if edge == nil {
				panic("scan: unbalanced active edge list")
			}
			winding += edge.dir
			// Coincident zero crossings are a single span boundary.
			if winding == 0 &&
				(edge.next == nil || edge.next.x.quo != edge.x.quo) {
				break
			}
		}

		coverages.addSubspan(xstart, int(edge.x.quo))
		edge = edge.next
	}
}

// evenoddSubrow is the even-odd counterpart of nonzeroSubrow: spans
// alternate at every edge, with coincident edge pairs cancelling.
func evenoddSubrow(active *activeList, coverages *cellList) {
	coverages.rewind()

	edge := active.head
	for edge != nil {
		xstart := int(edge.x.quo)

		for {
			edge = edge.next
			if edge == nil {
				panic("scan: unbalanced active edge list")
			}
			if edge.next == nil || edge.next.x.quo != edge.x.quo {
				break
			}
			edge = edge.next
		}

		coverages.addSubspan(xstart, int(edge.x.quo))
		edge = edge.next
	}
}

// nonzeroFullRow renders a full pixel row analytically under the
// non-zero rule.  It pairs each span's left and right edge, renders
// them with opposite signs, and advances all edges by a full row,
// dropping those that end.  Only valid after canStepFullRow.
func nonzeroFullRow(active *activeList, coverages *cellList) {
	cursor := &active.head

	left := *cursor
	for left != nil {
		winding := left.dir

		left.heightLeft -= gridY
		if left.heightLeft > 0 {
			cursor = &left.next
		} else {
			*cursor = left.next
		}

		var right *edge
		for {
			right = *cursor
			if right == nil {
				panic("scan: unbalanced active edge list")
			}

			right.heightLeft -= gridY
			if right.heightLeft > 0 {
				cursor = &right.next
			} else {
				*cursor = right.next
			}

			winding += right.dir
			if winding == 0 &&
				(right.next == nil || right.next.x.quo != right.x.quo) {
				break
			}

			// Interior edges are not rendered, but still need their
			// x advanced to the next row.
			if !right.vertical {
				right.x.quo += right.dxdyFull.quo
				right.x.rem += right.dxdyFull.rem
				if right.x.rem >= 0 {
					right.x.quo++
					right.x.rem -= right.dy
				}
			}
		}

		coverages.renderEdge(left, +1)
		coverages.renderEdge(right, -1)

		left = *cursor
	}
}

// evenoddFullRow is the even-odd counterpart of nonzeroFullRow.
func evenoddFullRow(active *activeList, coverages *cellList) {
	cursor := &active.head

	left := *cursor
	for left != nil {
		left.heightLeft -= gridY
		if left.heightLeft > 0 {
			cursor = &left.next
		} else {
			*cursor = left.next
		}

		var right *edge
		for {
			right = *cursor
			if right == nil {
				panic("scan: unbalanced active edge list")
			}

			right.heightLeft -= gridY
			if right.heightLeft > 0 {
				cursor = &right.next
			} else {
				*cursor = right.next
			}

			if right.next == nil || right.next.x.quo != right.x.quo {
				break
			}

			if !right.vertical {
				right.x.quo += right.dxdyFull.quo
				right.x.rem += right.dxdyFull.rem
				if right.x.rem >= 0 {
					right.x.quo++
					right.x.rem -= right.dy
				}
			}
		}

		coverages.renderEdge(left, +1)
		coverages.renderEdge(right, -1)

		left = *cursor
	}
}
