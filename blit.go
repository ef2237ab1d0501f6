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

import "image"

// Span is one breakpoint in a piecewise-constant coverage row: from
// pixel column X onwards the coverage is Coverage, until the next
// span's X (or indefinitely for the last span of a row).
type Span struct {
	X        int
	Coverage uint8

	// Inverse marks spans whose coverage is to be complemented.
	// The converter never sets it; it is reserved for renderers
	// shared with inverted-clip compositing.
	Inverse bool
}

// Renderer receives the coverage output of a Converter.
//
// RenderRows describes the pixel rows y <= py < y+height: all these
// rows have identical coverage, given by spans.  Columns left of the
// first span are uncovered.  The spans slice is reused; it is only
// valid for the duration of the call.
type Renderer interface {
	RenderRows(y, height int, spans []Span) error
}

// blitRow converts the accumulated cells into spans and hands them to
// the renderer.  Rows without cells produce no call.
func (c *Converter) blitRow(y, height int, r Renderer) error {
	cl := &c.coverages
	cell := cl.head.next
	if cell == &cl.tail {
		return nil
	}

	spans := c.spans[:0]
	prevX := -1
	cover, lastCover := 0, 0

	for ; cell != &cl.tail; cell = cell.next {
		x := cell.x

		// The running cover changed since the last cell; emit the
		// plateau between them.
		if x > prevX && cover != lastCover {
			spans = append(spans, Span{X: prevX, Coverage: areaToAlpha(cover)})
			lastCover = cover
		}

		cover += cell.coveredHeight * gridX * 2
		area := cover - cell.uncoveredArea

		if area != lastCover {
			spans = append(spans, Span{X: x, Coverage: areaToAlpha(area)})
			lastCover = area
		}

		prevX = x + 1
	}

	// Close the row: if the right boundary fell inside a pixel, the
	// running cover still differs from the last breakpoint.
	if cover != lastCover {
		spans = append(spans, Span{X: prevX, Coverage: areaToAlpha(cover)})
	}
	c.spans = spans

	return r.RenderRows(y, height, spans)
}

// AlphaRenderer writes coverage spans into an alpha mask, replacing
// the destination pixels.  Spans outside the image bounds are
// clipped.
type AlphaRenderer struct {
	Dst *image.Alpha
}

func (r *AlphaRenderer) RenderRows(y, height int, spans []Span) error {
	b := r.Dst.Rect

	y0 := max(y, b.Min.Y)
	y1 := min(y+height, b.Max.Y)
	if y0 >= y1 {
		return nil
	}

	for i, s := range spans {
		x0 := max(s.X, b.Min.X)
		x1 := b.Max.X
		if i+1 < len(spans) {
			x1 = min(spans[i+1].X, b.Max.X)
		}
		if x0 >= x1 {
			continue
		}

		for py := y0; py < y1; py++ {
			row := r.Dst.Pix[(py-b.Min.Y)*r.Dst.Stride:]
			for x := x0; x < x1; x++ {
				row[x-b.Min.X] = s.Coverage
			}
		}
	}
	return nil
}
