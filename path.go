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
	"math"

	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// AppendPath adds the outline of a path to the converter as edges.
//
// Coordinates are in user space and are transformed to device space
// by ctm before being snapped to 26.6 fixed point.  Curves are
// flattened to line segments with a maximum deviation of flatness
// device pixels; flatness must be > 0.  Open subpaths are closed
// implicitly, as for a fill operation.
func (c *Converter) AppendPath(p *path.Data, ctm matrix.Matrix, flatness float64) {
	w := pathWalker{c: c, ctm: ctm, flatness: flatness}

	var current vec.Vec2 // current point (user space)
	var subpath vec.Vec2 // subpath start (user space)
	open := false

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open && current != subpath {
				w.addSegment(current, subpath)
			}
			current = p.Coords[coordIdx]
			subpath = current
			open = false
			coordIdx++

		case path.CmdLineTo:
			w.addSegment(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			open = true
			coordIdx++

		case path.CmdQuadTo:
			w.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1])
			current = p.Coords[coordIdx+1]
			open = true
			coordIdx += 2

		case path.CmdCubeTo:
			w.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2])
			current = p.Coords[coordIdx+2]
			open = true
			coordIdx += 3

		case path.CmdClose:
			if current != subpath {
				w.addSegment(current, subpath)
			}
			current = subpath
			open = false
		}
	}
	if open && current != subpath {
		w.addSegment(current, subpath)
	}
}

// pathWalker feeds flattened path segments into a Converter.
type pathWalker struct {
	c        *Converter
	ctm      matrix.Matrix
	flatness float64
}

// transformLinear applies only the 2×2 linear part of the CTM to a
// vector.  Used for CTM-aware tolerance checking where translation is
// irrelevant.
func (w *pathWalker) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: w.ctm[0]*v.X + w.ctm[2]*v.Y,
		Y: w.ctm[1]*v.X + w.ctm[3]*v.Y,
	}
}

// addSegment transforms a user-space segment to device space, snaps
// the endpoints to 26.6 fixed point, and files the resulting edge.
func (w *pathWalker) addSegment(p0, p1 vec.Vec2) {
	x0 := w.ctm[0]*p0.X + w.ctm[2]*p0.Y + w.ctm[4]
	y0 := w.ctm[1]*p0.X + w.ctm[3]*p0.Y + w.ctm[5]
	x1 := w.ctm[0]*p1.X + w.ctm[2]*p1.Y + w.ctm[4]
	y1 := w.ctm[1]*p1.X + w.ctm[3]*p1.Y + w.ctm[5]

	fp1 := fixed.Point26_6{X: toFixed(x0), Y: toFixed(y0)}
	fp2 := fixed.Point26_6{X: toFixed(x1), Y: toFixed(y1)}
	if fp1.Y == fp2.Y {
		// Horizontal edges contribute no winding.
		return
	}

	e := Edge{P1: fp1, P2: fp2, Dir: +1}
	if fp1.Y <= fp2.Y {
		e.Top, e.Bottom = fp1.Y, fp2.Y
	} else {
		e.Top, e.Bottom = fp2.Y, fp1.Y
	}
	w.c.AddEdge(e)
}

// flattenQuadratic flattens a quadratic Bézier into line segments.
// p0 is the start point, p1 the control, p2 the endpoint, all in user
// space; tolerance checking happens in device space.
func (w *pathWalker) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	// Error vector: e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	eDev := w.transformLinear(e)

	n := 1
	errDev := eDev.Length()
	if errDev > w.flatness {
		n = int(math.Ceil(math.Sqrt(errDev / w.flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		// B(t) = (1-t)²P0 + 2(1-t)tP1 + t²P2
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		w.addSegment(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier into line segments using
// Wang's formula for the segment count.  p0 is the start, p1/p2 the
// controls, p3 the endpoint, all in user space.
func (w *pathWalker) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2) // P0 - 2*P1 + P2
	d2 := p1.Sub(p2.Mul(2)).Add(p3) // P1 - 2*P2 + P3

	d1Dev := w.transformLinear(d1)
	d2Dev := w.transformLinear(d2)

	mDev := max(d1Dev.Length(), d2Dev.Length())
	n := 1
	if mDev > 0 {
		// n = ceil(sqrt(3 * mDev / (4 * ε)))
		nFloat := math.Sqrt(3 * mDev / (4 * w.flatness))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		// B(t) = (1-t)³P0 + 3(1-t)²tP1 + 3(1-t)t²P2 + t³P3
		omt := 1 - t
		omt2 := omt * omt
		omt3 := omt2 * omt
		t2 := t * t
		t3 := t2 * t
		pt := p0.Mul(omt3).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t3))
		w.addSegment(prev, pt)
		prev = pt
	}
}

// toFixed rounds a device coordinate to 26.6 fixed point.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
