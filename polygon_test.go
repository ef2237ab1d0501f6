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

import "testing"

func TestPolygonReset(t *testing.T) {
	var p polygon
	p.init()

	if err := p.reset(0, 8*gridY); err != nil {
		t.Fatal(err)
	}
	if len(p.yBuckets) != 8 {
		t.Errorf("got %d buckets, want 8", len(p.yBuckets))
	}

	// a partial last row still needs a bucket
	if err := p.reset(0, 8*gridY+1); err != nil {
		t.Fatal(err)
	}
	if len(p.yBuckets) != 9 {
		t.Errorf("got %d buckets, want 9", len(p.yBuckets))
	}

	if err := p.reset(0, maxInt32); err == nil {
		t.Error("expected overflow error")
	}
	if p.ymin != 0 || p.ymax != 0 {
		t.Error("failed reset left a non-empty range")
	}
}

func TestAddEdgeClipping(t *testing.T) {
	var p polygon
	p.init()
	if err := p.reset(0, 60); err != nil {
		t.Fatal(err)
	}

	// entirely above and below the range: dropped
	p.addEdge(-30, -10, 0, -30, 10, -10, +1, false)
	p.addEdge(70, 90, 0, 70, 10, 90, +1, false)
	for i, b := range p.yBuckets {
		if b != nil {
			t.Errorf("bucket %d not empty", i)
		}
	}

	// an edge crossing the top boundary is clipped, with x evaluated
	// at the clipped top: the line runs from (0,-30) to (64,30), so
	// x = 32 at y = 0
	p.addEdge(-30, 30, 0, -30, 64, 30, +1, false)
	e := p.yBuckets[0]
	if e == nil {
		t.Fatal("clipped edge not filed")
	}
	if e.ytop != 0 {
		t.Errorf("ytop = %d, want 0", e.ytop)
	}
	if e.heightLeft != 30 {
		t.Errorf("heightLeft = %d, want 30", e.heightLeft)
	}
	if e.x.quo != 32 {
		t.Errorf("x.quo = %d, want 32", e.x.quo)
	}
	if e.x.rem != -e.dy {
		t.Errorf("x.rem = %d, want biased %d", e.x.rem, -e.dy)
	}
}

func TestAddEdgeVertical(t *testing.T) {
	var p polygon
	p.init()
	if err := p.reset(0, 60); err != nil {
		t.Fatal(err)
	}

	p.addEdge(20, 50, 7, 20, 7, 50, -1, true)

	e := p.yBuckets[1] // ytop 20 lies in bucket 1
	if e == nil {
		t.Fatal("edge not filed in bucket 1")
	}
	if !e.vertical {
		t.Error("edge not marked vertical")
	}
	if e.x.quo != 7 || e.dxdy.quo != 0 || e.dxdyFull.quo != 0 {
		t.Error("vertical edge has nonzero slope")
	}
	if e.dir != -1 || !e.clip {
		t.Error("dir or clip flag lost")
	}
}

func TestAddEdgeFullRowSlope(t *testing.T) {
	var p polygon
	p.init()
	if err := p.reset(0, 60); err != nil {
		t.Fatal(err)
	}

	// too short for a full row: no per-row slope
	p.addEdge(0, gridY-1, 0, 0, 64, gridY-1, +1, false)
	short := p.yBuckets[0]
	if short.dxdyFull.quo != 0 || short.dxdyFull.rem != 0 {
		t.Error("short edge has a full-row slope")
	}

	// tall enough: per-row slope is gridY * dx / dy
	p.addEdge(0, 2*gridY, 0, 0, 60, 2*gridY, +1, false)
	tall := p.yBuckets[0]
	if tall.dxdyFull.quo != 30 || tall.dxdyFull.rem != 0 {
		t.Errorf("full-row slope = {%d, %d}, want {30, 0}",
			tall.dxdyFull.quo, tall.dxdyFull.rem)
	}
}
