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
)

// The converter works on a subpixel grid: each pixel is divided into
// gridX columns and gridY rows of subpixel samples.  Horizontal
// coverage within a pixel row is computed analytically, vertical
// coverage by supersampling, so the two resolutions need not match.
//
// gridX is a power of two equal to the 26.6 input resolution, which
// makes the x conversion a plain shift.  gridY is deliberately not a
// power of two: 15 subsample rows hit more distinct alpha values than
// 16 would, at the same cost.
const (
	inputBits = 6 // fractional bits of fixed.Int26_6

	gridXBits = 6
	gridX     = 1 << gridXBits
	gridY     = 15

	// gridXY is the area of one fully covered pixel in grid units.
	// The factor two mirrors the doubling in the cell accumulators,
	// which track twice the actual area to avoid half units.
	gridXY = 2 * gridX * gridY
)

// inputToGridX converts a 26.6 device x coordinate to grid units.
func inputToGridX(x fixed.Int26_6) int {
	return int(x >> (inputBits - gridXBits))
}

// inputToGridY converts a 26.6 device y coordinate to subsample rows.
func inputToGridY(y fixed.Int26_6) int {
	return int((int64(y) * gridY) >> inputBits)
}

// intToGridScaled converts an integer pixel coordinate to grid units,
// clamping to the largest magnitude that survives the multiplication.
func intToGridScaled(i, scale int) int {
	if i >= 0 {
		if i >= math.MaxInt32/scale {
			i = math.MaxInt32 / scale
		}
	} else {
		if i <= math.MinInt32/scale {
			i = math.MinInt32 / scale
		}
	}
	return i * scale
}

func intToGridScaledY(y int) int {
	return intToGridScaled(y, gridY)
}

// quorem is a rational value quo + rem/d for some positive divisor d
// kept by the caller.  Edge stepping adds quorems component-wise and
// normalises the remainder against d, which keeps x intercepts exact
// over any number of steps.
type quorem struct {
	quo int64
	rem int64
}

// flooredDivrem computes the floored quotient and non-negative
// remainder of a/b.  b must be non-zero; the remainder has the sign
// of b.
func flooredDivrem(a, b int64) quorem {
	var qr quorem
	qr.quo = a / b
	qr.rem = a % b
	if qr.rem != 0 && (qr.rem < 0) != (b < 0) {
		qr.quo--
		qr.rem += b
	}
	return qr
}

// flooredMuldivrem computes x*a/b as a floored quotient and remainder.
func flooredMuldivrem(x, a, b int64) quorem {
	return flooredDivrem(x*a, b)
}

// gridXSplit splits a grid x coordinate into pixel index and
// subpixel fraction.  The shift floors correctly for negative x.
func gridXSplit(x int) (i, f int) {
	return x >> gridXBits, x & (gridX - 1)
}

// areaToAlpha maps a doubled coverage area in [0, gridXY] to an alpha
// value, rounding to nearest.  Out-of-range input (possible with
// overlapping windings) is clamped.
func areaToAlpha(area int) uint8 {
	if area <= 0 {
		return 0
	}
	a := (area*255 + gridXY/2) / gridXY
	if a > 255 {
		a = 255
	}
	return uint8(a)
}
