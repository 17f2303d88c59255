// seehuhn.de/go/ink - live rendering of freehand pointer input
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

package ink

import (
	"image"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Dirty rectangles are represented by rect.Rect in view coordinates.
// The zero rectangle is the empty set.

// union returns the smallest rectangle containing both a and b.
func union(a, b rect.Rect) rect.Rect {
	if isEmpty(a) {
		return b
	}
	if isEmpty(b) {
		return a
	}
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

func isEmpty(r rect.Rect) bool {
	return r == rect.Rect{}
}

// around returns the rectangle spanned by the given locations, grown by
// margin on every side.
func around(margin float64, locs ...vec.Vec2) rect.Rect {
	r := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, p := range locs {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	r.LLx -= margin
	r.LLy -= margin
	r.URx += margin
	r.URy += margin
	return r
}

// dirtyMargin covers the stroke width plus antialiasing bleed.
func dirtyMargin(magnitude float64) float64 {
	return 3*magnitude + 2
}

// pointRect is the area affected by drawing at p alone.
func pointRect(p *StrokePoint) rect.Rect {
	return union(tickRect(p),
		around(dirtyMargin(p.Magnitude()), p.Location, p.PreciseLocation))
}

// segmentRect is the area affected by the segment between p and prior.
func segmentRect(p, prior *StrokePoint) rect.Rect {
	m := max(p.Magnitude(), prior.Magnitude())
	r := around(dirtyMargin(m),
		p.Location, p.PreciseLocation, prior.Location, prior.PreciseLocation)
	return union(r, union(tickRect(p), tickRect(prior)))
}

// tickRect covers the debug tick at p for every possible orientation, so
// that the rectangle does not depend on the rendering style.
func tickRect(p *StrokePoint) rect.Rect {
	if !hasTick(p.Type) {
		return rect.Rect{}
	}
	return around(tickOffset+tickLength+dirtyMargin(tickWidth),
		p.Location, p.PreciseLocation)
}

// PixelRect converts a dirty rectangle in view coordinates to the pixel
// rectangle of a surface with the given device scale.
func PixelRect(r rect.Rect, scale float64) image.Rectangle {
	if isEmpty(r) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.LLx*scale)),
		int(math.Floor(r.LLy*scale)),
		int(math.Ceil(r.URx*scale)),
		int(math.Ceil(r.URy*scale)),
	)
}
