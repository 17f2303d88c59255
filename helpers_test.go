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
	"image/color"

	"seehuhn.de/go/geom/vec"
)

// segment is one stroke operation seen by a recorder.
type segment struct {
	col      color.NRGBA
	width    float64
	from, to vec.Vec2
}

// recorder is a Target which remembers the segments drawn into it.
type recorder struct {
	segs   []segment
	clears int

	col   color.NRGBA
	width float64
	path  []vec.Vec2
}

func (r *recorder) SetColor(c color.Color) {
	r.col = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (r *recorder) SetWidth(w float64) { r.width = w }
func (r *recorder) MoveTo(p vec.Vec2)  { r.path = append(r.path[:0], p) }
func (r *recorder) LineTo(p vec.Vec2)  { r.path = append(r.path, p) }

func (r *recorder) Stroke() {
	for i := 1; i < len(r.path); i++ {
		r.segs = append(r.segs, segment{
			col:   r.col,
			width: r.width,
			from:  r.path[i-1],
			to:    r.path[i],
		})
	}
	r.path = r.path[:0]
}

func (r *recorder) Clear() {
	r.segs = nil
	r.clears++
}

func stylusAt(x, y, force float64) TouchSample {
	p := vec.Vec2{X: x, Y: y}
	return TouchSample{
		Force:           force,
		Location:        p,
		PreciseLocation: p,
		Kind:            KindStylus,
	}
}

func fingerAt(x, y float64) TouchSample {
	p := vec.Vec2{X: x, Y: y}
	return TouchSample{
		Location:        p,
		PreciseLocation: p,
		Kind:            KindFinger,
	}
}

// expecting marks s as expecting an update of props under index idx.
func expecting(s TouchSample, idx uint64, props Properties) TouchSample {
	s.EstimatedProperties = props
	s.ExpectingUpdates = props
	s.EstimationIndex = idx
	s.HasEstimationIndex = true
	return s
}

// finalUpdate returns the update which resolves all estimates of s.
func finalUpdate(s TouchSample) TouchSample {
	s.EstimatedProperties = 0
	s.ExpectingUpdates = 0
	return s
}

func seqNumbers(points []*StrokePoint) []int {
	res := make([]int, len(points))
	for i, p := range points {
		res[i] = p.SequenceNumber
	}
	return res
}
