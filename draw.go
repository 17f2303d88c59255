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
	"math"

	"seehuhn.de/go/geom/vec"
)

// Canvas receives the drawing commands issued for a stroke. Each call to
// Stroke paints the path built since the previous Stroke and starts a new
// path.
type Canvas interface {
	SetColor(c color.Color)
	SetWidth(w float64)
	MoveTo(p vec.Vec2)
	LineTo(p vec.Vec2)
	Stroke()
}

// Style selects how stroke points are rendered.
type Style struct {
	// Debug colours segments by point classification.
	Debug bool

	// Precise draws at the precise instead of the regular location.
	Precise bool

	// PointMode draws a dot at every sample instead of connecting lines.
	PointMode bool
}

var (
	colorBlack  = color.NRGBA{A: 255}
	colorRed    = color.NRGBA{R: 255, A: 255}
	colorOrange = color.NRGBA{R: 255, G: 128, A: 255}
	colorPurple = color.NRGBA{R: 128, B: 128, A: 255}
	colorGreen  = color.NRGBA{G: 255, A: 255}
	colorBlue   = color.NRGBA{B: 255, A: 255}
	colorClear  = color.NRGBA{}
)

type colorRule struct {
	flag PointType
	col  color.NRGBA
}

// debugColors and normalColors are evaluated in order; the first rule
// whose flag is present wins.
var (
	debugColors = []colorRule{
		{Cancelled, colorRed},
		{NeedsUpdate, colorOrange},
		{Finger, colorPurple},
		{Coalesced, colorGreen},
		{Predicted, colorBlue},
	}
	normalColors = []colorRule{
		{Cancelled, colorClear},
		{Finger, colorPurple},
	}
)

func resolveColor(rules []colorRule, t PointType) color.NRGBA {
	for _, r := range rules {
		if t.Has(r.flag) {
			return r.col
		}
	}
	return colorBlack
}

// Color returns the colour of a segment ending at a point of type t.
func (st Style) Color(t PointType) color.NRGBA {
	if st.Debug {
		return resolveColor(debugColors, t)
	}
	col := resolveColor(normalColors, t)
	if t.Has(Predicted) && !t.Has(Cancelled) {
		col.A /= 2
	}
	return col
}

// pointModeOffset is the length of the dot drawn in point mode.
const pointModeOffset = 0.25

// drawPoints draws one segment for every pair of adjacent points.
// Colour and width of a segment are taken from its end point.
func drawPoints(c Canvas, st Style, points []*StrokePoint) {
	for i := 1; i < len(points); i++ {
		prior, p := points[i-1], points[i]

		from := prior.location(st.Precise)
		to := p.location(st.Precise)
		if st.PointMode {
			to = from.Add(vec.Vec2{X: pointModeOffset, Y: pointModeOffset})
		}

		c.SetColor(st.Color(p.Type))
		c.SetWidth(p.Magnitude())
		c.MoveTo(from)
		c.LineTo(to)
		c.Stroke()

		if st.Debug && hasTick(p.Type) {
			loc := p.location(st.Precise)
			c.SetColor(colorRed)
			c.SetWidth(tickWidth)
			c.MoveTo(loc)
			c.LineTo(loc.Add(tickVector(p)))
			c.Stroke()
		}
	}
}

// In debug mode, a tick marks the pen orientation at every stylus point
// which is neither coalesced nor predicted. The tick points in the azimuth
// direction and gets shorter as the pen becomes upright.
const (
	tickWidth  = 0.5
	tickOffset = 0.5
	tickLength = 10
)

func hasTick(t PointType) bool {
	return t&(Coalesced|Predicted|Finger) == 0
}

// tickVector returns the offset from the location of p to the end of its
// tick.
func tickVector(p *StrokePoint) vec.Vec2 {
	l := tickOffset + tickLength*math.Cos(p.AltitudeAngle)
	sin, cos := math.Sincos(p.AzimuthAngle)
	return vec.Vec2{X: l * cos, Y: l * sin}
}
