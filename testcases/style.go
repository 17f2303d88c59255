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

package testcases

import (
	"math"

	"seehuhn.de/go/ink"
)

var styleCases = []TestCase{
	{
		Name:   "point_mode",
		Width:  64,
		Height: 64,
		Style:  ink.Style{PointMode: true},
		Events: stroke(1, stylusSamples(along(pt(8, 32), pt(56, 32), 9), 3, 3), 1),
	},
	{
		Name:   "precise",
		Width:  64,
		Height: 64,
		Style:  ink.Style{Precise: true},
		Events: stroke(1, offsetPrecise(stylusSamples(arc(pt(32, 32), 20, 0, math.Pi, 16), 2, 2), 0.5), 1),
	},
	{
		Name:   "debug",
		Width:  64,
		Height: 64,
		Style:  ink.Style{Debug: true},
		Events: interleave(
			stroke(1, stylusSamples(arc(pt(32, 40), 16, math.Pi, 2*math.Pi, 12), 1, 2), 3),
			stroke(2, fingerSamples(along(pt(8, 56), pt(56, 56), 8)), 2),
		),
	},
	{
		Name:   "scaled",
		Width:  32,
		Height: 32,
		Scale:  2,
		Events: stroke(1, stylusSamples(along(pt(4, 28), pt(28, 4), 12), 1, 2), 2),
	},
	{
		Name:   "fractional_scale",
		Width:  40,
		Height: 30,
		Scale:  1.5,
		Events: stroke(1, fingerSamples(arc(pt(20, 15), 10, 0, 2*math.Pi, 24)), 3),
	},
}

// offsetPrecise shifts the precise locations of the samples by d in both
// directions.
func offsetPrecise(samples []ink.TouchSample, d float64) []ink.TouchSample {
	for i := range samples {
		samples[i].PreciseLocation = samples[i].Location.Add(pt(d, d))
	}
	return samples
}
