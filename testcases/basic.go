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

import "math"

var basicCases = []TestCase{
	{
		Name:   "stylus_line",
		Width:  64,
		Height: 64,
		Events: stroke(1, stylusSamples(along(pt(8, 8), pt(56, 56), 16), 2, 2), 1),
	},
	{
		Name:   "stylus_ramp",
		Width:  64,
		Height: 64,
		Events: stroke(1, stylusSamples(along(pt(8, 32), pt(56, 32), 20), 0.5, 4), 1),
	},
	{
		Name:   "finger_line",
		Width:  64,
		Height: 64,
		Events: stroke(1, fingerSamples(along(pt(8, 48), pt(56, 16), 12)), 1),
	},
	{
		Name:   "circle",
		Width:  64,
		Height: 64,
		Events: stroke(1, stylusSamples(arc(pt(32, 32), 20, 0, 2*math.Pi, 40), 1.5, 1.5), 1),
	},
	{
		Name:   "short_stroke",
		Width:  32,
		Height: 32,
		Events: stroke(1, stylusSamples(along(pt(10, 16), pt(22, 16), 3), 3, 3), 1),
	},
	{
		Name:   "two_contacts",
		Width:  64,
		Height: 64,
		Events: interleave(
			stroke(1, stylusSamples(along(pt(8, 16), pt(56, 16), 12), 2, 2), 1),
			stroke(2, fingerSamples(along(pt(8, 48), pt(56, 48), 16)), 1),
		),
	},
}
