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

var coalescedCases = []TestCase{
	{
		Name:   "batches_of_four",
		Width:  64,
		Height: 64,
		Events: stroke(1, stylusSamples(along(pt(8, 56), pt(56, 8), 24), 1, 3), 4),
	},
	{
		Name:   "single_batch",
		Width:  64,
		Height: 64,
		Events: stroke(1, stylusSamples(arc(pt(32, 32), 16, 0, math.Pi, 12), 2, 2), 12),
	},
	{
		Name:   "uneven_batches",
		Width:  64,
		Height: 64,
		Events: stroke(1, fingerSamples(arc(pt(32, 8), 40, math.Pi/4, 3*math.Pi/4, 17)), 5),
	},
}

var predictedCases = []TestCase{
	{
		Name:   "line",
		Width:  64,
		Height: 64,
		Events: predicted(1, stylusSamples(along(pt(8, 32), pt(56, 32), 16), 2, 2), 2, 1),
	},
	{
		Name:   "overshoot",
		Width:  64,
		Height: 64,
		Events: predicted(1, stylusSamples(arc(pt(32, 32), 20, 0, 3*math.Pi/2, 24), 2, 2), 3, 1.5),
	},
}
