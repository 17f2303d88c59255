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
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/ink"
)

var estimatedCases = []TestCase{
	{
		Name:   "force",
		Width:  64,
		Height: 64,
		Events: estimatedStroke(1, along(pt(8, 40), pt(56, 24), 14), ink.PropForce, 2),
	},
	{
		Name:   "location",
		Width:  64,
		Height: 64,
		Events: estimatedStroke(1, along(pt(8, 16), pt(56, 48), 14), ink.PropLocation, 3),
	},
	{
		Name:   "late",
		Width:  64,
		Height: 64,
		Events: estimatedStroke(1, along(pt(16, 8), pt(16, 56), 10), ink.PropForce|ink.PropAzimuth, 20),
	},
}

// estimatedStroke returns the events of a stylus contact whose samples
// all expect updates of props. Each update arrives lag events after its
// sample; updates still outstanding when the contact ends are delivered
// afterwards.
//
// Provisional forces are half the final ones, and provisional locations
// are off by one unit.
func estimatedStroke(id ink.ContactID, points []vec.Vec2, props ink.Properties, lag int) []Event {
	const force = 2.5

	var events []Event
	var finals []ink.TouchSample
	for i, p := range points {
		idx := uint64(100 + i)
		s := stylus(ts(i), p, force)
		finals = append(finals, final(estimated(s, idx, props)))

		if props.Has(ink.PropForce) {
			s.Force = force / 2
		}
		if props.Has(ink.PropLocation) {
			s.Location = p.Add(pt(1, -1))
			s.PreciseLocation = s.Location
		}
		if props.Has(ink.PropAzimuth) {
			s.AzimuthAngle = 0
		}
		s = estimated(s, idx, props)

		events = append(events, Move{Contact: id, Coalesced: []ink.TouchSample{s}})
		if j := i - lag; j >= 0 {
			events = append(events, Estimate{Contact: id, Sample: finals[j]})
		}
	}
	events = append(events, End{Contact: id})
	for j := max(len(points)-lag, 0); j < len(points); j++ {
		events = append(events, Estimate{Contact: id, Sample: finals[j]})
	}
	return events
}

var cancelCases = []TestCase{
	{
		Name:   "cancelled",
		Width:  64,
		Height: 64,
		Events: append(
			batches(1, stylusSamples(along(pt(8, 32), pt(56, 32), 16), 2, 2), 1),
			End{Contact: 1, Cancelled: true},
		),
	},
	{
		Name:   "cancelled_debug",
		Width:  64,
		Height: 64,
		Style:  ink.Style{Debug: true},
		Events: append(
			batches(1, stylusSamples(along(pt(8, 32), pt(56, 32), 16), 2, 2), 1),
			End{Contact: 1, Cancelled: true},
		),
	},
	{
		Name:   "cancel_one_of_two",
		Width:  64,
		Height: 64,
		Events: interleave(
			stroke(1, stylusSamples(along(pt(8, 16), pt(56, 16), 12), 2, 2), 1),
			append(
				batches(2, stylusSamples(along(pt(8, 48), pt(56, 48), 12), 2, 2), 1),
				End{Contact: 2, Cancelled: true},
			),
		),
	},
}
