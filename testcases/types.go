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

// Package testcases holds recorded contact event sequences. They are
// replayed through an ink.Registry by the package tests, and exported for
// the reference image generator and the inkreplay command.
package testcases

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/ink"
)

// TestCase defines a single replay scenario.
type TestCase struct {
	Name   string    // lowercase a-z and _ only
	Width  int       // view width
	Height int       // view height
	Scale  float64   // device pixels per view unit (zero means 1)
	Style  ink.Style // rendering style for the replay
	Events []Event   // contact events, in delivery order
}

// PixelScale returns the device scale of the test case.
func (tc TestCase) PixelScale() float64 {
	if tc.Scale <= 0 {
		return 1
	}
	return tc.Scale
}

// Event is one input event delivered to the registry.
type Event interface {
	isEvent()
}

// Move delivers the samples of one touch event. The first Move of a
// contact starts its stroke.
type Move struct {
	Contact   ink.ContactID
	Coalesced []ink.TouchSample
	Predicted []ink.TouchSample
}

func (Move) isEvent() {}

// End ends or cancels a contact.
type End struct {
	Contact   ink.ContactID
	Cancelled bool
}

func (End) isEvent() {}

// Estimate delivers final values for an earlier estimated sample.
type Estimate struct {
	Contact ink.ContactID
	Sample  ink.TouchSample
}

func (Estimate) isEvent() {}

// Replay delivers the events to reg, in order. It returns the dirty
// rectangle reported for every event.
func Replay(reg *ink.Registry, events []Event) []rect.Rect {
	dirty := make([]rect.Rect, 0, len(events))
	for _, ev := range events {
		var r rect.Rect
		switch ev := ev.(type) {
		case Move:
			r = reg.OnBatch(ev.Contact, ev.Coalesced, ev.Predicted)
		case End:
			r = reg.OnContactEnd(ev.Contact, ev.Cancelled)
		case Estimate:
			r = reg.OnEstimationUpdate(ev.Contact, ev.Sample)
		}
		dirty = append(dirty, r)
	}
	return dirty
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
