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

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/ink"
)

// sampleInterval is the time between two samples, in seconds.
const sampleInterval = 1.0 / 240

func ts(i int) float64 {
	return float64(i) * sampleInterval
}

// stylus returns a stylus sample at p.
func stylus(t float64, p vec.Vec2, force float64) ink.TouchSample {
	return ink.TouchSample{
		Timestamp:       t,
		Force:           force,
		Location:        p,
		PreciseLocation: p,
		AltitudeAngle:   math.Pi / 3,
		AzimuthAngle:    math.Pi / 4,
		Kind:            ink.KindStylus,
	}
}

// finger returns a finger sample at p. Fingers report no force.
func finger(t float64, p vec.Vec2) ink.TouchSample {
	return ink.TouchSample{
		Timestamp:       t,
		Location:        p,
		PreciseLocation: p,
		Kind:            ink.KindFinger,
	}
}

// estimated marks s as expecting a later update of props.
func estimated(s ink.TouchSample, idx uint64, props ink.Properties) ink.TouchSample {
	s.EstimatedProperties = props
	s.ExpectingUpdates = props
	s.EstimationIndex = idx
	s.HasEstimationIndex = true
	return s
}

// final returns the update which resolves all estimates of s.
func final(s ink.TouchSample) ink.TouchSample {
	s.EstimatedProperties = 0
	s.ExpectingUpdates = 0
	return s
}

// along returns n evenly spaced points from a to b, including both ends.
func along(a, b vec.Vec2, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n)
	for i := range res {
		t := float64(i) / float64(n-1)
		res[i] = a.Add(b.Sub(a).Mul(t))
	}
	return res
}

// arc returns n points on the circle around c, from angle a0 to a1.
func arc(c vec.Vec2, r, a0, a1 float64, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n)
	for i := range res {
		phi := a0 + (a1-a0)*float64(i)/float64(n-1)
		res[i] = c.Add(vec.Vec2{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
	}
	return res
}

// stylusSamples returns stylus samples at the given points. The force
// ramps linearly from f0 to f1.
func stylusSamples(points []vec.Vec2, f0, f1 float64) []ink.TouchSample {
	res := make([]ink.TouchSample, len(points))
	for i, p := range points {
		f := f0
		if len(points) > 1 {
			f += (f1 - f0) * float64(i) / float64(len(points)-1)
		}
		res[i] = stylus(ts(i), p, f)
	}
	return res
}

// fingerSamples returns finger samples at the given points.
func fingerSamples(points []vec.Vec2) []ink.TouchSample {
	res := make([]ink.TouchSample, len(points))
	for i, p := range points {
		res[i] = finger(ts(i), p)
	}
	return res
}

// batches groups the samples into Move events of up to k coalesced
// samples each.
func batches(id ink.ContactID, samples []ink.TouchSample, k int) []Event {
	var events []Event
	for len(samples) > 0 {
		n := min(k, len(samples))
		events = append(events, Move{Contact: id, Coalesced: samples[:n:n]})
		samples = samples[n:]
	}
	return events
}

// stroke returns the events of a complete contact, delivering k coalesced
// samples per event.
func stroke(id ink.ContactID, samples []ink.TouchSample, k int) []Event {
	return append(batches(id, samples, k), End{Contact: id})
}

// predicted returns the events of a complete contact with one sample per
// event. Every event but the last carries m predicted samples, which
// extrapolate the motion and overshoot by the given factor.
func predicted(id ink.ContactID, samples []ink.TouchSample, m int, overshoot float64) []Event {
	var events []Event
	for i, s := range samples {
		ev := Move{Contact: id, Coalesced: []ink.TouchSample{s}}
		if i > 0 && i < len(samples)-1 {
			step := s.Location.Sub(samples[i-1].Location).Mul(overshoot)
			for j := 1; j <= m; j++ {
				p := s
				p.Timestamp += float64(j) * sampleInterval
				p.Location = s.Location.Add(step.Mul(float64(j)))
				p.PreciseLocation = p.Location
				ev.Predicted = append(ev.Predicted, p)
			}
		}
		events = append(events, ev)
	}
	return append(events, End{Contact: id})
}

// interleave merges event sequences by taking one event from each in
// turn.
func interleave(seqs ...[]Event) []Event {
	var res []Event
	for {
		done := true
		for i, seq := range seqs {
			if len(seq) == 0 {
				continue
			}
			res = append(res, seq[0])
			seqs[i] = seq[1:]
			done = false
		}
		if done {
			return res
		}
	}
}
