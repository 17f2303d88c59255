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
	"encoding/json"
	"fmt"
	"io"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/ink"
)

// File is the JSON document holding a collection of test cases.
type File struct {
	TestCases []TestCase `json:"testcases"`
}

// ReadFile decodes a JSON collection of test cases.
func ReadFile(r io.Reader) (*File, error) {
	f := &File{}
	if err := json.NewDecoder(r).Decode(f); err != nil {
		return nil, fmt.Errorf("decoding test cases: %w", err)
	}
	return f, nil
}

// Write encodes the collection as indented JSON.
func (f *File) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

type jsonTestCase struct {
	Name   string      `json:"name"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Scale  float64     `json:"scale,omitempty"`
	Style  jsonStyle   `json:"style"`
	Events []jsonEvent `json:"events"`
}

type jsonStyle struct {
	Debug     bool `json:"debug,omitempty"`
	Precise   bool `json:"precise,omitempty"`
	PointMode bool `json:"point_mode,omitempty"`
}

type jsonEvent struct {
	Type      string       `json:"type"` // "move", "end" or "estimate"
	Contact   uint64       `json:"contact"`
	Coalesced []jsonSample `json:"coalesced,omitempty"`
	Predicted []jsonSample `json:"predicted,omitempty"`
	Cancelled bool         `json:"cancelled,omitempty"`
	Sample    *jsonSample  `json:"sample,omitempty"`
}

type jsonSample struct {
	T         float64        `json:"t"`
	Force     float64        `json:"force"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	PX        float64        `json:"px"`
	PY        float64        `json:"py"`
	Altitude  float64        `json:"altitude,omitempty"`
	Azimuth   float64        `json:"azimuth,omitempty"`
	Kind      string         `json:"kind"`
	Estimated ink.Properties `json:"estimated,omitempty"`
	Expecting ink.Properties `json:"expecting,omitempty"`
	Index     *uint64        `json:"index,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (tc TestCase) MarshalJSON() ([]byte, error) {
	jtc := jsonTestCase{
		Name:   tc.Name,
		Width:  tc.Width,
		Height: tc.Height,
		Scale:  tc.Scale,
		Style: jsonStyle{
			Debug:     tc.Style.Debug,
			Precise:   tc.Style.Precise,
			PointMode: tc.Style.PointMode,
		},
		Events: make([]jsonEvent, 0, len(tc.Events)),
	}
	for _, ev := range tc.Events {
		switch ev := ev.(type) {
		case Move:
			jtc.Events = append(jtc.Events, jsonEvent{
				Type:      "move",
				Contact:   uint64(ev.Contact),
				Coalesced: samplesToJSON(ev.Coalesced),
				Predicted: samplesToJSON(ev.Predicted),
			})
		case End:
			jtc.Events = append(jtc.Events, jsonEvent{
				Type:      "end",
				Contact:   uint64(ev.Contact),
				Cancelled: ev.Cancelled,
			})
		case Estimate:
			s := sampleToJSON(ev.Sample)
			jtc.Events = append(jtc.Events, jsonEvent{
				Type:    "estimate",
				Contact: uint64(ev.Contact),
				Sample:  &s,
			})
		default:
			return nil, fmt.Errorf("%s: unexpected event type %T", tc.Name, ev)
		}
	}
	return json.Marshal(jtc)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	var jtc jsonTestCase
	if err := json.Unmarshal(data, &jtc); err != nil {
		return err
	}

	res := TestCase{
		Name:   jtc.Name,
		Width:  jtc.Width,
		Height: jtc.Height,
		Scale:  jtc.Scale,
		Style: ink.Style{
			Debug:     jtc.Style.Debug,
			Precise:   jtc.Style.Precise,
			PointMode: jtc.Style.PointMode,
		},
	}
	for i, jev := range jtc.Events {
		id := ink.ContactID(jev.Contact)
		switch jev.Type {
		case "move":
			coalesced, err := samplesFromJSON(jev.Coalesced)
			if err != nil {
				return fmt.Errorf("%s: event %d: %w", jtc.Name, i, err)
			}
			predicted, err := samplesFromJSON(jev.Predicted)
			if err != nil {
				return fmt.Errorf("%s: event %d: %w", jtc.Name, i, err)
			}
			res.Events = append(res.Events, Move{Contact: id, Coalesced: coalesced, Predicted: predicted})
		case "end":
			res.Events = append(res.Events, End{Contact: id, Cancelled: jev.Cancelled})
		case "estimate":
			if jev.Sample == nil {
				return fmt.Errorf("%s: event %d: estimate without sample", jtc.Name, i)
			}
			s, err := sampleFromJSON(*jev.Sample)
			if err != nil {
				return fmt.Errorf("%s: event %d: %w", jtc.Name, i, err)
			}
			res.Events = append(res.Events, Estimate{Contact: id, Sample: s})
		default:
			return fmt.Errorf("%s: event %d: unknown event type %q", jtc.Name, i, jev.Type)
		}
	}

	*tc = res
	return nil
}

func samplesToJSON(samples []ink.TouchSample) []jsonSample {
	if len(samples) == 0 {
		return nil
	}
	res := make([]jsonSample, len(samples))
	for i, s := range samples {
		res[i] = sampleToJSON(s)
	}
	return res
}

func sampleToJSON(s ink.TouchSample) jsonSample {
	js := jsonSample{
		T:         s.Timestamp,
		Force:     s.Force,
		X:         s.Location.X,
		Y:         s.Location.Y,
		PX:        s.PreciseLocation.X,
		PY:        s.PreciseLocation.Y,
		Altitude:  s.AltitudeAngle,
		Azimuth:   s.AzimuthAngle,
		Kind:      s.Kind.String(),
		Estimated: s.EstimatedProperties,
		Expecting: s.ExpectingUpdates,
	}
	if s.HasEstimationIndex {
		idx := s.EstimationIndex
		js.Index = &idx
	}
	return js
}

func samplesFromJSON(js []jsonSample) ([]ink.TouchSample, error) {
	if len(js) == 0 {
		return nil, nil
	}
	res := make([]ink.TouchSample, len(js))
	for i, s := range js {
		var err error
		res[i], err = sampleFromJSON(s)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func sampleFromJSON(js jsonSample) (ink.TouchSample, error) {
	kind, err := ink.ParseContactKind(js.Kind)
	if err != nil {
		return ink.TouchSample{}, err
	}
	s := ink.TouchSample{
		Timestamp:           js.T,
		Force:               js.Force,
		Location:            vec.Vec2{X: js.X, Y: js.Y},
		PreciseLocation:     vec.Vec2{X: js.PX, Y: js.PY},
		AltitudeAngle:       js.Altitude,
		AzimuthAngle:        js.Azimuth,
		Kind:                kind,
		EstimatedProperties: js.Estimated,
		ExpectingUpdates:    js.Expecting,
	}
	if js.Index != nil {
		s.EstimationIndex = *js.Index
		s.HasEstimationIndex = true
	}
	return s, nil
}
