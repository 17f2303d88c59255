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
	"fmt"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// ContactKind identifies the device that produced a touch sample.
// The numeric values match the platform's raw touch type.
type ContactKind int

const (
	KindFinger ContactKind = iota
	KindIndirect
	KindStylus
)

func (k ContactKind) String() string {
	switch k {
	case KindFinger:
		return "finger"
	case KindIndirect:
		return "indirect"
	case KindStylus:
		return "stylus"
	default:
		return "unknown"
	}
}

// ParseContactKind converts the name returned by ContactKind.String back
// to a ContactKind.
func ParseContactKind(name string) (ContactKind, error) {
	for k := KindFinger; k <= KindStylus; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown contact kind %q", name)
}

// Properties is a set of touch properties whose values may be provisional.
type Properties uint8

const (
	PropForce Properties = 1 << iota
	PropAzimuth
	PropAltitude
	PropLocation
)

// trackedProperties lists the properties which can receive estimation
// updates, in the order they are reconciled.
var trackedProperties = []Properties{PropAltitude, PropAzimuth, PropForce, PropLocation}

// Has reports whether all properties in q are contained in p.
func (p Properties) Has(q Properties) bool {
	return p&q == q
}

func (p Properties) String() string {
	if p == 0 {
		return "none"
	}
	var names []string
	for _, q := range []struct {
		prop Properties
		name string
	}{
		{PropForce, "force"},
		{PropAzimuth, "azimuth"},
		{PropAltitude, "altitude"},
		{PropLocation, "location"},
	} {
		if p.Has(q.prop) {
			names = append(names, q.name)
		}
	}
	return strings.Join(names, "|")
}

// TouchSample is one observed or predicted pointer state, as delivered by
// the event source.
type TouchSample struct {
	Timestamp       float64 // seconds
	Force           float64
	Location        vec.Vec2
	PreciseLocation vec.Vec2
	AltitudeAngle   float64 // radians, stylus only
	AzimuthAngle    float64 // radians, stylus only
	Kind            ContactKind

	// EstimatedProperties lists the properties whose values are estimates.
	EstimatedProperties Properties

	// ExpectingUpdates lists the properties for which a later sample
	// with the same estimation index will deliver the final value.
	ExpectingUpdates Properties

	// EstimationIndex correlates this sample with later updates.
	// It is only meaningful if HasEstimationIndex is set.
	EstimationIndex    uint64
	HasEstimationIndex bool
}

// PointType is a set of classification flags for a stroke point.
// The zero value is Standard.
type PointType uint8

const (
	Coalesced PointType = 1 << iota
	Predicted
	NeedsUpdate
	Updated
	Cancelled
	Finger

	Standard PointType = 0
)

// Has reports whether t contains all flags in u.
func (t PointType) Has(u PointType) bool {
	return t&u == u
}

// labelOrder gives the precedence used to pick a single label for a point.
var labelOrder = []struct {
	flag  PointType
	label string
}{
	{Cancelled, "Cancelled"},
	{NeedsUpdate, "NeedsUpdate"},
	{Updated, "Updated"},
	{Finger, "Finger"},
	{Coalesced, "Coalesced"},
	{Predicted, "Predicted"},
}

// Label returns the name of the first flag of t in precedence order, or the
// empty string for Standard points.
func (t PointType) Label() string {
	for _, e := range labelOrder {
		if t.Has(e.flag) {
			return e.label
		}
	}
	return ""
}

func (t PointType) String() string {
	if t == Standard {
		return "Standard"
	}
	var names []string
	for _, e := range labelOrder {
		if t.Has(e.flag) {
			names = append(names, e.label)
		}
	}
	return strings.Join(names, "|")
}

const (
	// minMagnitude is the smallest width a segment is drawn with.
	minMagnitude = 0.025

	// nominalForce is used for devices which cannot report force.
	nominalForce = 1.0
)

// StrokePoint is a single point of a stroke.
type StrokePoint struct {
	SequenceNumber  int
	Timestamp       float64
	Force           float64
	Location        vec.Vec2
	PreciseLocation vec.Vec2
	AltitudeAngle   float64
	AzimuthAngle    float64
	Kind            ContactKind
	Type            PointType

	EstimatedProperties Properties
	ExpectingUpdates    Properties
	EstimationIndex     uint64
	HasEstimationIndex  bool
}

// NewStrokePoint creates a point from a touch sample. NeedsUpdate is added
// to the point type if the sample still expects estimation updates.
func NewStrokePoint(s TouchSample, seq int, t PointType) *StrokePoint {
	p := &StrokePoint{
		SequenceNumber:      seq,
		Timestamp:           s.Timestamp,
		Force:               sampleForce(s),
		Location:            s.Location,
		PreciseLocation:     s.PreciseLocation,
		AltitudeAngle:       s.AltitudeAngle,
		AzimuthAngle:        s.AzimuthAngle,
		Kind:                s.Kind,
		Type:                t,
		EstimatedProperties: s.EstimatedProperties,
		ExpectingUpdates:    s.ExpectingUpdates,
		EstimationIndex:     s.EstimationIndex,
		HasEstimationIndex:  s.HasEstimationIndex,
	}
	if p.ExpectingUpdates != 0 {
		p.Type |= NeedsUpdate
	}
	return p
}

// sampleForce returns the force recorded for s. Devices without pressure
// sensing get a nominal force, so that strokes remain visible.
func sampleForce(s TouchSample) float64 {
	if s.Kind == KindStylus || s.Force > 0 {
		return max(s.Force, minMagnitude)
	}
	return nominalForce
}

// Magnitude is the width used when drawing the segment ending at p.
func (p *StrokePoint) Magnitude() float64 {
	return max(p.Force, minMagnitude)
}

// location returns either the regular or the precise location of p.
func (p *StrokePoint) location(precise bool) vec.Vec2 {
	if precise {
		return p.PreciseLocation
	}
	return p.Location
}

// Reconcile copies the final values of all properties still expecting an
// update from s into p. Samples with a different estimation index are
// ignored. Once no more updates are expected, NeedsUpdate is replaced by
// Updated.
//
// The return value indicates whether anything visible about the point
// changed.
func (p *StrokePoint) Reconcile(s TouchSample) bool {
	if !p.HasEstimationIndex || !s.HasEstimationIndex || p.EstimationIndex != s.EstimationIndex {
		return false
	}

	changed := false
	for _, prop := range trackedProperties {
		if !p.ExpectingUpdates.Has(prop) {
			continue
		}

		switch prop {
		case PropForce:
			force := sampleForce(s)
			changed = changed || force != p.Force
			p.Force = force
		case PropAzimuth:
			changed = changed || s.AzimuthAngle != p.AzimuthAngle
			p.AzimuthAngle = s.AzimuthAngle
		case PropAltitude:
			changed = changed || s.AltitudeAngle != p.AltitudeAngle
			p.AltitudeAngle = s.AltitudeAngle
		case PropLocation:
			changed = changed || s.Location != p.Location || s.PreciseLocation != p.PreciseLocation
			p.Location = s.Location
			p.PreciseLocation = s.PreciseLocation
		}

		if !s.EstimatedProperties.Has(prop) {
			p.EstimatedProperties &^= prop
		}
		if !s.ExpectingUpdates.Has(prop) {
			p.ExpectingUpdates &^= prop
		}
	}

	if p.ExpectingUpdates == 0 && p.Type.Has(NeedsUpdate) {
		p.Type = p.Type&^NeedsUpdate | Updated
		changed = true
	}
	return changed
}
