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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader lists the columns written by WriteCSV.
var csvHeader = []string{
	"Timestamp", "Force",
	"LocationX", "LocationY",
	"PreciseLocationX", "PreciseLocationY",
	"Type", "AltitudeAngle", "AzimuthAngle", "PointType",
}

// WriteCSV writes one row per point of all live and finished strokes.
// Within a stroke, the committed history comes first, followed by the live
// points.
func (r *Registry) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, strokes := range [][]*Stroke{r.live, r.finished} {
		for _, s := range strokes {
			if err := s.writeRows(cw); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the header and one row per point of the stroke.
func (s *Stroke) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := s.writeRows(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *Stroke) writeRows(cw *csv.Writer) error {
	for _, p := range s.allPoints() {
		if err := cw.Write(p.csvRecord()); err != nil {
			return fmt.Errorf("stroke %s: %w", s.id, err)
		}
	}
	return nil
}

// allPoints returns the committed history followed by the live points,
// with the shared boundary point listed once.
func (s *Stroke) allPoints() []*StrokePoint {
	res := make([]*StrokePoint, 0, len(s.committed)+len(s.points))
	res = append(res, s.committed...)
	live := s.points
	if len(res) > 0 && len(live) > 0 && res[len(res)-1] == live[0] {
		live = live[1:]
	}
	return append(res, live...)
}

func (p *StrokePoint) csvRecord() []string {
	f := func(x float64) string {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return []string{
		f(p.Timestamp),
		f(p.Force),
		f(p.Location.X), f(p.Location.Y),
		f(p.PreciseLocation.X), f(p.PreciseLocation.Y),
		strconv.Itoa(int(p.Kind)),
		f(p.AltitudeAngle),
		f(p.AzimuthAngle),
		p.Type.Label(),
	}
}
