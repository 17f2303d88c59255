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
	"slices"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestCoalescedBatch(t *testing.T) {
	reg := NewRegistry(&recorder{})
	reg.OnBatch(1, []TouchSample{
		stylusAt(0, 0, 1),
		stylusAt(1, 0, 1),
		stylusAt(2, 0, 1),
	}, nil)

	s, ok := reg.ActiveStroke(1)
	if !ok {
		t.Fatal("no active stroke")
	}
	all := s.allPoints()
	if len(all) != 3 {
		t.Fatalf("%d points, want 3", len(all))
	}
	standard := 0
	for i, p := range all {
		switch {
		case p.Type == Standard:
			standard++
			if i != 2 {
				t.Errorf("point %d is Standard", i)
			}
		case p.Type != Coalesced:
			t.Errorf("point %d has type %s", i, p.Type)
		}
	}
	if standard != 1 {
		t.Errorf("%d Standard points, want 1", standard)
	}
}

func TestEmptyBatch(t *testing.T) {
	reg := NewRegistry(&recorder{})
	r := reg.OnBatch(1, nil, nil)
	if !isEmpty(r) {
		t.Errorf("empty batch returned %v", r)
	}
	if _, ok := reg.ActiveStroke(1); ok {
		t.Error("empty batch started a stroke")
	}
}

func TestIncrementalFlush(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry(rec)
	for i := range 10 {
		reg.OnBatch(1, []TouchSample{stylusAt(float64(i), 0, 1)}, nil)
	}

	s, _ := reg.ActiveStroke(1)
	if got := seqNumbers(s.Points()); !slices.Equal(got, []int{8, 9}) {
		t.Errorf("live points %v, want [8 9]", got)
	}
	if len(rec.segs) != 8 {
		t.Errorf("%d segments in target, want 8", len(rec.segs))
	}

	reg.OnContactEnd(1, false)
	if len(rec.segs) != 9 {
		t.Errorf("%d segments in target, want 9", len(rec.segs))
	}
	if st := reg.Stats(); st != (Stats{Finished: 1}) {
		t.Errorf("stats %+v", st)
	}
}

func TestPredictionReplaced(t *testing.T) {
	reg := NewRegistry(&recorder{})
	reg.OnBatch(1,
		[]TouchSample{stylusAt(0, 0, 1)},
		[]TouchSample{stylusAt(1, 0, 1), stylusAt(2, 0, 1)})
	reg.OnBatch(1,
		[]TouchSample{stylusAt(1, 0, 1)},
		[]TouchSample{stylusAt(2, 0, 1)})

	s, _ := reg.ActiveStroke(1)
	var types []PointType
	for _, p := range s.allPoints() {
		types = append(types, p.Type)
	}
	want := []PointType{Standard, Standard, Predicted}
	if !slices.Equal(types, want) {
		t.Errorf("types %v, want %v", types, want)
	}
}

func TestPredictionDisabled(t *testing.T) {
	reg := NewRegistry(&recorder{}, WithPrediction(false))
	reg.OnBatch(1,
		[]TouchSample{stylusAt(0, 0, 1)},
		[]TouchSample{stylusAt(1, 0, 1)})

	s, _ := reg.ActiveStroke(1)
	if n := len(s.Points()); n != 1 {
		t.Errorf("%d points, want 1", n)
	}
}

func TestPredictionKeepsPendingUpdate(t *testing.T) {
	reg := NewRegistry(&recorder{})
	sample := expecting(stylusAt(5, 5, 0.5), 5, PropForce)
	guess := sample
	guess.Location = vec.Vec2{X: 10, Y: 10}
	guess.PreciseLocation = guess.Location
	reg.OnBatch(1,
		[]TouchSample{stylusAt(0, 0, 1), sample},
		[]TouchSample{guess})
	reg.OnBatch(1, []TouchSample{stylusAt(15, 15, 1)}, nil)

	s, _ := reg.ActiveStroke(1)
	if s.IsComplete() {
		t.Fatal("stroke complete before the final update")
	}

	r := reg.OnEstimationUpdate(1, withForce(finalUpdate(sample), 0.9))
	if isEmpty(r) {
		t.Error("no dirty rectangle returned")
	}
	if !s.IsComplete() {
		t.Error("stroke not complete after the final update")
	}
	var found bool
	for _, p := range s.allPoints() {
		if p.HasEstimationIndex && p.EstimationIndex == 5 {
			found = true
			if p.Force != 0.9 || !p.Type.Has(Updated) || p.Type.Has(NeedsUpdate) {
				t.Errorf("point has force %g and type %s", p.Force, p.Type)
			}
		}
	}
	if !found {
		t.Error("updated point is missing")
	}
}

func TestLifecycle(t *testing.T) {
	reg := NewRegistry(&recorder{})

	first := expecting(stylusAt(0, 0, 0.5), 1, PropForce)
	reg.OnBatch(7, []TouchSample{first, stylusAt(5, 5, 1)}, nil)
	if st := reg.Stats(); st != (Stats{Active: 1, Live: 1}) {
		t.Errorf("active: stats %+v", st)
	}

	reg.OnContactEnd(7, false)
	if st := reg.Stats(); st != (Stats{Pending: 1, Live: 1}) {
		t.Errorf("pending: stats %+v", st)
	}
	if _, ok := reg.PendingStroke(7); !ok {
		t.Error("stroke not pending")
	}

	// a new contact with the same identifier gets a new stroke
	reg.OnBatch(7, []TouchSample{stylusAt(20, 20, 1)}, nil)
	s, _ := reg.ActiveStroke(7)
	p, _ := reg.PendingStroke(7)
	if s == p {
		t.Error("active stroke reuses the pending one")
	}

	r := reg.OnEstimationUpdate(7, finalUpdate(withForce(first, 0.9)))
	if isEmpty(r) {
		t.Error("update returned no rectangle")
	}
	if st := reg.Stats(); st != (Stats{Active: 1, Live: 1, Finished: 1}) {
		t.Errorf("finished: stats %+v", st)
	}
	fin := reg.FinishedStrokes()[0]
	if fin != p || len(fin.Points()) != 0 {
		t.Errorf("finished stroke still has %d live points", len(fin.Points()))
	}
	if fin.CommittedPoints()[0].Force != 0.9 {
		t.Errorf("committed force %g, want 0.9", fin.CommittedPoints()[0].Force)
	}
}

func TestEndUnknownContact(t *testing.T) {
	reg := NewRegistry(&recorder{})
	if r := reg.OnContactEnd(3, true); !isEmpty(r) {
		t.Errorf("got %v", r)
	}
	if r := reg.OnEstimationUpdate(3, expecting(stylusAt(0, 0, 1), 1, 0)); !isEmpty(r) {
		t.Errorf("got %v", r)
	}
}

func TestEstimationDisabled(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry(rec, WithEstimationUpdates(false))
	reg.OnBatch(1, []TouchSample{
		expecting(stylusAt(0, 0, 0.5), 1, PropForce),
		expecting(stylusAt(5, 0, 0.5), 2, PropForce),
		expecting(stylusAt(10, 0, 0.5), 3, PropForce),
	}, nil)

	s, _ := reg.ActiveStroke(1)
	if !s.IsComplete() {
		t.Error("points wait for updates")
	}
	reg.OnContactEnd(1, false)
	if st := reg.Stats(); st != (Stats{Finished: 1}) {
		t.Errorf("stats %+v", st)
	}
	for _, p := range s.CommittedPoints() {
		if p.Type.Has(NeedsUpdate) {
			t.Errorf("point %d has type %s", p.SequenceNumber, p.Type)
		}
	}
}

func TestPendingLimit(t *testing.T) {
	reg := NewRegistry(&recorder{}, WithPendingLimit(2))
	for id := range ContactID(3) {
		sample := expecting(stylusAt(float64(id), 0, 0.5), uint64(id), PropForce)
		reg.OnBatch(id, []TouchSample{sample}, nil)
		reg.OnContactEnd(id, false)
	}

	if n := reg.PendingCount(); n != 2 {
		t.Errorf("%d strokes pending, want 2", n)
	}
	if _, ok := reg.PendingStroke(0); ok {
		t.Error("oldest stroke still pending")
	}
	if n := len(reg.FinishedStrokes()); n != 1 {
		t.Errorf("%d finished strokes, want 1", n)
	}

	if !reg.FinishPending(2) {
		t.Error("FinishPending found nothing")
	}
	if reg.FinishPending(2) {
		t.Error("FinishPending succeeded twice")
	}
	if n := reg.PendingCount(); n != 1 {
		t.Errorf("%d strokes pending, want 1", n)
	}
}

func TestCancelledStroke(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry(rec)
	reg.OnBatch(1, []TouchSample{stylusAt(0, 0, 1), stylusAt(10, 0, 1), stylusAt(20, 0, 1)}, nil)
	r := reg.OnContactEnd(1, true)
	if isEmpty(r) {
		t.Error("cancel returned no rectangle")
	}

	s := reg.FinishedStrokes()[0]
	last := s.CommittedPoints()[len(s.CommittedPoints())-1]
	if !last.Type.Has(Cancelled) {
		t.Errorf("last point has type %s", last.Type)
	}
	if seg := rec.segs[len(rec.segs)-1]; seg.col.A != 0 {
		t.Errorf("cancelled segment drawn with colour %v", seg.col)
	}
}

func TestFullRedraw(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry(rec)
	for i := range 6 {
		reg.OnBatch(1, []TouchSample{stylusAt(float64(i), 0, 1)}, nil)
	}
	reg.OnContactEnd(1, false)
	for i := range 4 {
		reg.OnBatch(2, []TouchSample{fingerAt(float64(i), 10)}, nil)
	}
	drawn := slices.Clone(rec.segs)

	reg.FullRedraw()
	if rec.clears != 1 {
		t.Errorf("target cleared %d times", rec.clears)
	}
	if !slices.Equal(rec.segs, drawn) {
		t.Errorf("redraw gives %d segments, want %d", len(rec.segs), len(drawn))
	}

	// changing the style redraws in the new colours
	reg.SetStyle(Style{Debug: true})
	if rec.clears != 2 {
		t.Errorf("target cleared %d times", rec.clears)
	}
	if col := rec.segs[len(rec.segs)-1].col; col != colorPurple {
		t.Errorf("finger segment has colour %v", col)
	}
	reg.SetStyle(Style{Debug: true})
	if rec.clears != 2 {
		t.Error("unchanged style caused a redraw")
	}
}

func TestClear(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry(rec)
	reg.OnBatch(1, []TouchSample{stylusAt(0, 0, 1), stylusAt(1, 1, 1)}, nil)
	reg.OnContactEnd(1, false)
	reg.OnBatch(2, []TouchSample{stylusAt(0, 0, 1)}, nil)

	reg.Clear()
	if st := reg.Stats(); st != (Stats{}) {
		t.Errorf("stats %+v", st)
	}
	if rec.clears != 1 || len(rec.segs) != 0 {
		t.Errorf("target not cleared")
	}
}

func TestDrawLive(t *testing.T) {
	reg := NewRegistry(&recorder{})
	reg.OnBatch(1, []TouchSample{stylusAt(0, 0, 1)}, []TouchSample{stylusAt(1, 0, 1)})
	reg.OnBatch(2, []TouchSample{stylusAt(0, 5, 1), stylusAt(1, 5, 1)}, nil)

	live := &recorder{}
	reg.DrawLive(live)
	if len(live.segs) != 2 {
		t.Fatalf("%d live segments, want 2", len(live.segs))
	}
	if a := live.segs[0].col.A; a != 127 {
		t.Errorf("predicted segment has alpha %d", a)
	}
}
