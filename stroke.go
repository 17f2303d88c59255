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

	"github.com/google/uuid"
	"seehuhn.de/go/geom/rect"
)

// Stroke is the sequence of points recorded for one continuous contact.
//
// Only a short tail of the stroke is kept as live points. Stable points
// are drawn into a persistent surface by FlushStable and moved to the
// committed history, which is kept for full redraws.
//
// A Stroke is not safe for concurrent use.
type Stroke struct {
	id uuid.UUID

	// points is the live tail, ordered by sequence number.
	// Sequence numbers of adjacent points differ by one.
	points []*StrokePoint

	// committed holds the points already drawn into the persistent
	// surface. Its last element is the same point as points[0], as long
	// as there are live points.
	committed []*StrokePoint

	// pending maps estimation indices to the live points still
	// waiting for updates.
	pending map[uint64]*StrokePoint

	lastSeq int
}

// NewStroke returns an empty stroke.
func NewStroke() *Stroke {
	return &Stroke{
		id:      uuid.New(),
		pending: make(map[uint64]*StrokePoint),
		lastSeq: -1,
	}
}

// ID returns the unique identifier of the stroke.
func (s *Stroke) ID() uuid.UUID {
	return s.id
}

// Points returns the live points. The slice is owned by the stroke.
func (s *Stroke) Points() []*StrokePoint {
	return s.points
}

// CommittedPoints returns the points already drawn into the persistent
// surface. The slice is owned by the stroke.
func (s *Stroke) CommittedPoints() []*StrokePoint {
	return s.committed
}

// IsComplete reports whether no point is waiting for estimation updates.
func (s *Stroke) IsComplete() bool {
	return len(s.pending) == 0
}

// PendingCount returns the number of points waiting for estimation updates.
func (s *Stroke) PendingCount() int {
	return len(s.pending)
}

// AppendPoint adds a point for the sample to the end of the stroke. Points
// from non-stylus contacts are marked as Finger, and points expecting
// estimation updates as NeedsUpdate.
//
// The returned rectangle covers the new segment.
func (s *Stroke) AppendPoint(sample TouchSample, t PointType) rect.Rect {
	if sample.Kind != KindStylus {
		t |= Finger
	}
	if sample.ExpectingUpdates != 0 {
		t |= NeedsUpdate
	}

	s.lastSeq++
	p := NewStrokePoint(sample, s.lastSeq, t)
	// Predicted points are replaced on the next event and never receive
	// updates of their own.
	if p.HasEstimationIndex && p.ExpectingUpdates != 0 && !t.Has(Predicted) {
		s.pending[p.EstimationIndex] = p
	}

	var prior *StrokePoint
	if n := len(s.points); n > 0 {
		prior = s.points[n-1]
	}
	s.points = append(s.points, p)

	if prior == nil {
		return pointRect(p)
	}
	return segmentRect(p, prior)
}

// RemovePointsOfType removes all live points whose type contains t.
// The returned rectangle covers the segments on both sides of every
// removed point.
func (s *Stroke) RemovePointsOfType(t PointType) rect.Rect {
	var dirty rect.Rect
	for i, p := range s.points {
		if !p.Type.Has(t) {
			continue
		}
		dirty = union(dirty, pointRect(p))
		if i > 0 {
			dirty = union(dirty, segmentRect(p, s.points[i-1]))
		}
		if i+1 < len(s.points) {
			dirty = union(dirty, segmentRect(p, s.points[i+1]))
		}
		if p.HasEstimationIndex && s.pending[p.EstimationIndex] == p {
			delete(s.pending, p.EstimationIndex)
		}
	}

	s.points = slices.DeleteFunc(s.points, func(p *StrokePoint) bool {
		return p.Type.Has(t)
	})
	s.resequence()
	return dirty
}

// resequence makes the sequence numbers of the live points contiguous
// again after points have been removed.
func (s *Stroke) resequence() {
	if len(s.points) == 0 {
		if len(s.committed) > 0 {
			s.lastSeq = s.committed[len(s.committed)-1].SequenceNumber
		} else {
			s.lastSeq = -1
		}
		return
	}
	first := s.points[0].SequenceNumber
	for i, p := range s.points {
		p.SequenceNumber = first + i
	}
	s.lastSeq = s.points[len(s.points)-1].SequenceNumber
}

// Cancel marks all live points as cancelled. The points are kept, so that
// the stroke can still be shown. The returned rectangle covers all live
// points.
func (s *Stroke) Cancel() rect.Rect {
	var dirty rect.Rect
	for i, p := range s.points {
		p.Type |= Cancelled
		if i > 0 {
			dirty = union(dirty, segmentRect(p, s.points[i-1]))
		} else {
			dirty = union(dirty, pointRect(p))
		}
	}
	return dirty
}

// ReconcileTouch applies an estimation update to the point waiting for the
// sample's estimation index. If no such point exists, the call has no
// effect. The returned rectangle covers the affected segments both before
// and after the update.
func (s *Stroke) ReconcileTouch(sample TouchSample) (bool, rect.Rect) {
	if !sample.HasEstimationIndex {
		return false, rect.Rect{}
	}
	p, ok := s.pending[sample.EstimationIndex]
	if !ok {
		return false, rect.Rect{}
	}

	dirty := s.existingPointRect(p)
	changed := p.Reconcile(sample)
	if changed {
		dirty = union(dirty, s.existingPointRect(p))
	}
	if p.ExpectingUpdates == 0 {
		delete(s.pending, sample.EstimationIndex)
	}
	return changed, dirty
}

// existingPointRect covers p and the segments to both of its live
// neighbours.
func (s *Stroke) existingPointRect(p *StrokePoint) rect.Rect {
	dirty := pointRect(p)

	i := s.indexOf(p)
	if i < 0 {
		return dirty
	}
	if i > 0 {
		dirty = union(dirty, segmentRect(p, s.points[i-1]))
	}
	if i+1 < len(s.points) {
		dirty = union(dirty, segmentRect(p, s.points[i+1]))
	}
	return dirty
}

// indexOf returns the position of p in the live points, or -1.
func (s *Stroke) indexOf(p *StrokePoint) int {
	if len(s.points) == 0 {
		return -1
	}
	i := p.SequenceNumber - s.points[0].SequenceNumber
	if i >= 0 && i < len(s.points) && s.points[i] == p {
		return i
	}
	return slices.Index(s.points, p)
}

// keepLive is the number of trailing points which are never flushed.
const keepLive = 2

// FlushStable draws the stable prefix of the live points into c and moves
// it to the committed history. If commitAll is set, all live points are
// flushed.
//
// Without commitAll, a point is stable if neither it nor its successor is
// predicted or waiting for an update. The last stable point before the
// live tail stays live as the anchor for the following segment, and the
// final keepLive points are always retained.
//
// The return value reports whether anything was drawn.
func (s *Stroke) FlushStable(c Canvas, st Style, commitAll bool) bool {
	var batch []*StrokePoint
	if commitAll {
		batch = s.points
		s.points = nil
	} else {
		anchor := len(s.points) - keepLive
		for i, p := range s.points {
			if i > anchor {
				break
			}
			if p.Type&(NeedsUpdate|Predicted) != 0 {
				anchor = i - 1
				break
			}
		}
		if anchor <= 0 {
			return false
		}

		batch = slices.Clone(s.points[:anchor+1])
		n := copy(s.points, s.points[anchor:])
		clear(s.points[n:])
		s.points = s.points[:n]
	}

	if len(batch) == 0 {
		return false
	}

	// A single point is committed without drawing anything.
	drawn := len(batch) >= 2
	if drawn {
		drawPoints(c, st, batch)
	}

	if n := len(s.committed); n > 0 {
		// The first point of the batch was already committed last time.
		s.committed = s.committed[:n-1]
	}
	s.committed = append(s.committed, batch...)
	return drawn
}

// waitsFor reports whether a live point waits for the update in sample.
func (s *Stroke) waitsFor(sample TouchSample) bool {
	if !sample.HasEstimationIndex {
		return false
	}
	_, ok := s.pending[sample.EstimationIndex]
	return ok
}

// Draw draws the live points of the stroke.
func (s *Stroke) Draw(c Canvas, st Style) {
	drawPoints(c, st, s.points)
}

// DrawCommitted draws the committed history of the stroke.
func (s *Stroke) DrawCommitted(c Canvas, st Style) {
	drawPoints(c, st, s.committed)
}
