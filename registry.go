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
	"log/slog"
	"slices"

	"seehuhn.de/go/geom/rect"
)

// ContactID is the opaque identifier the event source assigns to a
// contact for its lifetime.
type ContactID uint64

// Target is the persistent drawing target of a Registry. Finished segments
// are drawn into it once and never again, except by FullRedraw.
type Target interface {
	Canvas
	Clear()
}

// Stats summarises the state of a Registry.
type Stats struct {
	Active   int // contacts which have not ended
	Pending  int // ended contacts waiting for estimation updates
	Live     int // strokes which still have live points
	Finished int // strokes completely drawn into the target
}

// Registry tracks the strokes of all contacts and moves their stable parts
// into a persistent target.
//
// A stroke is active while its contact lasts. When the contact ends, the
// stroke is finished at once if no estimation updates are outstanding, and
// pending otherwise. A pending stroke is finished once its last update
// arrives. Finished strokes are fully drawn into the target and are kept
// only to support FullRedraw.
//
// All methods must be called from the same goroutine; a Registry is not
// safe for concurrent use and its methods are not reentrant.
type Registry struct {
	target Target
	opts   options

	active       map[ContactID]*Stroke
	pending      map[ContactID]*Stroke
	pendingOrder []ContactID

	live     []*Stroke
	finished []*Stroke
}

// NewRegistry creates an empty registry which draws finished segments into
// target.
func NewRegistry(target Target, opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		target:  target,
		opts:    o,
		active:  make(map[ContactID]*Stroke),
		pending: make(map[ContactID]*Stroke),
	}
}

// Style returns the current rendering style.
func (r *Registry) Style() Style {
	return r.opts.style
}

// SetStyle changes the rendering style. If the style changes, the target
// is redrawn from the committed history of all strokes.
func (r *Registry) SetStyle(st Style) {
	if st == r.opts.style {
		return
	}
	r.opts.style = st
	r.FullRedraw()
}

// OnBatch processes the samples delivered for one contact in one event.
// The coalesced samples are the sub-frame samples of the event, with the
// last one being the current state of the contact. The predicted samples
// are speculative continuations of the contact.
//
// Predicted points from earlier events are removed first. After each added
// point, the stable part of the stroke is flushed to the target. The
// returned rectangle covers everything that needs to be repainted.
func (r *Registry) OnBatch(id ContactID, coalesced, predicted []TouchSample) rect.Rect {
	s, ok := r.active[id]
	if !ok {
		if len(coalesced) == 0 && len(predicted) == 0 {
			return rect.Rect{}
		}
		s = r.begin(id)
	}

	dirty := s.RemovePointsOfType(Predicted)
	dirty = union(dirty, r.addPoints(s, Coalesced, coalesced))
	if r.opts.prediction {
		dirty = union(dirty, r.addPoints(s, Predicted, predicted))
	}
	return dirty
}

func (r *Registry) begin(id ContactID) *Stroke {
	s := NewStroke()
	r.active[id] = s
	r.live = append(r.live, s)
	Logger().Debug("stroke started",
		slog.Uint64("contact", uint64(id)),
		slog.String("stroke", s.ID().String()))
	return s
}

// addPoints appends samples of the given type to s. The last sample of a
// coalesced batch is the authoritative one and is added as Standard.
func (r *Registry) addPoints(s *Stroke, t PointType, samples []TouchSample) rect.Rect {
	var dirty rect.Rect
	for i, sample := range samples {
		pt := t
		if pt.Has(Coalesced) && i == len(samples)-1 {
			pt &^= Coalesced
		}
		if !r.opts.estimation {
			sample.ExpectingUpdates = 0
		}

		dirty = union(dirty, s.AppendPoint(sample, pt))
		s.FlushStable(r.target, r.opts.style, false)
	}
	return dirty
}

// OnContactEnd is called when a contact ends or is cancelled. Cancelled
// strokes are kept, but marked as cancelled.
func (r *Registry) OnContactEnd(id ContactID, cancelled bool) rect.Rect {
	s, ok := r.active[id]
	if !ok {
		return rect.Rect{}
	}
	delete(r.active, id)

	var dirty rect.Rect
	if cancelled {
		dirty = s.Cancel()
	}

	if s.IsComplete() || !r.opts.estimation {
		r.finish(s)
		return dirty
	}

	if old, ok := r.pending[id]; ok {
		// The contact identifier was reused before the earlier stroke
		// received all of its updates.
		r.forceFinish(id, old)
	}
	r.pending[id] = s
	r.pendingOrder = append(r.pendingOrder, id)
	Logger().Debug("stroke pending",
		slog.Uint64("contact", uint64(id)),
		slog.String("stroke", s.ID().String()),
		slog.Int("points", s.PendingCount()))

	for r.opts.pendingLimit > 0 && len(r.pending) > r.opts.pendingLimit {
		oldest := r.pendingOrder[0]
		r.forceFinish(oldest, r.pending[oldest])
	}
	return dirty
}

// OnEstimationUpdate applies a sample carrying final values for an earlier
// estimated sample of the contact.
func (r *Registry) OnEstimationUpdate(id ContactID, sample TouchSample) rect.Rect {
	if !r.opts.estimation {
		return rect.Rect{}
	}

	// If the contact identifier was reused, both an active and a pending
	// stroke may exist. The update goes to the one waiting for it.
	s, isPending := r.active[id], false
	if p, ok := r.pending[id]; ok && (s == nil || !s.waitsFor(sample)) {
		s, isPending = p, true
	}
	if s == nil {
		return rect.Rect{}
	}

	var dirty rect.Rect
	if changed, rr := s.ReconcileTouch(sample); changed {
		dirty = rr
	}

	if isPending && s.IsComplete() {
		r.removePending(id)
		r.finish(s)
	} else {
		s.FlushStable(r.target, r.opts.style, false)
	}
	return dirty
}

// FinishPending finishes the pending stroke of the given contact without
// waiting for its remaining estimation updates. It reports whether a
// pending stroke was found.
func (r *Registry) FinishPending(id ContactID) bool {
	s, ok := r.pending[id]
	if !ok {
		return false
	}
	r.forceFinish(id, s)
	return true
}

func (r *Registry) forceFinish(id ContactID, s *Stroke) {
	Logger().Warn("finishing stroke with outstanding estimation updates",
		slog.Uint64("contact", uint64(id)),
		slog.String("stroke", s.ID().String()),
		slog.Int("points", s.PendingCount()))
	r.removePending(id)
	r.finish(s)
}

func (r *Registry) removePending(id ContactID) {
	delete(r.pending, id)
	if i := slices.Index(r.pendingOrder, id); i >= 0 {
		r.pendingOrder = slices.Delete(r.pendingOrder, i, i+1)
	}
}

// finish draws all remaining points of s into the target and moves s to
// the finished strokes.
func (r *Registry) finish(s *Stroke) {
	s.FlushStable(r.target, r.opts.style, true)
	if i := slices.Index(r.live, s); i >= 0 {
		r.live = slices.Delete(r.live, i, i+1)
	}
	r.finished = append(r.finished, s)
	Logger().Debug("stroke finished",
		slog.String("stroke", s.ID().String()),
		slog.Int("points", len(s.CommittedPoints())))
}

// FullRedraw clears the target and draws the committed history of all
// finished and live strokes again, using the current style.
func (r *Registry) FullRedraw() {
	r.target.Clear()
	for _, strokes := range [][]*Stroke{r.finished, r.live} {
		for _, s := range strokes {
			s.DrawCommitted(r.target, r.opts.style)
		}
	}
	Logger().Debug("full redraw",
		slog.Int("finished", len(r.finished)),
		slog.Int("live", len(r.live)))
}

// Clear removes all strokes and clears the target.
func (r *Registry) Clear() {
	clear(r.active)
	clear(r.pending)
	r.pendingOrder = r.pendingOrder[:0]
	r.live = nil
	r.finished = nil
	r.target.Clear()
}

// DrawLive draws the live points of all live strokes. This is meant to be
// drawn on top of the persistent target.
func (r *Registry) DrawLive(c Canvas) {
	for _, s := range r.live {
		s.Draw(c, r.opts.style)
	}
}

// LiveStrokes returns the strokes which still have live points, in the
// order they were started. The slice is owned by the registry.
func (r *Registry) LiveStrokes() []*Stroke {
	return r.live
}

// FinishedStrokes returns the strokes completely drawn into the target, in
// the order they were finished. The slice is owned by the registry.
func (r *Registry) FinishedStrokes() []*Stroke {
	return r.finished
}

// ActiveStroke returns the stroke of an ongoing contact.
func (r *Registry) ActiveStroke(id ContactID) (*Stroke, bool) {
	s, ok := r.active[id]
	return s, ok
}

// PendingStroke returns the stroke of an ended contact which waits for
// estimation updates.
func (r *Registry) PendingStroke(id ContactID) (*Stroke, bool) {
	s, ok := r.pending[id]
	return s, ok
}

// PendingCount returns the number of ended strokes waiting for estimation
// updates. Without a pending limit, a stroke whose updates never arrive
// stays pending forever; this count makes such leaks observable.
func (r *Registry) PendingCount() int {
	return len(r.pending)
}

// Stats returns the number of strokes in each state.
func (r *Registry) Stats() Stats {
	return Stats{
		Active:   len(r.active),
		Pending:  len(r.pending),
		Live:     len(r.live),
		Finished: len(r.finished),
	}
}
