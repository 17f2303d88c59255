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

// Option configures a Registry during creation.
//
// Example:
//
//	reg := ink.NewRegistry(cache,
//	    ink.WithPrediction(false),
//	    ink.WithStyle(ink.Style{Debug: true}))
type Option func(*options)

type options struct {
	prediction   bool
	estimation   bool
	style        Style
	pendingLimit int
}

func defaultOptions() options {
	return options{
		prediction: true,
		estimation: true,
	}
}

// WithPrediction controls whether predicted samples are added to strokes.
// The default is true.
func WithPrediction(enabled bool) Option {
	return func(o *options) {
		o.prediction = enabled
	}
}

// WithEstimationUpdates controls whether estimation updates are tracked.
// If disabled, strokes are finished as soon as their contact ends.
// The default is true.
func WithEstimationUpdates(enabled bool) Option {
	return func(o *options) {
		o.estimation = enabled
	}
}

// WithStyle sets the initial rendering style.
func WithStyle(st Style) Option {
	return func(o *options) {
		o.style = st
	}
}

// WithPendingLimit bounds the number of ended strokes which may wait for
// estimation updates. When the limit is exceeded, the oldest pending
// stroke is finished with the values it has. Zero, the default, means no
// limit.
func WithPendingLimit(n int) Option {
	return func(o *options) {
		o.pendingLimit = max(n, 0)
	}
}
