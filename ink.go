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

// Package ink turns a stream of pointer samples into strokes and renders
// them with little redraw work.
//
// Samples arrive in batches per contact. Coalesced samples give sub-frame
// resolution, predicted samples are replaced on every event, and samples
// with estimated properties are corrected in place when the final values
// arrive. A [Registry] routes the batches to [Stroke] values and returns
// the dirty rectangle of every operation.
//
// Stable prefixes of a stroke are drawn once into a persistent [Target]
// (usually a raster.Cache) and dropped from the live point list, so that
// only a short tail needs to be drawn on every frame.
package ink
