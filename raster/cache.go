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

package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/vec"
)

// Cache holds the persistent surface into which finished stroke segments
// are drawn, together with a snapshot image for compositing.
//
// Cache implements the same drawing commands as Surface. Every call which
// modifies the surface discards the snapshot before returning, so that a
// snapshot, when present, always equals the current surface contents.
type Cache struct {
	surface  *Surface
	snapshot *image.RGBA

	// generation counts modifications of the surface.
	generation uint64
}

// NewCache returns a cache backed by the given surface.
func NewCache(s *Surface) *Cache {
	return &Cache{surface: s}
}

// Surface returns the underlying persistent surface.
func (c *Cache) Surface() *Surface {
	return c.surface
}

// Generation returns a counter which increases with every modification of
// the persistent surface.
func (c *Cache) Generation() uint64 {
	return c.generation
}

// Invalidate discards the snapshot.
func (c *Cache) Invalidate() {
	c.snapshot = nil
}

// HasSnapshot reports whether a snapshot is currently cached.
func (c *Cache) HasSnapshot() bool {
	return c.snapshot != nil
}

// SetColor implements the drawing command of the same name.
func (c *Cache) SetColor(col color.Color) { c.surface.SetColor(col) }

// SetWidth implements the drawing command of the same name.
func (c *Cache) SetWidth(w float64) { c.surface.SetWidth(w) }

// MoveTo implements the drawing command of the same name.
func (c *Cache) MoveTo(p vec.Vec2) { c.surface.MoveTo(p) }

// LineTo implements the drawing command of the same name.
func (c *Cache) LineTo(p vec.Vec2) { c.surface.LineTo(p) }

// Stroke paints the current path into the persistent surface.
func (c *Cache) Stroke() {
	c.surface.Stroke()
	c.modified()
}

// Clear erases the persistent surface.
func (c *Cache) Clear() {
	c.surface.Clear()
	c.modified()
}

func (c *Cache) modified() {
	c.snapshot = nil
	c.generation++
}

// Snapshot returns an image of the persistent surface. The image is
// regenerated only if the surface has changed since the last call. The
// caller must not modify the returned image.
func (c *Cache) Snapshot() *image.RGBA {
	if c.snapshot == nil {
		src := c.surface.Image()
		snap := image.NewRGBA(src.Rect)
		copy(snap.Pix, src.Pix)
		c.snapshot = snap
	}
	return c.snapshot
}

// DrawTo composites the snapshot over dst, mapping the full surface onto
// the rectangle r of dst. The snapshot is resampled if the sizes differ.
func (c *Cache) DrawTo(dst draw.Image, r image.Rectangle) {
	snap := c.Snapshot()
	if r.Size() == snap.Rect.Size() {
		draw.Draw(dst, r, snap, snap.Rect.Min, draw.Over)
		return
	}
	draw.ApproxBiLinear.Scale(dst, r, snap, snap.Rect, draw.Over, nil)
}
