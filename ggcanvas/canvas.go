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

// Package ggcanvas draws strokes onto a gg drawing context.
//
// The live tail of the strokes is typically drawn this way on every frame,
// on top of the persistent raster:
//
//	frame := image.NewRGBA(bounds)
//	cache.DrawTo(frame, frame.Rect)
//	dc := gg.NewContextForImage(frame)
//	reg.DrawLive(ggcanvas.New(dc))
//	out := dc.Image()
package ggcanvas

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/gg"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/ink"
)

// Canvas adapts a *gg.Context to the ink.Canvas interface. Since it can
// also be cleared, a Canvas can serve as the persistent target of a
// Registry.
type Canvas struct {
	dc  *gg.Context
	err error
}

var _ ink.Target = (*Canvas)(nil)

// New returns a Canvas drawing onto dc. The line cap of dc is set to
// round, matching the persistent raster.
func New(dc *gg.Context) *Canvas {
	dc.SetLineCap(gg.LineCapRound)
	return &Canvas{dc: dc}
}

// Context returns the underlying drawing context.
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

func (c *Canvas) SetColor(col color.Color) { c.dc.SetColor(col) }
func (c *Canvas) SetWidth(w float64)       { c.dc.SetLineWidth(w) }
func (c *Canvas) MoveTo(p vec.Vec2)        { c.dc.MoveTo(p.X, p.Y) }
func (c *Canvas) LineTo(p vec.Vec2)        { c.dc.LineTo(p.X, p.Y) }

// Stroke strokes the current path. The first error reported by gg is
// kept and can be retrieved with Err.
func (c *Canvas) Stroke() {
	if err := c.dc.Stroke(); err != nil && c.err == nil {
		ink.Logger().Warn("gg stroke failed", slog.Any("error", err))
		c.err = err
	}
}

// Clear resets the whole context to transparent.
func (c *Canvas) Clear() {
	c.dc.Clear()
}

// Err returns the first error encountered while stroking.
func (c *Canvas) Err() error {
	return c.err
}
