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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	s, err := NewSurface(16, 16, 1)
	if err != nil {
		t.Fatal(err)
	}
	return NewCache(s)
}

func strokeLine(c *Cache, a, b vec.Vec2) {
	c.SetColor(color.Black)
	c.SetWidth(2)
	c.MoveTo(a)
	c.LineTo(b)
	c.Stroke()
}

func TestCacheSnapshot(t *testing.T) {
	c := newTestCache(t)
	if c.HasSnapshot() {
		t.Error("new cache has a snapshot")
	}

	snap := c.Snapshot()
	if c.Snapshot() != snap {
		t.Error("unchanged surface gave a new snapshot")
	}

	gen := c.Generation()
	strokeLine(c, vec.Vec2{X: 2, Y: 2}, vec.Vec2{X: 14, Y: 14})
	if c.HasSnapshot() {
		t.Error("stroke kept the snapshot")
	}
	if c.Generation() != gen+1 {
		t.Errorf("generation %d, want %d", c.Generation(), gen+1)
	}

	snap = c.Snapshot()
	if snap.RGBAAt(8, 8).A == 0 {
		t.Error("snapshot does not show the stroke")
	}

	// the snapshot is a copy
	c.Surface().Image().Pix[0] = 77
	if snap.Pix[0] == 77 {
		t.Error("snapshot shares pixels with the surface")
	}

	c.Clear()
	if c.HasSnapshot() || c.Snapshot().RGBAAt(8, 8).A != 0 {
		t.Error("clear did not reset the snapshot")
	}

	c.Snapshot()
	c.Invalidate()
	if c.HasSnapshot() {
		t.Error("invalidate kept the snapshot")
	}
}

func TestCacheDrawTo(t *testing.T) {
	c := newTestCache(t)
	strokeLine(c, vec.Vec2{X: 2, Y: 8}, vec.Vec2{X: 14, Y: 8})

	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	c.DrawTo(dst, dst.Rect)
	snap := c.Snapshot()
	for i := range dst.Pix {
		if dst.Pix[i] != snap.Pix[i] {
			t.Fatalf("pixel byte %d: %d != %d", i, dst.Pix[i], snap.Pix[i])
		}
	}

	big := image.NewRGBA(image.Rect(0, 0, 32, 32))
	c.DrawTo(big, big.Rect)
	if big.RGBAAt(16, 16).A == 0 {
		t.Error("scaled snapshot does not show the stroke")
	}
	if big.RGBAAt(16, 2).A != 0 {
		t.Error("scaled snapshot painted outside the stroke")
	}
}
