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

package ggcanvas

import (
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/ink"
)

func alphaAt(dc *gg.Context, x, y int) uint32 {
	_, _, _, a := dc.Image().At(x, y).RGBA()
	return a
}

func TestStroke(t *testing.T) {
	dc := gg.NewContext(32, 32)
	c := New(dc)
	c.SetColor(color.Black)
	c.SetWidth(4)
	c.MoveTo(vec.Vec2{X: 4, Y: 16})
	c.LineTo(vec.Vec2{X: 28, Y: 16})
	c.Stroke()

	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	if alphaAt(dc, 16, 16) == 0 {
		t.Error("stroke not drawn")
	}
	if alphaAt(dc, 16, 4) != 0 {
		t.Error("pixel away from the stroke was painted")
	}

	c.Clear()
	if alphaAt(dc, 16, 16) != 0 {
		t.Error("clear did not erase the stroke")
	}
}

func TestRegistryTarget(t *testing.T) {
	dc := gg.NewContext(64, 64)
	c := New(dc)
	reg := ink.NewRegistry(c)

	var samples []ink.TouchSample
	for i := range 8 {
		p := vec.Vec2{X: float64(8 + 6*i), Y: 32}
		samples = append(samples, ink.TouchSample{
			Force:           3,
			Location:        p,
			PreciseLocation: p,
			Kind:            ink.KindStylus,
		})
	}
	reg.OnBatch(1, samples, nil)
	reg.OnContactEnd(1, false)

	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	if alphaAt(dc, 32, 32) == 0 {
		t.Error("finished stroke not drawn")
	}

	reg.Clear()
	if alphaAt(dc, 32, 32) != 0 {
		t.Error("registry clear did not reach the context")
	}
}
