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
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// ErrInvalidSize is returned when a surface cannot be allocated for the
// requested dimensions.
var ErrInvalidSize = errors.New("invalid surface size")

// maxPixels bounds the size of a single surface.
const maxPixels = 1 << 28

// Surface is an RGBA pixel buffer which can be drawn on with simple path
// commands. Coordinates passed to MoveTo and LineTo are view coordinates;
// the surface holds scale×scale device pixels per view unit.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	img   *image.RGBA
	scale float64
	r     *Rasteriser

	path  path.Data
	col   color.NRGBA
	width float64
	cap   graphics.LineCapStyle
}

// NewSurface allocates a transparent surface covering a view of the given
// size. The pixel size of the surface is the view size times scale,
// rounded up.
func NewSurface(width, height int, scale float64) (*Surface, error) {
	if width <= 0 || height <= 0 || !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: %dx%d at scale %g", ErrInvalidSize, width, height, scale)
	}
	w := math.Ceil(float64(width) * scale)
	h := math.Ceil(float64(height) * scale)
	if w*h > maxPixels {
		return nil, fmt.Errorf("%w: %gx%g pixels", ErrInvalidSize, w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	return &Surface{
		img:   img,
		scale: scale,
		r:     NewRasteriser(clipRect(img.Rect)),
		col:   color.NRGBA{A: 255},
		width: 1,
		cap:   graphics.LineCapRound,
	}, nil
}

func clipRect(b image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}
}

// Image returns the pixel buffer of the surface. The image is owned by the
// surface and changes when the surface is drawn on.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Scale returns the number of device pixels per view unit.
func (s *Surface) Scale() float64 {
	return s.scale
}

// SetCap sets the style of segment endpoints. The default is round caps.
func (s *Surface) SetCap(c graphics.LineCapStyle) {
	s.cap = c
}

// SetColor sets the colour used by subsequent calls to Stroke.
func (s *Surface) SetColor(c color.Color) {
	s.col = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// SetWidth sets the line width in view units.
func (s *Surface) SetWidth(w float64) {
	s.width = w
}

// MoveTo starts a new subpath at p.
func (s *Surface) MoveTo(p vec.Vec2) {
	s.path.MoveTo(p)
}

// LineTo adds a line segment from the current point to p.
func (s *Surface) LineTo(p vec.Vec2) {
	s.path.LineTo(p)
}

// Stroke paints the current path using the current colour and width, and
// then clears the path.
func (s *Surface) Stroke() {
	defer s.clearPath()

	if s.col.A == 0 || !(s.width > 0) || len(s.path.Cmds) == 0 {
		return
	}

	r := s.r
	r.Reset(clipRect(s.img.Rect))
	r.CTM = matrix.Scale(s.scale, s.scale)
	r.Width = s.width
	r.Cap = s.cap

	r.Stroke(&s.path, s.blend)
}

func (s *Surface) clearPath() {
	s.path.Cmds = s.path.Cmds[:0]
	s.path.Coords = s.path.Coords[:0]
}

// blend composites one row of coverage values onto the image, using the
// source-over operator with premultiplied alpha.
func (s *Surface) blend(y, xMin int, coverage []float32) {
	img := s.img
	cr := float32(s.col.R) / 255
	cg := float32(s.col.G) / 255
	cb := float32(s.col.B) / 255
	ca := float32(s.col.A) / 255

	off := img.PixOffset(xMin, y)
	row := img.Pix[off : off+4*len(coverage)]
	for i, c := range coverage {
		a := c * ca
		if a <= 0 {
			continue
		}
		px := row[4*i : 4*i+4 : 4*i+4]
		inv := 1 - a
		px[0] = clampByte(255*cr*a + float32(px[0])*inv)
		px[1] = clampByte(255*cg*a + float32(px[1])*inv)
		px[2] = clampByte(255*cb*a + float32(px[2])*inv)
		px[3] = clampByte(255*a + float32(px[3])*inv)
	}
}

func clampByte(v float32) uint8 {
	return uint8(max(0, min(255, v+0.5)))
}

// Clear resets every pixel of the surface to transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
	s.clearPath()
}
