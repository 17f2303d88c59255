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

// Command genref generates reference images for the replay tests.
// Every test case is replayed into a PDF, which is then rendered to a PNG
// using Ghostscript.
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/ink"
	"seehuhn.de/go/ink/testcases"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			slog.Info("generated reference", "name", name)
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	scale := tc.PixelScale()
	w := float64(tc.Width) * scale
	h := float64(tc.Height) * scale

	// Page size in points (1 point = 1 pixel at 72 DPI)
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Black background for coverage semantics: 0=no coverage, 255=full
	page.SetFillColor(pdfcolor.DeviceGray(0))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// PDF origin is bottom-left; view coordinates start top-left.
	page.Transform(matrix.Matrix{scale, 0, 0, -scale, 0, h})
	page.SetLineCap(graphics.LineCapRound)

	reg := ink.NewRegistry(&pageTarget{page: page}, ink.WithStyle(tc.Style))
	testcases.Replay(reg, tc.Events)

	return page.Close()
}

// pageTarget records the segments drawn by a registry as PDF stroke
// operations. Colours are mapped to their opacity, painted white on
// black.
type pageTarget struct {
	page      *document.Page
	invisible bool
}

func (t *pageTarget) SetColor(c color.Color) {
	_, _, _, a := c.RGBA()
	t.invisible = a == 0
	t.page.SetStrokeColor(pdfcolor.DeviceGray(float64(a) / 0xffff))
}

func (t *pageTarget) SetWidth(w float64) {
	t.page.SetLineWidth(w)
}

// Segments drawn in a transparent colour are left out of the PDF.

func (t *pageTarget) MoveTo(p vec.Vec2) {
	if !t.invisible {
		t.page.MoveTo(p.X, p.Y)
	}
}

func (t *pageTarget) LineTo(p vec.Vec2) {
	if !t.invisible {
		t.page.LineTo(p.X, p.Y)
	}
}

func (t *pageTarget) Stroke() {
	if !t.invisible {
		t.page.Stroke()
	}
}

// Clear is a no-op, since the replay never redraws.
func (t *pageTarget) Clear() {}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
