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

// Command inkreplay replays recorded contact events and writes the
// resulting drawing as a PNG image, together with a CSV dump of all
// stroke points.
//
// Usage:
//
//	inkreplay [-in testdata/testcases.json] [-out out] [-name pattern] [-debug] [-precise] [-points] [-v]
//
// The input file is the one written by the export command in
// testcases/export.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"seehuhn.de/go/ink"
	"seehuhn.de/go/ink/ggcanvas"
	"seehuhn.de/go/ink/raster"
	"seehuhn.de/go/ink/testcases"
)

func main() {
	in := flag.String("in", "testdata/testcases.json", "input file")
	outDir := flag.String("out", "out", "output directory")
	pattern := flag.String("name", "*", "replay only test cases matching this glob pattern")
	debug := flag.Bool("debug", false, "colour segments by point type")
	precise := flag.Bool("precise", false, "draw at precise locations")
	points := flag.Bool("points", false, "draw a dot for every sample")
	verbose := flag.Bool("v", false, "log stroke life cycle events")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ink.SetLogger(logger)

	override := ink.Style{Debug: *debug, Precise: *precise, PointMode: *points}
	if err := run(logger, *in, *outDir, *pattern, override); err != nil {
		logger.Error("replay failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, in, outDir, pattern string, override ink.Style) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	file, err := testcases.ReadFile(f)
	f.Close()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	count := 0
	for _, tc := range file.TestCases {
		ok, err := filepath.Match(pattern, tc.Name)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}

		tc.Style.Debug = tc.Style.Debug || override.Debug
		tc.Style.Precise = tc.Style.Precise || override.Precise
		tc.Style.PointMode = tc.Style.PointMode || override.PointMode

		if err := replay(tc, outDir); err != nil {
			return fmt.Errorf("%s: %w", tc.Name, err)
		}
		logger.Info("replayed", "name", tc.Name, "events", len(tc.Events))
		count++
	}
	if count == 0 {
		return fmt.Errorf("no test case matches %q", pattern)
	}
	return nil
}

func replay(tc testcases.TestCase, outDir string) error {
	scale := tc.PixelScale()
	surface, err := raster.NewSurface(tc.Width, tc.Height, scale)
	if err != nil {
		return err
	}
	cache := raster.NewCache(surface)
	reg := ink.NewRegistry(cache, ink.WithStyle(tc.Style))
	testcases.Replay(reg, tc.Events)

	// Composite the persistent surface and the live strokes over a white
	// background.
	frame := image.NewRGBA(surface.Image().Rect)
	draw.Draw(frame, frame.Rect, image.White, image.Point{}, draw.Src)
	cache.DrawTo(frame, frame.Rect)

	dc := gg.NewContextForImage(frame)
	defer dc.Close()
	dc.Scale(scale, scale)
	canvas := ggcanvas.New(dc)
	reg.DrawLive(canvas)
	if err := canvas.Err(); err != nil {
		return err
	}
	if err := dc.SavePNG(filepath.Join(outDir, tc.Name+".png")); err != nil {
		return err
	}

	out, err := os.Create(filepath.Join(outDir, tc.Name+".csv"))
	if err != nil {
		return err
	}
	if err := reg.WriteCSV(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
