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
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	reg := NewRegistry(&recorder{})
	first := stylusAt(1, 2, 0.5)
	first.Timestamp = 0.25
	first.PreciseLocation.X = 1.125
	first.AltitudeAngle = 0.5
	first.AzimuthAngle = 1.5
	reg.OnBatch(1, []TouchSample{first, stylusAt(3, 4, 0.5), stylusAt(5, 6, 0.5)}, nil)
	reg.OnBatch(2, []TouchSample{fingerAt(7, 8)}, nil)
	reg.OnContactEnd(1, true)

	buf := &bytes.Buffer{}
	if err := reg.WriteCSV(buf); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(rows[0], csvHeader) {
		t.Errorf("header %v", rows[0])
	}
	if len(rows) != 5 {
		t.Fatalf("%d rows, want 5", len(rows))
	}

	// live strokes come first
	if got := rows[1][9]; got != "Finger" {
		t.Errorf("finger row has label %q", got)
	}
	want := []string{"0.25", "0.5", "1", "2", "1.125", "2", "2", "0.5", "1.5", "Coalesced"}
	if !slices.Equal(rows[2], want) {
		t.Errorf("got row %v, want %v", rows[2], want)
	}
	if got := rows[4][9]; got != "Cancelled" {
		t.Errorf("last point has label %q", got)
	}
}

func TestStrokeWriteCSV(t *testing.T) {
	s := NewStroke()
	s.AppendPoint(stylusAt(0, 0, 1), Standard)
	s.AppendPoint(stylusAt(1, 0, 1), Predicted)

	buf := &bytes.Buffer{}
	if err := s.WriteCSV(buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasSuffix(lines[1], ",") {
		t.Errorf("standard point has a label: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",Predicted") {
		t.Errorf("predicted point: %q", lines[2])
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestLifecycleLogging(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	reg := NewRegistry(&recorder{}, WithPendingLimit(1))
	for id := range ContactID(2) {
		reg.OnBatch(id, []TouchSample{expecting(stylusAt(0, 0, 1), uint64(id), PropForce)}, nil)
		reg.OnContactEnd(id, false)
	}

	out := buf.String()
	for _, msg := range []string{"stroke started", "stroke pending", "stroke finished", "level=WARN"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log output does not contain %q:\n%s", msg, out)
		}
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}
