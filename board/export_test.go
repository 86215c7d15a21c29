package board

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"
)

var testTime = time.Date(2024, time.March, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))

func TestExportName(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, time.January, 2, 12, 0, 0, 0, time.UTC), "whiteboard-2024-01-02.png"},
		{testTime, "whiteboard-2024-03-10.png"}, // already the next day in UTC
	}
	for _, tt := range tests {
		if got := ExportName(tt.t); got != tt.want {
			t.Errorf("ExportName(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestExportFullResolution(t *testing.T) {
	e := New(newTestEnv(200, 2))
	stroke(e, 1, Pt(10, 20), Pt(60, 20))

	ex, err := e.Export(testTime)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if ex.Name != "whiteboard-2024-03-10.png" {
		t.Errorf("Name = %q", ex.Name)
	}
	img, err := png.Decode(bytes.NewReader(ex.Data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 400, 800) {
		t.Errorf("Bounds() = %v, want 400x800", got)
	}
	if _, _, _, a := img.At(60, 40).RGBA(); a < 0xf000 {
		t.Errorf("alpha on stroke = %#x, want opaque", a)
	}
}

func TestClearThenExport(t *testing.T) {
	e := New(newTestEnv(200, 1.5))
	stroke(e, 1, Pt(10, 20), Pt(60, 20), Pt(150, 300))
	e.SelectBrushWidth(9)
	gen := e.Surface().Generation()
	before := e.Tools()

	if !e.Clear() {
		t.Fatal("Clear() = false")
	}
	if got := e.Surface().Generation(); got != gen {
		t.Errorf("Generation() = %d, want %d", got, gen)
	}
	if got := e.Tools(); got != before {
		t.Errorf("Tools() = %v, want %v", got, before)
	}

	ex, err := e.Export(testTime)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(ex.Data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	assertClear(t, img)
}

func TestSnapshotIsCopy(t *testing.T) {
	e := New(newTestEnv(200, 1))
	snap := e.Surface().Snapshot()
	stroke(e, 1, Pt(10, 20), Pt(60, 20))
	if a := snap.RGBAAt(30, 20).A; a != 0 {
		t.Errorf("snapshot changed after drawing: alpha = %d", a)
	}
}
