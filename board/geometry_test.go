package board

import (
	"image"
	"math"
	"testing"
)

func TestGeometryLayout(t *testing.T) {
	g := DefaultGeometry()
	container := Rect{Pt(10, 120), Pt(810, 900)}
	viewport := Size{1280, 720}

	tests := []struct {
		name       string
		container  Rect
		fullscreen bool
		want       Size
	}{
		{"windowed", container, false, Size{800, 400}},
		{"fullscreen", container, true, Size{1280, 620}},
		{"collapsed container", Rect{Pt(10, 10), Pt(10, 10)}, false, Size{0, 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Layout(tt.container, viewport, tt.fullscreen); got != tt.want {
				t.Errorf("Layout() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := g.Layout(container, Size{640, 80}, true); got != (Size{640, 0}) {
		t.Errorf("Layout() in short viewport = %v, want {640 0}", got)
	}
}

func TestBackingSize(t *testing.T) {
	tests := []struct {
		s     Size
		ratio float64
		want  image.Point
	}{
		{Size{800, 400}, 1, image.Pt(800, 400)},
		{Size{800, 400}, 2, image.Pt(1600, 800)},
		{Size{333, 400}, 1.5, image.Pt(500, 600)},
		{Size{100.4, 10}, 1, image.Pt(100, 10)},
	}
	for _, tt := range tests {
		if got := backingSize(tt.s, tt.ratio); got != tt.want {
			t.Errorf("backingSize(%v, %v) = %v, want %v", tt.s, tt.ratio, got, tt.want)
		}
	}
}

func TestSanitizeRatio(t *testing.T) {
	for _, r := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		if got := sanitizeRatio(r); got != 1 {
			t.Errorf("sanitizeRatio(%v) = %v, want 1", r, got)
		}
	}
	if got := sanitizeRatio(2.25); got != 2.25 {
		t.Errorf("sanitizeRatio(2.25) = %v", got)
	}
}

func TestPlaceImage(t *testing.T) {
	dr := image.Rect(0, 0, 200, 100)
	tests := []struct {
		name string
		sr   image.Rectangle
		want image.Rectangle
	}{
		{"fits", image.Rect(0, 0, 100, 50), image.Rect(50, 25, 150, 75)},
		{"too wide", image.Rect(0, 0, 400, 100), image.Rect(0, 25, 200, 75)},
		{"too tall", image.Rect(0, 0, 100, 200), image.Rect(75, 0, 125, 100)},
		{"offset source", image.Rect(10, 10, 110, 60), image.Rect(50, 25, 150, 75)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := placeImage(dr, tt.sr); got != tt.want {
				t.Errorf("placeImage() = %v, want %v", got, tt.want)
			}
		})
	}
}
