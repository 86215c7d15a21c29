package board

import (
	"image"
	"math"
)

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X, Y}.
func Pt(x, y float64) Point {
	return Point{x, y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Size is a width and height in logical pixels.
type Size struct {
	W, H float64
}

// Rect is a layout rectangle in logical pixels.
type Rect struct {
	Min, Max Point
}

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Geometry holds the sizing rules of the surface.
type Geometry struct {
	// ChromeReserve is the height kept free for the toolbar in fullscreen.
	ChromeReserve float64
	// DefaultHeight is the surface height when not fullscreen.
	DefaultHeight float64
}

// DefaultGeometry returns the sizing used by the web page.
func DefaultGeometry() Geometry {
	return Geometry{ChromeReserve: 100, DefaultHeight: 400}
}

// Layout returns the logical size of the surface. In fullscreen the surface
// takes the viewport minus the chrome reservation, otherwise the width of
// the container at the default height.
func (g Geometry) Layout(container Rect, viewport Size, fullscreen bool) Size {
	var s Size
	if fullscreen {
		s = Size{viewport.W, viewport.H - g.ChromeReserve}
	} else {
		s = Size{container.Dx(), g.DefaultHeight}
	}
	return Size{max(0, s.W), max(0, s.H)}
}

// sanitizeRatio maps unusable device pixel ratios to 1.
func sanitizeRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return r
}

// backingSize returns the raster size for a logical size at ratio.
func backingSize(s Size, ratio float64) image.Point {
	return image.Pt(int(math.Round(s.W*ratio)), int(math.Round(s.H*ratio)))
}

// placeImage returns where an imported image of bounds src lands on a
// backing store of bounds dst: shrunk to fit, never enlarged, and centred.
func placeImage(dst, src image.Rectangle) image.Rectangle {
	if src.Empty() {
		return image.Rectangle{Min: dst.Min, Max: dst.Min}
	}
	sw, sh := float64(src.Dx()), float64(src.Dy())
	scale := min(1, float64(dst.Dx())/sw, float64(dst.Dy())/sh)
	size := image.Pt(int(sw*scale), int(sh*scale))
	off := dst.Size().Sub(size).Div(2)
	return image.Rectangle{Max: size}.Add(dst.Min.Add(off))
}
