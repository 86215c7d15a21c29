package board

import "image/color"

// Canvas receives the drawing commands of the stroke renderer.
// *Context implements it.
type Canvas interface {
	SetComposite(op Composite)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
}

// eraserScale widens the eraser relative to the pen at the same brush width.
const eraserScale = 4

// CanvasSource hands out the current canvas. It returns nil while no
// rendering context exists. *Surface implements it.
type CanvasSource interface {
	Canvas() Canvas
}

// Renderer turns a sequence of local points into stroke segments. Each
// segment is stroked on its own, so style changes apply from the next
// segment on.
type Renderer struct {
	src     CanvasSource
	last    Point
	drawing bool
}

// NewRenderer returns a renderer drawing into the canvases of src.
func NewRenderer(src CanvasSource) *Renderer {
	return &Renderer{src: src}
}

// StartPath begins a path at p. Nothing is drawn until ExtendPath.
func (r *Renderer) StartPath(p Point) {
	r.last = p
	r.drawing = true
	if c := r.src.Canvas(); c != nil {
		c.BeginPath()
		c.MoveTo(p.X, p.Y)
	}
}

// ExtendPath draws the segment from the previous point to p with the style
// of ts and continues the path from p.
func (r *Renderer) ExtendPath(p Point, ts ToolState) {
	if !r.drawing {
		return
	}
	from := r.last
	r.last = p

	c := r.src.Canvas()
	if c == nil {
		Logger().Debug("renderer: no rendering context")
		return
	}
	if ts.Tool == Eraser {
		c.SetComposite(DestinationOut)
		c.SetLineWidth(float64(ts.Width * eraserScale))
	} else {
		c.SetComposite(SourceOver)
		c.SetStrokeColor(ts.Color)
		c.SetLineWidth(float64(ts.Width))
	}
	c.BeginPath()
	c.MoveTo(from.X, from.Y)
	c.LineTo(p.X, p.Y)
	c.Stroke()
	c.BeginPath()
	c.MoveTo(p.X, p.Y)
}

// EndPath finishes the path. Segments are already on the surface.
func (r *Renderer) EndPath() {
	r.drawing = false
}

// Drawing reports whether a path is in progress.
func (r *Renderer) Drawing() bool {
	return r.drawing
}
