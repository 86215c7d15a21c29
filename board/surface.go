package board

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Composite is the rule for combining a stroke with the raster below it.
type Composite int

const (
	// SourceOver paints over the existing content.
	SourceOver Composite = iota
	// DestinationOut clears existing content under the stroke.
	DestinationOut
)

func (c Composite) String() string {
	switch c {
	case SourceOver:
		return "source-over"
	case DestinationOut:
		return "destination-out"
	}
	return "unknown"
}

// Surface is the raster the board draws into. It has a logical size, used
// for layout and drawing commands, and a backing store of logical size times
// the device pixel ratio.
//
// Every reallocation of the backing store discards its pixels and advances
// the generation. Callers that need the content across a reallocation must
// take a Snapshot before and draw it back after.
type Surface struct {
	size  Size
	ratio float64
	gen   uint64
	ctx   *Context // nil while the backing store is empty
}

// NewSurface returns an empty surface. It has no rendering context until it
// is configured to a non-empty size.
func NewSurface() *Surface {
	return &Surface{ratio: 1}
}

// Size returns the logical size.
func (s *Surface) Size() Size { return s.size }

// Ratio returns the device pixel ratio of the backing store.
func (s *Surface) Ratio() float64 { return s.ratio }

// Generation counts backing store reallocations.
func (s *Surface) Generation() uint64 { return s.gen }

// Backing returns the backing store size in pixels.
func (s *Surface) Backing() image.Point {
	if s.ctx == nil {
		return image.Point{}
	}
	return image.Pt(s.ctx.dc.Width(), s.ctx.dc.Height())
}

// Context returns the rendering context, or nil if the surface has none.
func (s *Surface) Context() *Context {
	return s.ctx
}

// Canvas returns the rendering context as a Canvas, or nil.
func (s *Surface) Canvas() Canvas {
	if s.ctx == nil {
		return nil
	}
	return s.ctx
}

// Snapshot returns a copy of the backing store, or nil if there is none.
// The copy shares nothing with the surface.
func (s *Surface) Snapshot() *image.RGBA {
	if s.ctx == nil {
		return nil
	}
	s.ctx.flush()
	return s.ctx.dc.ResizeTarget().ToImage()
}

// Configure sizes the surface. It reallocates the backing store only when
// the backing size changes and reports whether it did. A reallocated
// context starts from default state: identity transform, butt caps, miter
// joins. With preserve set, the previous pixels are redrawn at the same
// logical position, scaled to the new ratio.
func (s *Surface) Configure(logical Size, ratio float64, preserve bool) bool {
	ratio = sanitizeRatio(ratio)
	bs := backingSize(logical, ratio)
	oldRatio := s.ratio
	s.size = logical
	s.ratio = ratio

	if bs.X <= 0 || bs.Y <= 0 {
		if s.ctx == nil {
			return false
		}
		_ = s.ctx.dc.Close()
		s.ctx = nil
		s.gen++
		return true
	}
	if s.ctx == nil {
		s.ctx = newContext(bs.X, bs.Y)
		s.gen++
		return true
	}
	if s.Backing() == bs {
		return false
	}

	var snap *image.RGBA
	if preserve {
		snap = s.Snapshot()
	}
	if err := s.ctx.dc.Resize(bs.X, bs.Y); err != nil {
		// unreachable: bs is positive
		Logger().Debug("surface: resize", "err", err)
		return false
	}
	s.ctx.reset()
	s.gen++
	if snap != nil {
		s.ctx.drawScaled(snap, ratio/oldRatio)
	}
	return true
}

// Context is the 2D rendering context of a surface. Painting goes through
// gogpu/gg; erasing rasterizes coverage with x/image/vector and removes it
// from the backing store.
type Context struct {
	dc        *gg.Context
	composite Composite
	color     color.Color
	width     float64
	smoothing bool
	subpaths  [][]Point

	rast vector.Rasterizer
}

func newContext(w, h int) *Context {
	c := &Context{dc: gg.NewContext(w, h)}
	c.reset()
	return c
}

// reset restores the defaults of a freshly allocated context.
func (c *Context) reset() {
	c.dc.Identity()
	c.dc.ClearPath()
	c.SetLineCap(gg.LineCapButt)
	c.SetLineJoin(gg.LineJoinMiter)
	c.SetLineWidth(1)
	c.SetStrokeColor(color.Black)
	c.composite = SourceOver
	c.smoothing = true
	c.subpaths = c.subpaths[:0]
}

// SetTransform replaces the current transform.
func (c *Context) SetTransform(m gg.Matrix) { c.dc.SetTransform(m) }

// Transform returns the current transform.
func (c *Context) Transform() gg.Matrix { return c.dc.GetTransform() }

// Scale post-multiplies the transform by a scale.
func (c *Context) Scale(sx, sy float64) { c.dc.Scale(sx, sy) }

// SetLineCap sets the cap of stroke ends.
func (c *Context) SetLineCap(lc gg.LineCap) { c.dc.SetLineCap(lc) }

// LineCap returns the cap of stroke ends.
func (c *Context) LineCap() gg.LineCap { return c.dc.GetStroke().Cap }

// SetLineJoin sets the join between stroke segments.
func (c *Context) SetLineJoin(lj gg.LineJoin) { c.dc.SetLineJoin(lj) }

// LineJoin returns the join between stroke segments.
func (c *Context) LineJoin() gg.LineJoin { return c.dc.GetStroke().Join }

// SetSmoothing selects smooth (true) or nearest-neighbor (false) image scaling.
func (c *Context) SetSmoothing(on bool) { c.smoothing = on }

// Smoothing reports whether image scaling is smooth.
func (c *Context) Smoothing() bool { return c.smoothing }

func (c *Context) SetComposite(op Composite) { c.composite = op }

func (c *Context) SetStrokeColor(col color.Color) {
	c.color = col
	c.dc.SetColor(col)
}

func (c *Context) SetLineWidth(w float64) {
	c.width = w
	c.dc.SetLineWidth(w)
}

func (c *Context) BeginPath() {
	c.subpaths = c.subpaths[:0]
}

func (c *Context) MoveTo(x, y float64) {
	c.subpaths = append(c.subpaths, []Point{{x, y}})
}

// LineTo adds a segment to the current subpath. Without a current point it
// behaves like MoveTo.
func (c *Context) LineTo(x, y float64) {
	n := len(c.subpaths)
	if n == 0 {
		c.MoveTo(x, y)
		return
	}
	c.subpaths[n-1] = append(c.subpaths[n-1], Point{x, y})
}

// Stroke draws the current path with the current style and composite.
// Subpaths made of a single MoveTo draw nothing.
func (c *Context) Stroke() {
	switch c.composite {
	case DestinationOut:
		c.erase()
	default:
		c.paint()
	}
}

func (c *Context) paint() {
	c.dc.ClearPath()
	for _, sp := range c.subpaths {
		if len(sp) < 2 {
			continue
		}
		c.dc.MoveTo(sp[0].X, sp[0].Y)
		for _, p := range sp[1:] {
			c.dc.LineTo(p.X, p.Y)
		}
	}
	if err := c.dc.Stroke(); err != nil {
		Logger().Debug("surface: stroke", "err", err)
	}
}

// erase removes round-capped capsules along every segment of the path.
// A fully covered pixel ends up transparent.
func (c *Context) erase() {
	c.flush()
	pm := c.dc.ResizeTarget()
	dst := pixmapRGBA(pm)
	m := c.dc.GetTransform()
	r := c.width * m.ScaleFactor() / 2
	for _, sp := range c.subpaths {
		for i := 1; i < len(sp); i++ {
			a := m.TransformPoint(gg.Pt(sp[i-1].X, sp[i-1].Y))
			b := m.TransformPoint(gg.Pt(sp[i].X, sp[i].Y))
			c.eraseCapsule(dst, a, b, r)
		}
	}
	pm.NotifyPixelsChanged()
}

func (c *Context) eraseCapsule(dst *image.RGBA, a, b gg.Point, r float64) {
	br := image.Rect(
		int(math.Floor(min(a.X, b.X)-r)), int(math.Floor(min(a.Y, b.Y)-r)),
		int(math.Ceil(max(a.X, b.X)+r)), int(math.Ceil(max(a.Y, b.Y)+r)),
	).Intersect(dst.Bounds())
	if br.Empty() {
		return
	}
	ox, oy := float64(br.Min.X), float64(br.Min.Y)

	c.rast.Reset(br.Dx(), br.Dy())
	c.rast.DrawOp = xdraw.Src
	capsule(&c.rast, a.X-ox, a.Y-oy, b.X-ox, b.Y-oy, r)
	mask := image.NewAlpha(image.Rect(0, 0, br.Dx(), br.Dy()))
	c.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	destinationOut(dst, br, mask)
}

// destinationOut scales the premultiplied pixels of dst in r by one minus
// the coverage in mask, whose origin is r.Min.
func destinationOut(dst *image.RGBA, r image.Rectangle, mask *image.Alpha) {
	for y := 0; y < r.Dy(); y++ {
		row := dst.Pix[dst.PixOffset(r.Min.X, r.Min.Y+y):]
		cov := mask.Pix[y*mask.Stride : y*mask.Stride+r.Dx()]
		for x, ma := range cov {
			if ma == 0 {
				continue
			}
			k := 255 - uint32(ma)
			d := row[4*x : 4*x+4 : 4*x+4]
			for i := range d {
				d[i] = uint8((uint32(d[i])*k + 127) / 255)
			}
		}
	}
}

// capsule adds the outline of a segment from a to b with round caps of
// radius r. A zero-length segment is a circle.
func capsule(z *vector.Rasterizer, ax, ay, bx, by, r float64) {
	const k = 0.5522847498 // cubic approximation of a quarter circle

	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	ux, uy := dx/l*r, dy/l*r // along the segment
	nx, ny := -uy, ux        // normal
	kux, kuy, knx, kny := ux*k, uy*k, nx*k, ny*k

	f := func(v float64) float32 { return float32(v) }
	z.MoveTo(f(ax+nx), f(ay+ny))
	z.LineTo(f(bx+nx), f(by+ny))
	z.CubeTo(f(bx+nx+kux), f(by+ny+kuy), f(bx+ux+knx), f(by+uy+kny), f(bx+ux), f(by+uy))
	z.CubeTo(f(bx+ux-knx), f(by+uy-kny), f(bx-nx+kux), f(by-ny+kuy), f(bx-nx), f(by-ny))
	z.LineTo(f(ax-nx), f(ay-ny))
	z.CubeTo(f(ax-nx-kux), f(ay-ny-kuy), f(ax-ux-knx), f(ay-uy-kny), f(ax-ux), f(ay-uy))
	z.CubeTo(f(ax-ux+knx), f(ay-uy+kny), f(ax+nx-kux), f(ay+ny-kuy), f(ax+nx), f(ay+ny))
	z.ClosePath()
}

// ClearRect makes the logical rectangle transparent.
func (c *Context) ClearRect(x, y, w, h float64) {
	m := c.dc.GetTransform()
	p0 := m.TransformPoint(gg.Pt(x, y))
	p1 := m.TransformPoint(gg.Pt(x+w, y+h))
	r := image.Rect(
		int(math.Floor(min(p0.X, p1.X))), int(math.Floor(min(p0.Y, p1.Y))),
		int(math.Ceil(max(p0.X, p1.X))), int(math.Ceil(max(p0.Y, p1.Y))),
	)
	c.flush()
	c.dc.ResizeTarget().FillRect(r, 0, 0, 0, 0)
}

// DrawImage composites img source-over into the backing store rectangle dr.
func (c *Context) DrawImage(img image.Image, dr image.Rectangle) {
	c.flush()
	pm := c.dc.ResizeTarget()
	c.scaler().Scale(pixmapRGBA(pm), dr, img, img.Bounds(), xdraw.Over, nil)
	pm.NotifyPixelsChanged()
}

// drawScaled draws a previous backing store at the origin, scaled by f.
func (c *Context) drawScaled(img *image.RGBA, f float64) {
	pm := c.dc.ResizeTarget()
	dst := pixmapRGBA(pm)
	if f == 1 {
		xdraw.Copy(dst, image.Point{}, img, img.Bounds(), xdraw.Src, nil)
	} else {
		dr := image.Rect(0, 0,
			int(math.Round(float64(img.Bounds().Dx())*f)),
			int(math.Round(float64(img.Bounds().Dy())*f)))
		c.scaler().Scale(dst, dr, img, img.Bounds(), xdraw.Src, nil)
	}
	pm.NotifyPixelsChanged()
}

// flush makes pending accelerated drawing visible in the pixmap before it
// is read or written directly.
func (c *Context) flush() {
	if err := c.dc.FlushGPU(); err != nil {
		Logger().Debug("surface: flush", "err", err)
	}
}

func (c *Context) scaler() xdraw.Scaler {
	if c.smoothing {
		return xdraw.CatmullRom
	}
	return xdraw.NearestNeighbor
}

// pixmapRGBA views the premultiplied pixmap as an image.RGBA sharing its pixels.
func pixmapRGBA(pm *gg.Pixmap) *image.RGBA {
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: 4 * pm.Width(),
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}
