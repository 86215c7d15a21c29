package board

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
)

// Environment is what the host tells the engine about the page. It
// replaces direct window and device queries.
type Environment interface {
	Layout
	// ContainerRect is the layout box of the element holding the surface.
	ContainerRect() Rect
	// Viewport is the size of the visible page.
	Viewport() Size
	DevicePixelRatio() float64
}

// PointerCapturer is implemented by environments that can route all events
// of a pointer to the surface. Capture is best effort.
type PointerCapturer interface {
	CapturePointer(id int) error
	ReleasePointer(id int) error
}

// Engine is the whiteboard. It is not safe for concurrent use: the host
// calls it from its event loop.
type Engine struct {
	env      Environment
	geom     Geometry
	surface  *Surface
	input    *Tracker
	renderer *Renderer
	tools    ToolState

	fullscreen    bool
	preserve      bool
	resizePending bool
	onToggle      func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithGeometry sets the sizing rules.
func WithGeometry(g Geometry) Option {
	return func(e *Engine) { e.geom = g }
}

// WithFullscreen sets the initial fullscreen state.
func WithFullscreen(on bool) Option {
	return func(e *Engine) { e.fullscreen = on }
}

// WithPreserveOnResize keeps the drawing across backing store
// reallocations. Without it a reallocation clears the surface.
func WithPreserveOnResize(on bool) Option {
	return func(e *Engine) { e.preserve = on }
}

// WithFullscreenToggle sets the callback that asks the host to flip its
// fullscreen state.
func WithFullscreenToggle(fn func()) Option {
	return func(e *Engine) { e.onToggle = fn }
}

// WithToolState sets the initial tool and style. The brush width is clamped
// to the allowed range.
func WithToolState(ts ToolState) Option {
	return func(e *Engine) {
		e.tools = ts
		e.tools.SelectBrushWidth(ts.Width)
	}
}

// New mounts an engine in env and configures its surface.
func New(env Environment, opts ...Option) *Engine {
	e := &Engine{
		env:   env,
		geom:  DefaultGeometry(),
		tools: DefaultToolState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.surface = NewSurface()
	e.input = NewTracker(env)
	e.renderer = NewRenderer(e.surface)
	e.Configure()
	return e
}

// Handle processes one event and reports whether the surface needs to be
// shown again.
func (e *Engine) Handle(ev any) bool {
	switch ev := ev.(type) {
	case PointerDown:
		p, ok := e.input.Begin(ev.Pointer, ev.X, ev.Y)
		if !ok {
			return false
		}
		e.capture(ev.Pointer)
		e.renderer.StartPath(p)
		return false
	case PointerMove:
		p, ok := e.input.Extend(ev.Pointer, ev.X, ev.Y)
		if !ok {
			return false
		}
		e.renderer.ExtendPath(p, e.tools)
		return true
	case PointerUp:
		return e.endSession(ev.Pointer)
	case PointerCancel:
		return e.endSession(ev.Pointer)
	case WindowResize:
		e.resizePending = true
		return false
	case AnimationFrame:
		if !e.resizePending {
			return false
		}
		e.Configure()
		return true
	case FullscreenChange:
		if ev.On == e.fullscreen {
			return false
		}
		e.fullscreen = ev.On
		e.Configure()
		return true
	default:
		Logger().Debug("engine: unknown event", "type", fmt.Sprintf("%T", ev))
		return false
	}
}

func (e *Engine) endSession(id int) bool {
	if !e.input.End(id) {
		return false
	}
	e.renderer.EndPath()
	if pc, ok := e.env.(PointerCapturer); ok {
		if err := pc.ReleasePointer(id); err != nil {
			Logger().Debug("engine: release pointer", "pointer", id, "err", err)
		}
	}
	return false
}

func (e *Engine) capture(id int) {
	if pc, ok := e.env.(PointerCapturer); ok {
		if err := pc.CapturePointer(id); err != nil {
			Logger().Debug("engine: capture pointer", "pointer", id, "err", err)
		}
	}
}

// Configure recomputes the surface geometry from the environment and
// reapplies the context state a reallocation resets. Unless the engine
// preserves content, a reallocation clears the drawing, including any
// stroke in progress; the stroke continues from its next sample.
func (e *Engine) Configure() {
	e.resizePending = false
	logical := e.geom.Layout(e.env.ContainerRect(), e.env.Viewport(), e.fullscreen)
	ratio := sanitizeRatio(e.env.DevicePixelRatio())
	if e.surface.Configure(logical, ratio, e.preserve) {
		Logger().Info("engine: surface reallocated",
			"width", logical.W, "height", logical.H, "ratio", ratio,
			"backing", e.surface.Backing(), "generation", e.surface.Generation())
	}

	ctx := e.surface.Context()
	if ctx == nil {
		Logger().Debug("engine: no rendering context", "width", logical.W, "height", logical.H)
		return
	}
	ctx.SetTransform(gg.Identity())
	ctx.Scale(ratio, ratio)
	ctx.SetLineCap(gg.LineCapRound)
	ctx.SetLineJoin(gg.LineJoinRound)
	ctx.SetSmoothing(true)
}

// ToggleFullscreen asks the host to flip its fullscreen state. The engine
// follows when the host sends FullscreenChange.
func (e *Engine) ToggleFullscreen() {
	if e.onToggle != nil {
		e.onToggle()
	}
}

// Fullscreen returns the fullscreen state the engine last saw.
func (e *Engine) Fullscreen() bool { return e.fullscreen }

// Surface returns the drawing surface.
func (e *Engine) Surface() *Surface { return e.surface }

// Session returns the active pointer session, if any.
func (e *Engine) Session() (PointerSession, bool) { return e.input.Active() }

// Tools returns the current tool and style.
func (e *Engine) Tools() ToolState { return e.tools }

// SelectTool selects the active tool.
func (e *Engine) SelectTool(t Tool) { e.tools.SelectTool(t) }

// SelectColor selects the pen color.
func (e *Engine) SelectColor(c color.Color) { e.tools.SelectColor(c) }

// SelectBrushWidth selects the brush width, clamped to the allowed range.
func (e *Engine) SelectBrushWidth(w int) { e.tools.SelectBrushWidth(w) }
