package board

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"time"
)

// ErrNoContext is returned when the surface has no backing store to read or
// draw into.
var ErrNoContext = errors.New("no rendering context")

// Export is an encoded snapshot of the surface, ready to be saved.
type Export struct {
	Name string // whiteboard-<date>.png
	Data []byte
}

// ExportName returns the file name of an export made at t.
func ExportName(t time.Time) string {
	return "whiteboard-" + t.UTC().Format(time.DateOnly) + ".png"
}

// Encode encodes img as PNG at its full resolution. img must not change
// while Encode runs; pass a Snapshot when encoding off the event loop.
func Encode(img image.Image, t time.Time) (Export, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return Export{}, fmt.Errorf("export: encode png: %w", err)
	}
	return Export{Name: ExportName(t), Data: b.Bytes()}, nil
}

// Export encodes the current backing store.
func (e *Engine) Export(now time.Time) (Export, error) {
	snap := e.surface.Snapshot()
	if snap == nil {
		return Export{}, fmt.Errorf("export: %w", ErrNoContext)
	}
	return Encode(snap, now)
}

// Clear makes the whole surface transparent. It keeps the backing store
// and the tool state.
func (e *Engine) Clear() bool {
	ctx := e.surface.Context()
	if ctx == nil {
		Logger().Debug("engine: clear without rendering context")
		return false
	}
	s := e.surface.Size()
	ctx.ClearRect(0, 0, s.W, s.H)
	return true
}
