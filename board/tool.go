package board

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Tool is the active drawing tool.
type Tool int

const (
	Pen Tool = iota
	Eraser
)

func (t Tool) String() string {
	switch t {
	case Pen:
		return "pen"
	case Eraser:
		return "eraser"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Brush width limits.
const (
	MinBrushWidth     = 1
	MaxBrushWidth     = 12
	DefaultBrushWidth = 3
)

// DefaultPalette is the set of colors offered by the toolbar.
var DefaultPalette = []string{
	"#000000", "#ef4444", "#f97316", "#eab308",
	"#22c55e", "#2563eb", "#8b5cf6", "#ec4899",
}

// ToolState is the selected tool and style. The renderer only reads it.
type ToolState struct {
	Tool  Tool
	Color color.NRGBA
	Width int
}

// DefaultToolState returns a pen with the first palette color and the
// default width.
func DefaultToolState() ToolState {
	c, _ := ParseHexColor(DefaultPalette[0])
	return ToolState{Tool: Pen, Color: c, Width: DefaultBrushWidth}
}

func (ts *ToolState) SelectTool(t Tool) {
	ts.Tool = t
}

func (ts *ToolState) SelectColor(c color.Color) {
	ts.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// SelectBrushWidth sets the width, clamped to [MinBrushWidth, MaxBrushWidth].
func (ts *ToolState) SelectBrushWidth(w int) {
	ts.Width = min(max(w, MinBrushWidth), MaxBrushWidth)
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("parse color %q: missing #", s)
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("parse color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// HexColor formats c as "#rrggbb".
func HexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
