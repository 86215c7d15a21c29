package board

import (
	"image/color"
	"testing"
)

func TestSelectBrushWidthClamps(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{7, 7},
		{12, 12},
		{13, 12},
		{100, 12},
	}
	for _, tt := range tests {
		var ts ToolState
		ts.SelectBrushWidth(tt.in)
		if ts.Width != tt.want {
			t.Errorf("SelectBrushWidth(%d): Width = %d, want %d", tt.in, ts.Width, tt.want)
		}
	}
}

func TestDefaultToolState(t *testing.T) {
	ts := DefaultToolState()
	if ts.Tool != Pen || ts.Width != 3 || HexColor(ts.Color) != DefaultPalette[0] {
		t.Errorf("DefaultToolState() = %+v", ts)
	}
}

func TestSelectToolAndColor(t *testing.T) {
	ts := DefaultToolState()
	ts.SelectTool(Eraser)
	ts.SelectColor(color.RGBA{0x22, 0xc5, 0x5e, 0xff})
	if ts.Tool != Eraser {
		t.Errorf("Tool = %v, want eraser", ts.Tool)
	}
	if got := HexColor(ts.Color); got != "#22c55e" {
		t.Errorf("Color = %s, want #22c55e", got)
	}
	if ts.Width != DefaultBrushWidth {
		t.Errorf("Width changed to %d", ts.Width)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#2563eb", color.NRGBA{0x25, 0x63, 0xeb, 0xff}, false},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#000000", color.NRGBA{0, 0, 0, 0xff}, false},
		{"2563eb", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaletteParses(t *testing.T) {
	for _, s := range DefaultPalette {
		if _, err := ParseHexColor(s); err != nil {
			t.Errorf("palette color %s: %v", s, err)
		}
	}
}
