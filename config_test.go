package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anastasop/iboard/board"
)

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "iboard.toml")
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	def := DefaultConfig()
	if config.Window != def.Window || config.Board != def.Board || config.Output != def.Output {
		t.Errorf("LoadConfig() = %+v, want %+v", config, def)
	}
	if got := config.Geometry(); got != board.DefaultGeometry() {
		t.Errorf("Geometry() = %v, want %v", got, board.DefaultGeometry())
	}
	if got := config.ToolState(); got != board.DefaultToolState() {
		t.Errorf("ToolState() = %v, want %v", got, board.DefaultToolState())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
window = "800x600"

[output]
dir = "/tmp/boards"
plumb = false

[board]
default_height = 300
preserve_on_resize = true

[toolbar]
palette = ["#fff", "#2563eb"]
brush_width = 20
`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Window != "800x600" {
		t.Errorf("Window = %q", config.Window)
	}
	if config.Output.Dir != "/tmp/boards" || config.Output.Plumb {
		t.Errorf("Output = %+v", config.Output)
	}
	if config.Board.DefaultHeight != 300 || !config.Board.PreserveOnResize {
		t.Errorf("Board = %+v", config.Board)
	}
	// untouched keys keep their defaults
	if config.Board.ChromeReserve != 100 || config.Board.FrameRate != 60 {
		t.Errorf("Board defaults = %+v", config.Board)
	}
	if config.Toolbar.CellSize != DefaultConfig().Toolbar.CellSize {
		t.Errorf("CellSize = %d", config.Toolbar.CellSize)
	}

	ts := config.ToolState()
	if got := board.HexColor(ts.Color); got != "#ffffff" {
		t.Errorf("ToolState().Color = %s, want #ffffff", got)
	}
	if ts.Width != board.MaxBrushWidth {
		t.Errorf("ToolState().Width = %d, want %d", ts.Width, board.MaxBrushWidth)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"syntax", "window = ", "parse"},
		{"bad color", "[toolbar]\npalette = [\"blue\"]", "blue"},
		{"empty palette", "[toolbar]\npalette = []", "empty palette"},
		{"frame rate", "[board]\nframe_rate = 0", "frame rate"},
		{"cell size", "[toolbar]\ncell_size = 0", "cell size"},
		{"negative padding", "[toolbar]\npadding = -32", "padding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultPaletteIsCopied(t *testing.T) {
	config := DefaultConfig()
	config.Toolbar.Palette[0] = "#123456"
	if board.DefaultPalette[0] == "#123456" {
		t.Error("DefaultConfig shares the board palette")
	}
}
