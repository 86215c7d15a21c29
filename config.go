package main

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	"github.com/anastasop/iboard/board"
	"github.com/pelletier/go-toml/v2"
)

// Config is the iboard.toml configuration file.
type Config struct {
	Window  string        `toml:"window"`
	Output  OutputConfig  `toml:"output"`
	Board   BoardConfig   `toml:"board"`
	Toolbar ToolbarConfig `toml:"toolbar"`
}

type OutputConfig struct {
	// Dir is where exported PNG files are written.
	Dir string `toml:"dir"`
	// Plumb sends the path of every export to the plumber.
	Plumb bool `toml:"plumb"`
}

type BoardConfig struct {
	// DefaultHeight is the board height outside fullscreen.
	DefaultHeight float64 `toml:"default_height"`
	// ChromeReserve is the height kept for the toolbar in fullscreen.
	ChromeReserve float64 `toml:"chrome_reserve"`
	Fullscreen    bool    `toml:"fullscreen"`
	// PreserveOnResize keeps the drawing when the window is resized.
	PreserveOnResize bool `toml:"preserve_on_resize"`
	// FrameRate is the number of animation frames per second.
	FrameRate int `toml:"frame_rate"`
}

type ToolbarConfig struct {
	Palette    []string `toml:"palette"`
	BrushWidth int      `toml:"brush_width"`
	// CellSize is the side of a toolbar cell.
	CellSize int `toml:"cell_size"`
	Padding  int `toml:"padding"`
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() Config {
	g := board.DefaultGeometry()
	return Config{
		Window: "1300x800",
		Output: OutputConfig{
			Dir:   ".",
			Plumb: true,
		},
		Board: BoardConfig{
			DefaultHeight: g.DefaultHeight,
			ChromeReserve: g.ChromeReserve,
			FrameRate:     60,
		},
		Toolbar: ToolbarConfig{
			Palette:    append([]string(nil), board.DefaultPalette...),
			BrushWidth: board.DefaultBrushWidth,
			CellSize:   32,
			Padding:    4,
		},
	}
}

// LoadConfig reads the configuration from path. A missing file yields the
// default configuration.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := config.validate(); err != nil {
		return config, fmt.Errorf("config: %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	if len(c.Toolbar.Palette) == 0 {
		return errors.New("empty palette")
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if c.Board.FrameRate <= 0 {
		return fmt.Errorf("frame rate %d is not positive", c.Board.FrameRate)
	}
	if c.Toolbar.CellSize <= 0 {
		return fmt.Errorf("cell size %d is not positive", c.Toolbar.CellSize)
	}
	if c.Toolbar.Padding < 0 {
		return fmt.Errorf("toolbar padding %d is negative", c.Toolbar.Padding)
	}
	return nil
}

// Colors returns the parsed palette.
func (c *Config) Colors() ([]color.NRGBA, error) {
	colors := make([]color.NRGBA, 0, len(c.Toolbar.Palette))
	for _, s := range c.Toolbar.Palette {
		col, err := board.ParseHexColor(s)
		if err != nil {
			return nil, err
		}
		colors = append(colors, col)
	}
	return colors, nil
}

// Geometry returns the board sizing rules.
func (c *Config) Geometry() board.Geometry {
	return board.Geometry{
		ChromeReserve: c.Board.ChromeReserve,
		DefaultHeight: c.Board.DefaultHeight,
	}
}

// ToolState returns the initial tool: the pen with the first palette color.
func (c *Config) ToolState() board.ToolState {
	ts := board.DefaultToolState()
	if colors, err := c.Colors(); err == nil && len(colors) > 0 {
		ts.SelectColor(colors[0])
	}
	ts.SelectBrushWidth(c.Toolbar.BrushWidth)
	return ts
}
