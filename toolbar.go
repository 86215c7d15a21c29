package main

import (
	"image"
	"image/color"

	"github.com/anastasop/iboard/board"
)

// Grid overlays on area a grid of square cells, left to right and top to
// bottom. The number of columns is calculated from the cell size and the
// padding.
type Grid struct {
	area     image.Rectangle
	cellSize int
	padding  int
}

// NewGrid returns a new grid.
func NewGrid(area image.Rectangle, cellSize, padding int) *Grid {
	return &Grid{
		area:     area,
		cellSize: cellSize,
		padding:  padding,
	}
}

// Attach should be called when the grid area changes.
func (g *Grid) Attach(r image.Rectangle) {
	g.area = r
}

// Columns returns the number of cells in a row, at least one.
func (g *Grid) Columns() int {
	return max(1, (g.area.Dx()-g.padding)/(g.cellSize+g.padding))
}

// Height returns the height needed for n cells.
func (g *Grid) Height(n int) int {
	cols := g.Columns()
	rows := (n + cols - 1) / cols
	return rows*(g.cellSize+g.padding) + g.padding
}

// GridCoords translates area coordinates to grid coordinates. Points on
// the padding between cells are not inside.
func (g *Grid) GridCoords(at image.Point) (x int, y int, inside bool) {
	if !at.In(g.area) {
		return
	}
	stride := g.cellSize + g.padding
	local := at.Sub(g.area.Min).Sub(image.Pt(g.padding, g.padding))
	if local.X < 0 || local.Y < 0 || local.X%stride >= g.cellSize || local.Y%stride >= g.cellSize {
		return
	}
	x, y = local.X/stride, local.Y/stride
	inside = x < g.Columns()
	return
}

// CellRect returns the rectangle of the ith cell.
func (g *Grid) CellRect(i int) image.Rectangle {
	cols := g.Columns()
	stride := g.cellSize + g.padding
	pt := g.area.Min.Add(image.Pt(g.padding+(i%cols)*stride, g.padding+(i/cols)*stride))
	return image.Rectangle{pt, pt.Add(image.Pt(g.cellSize, g.cellSize))}
}

// action is what a toolbar item does.
type action int

const (
	actColor action = iota
	actPen
	actEraser
	actThinner
	actThicker
	actClear
	actExport
	actFullscreen
	actHelp
)

// toolbarItem is a cell of the toolbar.
type toolbarItem struct {
	act   action
	color color.NRGBA // for actColor
	label string
	key   rune
	help  string
}

// Toolbar is the strip of controls above the board: the palette, the
// tools, the brush width and the commands.
type Toolbar struct {
	grid  *Grid
	items []toolbarItem
}

// NewToolbar returns a toolbar offering colors. Cells are cellSize wide.
func NewToolbar(colors []color.NRGBA, cellSize, padding int) *Toolbar {
	var items []toolbarItem
	for i, c := range colors {
		it := toolbarItem{act: actColor, color: c, help: "color " + board.HexColor(c)}
		if i < 9 {
			it.key = rune('1' + i)
		}
		items = append(items, it)
	}
	items = append(items,
		toolbarItem{act: actPen, label: "pen", key: 'p', help: "pen"},
		toolbarItem{act: actEraser, label: "ers", key: 'e', help: "eraser"},
		toolbarItem{act: actThinner, label: "-", key: '-', help: "thinner brush"},
		toolbarItem{act: actThicker, label: "+", key: '+', help: "thicker brush"},
		toolbarItem{act: actClear, label: "clr", key: 'c', help: "clear the board"},
		toolbarItem{act: actExport, label: "png", key: 's', help: "save the board as png"},
		toolbarItem{act: actFullscreen, label: "[ ]", key: 'f', help: "toggle fullscreen"},
		toolbarItem{act: actHelp, label: "?", key: 'h', help: "show key bindings"},
	)
	return &Toolbar{
		grid:  NewGrid(image.Rectangle{}, cellSize, padding),
		items: items,
	}
}

// Attach places the toolbar at the top of window and returns its area.
func (tb *Toolbar) Attach(window image.Rectangle) image.Rectangle {
	tb.grid.Attach(window)
	h := tb.grid.Height(len(tb.items))
	r := image.Rect(window.Min.X, window.Min.Y, window.Max.X, min(window.Max.Y, window.Min.Y+h))
	tb.grid.Attach(r)
	return r
}

// Area returns the area of the toolbar.
func (tb *Toolbar) Area() image.Rectangle {
	return tb.grid.area
}

// At returns the item under p.
func (tb *Toolbar) At(p image.Point) (toolbarItem, bool) {
	x, y, inside := tb.grid.GridCoords(p)
	if !inside {
		return toolbarItem{}, false
	}
	i := y*tb.grid.Columns() + x
	if i >= len(tb.items) {
		return toolbarItem{}, false
	}
	return tb.items[i], true
}

// Key returns the item bound to k.
func (tb *Toolbar) Key(k rune) (toolbarItem, bool) {
	if k == '=' { // unshifted +
		k = '+'
	}
	for _, it := range tb.items {
		if it.key != 0 && it.key == k {
			return it, true
		}
	}
	return toolbarItem{}, false
}

// selected reports whether the item shows the current tool state.
func (it toolbarItem) selected(ts board.ToolState) bool {
	switch it.act {
	case actColor:
		return ts.Tool == board.Pen && ts.Color == it.color
	case actPen:
		return ts.Tool == board.Pen
	case actEraser:
		return ts.Tool == board.Eraser
	}
	return false
}

// apply changes the engine for the tool items. It reports false for the
// command items, which the view handles.
func (it toolbarItem) apply(e *board.Engine) bool {
	switch it.act {
	case actColor:
		e.SelectTool(board.Pen)
		e.SelectColor(it.color)
	case actPen:
		e.SelectTool(board.Pen)
	case actEraser:
		e.SelectTool(board.Eraser)
	case actThinner:
		e.SelectBrushWidth(e.Tools().Width - 1)
	case actThicker:
		e.SelectBrushWidth(e.Tools().Width + 1)
	default:
		return false
	}
	return true
}
