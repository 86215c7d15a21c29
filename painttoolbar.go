package main

import (
	"fmt"
	"image"
	"image/color"

	draw9 "9fans.net/go/draw"

	"github.com/anastasop/iboard/board"
)

// paintToolbar draws the toolbar cells and marks the ones of the current tool.
func paintToolbar(dctl *DisplayControl, tb *Toolbar, ts board.ToolState) {
	window := dctl.display.Image
	font := dctl.display.Font
	zp := image.Point{}
	border := max(1, tb.grid.padding/2)

	var last image.Rectangle
	for i, it := range tb.items {
		r := tb.grid.CellRect(i)
		if !r.In(tb.Area()) {
			break
		}
		if it.act == actColor {
			window.Draw(r, dctl.swatch(it.color), nil, zp)
		} else {
			window.Draw(r, dctl.boardColor, nil, zp)
			size := font.StringSize(it.label)
			window.String(labelAt(r, size), dctl.display.Black, zp, font, it.label)
		}
		if it.selected(ts) {
			window.Border(r.Inset(-border), border, dctl.borderColor, zp)
		}
		last = r
	}

	width := fmt.Sprintf("width %d", ts.Width)
	pt := image.Pt(last.Max.X+tb.grid.padding*2, last.Min.Y+(last.Dy()-font.Height)/2)
	window.String(pt, dctl.fontColor, zp, font, width)
}

// swatch returns an image of color c, allocating it on first use.
func (dctl *DisplayControl) swatch(c color.NRGBA) *draw9.Image {
	if img, ok := dctl.swatches[c]; ok {
		return img
	}
	col := draw9.Color(uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | 0xFF)
	img := dctl.display.AllocImageMix(col, col)
	if dctl.swatches == nil {
		dctl.swatches = make(map[color.NRGBA]*draw9.Image)
	}
	dctl.swatches[c] = img
	return img
}

// labelAt returns where a label of the given size starts so that it sits in
// the middle of cell r. Labels wider than the cell start at its left edge.
func labelAt(r image.Rectangle, size image.Point) image.Point {
	d := r.Size().Sub(size)
	return r.Min.Add(image.Pt(max(d.X, 0)/2, max(d.Y, 0)/2))
}
