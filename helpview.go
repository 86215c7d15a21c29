package main

import (
	"fmt"
	"image"
	"log"

	draw9 "9fans.net/go/draw"
)

// HelpView is a View that shows the key and mouse bindings.
type HelpView struct {
	lines []string
	area  image.Rectangle

	dctl *DisplayControl
}

func NewHelpView(tb *Toolbar) *HelpView {
	return &HelpView{lines: helpLines(tb)}
}

// helpLines returns the bindings, one per line.
func helpLines(tb *Toolbar) []string {
	lines := []string{
		"button 1     draw, or use the toolbar",
		"button 1+3   cancel the stroke",
		"button 2     menu",
		"",
	}
	for _, it := range tb.items {
		if it.key == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12c %s", it.key, it.help))
	}
	lines = append(lines, "q, esc       exit", "", "press any key to go back")
	return lines
}

func (hv *HelpView) Connect(dctl *DisplayControl) {
	hv.dctl = dctl
	hv.area = dctl.display.Image.Bounds()
}

func (hv *HelpView) Attach(r image.Rectangle) {
	hv.area = r
}

func (hv *HelpView) Free() {}

func (hv *HelpView) Handle() View {
	dctl := hv.dctl
	hv.paint(dctl)
	for {
		select {
		case err := <-dctl.errch:
			log.Printf("display: %v", err)
		case <-dctl.kctl.C:
			return nil
		case dctl.mctl.Mouse = <-dctl.mctl.C:
			if dctl.mctl.Mouse.Buttons != 0 {
				return nil
			}
		case <-dctl.mctl.Resize:
			if err := dctl.display.Attach(draw9.RefNone); err != nil {
				log.Fatalf("display: failed to attach: %v", err)
			}
			hv.Attach(dctl.display.Image.Bounds())
			hv.paint(dctl)
		}
	}
}

func (hv *HelpView) paint(dctl *DisplayControl) {
	dctl.cls()
	font := dctl.display.Font
	pt := hv.area.Min.Add(image.Pt(font.Height, font.Height))
	for _, line := range hv.lines {
		dctl.display.Image.String(pt, dctl.fontColor, image.Point{}, font, line)
		pt.Y += font.Height
	}
	dctl.flush()
}
