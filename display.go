package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"

	draw9 "9fans.net/go/draw"

	"github.com/anastasop/iboard/board"
)

type DisplayControl struct {
	display     *draw9.Display
	errch       chan error
	mctl        *draw9.Mousectl
	kctl        *draw9.Keyboardctl
	bgColor     *draw9.Image
	boardColor  *draw9.Image
	borderColor *draw9.Image
	fontColor   *draw9.Image
	swatches    map[color.NRGBA]*draw9.Image
}

func connectToDisplay(dims image.Point) *DisplayControl {
	errch := make(chan error)
	disp, err := draw9.Init(errch, "", progName, fmt.Sprintf("%dx%d", dims.X, dims.Y))
	if err != nil {
		log.Fatalf("display: cannot connect: %v", err)
	}
	kctl := disp.InitKeyboard()
	mctl := disp.InitMouse()

	return &DisplayControl{
		display:     disp,
		errch:       errch,
		mctl:        mctl,
		kctl:        kctl,
		bgColor:     disp.AllocImageMix(darkgrey, darkgrey),
		boardColor:  disp.AllocImageMix(draw9.White, draw9.White),
		borderColor: disp.AllocImageMix(darkgrey, yellow),
		fontColor:   disp.AllocImageMix(darkgrey, yellow),
	}
}

func (dctl *DisplayControl) cls() {
	dctl.display.Image.Draw(dctl.display.Image.Bounds(), dctl.bgColor, nil, image.Point{})
}

func (dctl *DisplayControl) flush() {
	if err := dctl.display.Flush(); err != nil {
		log.Printf("display: flush: %v", err)
	}
}

// ratio returns the device pixel ratio of the display.
func (dctl *DisplayControl) ratio() float64 {
	return float64(dctl.display.Scale(100)) / 100
}

// toPlan9Bitmap converts an image to the plan9 format for display.
// The pixels are premultiplied, as plan9 expects.
func toPlan9Bitmap(img *image.RGBA) *bytes.Buffer {
	n := 60 + img.Bounds().Dx()*img.Bounds().Dy()*4
	b := bytes.NewBuffer(make([]byte, 0, n))
	fmt.Fprintf(b, "%11s %11d %11d %11d %11d ",
		"r8g8b8a8", 0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	for data := img.Pix; len(data) > 0; data = data[4:] {
		b.WriteByte(data[3])
		b.WriteByte(data[2])
		b.WriteByte(data[1])
		b.WriteByte(data[0])
	}
	return b
}

// screenEnv tells the board engine where it is in the window. The board
// sits below the toolbar. Positions are logical pixels: device pixels
// divided by the display ratio.
type screenEnv struct {
	dctl     *DisplayControl
	toolbar  *Toolbar
	captured int // pointer id, -1 if none
}

func newScreenEnv(dctl *DisplayControl, toolbar *Toolbar) *screenEnv {
	return &screenEnv{dctl: dctl, toolbar: toolbar, captured: -1}
}

func (s *screenEnv) window() image.Rectangle {
	return s.dctl.display.Image.Bounds()
}

// container is the window area below the toolbar, in device pixels.
func (s *screenEnv) container() image.Rectangle {
	w := s.window()
	w.Min.Y = s.toolbar.Area().Max.Y
	return w
}

func (s *screenEnv) logical(r image.Rectangle) board.Rect {
	return board.Rect{Min: s.toLogical(r.Min), Max: s.toLogical(r.Max)}
}

func (s *screenEnv) toLogical(p image.Point) board.Point {
	dpr := s.DevicePixelRatio()
	return board.Pt(float64(p.X)/dpr, float64(p.Y)/dpr)
}

// boardRect is the on-screen rectangle of the board backing store.
func (s *screenEnv) boardRect(backing image.Point) image.Rectangle {
	pt := s.container().Min
	return image.Rectangle{pt, pt.Add(backing)}
}

func (s *screenEnv) SurfaceRect() board.Rect {
	return s.logical(s.container())
}

func (s *screenEnv) ContainerRect() board.Rect {
	return s.logical(s.container())
}

func (s *screenEnv) Viewport() board.Size {
	r := s.logical(s.window())
	return board.Size{W: r.Dx(), H: r.Dy()}
}

func (s *screenEnv) DevicePixelRatio() float64 {
	return s.dctl.ratio()
}

// CapturePointer keeps routing the moves of id to the board when the mouse
// leaves it.
func (s *screenEnv) CapturePointer(id int) error {
	s.captured = id
	return nil
}

func (s *screenEnv) ReleasePointer(id int) error {
	if s.captured != id {
		return fmt.Errorf("pointer %d not captured", id)
	}
	s.captured = -1
	return nil
}

// paintBoard uploads the board raster and draws it at r.
func paintBoard(dctl *DisplayControl, r image.Rectangle, snap *image.RGBA) {
	window := dctl.display.Image
	window.Draw(r, dctl.boardColor, nil, image.Point{})
	if snap == nil {
		return
	}
	img, err := dctl.display.ReadImage(toPlan9Bitmap(snap))
	if err != nil {
		log.Printf("display: board image: %v", err)
		return
	}
	window.Draw(r, img, nil, image.Point{})
	if err := img.Free(); err != nil {
		log.Printf("display: free board image: %v", err)
	}
}
