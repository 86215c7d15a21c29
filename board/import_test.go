package board

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngOf(t *testing.T, w, h int, c color.Color) *bytes.Buffer {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		t.Fatal(err)
	}
	return &b
}

func TestImportCentersSmallImage(t *testing.T) {
	e := New(newTestEnv(200, 1))
	red := color.NRGBA{0xff, 0, 0, 0xff}
	if err := e.Import(pngOf(t, 20, 10, red)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	snap := e.Surface().Snapshot()
	if got := snap.RGBAAt(100, 200); got.R < 0xf0 || got.G > 0x10 || got.A < 0xf0 {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := snap.RGBAAt(85, 200).A; got != 0 {
		t.Errorf("pixel left of image alpha = %d, want 0", got)
	}
}

func TestImportScalesDownLargeImage(t *testing.T) {
	e := New(newTestEnv(200, 1))
	if err := e.Import(pngOf(t, 400, 100, color.Black)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	snap := e.Surface().Snapshot()
	for _, tt := range []struct {
		x, y  int
		drawn bool
	}{
		{5, 200, true},
		{195, 200, true},
		{100, 180, true},
		{100, 170, false},
		{100, 230, false},
	} {
		a := snap.RGBAAt(tt.x, tt.y).A
		if drawn := a > 0; drawn != tt.drawn {
			t.Errorf("pixel (%d,%d) alpha = %d, drawn want %v", tt.x, tt.y, a, tt.drawn)
		}
	}
}

func TestImportRejectsUnknownData(t *testing.T) {
	e := New(newTestEnv(200, 1))
	err := e.Import(strings.NewReader("just some text"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Import() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestImportWithoutContext(t *testing.T) {
	e := New(newTestEnv(0, 1))
	err := e.Import(pngOf(t, 4, 4, color.White))
	if !errors.Is(err, ErrNoContext) {
		t.Errorf("Import() error = %v, want ErrNoContext", err)
	}
}

func TestOrient(t *testing.T) {
	// 3x2 source with a distinct gray level per pixel.
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(10 * (i + 1))
	}
	at := func(img image.Image, x, y int) uint8 {
		return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
	}

	tests := []struct {
		o      int
		bounds image.Rectangle
		// destination pixel -> source pixel
		dst, src image.Point
	}{
		{1, image.Rect(0, 0, 3, 2), image.Pt(2, 1), image.Pt(2, 1)},
		{2, image.Rect(0, 0, 3, 2), image.Pt(0, 0), image.Pt(2, 0)},
		{3, image.Rect(0, 0, 3, 2), image.Pt(0, 0), image.Pt(2, 1)},
		{4, image.Rect(0, 0, 3, 2), image.Pt(0, 0), image.Pt(0, 1)},
		{5, image.Rect(0, 0, 2, 3), image.Pt(1, 2), image.Pt(2, 1)},
		{6, image.Rect(0, 0, 2, 3), image.Pt(0, 0), image.Pt(0, 1)},
		{6, image.Rect(0, 0, 2, 3), image.Pt(1, 0), image.Pt(0, 0)},
		{7, image.Rect(0, 0, 2, 3), image.Pt(0, 0), image.Pt(2, 1)},
		{8, image.Rect(0, 0, 2, 3), image.Pt(0, 0), image.Pt(2, 0)},
	}
	for _, tt := range tests {
		got := orient(src, tt.o)
		if got.Bounds() != tt.bounds {
			t.Errorf("orient(%d) bounds = %v, want %v", tt.o, got.Bounds(), tt.bounds)
			continue
		}
		if g, w := at(got, tt.dst.X, tt.dst.Y), at(src, tt.src.X, tt.src.Y); g != w {
			t.Errorf("orient(%d) at %v = %d, want %d", tt.o, tt.dst, g, w)
		}
	}
}

func TestOrientEveryPixel(t *testing.T) {
	// 3x2 window of a larger image, so the source does not start at the origin.
	full := image.NewGray(image.Rect(0, 0, 5, 4))
	for i := range full.Pix {
		full.Pix[i] = uint8(7 * (i + 1))
	}
	src := full.SubImage(image.Rect(1, 1, 4, 3))
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// destination pixel -> source pixel, relative to b.Min
	maps := map[int]func(x, y int) (int, int){
		2: func(x, y int) (int, int) { return w - 1 - x, y },
		3: func(x, y int) (int, int) { return w - 1 - x, h - 1 - y },
		4: func(x, y int) (int, int) { return x, h - 1 - y },
		5: func(x, y int) (int, int) { return y, x },
		6: func(x, y int) (int, int) { return y, h - 1 - x },
		7: func(x, y int) (int, int) { return w - 1 - y, h - 1 - x },
		8: func(x, y int) (int, int) { return w - 1 - y, x },
	}
	for o := 2; o <= 8; o++ {
		got := orient(src, o)
		gb := got.Bounds()
		for y := gb.Min.Y; y < gb.Max.Y; y++ {
			for x := gb.Min.X; x < gb.Max.X; x++ {
				sx, sy := maps[o](x, y)
				want := color.GrayModel.Convert(src.At(b.Min.X+sx, b.Min.Y+sy)).(color.Gray).Y
				if g := color.GrayModel.Convert(got.At(x, y)).(color.Gray).Y; g != want {
					t.Errorf("orient(%d) at (%d,%d) = %d, want %d", o, x, y, g, want)
				}
			}
		}
	}
}
