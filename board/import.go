package board

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/xor-gate/goexif2/exif"
	"github.com/xor-gate/goexif2/tiff"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("not supported format")

// DecodeImage reads a gif, jpeg, png or webp image and turns it upright
// according to its EXIF orientation.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	switch ct := http.DetectContentType(data); ct {
	case "image/gif", "image/jpeg", "image/png", "image/webp":
		// supported format
	default:
		return nil, fmt.Errorf("decode: cannot handle %s: %w", ct, ErrUnsupportedFormat)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return orient(img, exifOrientation(bytes.NewReader(data))), nil
}

// Import draws an image on the surface, scaled down to fit if needed and
// centered.
func (e *Engine) Import(r io.Reader) error {
	ctx := e.surface.Context()
	if ctx == nil {
		return fmt.Errorf("import: %w", ErrNoContext)
	}
	img, err := DecodeImage(r)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	bs := e.surface.Backing()
	ctx.DrawImage(img, placeImage(image.Rect(0, 0, bs.X, bs.Y), img.Bounds()))
	return nil
}

// exifOrientation returns the EXIF orientation tag, 1 if there is none.
func exifOrientation(r tiff.ReadAtReaderSeeker) int {
	ex, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := ex.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return o
}

// orient returns img turned upright according to EXIF orientation o.
func orient(img image.Image, o int) image.Image {
	if o < 2 || o > 8 {
		return img
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	// source to destination, in pixel edge coordinates relative to b.Min
	var m f64.Aff3
	switch o {
	case 2: // mirror horizontal
		m = f64.Aff3{-1, 0, w, 0, 1, 0}
	case 3: // rotate 180
		m = f64.Aff3{-1, 0, w, 0, -1, h}
	case 4: // mirror vertical
		m = f64.Aff3{1, 0, 0, 0, -1, h}
	case 5: // transpose
		m = f64.Aff3{0, 1, 0, 1, 0, 0}
	case 6: // rotate 90 clockwise
		m = f64.Aff3{0, -1, h, 1, 0, 0}
	case 7: // transverse
		m = f64.Aff3{0, -1, h, -1, 0, w}
	case 8: // rotate 90 counterclockwise
		m = f64.Aff3{0, 1, 0, -1, 0, w}
	}
	mx, my := float64(b.Min.X), float64(b.Min.Y)
	m[2] -= m[0]*mx + m[1]*my
	m[5] -= m[3]*mx + m[4]*my

	dw, dh := b.Dx(), b.Dy()
	if o >= 5 {
		dw, dh = dh, dw
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.NearestNeighbor.Transform(dst, m, img, b, xdraw.Src, nil)
	return dst
}
