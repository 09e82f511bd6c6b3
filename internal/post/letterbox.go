package post

import (
	"image"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Letterbox scales c up or down so its longer side is size, then centres it
// on a transparent size×size canvas.
func Letterbox(c image.Image, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "letterbox size %d", size)
	}
	b := c.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "letterbox source %dx%d", w, h)
	}
	long := w
	if h > long {
		long = h
	}
	nw := w * size / long
	nh := h * size / long
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	scaled := imaging.Resize(c, nw, nh, imaging.Lanczos)
	if nw == size && nh == size {
		return scaled, nil
	}
	return imaging.PasteCenter(canvas.New(size, size), scaled), nil
}
