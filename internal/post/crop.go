package post

import (
	"image"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ContentBounds returns the smallest rectangle holding every pixel with
// alpha > 0, in c's coordinates. ok is false for a fully transparent canvas.
func ContentBounds(c *image.NRGBA) (r image.Rectangle, ok bool) {
	b := c.Rect
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		o := c.PixOffset(b.Min.X, y)
		row := c.Pix[o : o+b.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			if row[i] == 0 {
				continue
			}
			x := b.Min.X + i/4
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// CropToContent crops c to ContentBounds. A fully transparent canvas is an
// ErrEmptyContent error, not a no-op.
func CropToContent(c *image.NRGBA) (*image.NRGBA, error) {
	r, ok := ContentBounds(c)
	if !ok {
		return nil, errors.Wrapf(canvas.ErrEmptyContent, "crop %dx%d", c.Rect.Dx(), c.Rect.Dy())
	}
	return imaging.Crop(c, r), nil
}
