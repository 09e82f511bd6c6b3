package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

func (c Color) NRGBA(a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// New allocates a fully transparent w×h canvas anchored at the origin.
func New(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Normalize returns img as a canvas anchored at the origin with a tight
// stride. A canvas that already satisfies this is copied anyway so the
// caller owns the result.
func Normalize(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// SameSize reports whether a and b have identical dimensions.
func SameSize(a, b image.Rectangle) bool {
	return a.Dx() == b.Dx() && a.Dy() == b.Dy()
}

// Equal reports whether a and b have the same dimensions and pixel bytes.
func Equal(a, b *image.NRGBA) bool {
	if !SameSize(a.Rect, b.Rect) {
		return false
	}
	w, h := a.Rect.Dx(), a.Rect.Dy()
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w*4]
		rb := b.Pix[y*b.Stride : y*b.Stride+w*4]
		for i := range ra {
			if ra[i] != rb[i] {
				return false
			}
		}
	}
	return true
}
