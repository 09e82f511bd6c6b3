package synth

import (
	"image"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/pkg/errors"
)

// Composite takes RGB from src and alpha from mask. src's own alpha is
// ignored.
func Composite(src *image.NRGBA, mask *image.Alpha) (*image.NRGBA, error) {
	if !canvas.SameSize(src.Rect, mask.Rect) {
		return nil, errors.Wrapf(canvas.ErrDimensionMismatch,
			"composite %dx%d with mask %dx%d",
			src.Rect.Dx(), src.Rect.Dy(), mask.Rect.Dx(), mask.Rect.Dy())
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := canvas.New(w, h)
	for y := 0; y < h; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+w*4]
		m := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		d := out.Pix[y*out.Stride : y*out.Stride+w*4]
		copy(d, s)
		for x, a := range m {
			d[x*4+3] = a
		}
	}
	return out, nil
}
