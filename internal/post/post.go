// Package post classifies and rewrites the pixels of an existing raster:
// background stripping, recolouring and cropping to content. Each function
// returns a new canvas and leaves its input alone.
package post

import (
	"image"
	"image/color"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/disintegration/imaging"
)

// DefaultThreshold classifies a pixel as background when all of R, G and B
// exceed it.
const DefaultThreshold = 240

// Options selects the post-processing steps; they run in field order.
// A Threshold of zero or less means DefaultThreshold.
type Options struct {
	Strip            bool
	Threshold        int
	Recolor          *canvas.Color
	ClearTransparent bool
	Crop             bool
}

func (o Options) threshold() int {
	if o.Threshold <= 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// PostProcess strips the background, recolours, clears transparent RGB and
// crops c as selected by opts. With no step selected it returns a normalized
// copy of c.
func PostProcess(c image.Image, opts Options) (*image.NRGBA, error) {
	out := canvas.Normalize(c)
	if opts.Strip {
		out = StripBackground(out, opts.threshold())
	}
	if opts.Recolor != nil {
		out = Recolor(out, *opts.Recolor)
	}
	if opts.ClearTransparent {
		out = ClearTransparent(out)
	}
	if opts.Crop {
		return CropToContent(out)
	}
	return out, nil
}

// IsBackground reports whether c is near-white under threshold t.
func IsBackground(c color.NRGBA, t int) bool {
	return int(c.R) > t && int(c.G) > t && int(c.B) > t
}

// StripBackground makes every near-white pixel fully transparent and clears
// its RGB so no stray colour bleeds through later resampling.
func StripBackground(c image.Image, threshold int) *image.NRGBA {
	return imaging.AdjustFunc(c, func(p color.NRGBA) color.NRGBA {
		if IsBackground(p, threshold) {
			return color.NRGBA{}
		}
		return p
	})
}

// Recolor sets the RGB of every pixel with alpha > 0 to target. Alpha is
// never modified.
func Recolor(c image.Image, target canvas.Color) *image.NRGBA {
	return imaging.AdjustFunc(c, func(p color.NRGBA) color.NRGBA {
		if p.A == 0 {
			return p
		}
		return target.NRGBA(p.A)
	})
}

// ClearTransparent zeroes the RGB of fully transparent pixels.
func ClearTransparent(c image.Image) *image.NRGBA {
	return imaging.AdjustFunc(c, func(p color.NRGBA) color.NRGBA {
		if p.A == 0 {
			return color.NRGBA{}
		}
		return p
	})
}
