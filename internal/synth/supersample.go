package synth

import (
	"image"
	"math"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// MaxSuperSize caps size*factor. A 16384² RGBA buffer is 1 GiB and a render
// holds three buffers of that order (gradient, mask, composite) at its peak.
const MaxSuperSize = 16384

// DefaultFactor is the supersampling factor used by the original artwork.
const DefaultFactor = 4

// UnsharpMask follows the usual radius/percent/threshold parameterization:
// for each channel diff = orig - gaussian(orig, Radius); where |diff| >=
// Threshold the channel becomes orig + diff*Percent/100.
type UnsharpMask struct {
	Radius    float64
	Percent   int
	Threshold int
}

func (u UnsharpMask) validate() error {
	if u.Radius < 0 || math.IsNaN(u.Radius) || math.IsInf(u.Radius, 0) || u.Percent < 0 || u.Threshold < 0 {
		return errors.Wrapf(canvas.ErrInvalidConfig, "unsharp mask %+v", u)
	}
	return nil
}

// RenderAA renders the gradient-filled sector at size*factor and downsamples
// it with a Lanczos filter, so that the binary mask edges come out with
// graduated alpha. s is given in output pixel coordinates, as is a radial g;
// a radial g without a Radius spreads over the disk of s. If sharpen is not
// nil the downsampled result is unsharp-masked.
//
// Memory grows with factor²: factor 4 at size 2048 needs several 8192² RGBA
// buffers (256 MiB each).
func RenderAA(size, factor int, g GradientSpec, s SectorSpec, sharpen *UnsharpMask) (*image.NRGBA, error) {
	hiSize, err := superSize(size, factor)
	if err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	if sharpen != nil {
		if err := sharpen.validate(); err != nil {
			return nil, err
		}
	}

	fill, err := FillRect(hiSize, hiSize, scaleGradient(g, s, factor))
	if err != nil {
		return nil, err
	}
	mask, err := RasterizeRect(hiSize, hiSize, ScaleSector(s, factor))
	if err != nil {
		return nil, err
	}
	hi, err := Composite(fill, mask)
	if err != nil {
		return nil, err
	}
	fill, mask = nil, nil // release before resampling

	out, err := Downsample(hi, size, size)
	if err != nil {
		return nil, err
	}
	if sharpen == nil {
		return out, nil
	}
	return Sharpen(out, *sharpen)
}

func superSize(size, factor int) (int, error) {
	if size <= 0 {
		return 0, errors.Wrapf(canvas.ErrInvalidConfig, "size %d", size)
	}
	if factor < 1 {
		return 0, errors.Wrapf(canvas.ErrInvalidConfig, "supersample factor %d", factor)
	}
	if factor > MaxSuperSize/size {
		return 0, errors.Wrapf(canvas.ErrInvalidConfig,
			"size %d * factor %d exceeds %d", size, factor, MaxSuperSize)
	}
	return size * factor, nil
}

// ScaleSector maps s from output pixel space into a space factor times
// larger. Output pixel x is covered by super pixels x*f .. x*f+f-1, whose
// mean coordinate is x*f + (f-1)/2, so the centre is shifted by that much.
func ScaleSector(s SectorSpec, factor int) SectorSpec {
	f := float64(factor)
	off := (f - 1) / 2
	return SectorSpec{
		CX:         s.CX*f + off,
		CY:         s.CY*f + off,
		Radius:     s.Radius * f,
		StartAngle: s.StartAngle,
		EndAngle:   s.EndAngle,
	}
}

func scaleGradient(g GradientSpec, s SectorSpec, factor int) GradientSpec {
	if g.Kind != GradientRadial {
		return g
	}
	if g.Radius == 0 {
		g.CX, g.CY, g.Radius = s.CX, s.CY, s.Radius
	}
	f := float64(factor)
	off := (f - 1) / 2
	g.CX, g.CY, g.Radius = g.CX*f+off, g.CY*f+off, g.Radius*f
	return g
}

// Downsample resizes img to w×h with a Lanczos filter. Resampling is
// alpha-weighted so transparent pixels do not bleed colour into edges.
func Downsample(img *image.NRGBA, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "downsample to %dx%d", w, h)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

// Sharpen applies u to every channel of img, alpha included.
func Sharpen(img *image.NRGBA, u UnsharpMask) (*image.NRGBA, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}
	src := canvas.Normalize(img)
	if u.Radius == 0 || u.Percent == 0 {
		return src, nil
	}
	blurred := imaging.Blur(src, u.Radius)
	out := canvas.New(src.Rect.Dx(), src.Rect.Dy())
	amount := float64(u.Percent) / 100
	for i, o := range src.Pix {
		diff := int(o) - int(blurred.Pix[i])
		if diff < u.Threshold && -diff < u.Threshold {
			out.Pix[i] = o
			continue
		}
		out.Pix[i] = clampUint8(math.Round(float64(o) + float64(diff)*amount))
	}
	return out, nil
}
