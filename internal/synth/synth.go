// Package synth renders a gradient-filled circular sector with supersampled
// anti-aliasing. Every function allocates its result and leaves its inputs
// untouched, so independent renders may run concurrently.
package synth

import (
	"image"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/pkg/errors"
)

// Config parameterizes one synthesis run. Sector coordinates are in output
// pixels.
type Config struct {
	Size        int
	Supersample int
	Gradient    GradientSpec
	Sector      SectorSpec
	Sharpen     *UnsharpMask
}

// Validate checks c without rendering anything.
func (c Config) Validate() error {
	if _, err := superSize(c.Size, c.Supersample); err != nil {
		return err
	}
	if err := c.Sector.validate(); err != nil {
		return err
	}
	if c.Gradient.Kind < GradientDiagonal || c.Gradient.Kind > GradientRadial {
		return errors.Wrapf(canvas.ErrInvalidConfig, "gradient kind %d", c.Gradient.Kind)
	}
	if c.Sharpen != nil {
		return c.Sharpen.validate()
	}
	return nil
}

// Synthesize runs the full pipeline described by c.
func Synthesize(c Config) (*image.NRGBA, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return RenderAA(c.Size, c.Supersample, c.Gradient, c.Sector, c.Sharpen)
}

// CenteredSector returns a sector centred on a size×size canvas with radius
// frac*size.
func CenteredSector(size int, frac, start, end float64) SectorSpec {
	c := float64(size) / 2
	return SectorSpec{
		CX:         c,
		CY:         c,
		Radius:     frac * float64(size),
		StartAngle: start,
		EndAngle:   end,
	}
}
