// Package config holds the knobs shared by the logo commands. Values come
// from, in increasing priority: built-in defaults, a dotenv file, LOGO_*
// process environment variables and command line flags.
package config

import (
	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/codec"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/post"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/synth"
)

type Config struct {
	Preset      string
	Size        int
	Supersample int
	Start, End  canvas.Color
	Gradient    synth.GradientKind
	Angle       float64 // linear gradients only
	Radius      float64 // fraction of Size
	StartAngle  float64
	EndAngle    float64
	Sharpen     *synth.UnsharpMask

	Strip            bool
	Threshold        int
	Recolor          *canvas.Color
	ClearTransparent bool
	Crop             bool

	Compression int // codec.Level
	Preview     bool
	DumpHTTP    bool
	Workers     int
}

// Default returns the "perfect" preset with post-processing disabled.
func Default() *Config {
	c := &Config{
		Threshold:   post.DefaultThreshold,
		Compression: int(codec.BestLevel),
	}
	if err := c.ApplyPreset("perfect"); err != nil {
		panic(err)
	}
	return c
}

// Synth converts c to a synthesis request.
func (c *Config) Synth() synth.Config {
	return synth.Config{
		Size:        c.Size,
		Supersample: c.Supersample,
		Gradient: synth.GradientSpec{
			Start: c.Start,
			End:   c.End,
			Kind:  c.Gradient,
			Angle: c.Angle,
		},
		Sector:  synth.CenteredSector(c.Size, c.Radius, c.StartAngle, c.EndAngle),
		Sharpen: c.Sharpen,
	}
}

// Post converts c to post-processing options.
func (c *Config) Post() post.Options {
	return post.Options{
		Strip:            c.Strip,
		Threshold:        c.Threshold,
		Recolor:          c.Recolor,
		ClearTransparent: c.ClearTransparent,
		Crop:             c.Crop,
	}
}

func (c *Config) Level() codec.Level {
	return codec.Level(c.Compression)
}
