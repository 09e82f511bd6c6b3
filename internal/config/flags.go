package config

import (
	"flag"
	"strconv"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/synth"
)

type gradientValue struct{ k *synth.GradientKind }

func (v gradientValue) String() string {
	if v.k == nil {
		return ""
	}
	return v.k.String()
}

func (v gradientValue) Set(s string) error {
	k, err := ParseGradientKind(s)
	if err != nil {
		return err
	}
	*v.k = k
	return nil
}

type sharpenValue struct{ u **synth.UnsharpMask }

func (v sharpenValue) String() string {
	if v.u == nil {
		return ""
	}
	return formatUnsharpMask(*v.u)
}

func (v sharpenValue) Set(s string) error {
	u, err := ParseUnsharpMask(s)
	if err != nil {
		return err
	}
	*v.u = u
	return nil
}

// presetValue applies a preset as soon as the flag is parsed, so flags that
// follow it on the command line override the preset.
type presetValue struct{ c *Config }

func (v presetValue) String() string {
	if v.c == nil {
		return ""
	}
	return v.c.Preset
}

func (v presetValue) Set(s string) error { return v.c.ApplyPreset(s) }

// RegisterSynthFlags binds the synthesis fields of c to fs.
func (c *Config) RegisterSynthFlags(fs *flag.FlagSet) {
	fs.Var(presetValue{c}, "preset", "named preset, see the presets command")
	fs.IntVar(&c.Size, "size", c.Size, "output edge in pixels")
	fs.IntVar(&c.Supersample, "supersample", c.Supersample, "render at this multiple and downsample")
	fs.Var(colorValue{&c.Start}, "start", "gradient start colour")
	fs.Var(colorValue{&c.End}, "end", "gradient end colour")
	fs.Var(gradientValue{&c.Gradient}, "gradient", "diagonal, linear or radial")
	fs.Float64Var(&c.Angle, "angle", c.Angle, "linear gradient direction in degrees")
	fs.Float64Var(&c.Radius, "radius", c.Radius, "sector radius as a fraction of size")
	fs.Float64Var(&c.StartAngle, "start-angle", c.StartAngle, "sector start, degrees clockwise from +x")
	fs.Float64Var(&c.EndAngle, "end-angle", c.EndAngle, "sector end, degrees clockwise from +x")
	fs.Var(sharpenValue{&c.Sharpen}, "sharpen", "unsharp mask radius,percent,threshold or off")
}

// RegisterPostFlags binds the post-processing fields of c to fs.
func (c *Config) RegisterPostFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.Strip, "strip", c.Strip, "make near-white pixels transparent")
	fs.IntVar(&c.Threshold, "threshold", c.Threshold, "near-white cutoff for -strip")
	fs.Var(optionalColorValue{&c.Recolor}, "recolor", "paint visible pixels this colour")
	fs.BoolVar(&c.ClearTransparent, "clear-transparent", c.ClearTransparent, "zero the rgb of fully transparent pixels")
	fs.BoolVar(&c.Crop, "crop", c.Crop, "crop to visible content")
}

// RegisterOutputFlags binds the output fields of c to fs.
func (c *Config) RegisterOutputFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Compression, "compression", c.Compression,
		"png level: 0 default, -1 none, -2 speed, -3 best")
	fs.BoolVar(&c.Preview, "preview", c.Preview, "print an ansi preview to the terminal")
	fs.BoolVar(&c.DumpHTTP, "dump-http", c.DumpHTTP, "dumps http headers")
	fs.IntVar(&c.Workers, "workers", c.Workers, "concurrent renders, 0 for GOMAXPROCS")
}

// Strings renders c as LOGO_* pairs, suitable for godotenv.Write.
func (c *Config) Strings() map[string]string {
	m := map[string]string{
		envPrefix + "SIZE":              strconv.Itoa(c.Size),
		envPrefix + "SUPERSAMPLE":       strconv.Itoa(c.Supersample),
		envPrefix + "START_COLOR":       c.Start.String(),
		envPrefix + "END_COLOR":         c.End.String(),
		envPrefix + "GRADIENT":          c.Gradient.String(),
		envPrefix + "ANGLE":             strconv.FormatFloat(c.Angle, 'g', -1, 64),
		envPrefix + "RADIUS":            strconv.FormatFloat(c.Radius, 'g', -1, 64),
		envPrefix + "START_ANGLE":       strconv.FormatFloat(c.StartAngle, 'g', -1, 64),
		envPrefix + "END_ANGLE":         strconv.FormatFloat(c.EndAngle, 'g', -1, 64),
		envPrefix + "SHARPEN":           formatUnsharpMask(c.Sharpen),
		envPrefix + "STRIP":             strconv.FormatBool(c.Strip),
		envPrefix + "THRESHOLD":         strconv.Itoa(c.Threshold),
		envPrefix + "CROP":              strconv.FormatBool(c.Crop),
		envPrefix + "CLEAR_TRANSPARENT": strconv.FormatBool(c.ClearTransparent),
		envPrefix + "COMPRESSION":       strconv.Itoa(c.Compression),
	}
	if c.Recolor != nil {
		m[envPrefix+"RECOLOR"] = c.Recolor.String()
	}
	return m
}
