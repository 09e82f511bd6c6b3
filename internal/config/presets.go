package config

import (
	"strings"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/synth"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Preset is a named variant of the logo. The artwork went through several
// angle pairs for what is nominally the same shape; each one is kept here
// rather than guessing which is canonical. Use the match command to pick one
// against a reference render.
type Preset struct {
	Desc        string
	Size        int
	Supersample int
	Start, End  canvas.Color
	Gradient    synth.GradientKind
	Radius      float64 // fraction of Size
	StartAngle  float64
	EndAngle    float64
	Sharpen     *synth.UnsharpMask
}

var (
	brandLight  = MustParseColor("#667eea")
	brandPurple = MustParseColor("#764ba2")
	brandLilac  = MustParseColor("#9b7fc7")
)

var Presets = map[string]Preset{
	"perfect": {
		Desc:        "diagonal gradient, 12 to 1:30 wedge removed, 4x supersampled",
		Size:        2048,
		Supersample: 4,
		Start:       brandLight,
		End:         brandPurple,
		Radius:      0.46,
		StartAngle:  -45,
		EndAngle:    270,
	},
	"v3": {
		Desc:        "diagonal gradient, 10:30 to 12 wedge removed, 5% margin, no supersampling",
		Size:        2048,
		Supersample: 1,
		Start:       brandLight,
		End:         brandPurple,
		Radius:      0.45,
		StartAngle:  -90,
		EndAngle:    225,
	},
	"slit": {
		Desc:        "radial gradient, dark centre, thin slit at 45 degrees",
		Size:        2048,
		Supersample: 4,
		Start:       brandPurple,
		End:         brandLilac,
		Gradient:    synth.GradientRadial,
		Radius:      0.45,
		StartAngle:  47,
		EndAngle:    45,
	},
	"final-2048": {
		Desc:        "perfect, sharpened for 2048px",
		Size:        2048,
		Supersample: 4,
		Start:       brandLight,
		End:         brandPurple,
		Radius:      0.46,
		StartAngle:  -45,
		EndAngle:    270,
		Sharpen:     &synth.UnsharpMask{Radius: 1, Percent: 120, Threshold: 3},
	},
	"final-4096": {
		Desc:        "perfect, sharpened for 4096px",
		Size:        4096,
		Supersample: 4,
		Start:       brandLight,
		End:         brandPurple,
		Radius:      0.46,
		StartAngle:  -45,
		EndAngle:    270,
		Sharpen:     &synth.UnsharpMask{Radius: 1, Percent: 150, Threshold: 3},
	},
}

// PresetNames returns the preset keys in sorted order.
func PresetNames() []string {
	keys := maps.Keys(Presets)
	slices.Sort(keys)
	return keys
}

// ApplyPreset overwrites the synthesis fields of c with preset name.
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return errors.Wrapf(canvas.ErrInvalidConfig, "unknown preset %q", name)
	}
	c.Preset = name
	c.Size = p.Size
	c.Supersample = p.Supersample
	c.Start = p.Start
	c.End = p.End
	c.Gradient = p.Gradient
	c.Angle = 45
	c.Radius = p.Radius
	c.StartAngle = p.StartAngle
	c.EndAngle = p.EndAngle
	c.Sharpen = nil
	if p.Sharpen != nil {
		s := *p.Sharpen
		c.Sharpen = &s
	}
	return nil
}

// Variation is a named recolour of an existing logo.
type Variation struct {
	Name  string
	Color canvas.Color
}

// DefaultVariations are progressively lighter purples.
var DefaultVariations = []Variation{
	{Name: "light1", Color: MustParseColor("#8a5fb6")},
	{Name: "light2", Color: MustParseColor("#9e73ca")},
	{Name: "light3", Color: MustParseColor("#b287de")},
}

// ParseVariations parses "name=#rrggbb,..." pairs. A bare colour is named
// after its hex digits.
func ParseVariations(s string) ([]Variation, error) {
	var out []Variation
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, hex, ok := strings.Cut(part, "=")
		if !ok {
			hex = name
			name = ""
		}
		c, err := ParseColor(hex)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = strings.TrimPrefix(c.String(), "#")
		}
		out = append(out, Variation{Name: name, Color: c})
	}
	if len(out) == 0 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "no variations in %q", s)
	}
	return out, nil
}
