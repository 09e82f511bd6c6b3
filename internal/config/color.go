package config

import (
	"strings"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// ParseColor accepts #rrggbb or #rgb, with or without the leading '#'.
func ParseColor(s string) (canvas.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return canvas.Color{}, errors.Wrapf(canvas.ErrInvalidConfig, "color %q: %v", s, err)
	}
	r, g, b := c.RGB255()
	return canvas.Color{R: r, G: g, B: b}, nil
}

// MustParseColor is ParseColor for literals.
func MustParseColor(s string) canvas.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// colorValue is a flag.Value for a canvas.Color.
type colorValue struct {
	c *canvas.Color
}

func (v colorValue) String() string {
	if v.c == nil {
		return ""
	}
	return v.c.String()
}

func (v colorValue) Set(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	*v.c = c
	return nil
}

// optionalColorValue is a flag.Value for a colour that may be unset.
type optionalColorValue struct {
	c **canvas.Color
}

func (v optionalColorValue) String() string {
	if v.c == nil || *v.c == nil {
		return ""
	}
	return (*v.c).String()
}

func (v optionalColorValue) Set(s string) error {
	if s == "" {
		*v.c = nil
		return nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	*v.c = &c
	return nil
}
