package synth

import (
	"image"
	"math"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/pkg/errors"
)

type GradientKind int

const (
	// GradientDiagonal runs from the top-left corner to the bottom-right one.
	// Every anti-diagonal x+y=i shares one colour.
	GradientDiagonal GradientKind = iota
	// GradientLinear projects each pixel onto a direction Angle degrees
	// clockwise from +x and spreads the ramp over the canvas extent.
	GradientLinear
	// GradientRadial is a ring gradient: Start at the centre, End at Radius
	// and beyond.
	GradientRadial
)

func (k GradientKind) String() string {
	switch k {
	case GradientDiagonal:
		return "diagonal"
	case GradientLinear:
		return "linear"
	case GradientRadial:
		return "radial"
	}
	return "unknown"
}

type GradientSpec struct {
	Start, End canvas.Color
	Kind       GradientKind
	Angle      float64 // degrees, GradientLinear only

	// Centre and extent of a GradientRadial in pixels. A zero Radius means
	// the canvas centre and its inscribed circle.
	CX, CY, Radius float64
}

// Fill returns a size×size diagonal gradient from start to end.
func Fill(size int, start, end canvas.Color) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "gradient size %d", size)
	}
	return FillRect(size, size, GradientSpec{Start: start, End: end})
}

// FillRect returns a w×h gradient described by g with alpha 255 everywhere.
func FillRect(w, h int, g GradientSpec) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "gradient size %dx%d", w, h)
	}
	ratio, err := ratioFunc(w, h, g)
	if err != nil {
		return nil, err
	}
	img := canvas.New(w, h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			t := ratio(x, y)
			p := row[x*4 : x*4+4 : x*4+4]
			p[0] = Lerp(g.Start.R, g.End.R, t)
			p[1] = Lerp(g.Start.G, g.End.G, t)
			p[2] = Lerp(g.Start.B, g.End.B, t)
			p[3] = 0xff
		}
	}
	return img, nil
}

func ratioFunc(w, h int, g GradientSpec) (func(x, y int) float64, error) {
	switch g.Kind {
	case GradientDiagonal:
		span := float64(w + h - 2)
		if span == 0 {
			return func(x, y int) float64 { return 0 }, nil
		}
		return func(x, y int) float64 {
			return clamp01(float64(x+y) / span)
		}, nil

	case GradientLinear:
		rad := g.Angle * math.Pi / 180
		ux, uy := math.Cos(rad), math.Sin(rad)
		// project the four corners to find the extent of the ramp
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, c := range [][2]float64{{0, 0}, {float64(w - 1), 0}, {0, float64(h - 1)}, {float64(w - 1), float64(h - 1)}} {
			d := c[0]*ux + c[1]*uy
			lo = math.Min(lo, d)
			hi = math.Max(hi, d)
		}
		span := hi - lo
		if span == 0 {
			return func(x, y int) float64 { return 0 }, nil
		}
		return func(x, y int) float64 {
			return clamp01((float64(x)*ux + float64(y)*uy - lo) / span)
		}, nil

	case GradientRadial:
		cx, cy := float64(w-1)/2, float64(h-1)/2
		r := math.Min(cx, cy)
		if g.Radius != 0 {
			if !(g.Radius > 0) || math.IsInf(g.Radius, 0) || math.IsNaN(g.CX+g.CY) || math.IsInf(g.CX+g.CY, 0) {
				return nil, errors.Wrapf(canvas.ErrInvalidConfig, "radial gradient at %v,%v radius %v", g.CX, g.CY, g.Radius)
			}
			cx, cy, r = g.CX, g.CY, g.Radius
		}
		if r == 0 {
			return func(x, y int) float64 { return 0 }, nil
		}
		return func(x, y int) float64 {
			return clamp01(math.Hypot(float64(x)-cx, float64(y)-cy) / r)
		}, nil
	}
	return nil, errors.Wrapf(canvas.ErrInvalidConfig, "gradient kind %d", g.Kind)
}

// Lerp interpolates one channel: round(a*(1-t) + b*t), t clamped to [0,1].
func Lerp(a, b uint8, t float64) uint8 {
	t = clamp01(t)
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	v := math.Round(float64(a)*(1-t) + float64(b)*t)
	return clampUint8(v)
}

func clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func clampUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
