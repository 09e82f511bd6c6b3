package post

import (
	"image"
	"image/color"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
)

// Stats summarizes the visible pixels of a canvas.
type Stats struct {
	Width, Height int
	Visible       int // pixels with alpha > 0
	Opaque        int // pixels with alpha == 255
	Min, Max      canvas.Color
	Bounds        image.Rectangle
	TopLeft       color.NRGBA // sample at (w/4, h/4)
	Center        color.NRGBA // sample at (w/2, h/2)
	BottomRight   color.NRGBA // sample at (3w/4, 3h/4)
}

// Analyze computes Stats for c. Min and Max are per-channel extremes over
// visible pixels and are zero when nothing is visible.
func Analyze(c *image.NRGBA) Stats {
	b := c.Rect
	w, h := b.Dx(), b.Dy()
	s := Stats{Width: w, Height: h}
	if w == 0 || h == 0 {
		return s
	}
	s.TopLeft = c.NRGBAAt(b.Min.X+w/4, b.Min.Y+h/4)
	s.Center = c.NRGBAAt(b.Min.X+w/2, b.Min.Y+h/2)
	s.BottomRight = c.NRGBAAt(b.Min.X+3*w/4, b.Min.Y+3*h/4)
	s.Bounds, _ = ContentBounds(c)

	lo := [3]uint8{255, 255, 255}
	var hi [3]uint8
	for y := b.Min.Y; y < b.Max.Y; y++ {
		o := c.PixOffset(b.Min.X, y)
		row := c.Pix[o : o+w*4]
		for i := 0; i < len(row); i += 4 {
			p := row[i : i+4 : i+4]
			if p[3] == 0 {
				continue
			}
			s.Visible++
			if p[3] == 255 {
				s.Opaque++
			}
			for ch := 0; ch < 3; ch++ {
				if p[ch] < lo[ch] {
					lo[ch] = p[ch]
				}
				if p[ch] > hi[ch] {
					hi[ch] = p[ch]
				}
			}
		}
	}
	if s.Visible > 0 {
		s.Min = canvas.Color{R: lo[0], G: lo[1], B: lo[2]}
		s.Max = canvas.Color{R: hi[0], G: hi[1], B: hi[2]}
	}
	return s
}

// FirstTranslucent scans r row by row and returns the first pixel whose alpha
// is below 255. r is clipped to c's bounds.
func FirstTranslucent(c *image.NRGBA, r image.Rectangle) (image.Point, color.NRGBA, bool) {
	r = r.Intersect(c.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if p := c.NRGBAAt(x, y); p.A < 255 {
				return image.Pt(x, y), p, true
			}
		}
	}
	return image.Point{}, color.NRGBA{}, false
}
