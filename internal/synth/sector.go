package synth

import (
	"image"
	"math"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/pkg/errors"
)

// SectorSpec describes a disk minus an angular wedge. Angles are degrees, 0°
// points at +x and angles grow clockwise because y grows downward. The
// covered span runs clockwise from StartAngle to EndAngle, wrapping through
// 360° when EndAngle < StartAngle. A span whose sweep is a multiple of 360°
// (including StartAngle == EndAngle) covers the whole disk.
type SectorSpec struct {
	CX, CY     float64
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (s SectorSpec) validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return errors.Wrapf(canvas.ErrInvalidConfig, "sector radius %v", s.Radius)
	}
	for _, v := range []float64{s.CX, s.CY, s.StartAngle, s.EndAngle} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(canvas.ErrInvalidConfig, "sector %+v", s)
		}
	}
	return nil
}

// Sweep is the clockwise extent of the span in degrees, in (0, 360].
func (s SectorSpec) Sweep() float64 {
	sw := NormalizeAngle(s.EndAngle - s.StartAngle)
	if sw == 0 {
		return 360
	}
	return sw
}

// Contains reports whether the normalized angle a lies in the span.
func (s SectorSpec) Contains(a float64) bool {
	sw := s.Sweep()
	if sw >= 360 {
		return true
	}
	return NormalizeAngle(a-s.StartAngle) <= sw
}

// Rasterize returns a size×size binary coverage mask of s.
func Rasterize(size int, s SectorSpec) (*image.Alpha, error) {
	if size <= 0 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "mask size %d", size)
	}
	return RasterizeRect(size, size, s)
}

// RasterizeRect is Rasterize for a w×h mask. Coverage is tested at integer
// pixel coordinates; there is no fractional coverage.
func RasterizeRect(w, h int, s SectorSpec) (*image.Alpha, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "mask size %dx%d", w, h)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r2 := s.Radius * s.Radius
	full := s.Sweep() >= 360

	y0 := clampInt(int(math.Floor(s.CY-s.Radius)), 0, h)
	y1 := clampInt(int(math.Ceil(s.CY+s.Radius))+1, 0, h)
	x0 := clampInt(int(math.Floor(s.CX-s.Radius)), 0, w)
	x1 := clampInt(int(math.Ceil(s.CX+s.Radius))+1, 0, w)
	for y := y0; y < y1; y++ {
		dy := float64(y) - s.CY
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := x0; x < x1; x++ {
			dx := float64(x) - s.CX
			if dx*dx+dy*dy > r2 {
				continue
			}
			if full || s.Contains(PixelAngle(dx, dy)) {
				row[x] = 0xff
			}
		}
	}
	return mask, nil
}

// PixelAngle is atan2(dy, dx) in degrees normalized to [0, 360). With y
// growing downward the angle increases clockwise.
func PixelAngle(dx, dy float64) float64 {
	return NormalizeAngle(math.Atan2(dy, dx) * 180 / math.Pi)
}

// NormalizeAngle maps a to [0, 360).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
