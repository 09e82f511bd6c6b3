package synth

import (
	"image"
	"math"
	"testing"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func countCovered(m *image.Alpha) int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func diskMask(size int, cx, cy, r float64) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				m.Pix[y*m.Stride+x] = 0xff
			}
		}
	}
	return m
}

func TestPixelAngleClockwise(t *testing.T) {
	testCases := []struct {
		desc   string
		dx, dy float64
		want   float64
	}{
		{desc: "3 o'clock", dx: 1, dy: 0, want: 0},
		{desc: "6 o'clock", dx: 0, dy: 1, want: 90},
		{desc: "9 o'clock", dx: -1, dy: 0, want: 180},
		{desc: "12 o'clock", dx: 0, dy: -1, want: 270},
		{desc: "half past one", dx: 1, dy: -1, want: 315},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			require.InDelta(t, tC.want, PixelAngle(tC.dx, tC.dy), 1e-9)
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	require.Equal(t, 315.0, NormalizeAngle(-45))
	require.Equal(t, 0.0, NormalizeAngle(360))
	require.Equal(t, 0.0, NormalizeAngle(-720))
	require.Equal(t, 90.0, NormalizeAngle(450))
}

func TestSectorContains(t *testing.T) {
	s := SectorSpec{Radius: 1, StartAngle: -45, EndAngle: 270}
	require.InDelta(t, 315, s.Sweep(), 1e-9)
	require.True(t, s.Contains(0))
	require.True(t, s.Contains(315))
	require.True(t, s.Contains(270))
	require.True(t, s.Contains(180))
	require.False(t, s.Contains(290))

	narrow := SectorSpec{Radius: 1, StartAngle: 45, EndAngle: 47}
	require.True(t, narrow.Contains(46))
	require.False(t, narrow.Contains(48))
	require.False(t, narrow.Contains(0))

	equal := SectorSpec{Radius: 1, StartAngle: 30, EndAngle: 30}
	require.Equal(t, 360.0, equal.Sweep())
	require.True(t, equal.Contains(200))
}

func TestRasterizeZeroOutsideRadius(t *testing.T) {
	const size = 64
	s := SectorSpec{CX: 30.5, CY: 33, Radius: 20, StartAngle: 10, EndAngle: 200}
	m, err := Rasterize(size, s)
	require.NoError(t, err)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if math.Hypot(float64(x)-s.CX, float64(y)-s.CY) > s.Radius {
				require.Zero(t, m.AlphaAt(x, y).A, "(%d,%d)", x, y)
			}
		}
	}
}

func TestRasterizeBinary(t *testing.T) {
	m, err := Rasterize(50, SectorSpec{CX: 25, CY: 25, Radius: 20, StartAngle: 90, EndAngle: 0})
	require.NoError(t, err)
	for _, v := range m.Pix {
		require.True(t, v == 0 || v == 255)
	}
}

func TestRasterizeFullCircleIsDisk(t *testing.T) {
	const size = 48
	disk := diskMask(size, 24, 23, 17.5)
	for _, span := range [][2]float64{{0, 360}, {-90, 270}, {45, 45}, {10, 730}} {
		m, err := Rasterize(size, SectorSpec{CX: 24, CY: 23, Radius: 17.5, StartAngle: span[0], EndAngle: span[1]})
		require.NoError(t, err)
		require.Equal(t, disk.Pix, m.Pix, "span %v", span)
	}
}

func TestRasterizeScenarioB(t *testing.T) {
	const size = 100
	m, err := Rasterize(size, SectorSpec{CX: 50, CY: 50, Radius: 40, StartAngle: -45, EndAngle: 270})
	require.NoError(t, err)
	disk := countCovered(diskMask(size, 50, 50, 40))
	got := float64(countCovered(m)) / float64(disk)
	require.InDelta(t, 315.0/360, got, 0.01)

	// the wedge between 12 o'clock and half past one is empty
	require.Zero(t, m.AlphaAt(60, 20).A)
	require.Equal(t, uint8(255), m.AlphaAt(25, 25).A)
	require.Equal(t, uint8(255), m.AlphaAt(80, 50).A)
}

func TestRasterizeWrapAround(t *testing.T) {
	m, err := Rasterize(41, SectorSpec{CX: 20, CY: 20, Radius: 15, StartAngle: 350, EndAngle: 10})
	require.NoError(t, err)
	require.Equal(t, uint8(255), m.AlphaAt(30, 20).A) // 0°
	require.Zero(t, m.AlphaAt(10, 20).A)              // 180°
	require.Zero(t, m.AlphaAt(20, 30).A)              // 90°
}

func TestRasterizeInvalid(t *testing.T) {
	testCases := []struct {
		desc string
		size int
		s    SectorSpec
	}{
		{desc: "zero size", size: 0, s: SectorSpec{Radius: 1}},
		{desc: "zero radius", size: 4, s: SectorSpec{Radius: 0}},
		{desc: "negative radius", size: 4, s: SectorSpec{Radius: -3}},
		{desc: "nan angle", size: 4, s: SectorSpec{Radius: 1, EndAngle: math.NaN()}},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := Rasterize(tC.size, tC.s)
			require.True(t, errors.Is(err, canvas.ErrInvalidConfig), "%v", err)
		})
	}
}

func TestRasterizeOffCanvas(t *testing.T) {
	m, err := Rasterize(10, SectorSpec{CX: -100, CY: -100, Radius: 5, EndAngle: 360})
	require.NoError(t, err)
	require.Zero(t, countCovered(m))
}
