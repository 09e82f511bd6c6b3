package post

import (
	"image"
	"image/color"
	"testing"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	c := canvas.New(8, 8)
	c.SetNRGBA(2, 2, color.NRGBA{R: 155, G: 127, B: 199, A: 255})
	c.SetNRGBA(6, 6, color.NRGBA{R: 118, G: 75, B: 162, A: 255})
	c.SetNRGBA(4, 4, color.NRGBA{R: 130, G: 200, B: 170, A: 40})
	c.SetNRGBA(0, 7, color.NRGBA{R: 0, G: 0, B: 0, A: 0})

	s := Analyze(c)
	require.Equal(t, 8, s.Width)
	require.Equal(t, 3, s.Visible)
	require.Equal(t, 2, s.Opaque)
	require.Equal(t, canvas.Color{R: 118, G: 75, B: 162}, s.Min)
	require.Equal(t, canvas.Color{R: 155, G: 200, B: 199}, s.Max)
	require.Equal(t, image.Rect(2, 2, 7, 7), s.Bounds)
	require.Equal(t, color.NRGBA{R: 155, G: 127, B: 199, A: 255}, s.TopLeft)
	require.Equal(t, color.NRGBA{R: 130, G: 200, B: 170, A: 40}, s.Center)
	require.Equal(t, color.NRGBA{R: 118, G: 75, B: 162, A: 255}, s.BottomRight)
}

func TestAnalyzeEmpty(t *testing.T) {
	s := Analyze(canvas.New(4, 4))
	require.Zero(t, s.Visible)
	require.Equal(t, canvas.Color{}, s.Min)
	require.True(t, s.Bounds.Empty())
}

func TestFirstTranslucent(t *testing.T) {
	c := canvas.New(8, 8)
	for i := 3; i < len(c.Pix); i += 4 {
		c.Pix[i] = 255
	}
	c.SetNRGBA(6, 3, color.NRGBA{R: 5, A: 100})
	c.SetNRGBA(5, 4, color.NRGBA{R: 6, A: 0})

	p, px, ok := FirstTranslucent(c, image.Rect(4, 2, 8, 6))
	require.True(t, ok)
	require.Equal(t, image.Pt(6, 3), p)
	require.Equal(t, uint8(100), px.A)

	_, _, ok = FirstTranslucent(c, image.Rect(0, 0, 4, 4))
	require.False(t, ok)

	_, _, ok = FirstTranslucent(c, image.Rect(-10, -10, -1, -1))
	require.False(t, ok)
}

func TestLetterbox(t *testing.T) {
	src := canvas.New(40, 20)
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 118, 75, 162, 255
	}

	out, err := Letterbox(src, 80)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 80, 80), out.Rect)
	require.Zero(t, out.NRGBAAt(40, 5).A, "top band is transparent")
	require.Zero(t, out.NRGBAAt(40, 75).A, "bottom band is transparent")
	require.Equal(t, purple.NRGBA(255), out.NRGBAAt(40, 40))

	r, ok := ContentBounds(out)
	require.True(t, ok)
	require.Equal(t, image.Rect(0, 20, 80, 60), r)
}

func TestLetterboxSquare(t *testing.T) {
	src := canvas.New(16, 16)
	out, err := Letterbox(src, 16)
	require.NoError(t, err)
	require.True(t, canvas.Equal(src, out))
}

func TestLetterboxInvalid(t *testing.T) {
	_, err := Letterbox(canvas.New(4, 4), 0)
	require.True(t, errors.Is(err, canvas.ErrInvalidConfig))
	_, err = Letterbox(canvas.New(0, 0), 10)
	require.True(t, errors.Is(err, canvas.ErrInvalidConfig))
}
