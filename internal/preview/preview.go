// Package preview draws a raster as ANSI art so a render can be eyeballed
// without leaving the terminal.
package preview

import (
	"image"
	"image/color"
	"io"
	"os"

	"github.com/eliukblau/pixterm/pkg/ansimage"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// character cell size in pixels for ansimage.DitheringWithChars
const (
	cellY = 8
	cellX = 4
)

var fallback = Size{Cols: 80, Rows: 24}

// Size is a terminal area in character cells.
type Size struct {
	Cols, Rows int
}

// TerminalSize reports the size of the terminal on f, or 80x24 when f is not
// a terminal.
func TerminalSize(f *os.File) Size {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return fallback
	}
	// leave a line for the prompt
	return Size{Cols: int(ws.Col), Rows: int(ws.Row) - 1}
}

// Render returns img scaled to fit sz as an ANSI escape string.
// Transparent areas show as black.
func Render(img image.Image, sz Size) (string, error) {
	if sz.Cols <= 0 || sz.Rows <= 0 {
		return "", errors.Errorf("preview size %dx%d", sz.Cols, sz.Rows)
	}
	ansi, err := ansimage.NewScaledFromImage(img, cellY*sz.Rows, cellX*sz.Cols, color.Black, ansimage.ScaleModeFit, ansimage.DitheringWithChars)
	if err != nil {
		return "", errors.Wrap(err, "ansimage.NewScaledFromImage")
	}
	return ansi.Render(), nil
}

// Write renders img into w.
func Write(w io.Writer, img image.Image, sz Size) error {
	s, err := Render(img, sz)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return errors.Wrap(err, "write preview")
}

// Stdout renders img sized to the terminal on stdout.
func Stdout(img image.Image) error {
	return Write(os.Stdout, img, TerminalSize(os.Stdout))
}
