package codec

import (
	"image"
	"io"
)

type discardCounter struct {
	count int
}

var _ io.Writer = &discardCounter{}

func (dc *discardCounter) Write(p []byte) (n int, err error) {
	dc.count += len(p)
	return len(p), nil
}

// EncodedSize returns the byte length of c encoded at level without keeping
// the encoding around.
func EncodedSize(c image.Image, level Level) (int, error) {
	buf := &discardCounter{}
	if err := Encode(buf, c, level); err != nil {
		return -1, err
	}
	return buf.count, nil
}

// RawSize is the size of c as an uncompressed RGBA8 buffer.
func RawSize(c image.Image) int {
	b := c.Bounds()
	return b.Dx() * b.Dy() * 4
}
