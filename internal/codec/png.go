// Package codec moves canvases in and out of PNG.
package codec

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Level mirrors png.CompressionLevel so callers need not import image/png.
type Level = png.CompressionLevel

const (
	DefaultLevel  Level = png.DefaultCompression
	NoCompression Level = png.NoCompression
	BestSpeed     Level = png.BestSpeed
	BestLevel     Level = png.BestCompression
)

type bufferPool sync.Pool

var _ png.EncoderBufferPool = (*bufferPool)(nil)

var sharedBufferPool *bufferPool = (*bufferPool)(&sync.Pool{
	New: func() any {
		return &png.EncoderBuffer{}
	},
})

func (bp *bufferPool) Get() *png.EncoderBuffer {
	return (*sync.Pool)(bp).Get().(*png.EncoderBuffer)
}
func (bp *bufferPool) Put(eb *png.EncoderBuffer) {
	(*sync.Pool)(bp).Put(eb)
}

func encoder(level Level) *png.Encoder {
	return &png.Encoder{
		CompressionLevel: level,
		BufferPool:       sharedBufferPool,
	}
}

// Encode writes c as PNG. It is safe for concurrent use.
func Encode(w io.Writer, c image.Image, level Level) error {
	if err := encoder(level).Encode(w, c); err != nil {
		return errors.Wrap(err, "png.Encode")
	}
	return nil
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(c image.Image, level Level) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Encode(buf, c, level); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads any registered image format and returns it as a canvas.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "imaging.Decode")
	}
	return canvas.Normalize(img), nil
}

// Open decodes the file at path.
func Open(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "imaging.Open %s", path)
	}
	return canvas.Normalize(img), nil
}
