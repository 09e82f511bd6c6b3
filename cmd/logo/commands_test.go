package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/codec"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSynthThenProcess(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	out := filepath.Join(dir, "logo.png")

	require.NoError(t, runSynth(ctx, config.Default(), []string{"-size", "40", "-supersample", "2", out}))
	img, err := codec.Open(out)
	require.NoError(t, err)
	require.Equal(t, 40, img.Rect.Dx())
	require.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)

	cropped := filepath.Join(dir, "cropped.png")
	require.NoError(t, runProcess(ctx, config.Default(), []string{"-recolor", "#764ba2", out, cropped}))
	img, err = codec.Open(cropped)
	require.NoError(t, err)
	require.Less(t, img.Rect.Dx(), 40)

	boxed := filepath.Join(dir, "boxed.png")
	require.NoError(t, runLetterbox(ctx, config.Default(), []string{"-size", "64", cropped, boxed}))
	img, err = codec.Open(boxed)
	require.NoError(t, err)
	require.Equal(t, 64, img.Rect.Dy())
}

func TestVariationsFromSource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	require.NoError(t, runSynth(ctx, config.Default(), []string{"-size", "32", "-supersample", "1", src}))

	require.NoError(t, runVariations(ctx, config.Default(), []string{"-out", dir, "-colors", "a=#8a5fb6,b=#000", src}))
	for _, name := range []string{"logo_a.png", "logo_b.png"} {
		img, err := codec.Open(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.NotZero(t, img.Rect.Dx())
	}
}

func TestVariationsReference(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.png")
	require.NoError(t, runSynth(ctx, config.Default(), []string{"-preset", "perfect", "-size", "64", ref}))

	out := filepath.Join(dir, "out")
	require.NoError(t, runVariations(ctx, config.Default(), []string{
		"-size", "64", "-presets", "perfect,slit", "-reference", ref, "-max-dist", "0", "-distinct", "-out", out,
	}))
	_, err := os.Stat(filepath.Join(out, "perfect.png"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "slit.png"))
	require.True(t, os.IsNotExist(err), "slit is too far from the reference")

	require.Error(t, runVariations(ctx, config.Default(), []string{
		"-presets", "perfect", "-reference", filepath.Join(dir, "missing.png"), "-out", out,
	}))
}

type failingCloser struct{ io.Writer }

func (failingCloser) Close() error { return errors.New("disk full") }

func TestWritePNGCloseError(t *testing.T) {
	orig := createFile
	t.Cleanup(func() { createFile = orig })
	createFile = func(string) (io.WriteCloser, error) { return failingCloser{io.Discard}, nil }

	err := writePNG(context.Background(), config.Default(), "logo.png", canvas.New(4, 4), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "close logo.png: disk full")
}

func TestArgumentErrors(t *testing.T) {
	ctx := context.Background()
	require.Error(t, runCrop(ctx, config.Default(), []string{"only-one.png"}))
	require.Error(t, runSynth(ctx, config.Default(), []string{"-preset", "missing"}))
	require.Error(t, runPresets(ctx, config.Default(), []string{"missing"}))
}
