package fetch

import (
	"context"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/codec"
	"github.com/stretchr/testify/require"
)

func logoPNG(t *testing.T) []byte {
	c := canvas.New(6, 4)
	c.SetNRGBA(2, 1, color.NRGBA{R: 118, G: 75, B: 162, A: 255})
	b, err := codec.EncodeBytes(c, codec.BestSpeed)
	require.NoError(t, err)
	return b
}

func TestGetCached(t *testing.T) {
	body := logoPNG(t)
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "max-age=600")
		w.Write(body)
	}))
	defer srv.Close()

	ctx := context.Background()
	f := New()
	for i := 0; i < 3; i++ {
		img, err := f.Image(ctx, srv.URL+"/logo.png")
		require.NoError(t, err)
		require.Equal(t, 6, img.Rect.Dx())
		require.Equal(t, uint8(118), img.NRGBAAt(2, 1).R)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
	require.Greater(t, f.CacheSize(), int64(0))
}

func TestGetBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New().Get(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestImageFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	require.NoError(t, os.WriteFile(path, logoPNG(t), 0o644))

	img, err := New().Image(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 4, img.Rect.Dy())
}
