// Package fetch loads reference rasters from disk or over HTTP.
package fetch

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/codec"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/logger"
	"github.com/die-net/lrucache"
	"github.com/gregjones/httpcache"
	"github.com/pkg/errors"
)

const (
	ttl      = time.Hour
	maxBytes = 256 * 1024 * 1024
)

type Fetcher struct {
	client   *http.Client
	cache    *lrucache.LruCache
	DumpHTTP bool
}

// New returns a Fetcher whose responses are cached in memory per HTTP
// caching rules.
func New() *Fetcher {
	c := lrucache.New(maxBytes, int64(ttl.Seconds()))
	return &Fetcher{
		client: &http.Client{Transport: httpcache.NewTransport(c)},
		cache:  c,
	}
}

// CacheSize is the number of bytes held by the response cache.
func (f *Fetcher) CacheSize() int64 {
	return f.cache.Size()
}

// Image loads src, which is either an http(s) URL or a file path.
func (f *Fetcher) Image(ctx context.Context, src string) (*image.NRGBA, error) {
	u, err := url.Parse(src)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return f.Get(ctx, u.String())
	}
	return codec.Open(src)
}

// Get fetches and decodes the image at rawURL.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*image.NRGBA, error) {
	log := logger.Entry(ctx).WithField("url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "http.NewRequest")
	}
	req.Header.Set("Accept", "image/png,image/*;q=0.8")

	if f.DumpHTTP {
		if s, err := httputil.DumpRequest(req, false); err == nil {
			log.Debug(string(s))
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "http.Do")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("bad http code %d for %s", resp.StatusCode, rawURL)
	}

	if f.DumpHTTP {
		if s, err := httputil.DumpResponse(resp, false); err == nil {
			log.Debug(string(s))
		}
	}
	// read to EOF so httpcache stores the response
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	log.WithField("cached", resp.Header.Get(httpcache.XFromCache) != "").
		WithField("bytes", len(body)).
		Debug("fetched reference")

	return codec.Decode(bytes.NewReader(body))
}
