// Package batch renders many logo variants concurrently, encodes them as PNG
// and remembers recent renders in a byte-bounded LRU.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/codec"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/filter"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/logger"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/post"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/synth"
	"github.com/die-net/lrucache"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const DefaultCacheBytes = 512 * 1024 * 1024

// Job is one output. Exactly one of Synth and Source is set: Synth renders
// from scratch, Source post-processes an existing raster.
type Job struct {
	Name      string
	Synth     *synth.Config
	Source    image.Image
	Post      post.Options
	Letterbox int // square edge, 0 to skip
}

type Result struct {
	Name    string
	State   string
	Canvas  *image.NRGBA
	PNG     []byte
	Cached  bool
	Skipped bool
}

type Runner struct {
	Workers int
	Level   codec.Level
	// Filter, when set, drops renders it rejects. It sees renders in
	// completion order, so stateful filters like filter.Distinct keep
	// whichever duplicate finished first.
	Filter filter.FilterFunc

	cache *lrucache.LruCache
}

// NewRunner returns a Runner with a render cache of cacheBytes. A
// non-positive cacheBytes disables caching.
func NewRunner(workers int, level codec.Level, cacheBytes int64) *Runner {
	r := &Runner{
		Workers: workers,
		Level:   level,
	}
	if cacheBytes > 0 {
		r.cache = lrucache.New(cacheBytes, 0)
	}
	return r
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Run executes jobs on a pool of workers. Results are in job order. The
// first failing job cancels the rest and its error is returned.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	input := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(input)
		for i := range jobs {
			select {
			case input <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < r.workers(); w++ {
		g.Go(func() error {
			for i := range input {
				res, err := r.Render(ctx, jobs[i])
				if err != nil {
					return errors.Wrapf(err, "job %d %s", i, jobs[i].Name)
				}
				results[i] = res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Render executes a single job on the calling goroutine.
func (r *Runner) Render(ctx context.Context, j Job) (Result, error) {
	ctx, log := logger.WithField(ctx, "job", j.Name)
	lc := newLifecycle(log)
	res := Result{Name: j.Name}

	fail := func(err error) (Result, error) {
		if terr := transition(lc, "fail"); terr != nil {
			log.WithError(terr).Warn("lifecycle")
		}
		res.State = lc.Current()
		return res, err
	}

	if err := transition(lc, "render"); err != nil {
		return fail(err)
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	key, cacheable := r.cacheKey(j)
	if cacheable {
		if b, ok := r.cache.Get(key); ok {
			c, err := codec.Decode(bytes.NewReader(b))
			if err != nil {
				return fail(errors.Wrap(err, "cached render"))
			}
			res.Canvas, res.PNG, res.Cached = c, b, true
		}
	}

	if res.Canvas == nil {
		c, err := r.build(j)
		if err != nil {
			return fail(err)
		}
		res.Canvas = c
	}

	if r.Filter != nil {
		ok, err := r.Filter(ctx, res.Canvas)
		if err != nil {
			return fail(errors.Wrap(err, "filter"))
		}
		if !ok {
			if err := transition(lc, "skip"); err != nil {
				return fail(err)
			}
			log.Debug("filtered")
			res.State, res.Skipped = lc.Current(), true
			return res, nil
		}
	}

	if err := transition(lc, "encode"); err != nil {
		return fail(err)
	}
	if res.PNG == nil {
		b, err := codec.EncodeBytes(res.Canvas, r.Level)
		if err != nil {
			return fail(err)
		}
		res.PNG = b
		if cacheable {
			r.cache.Set(key, b)
		}
	}
	if err := transition(lc, "finish"); err != nil {
		return fail(err)
	}
	res.State = lc.Current()
	log.WithField("bytes", len(res.PNG)).WithField("cached", res.Cached).Debug("rendered")
	return res, nil
}

func (r *Runner) build(j Job) (*image.NRGBA, error) {
	var (
		c   *image.NRGBA
		err error
	)
	switch {
	case j.Synth != nil && j.Source != nil:
		return nil, errors.New("job has both synth config and source")
	case j.Synth != nil:
		c, err = synth.Synthesize(*j.Synth)
	case j.Source != nil:
		c, err = post.PostProcess(j.Source, post.Options{})
	default:
		return nil, errors.New("job has neither synth config nor source")
	}
	if err != nil {
		return nil, err
	}
	if c, err = post.PostProcess(c, j.Post); err != nil {
		return nil, err
	}
	if j.Letterbox > 0 {
		return post.Letterbox(c, j.Letterbox)
	}
	return c, nil
}

// cacheKey describes a synth job completely. Source jobs are not cached.
func (r *Runner) cacheKey(j Job) (string, bool) {
	if r.cache == nil || j.Synth == nil || j.Source != nil {
		return "", false
	}
	s := *j.Synth
	sharpen := "off"
	if s.Sharpen != nil {
		sharpen = fmt.Sprintf("%+v", *s.Sharpen)
	}
	s.Sharpen = nil
	recolor := "none"
	if j.Post.Recolor != nil {
		recolor = j.Post.Recolor.String()
	}
	p := j.Post
	p.Recolor = nil
	return fmt.Sprintf("%+v|%s|%+v|%s|%d|%d", s, sharpen, p, recolor, j.Letterbox, r.Level), true
}

// CacheSize is the number of encoded bytes held by the render cache.
func (r *Runner) CacheSize() int64 {
	if r.cache == nil {
		return 0
	}
	return r.cache.Size()
}
