package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/batch"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/codec"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/config"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/corpus"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/fetch"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/filter"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/logger"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/post"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/preview"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

func newFlagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s %s [flags] %s\n", os.Args[0], name, args)
		fs.PrintDefaults()
	}
	return fs
}

func positional(fs *flag.FlagSet, lo, hi int) ([]string, error) {
	args := fs.Args()
	if len(args) < lo || len(args) > hi {
		fs.Usage()
		return nil, errors.Errorf("%s: want %d to %d arguments, got %d", fs.Name(), lo, hi, len(args))
	}
	return args, nil
}

var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

// writePNG encodes c to path, or stdout for "-".
func writePNG(ctx context.Context, cfg *config.Config, path string, c image.Image, encoded []byte) error {
	log := logger.Entry(ctx).WithField("path", path)

	if path == "-" {
		if err := encodePNG(os.Stdout, cfg, path, c, encoded); err != nil {
			return err
		}
	} else if err := writeFile(cfg, path, c, encoded); err != nil {
		return err
	}
	b := c.Bounds()
	log.WithField("size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy())).Info("wrote")

	if cfg.Preview && path != "-" {
		if err := preview.Stdout(c); err != nil {
			log.WithError(err).Warn("preview")
		}
	}
	return nil
}

func writeFile(cfg *config.Config, path string, c image.Image, encoded []byte) error {
	f, err := createFile(path)
	if err != nil {
		return errors.Wrap(err, "os.Create")
	}
	if err := encodePNG(f, cfg, path, c, encoded); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func encodePNG(w io.Writer, cfg *config.Config, path string, c image.Image, encoded []byte) error {
	if encoded == nil {
		return codec.Encode(w, c, cfg.Level())
	}
	if _, err := w.Write(encoded); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func newFetcher(cfg *config.Config) *fetch.Fetcher {
	f := fetch.New()
	f.DumpHTTP = cfg.DumpHTTP
	return f
}

func runSynth(ctx context.Context, cfg *config.Config, argv []string) error {
	fs := newFlagSet("synth", "[out.png]")
	cfg.RegisterSynthFlags(fs)
	cfg.RegisterPostFlags(fs)
	cfg.RegisterOutputFlags(fs)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	args, err := positional(fs, 0, 1)
	if err != nil {
		return err
	}
	out := "logo.png"
	if len(args) == 1 {
		out = args[0]
	}

	sc := cfg.Synth()
	logger.Entry(ctx).WithField("preset", cfg.Preset).Debugf("synth %+v", sc)
	res, err := batch.NewRunner(1, cfg.Level(), 0).Render(ctx, batch.Job{
		Name:  out,
		Synth: &sc,
		Post:  cfg.Post(),
	})
	if err != nil {
		return err
	}
	return writePNG(ctx, cfg, out, res.Canvas, res.PNG)
}

func runProcess(ctx context.Context, cfg *config.Config, argv []string) error {
	cfg.Strip, cfg.Crop = true, true
	fs := newFlagSet("process", "in.png|url out.png")
	cfg.RegisterPostFlags(fs)
	cfg.RegisterOutputFlags(fs)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	args, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}
	src, err := newFetcher(cfg).Image(ctx, args[0])
	if err != nil {
		return err
	}
	res, err := post.PostProcess(src, cfg.Post())
	if err != nil {
		return err
	}
	return writePNG(ctx, cfg, args[1], res, nil)
}

func runCrop(ctx context.Context, cfg *config.Config, argv []string) error {
	fs := newFlagSet("crop", "in.png out.png")
	cfg.RegisterOutputFlags(fs)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	args, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}
	src, err := codec.Open(args[0])
	if err != nil {
		return err
	}
	res, err := post.CropToContent(src)
	if err != nil {
		return err
	}
	return writePNG(ctx, cfg, args[1], res, nil)
}

func runLetterbox(ctx context.Context, cfg *config.Config, argv []string) error {
	fs := newFlagSet("letterbox", "in.png out.png")
	size := fs.Int("size", 1024, "square edge in pixels")
	cfg.RegisterOutputFlags(fs)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	args, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}
	src, err := codec.Open(args[0])
	if err != nil {
		return err
	}
	res, err := post.Letterbox(src, *size)
	if err != nil {
		return err
	}
	return writePNG(ctx, cfg, args[1], res, nil)
}

func runVariations(ctx context.Context, cfg *config.Config, argv []string) error {
	fs := newFlagSet("variations", "[source.png|url]")
	dir := fs.String("out", ".", "output directory")
	presets := fs.String("presets", strings.Join(config.PresetNames(), ","), "presets to render when there is no source")
	colors := fs.String("colors", "", "recolours of the source as name=#rrggbb,... (default light purples)")
	distinct := fs.Bool("distinct", false, "drop renders perceptually identical to an earlier one")
	reference := fs.String("reference", "", "drop renders that look unlike this image, url or image directory")
	maxDist := fs.Int("max-dist", filter.DefaultMaxDist, "largest perceptual hash distance from -reference")
	size := fs.Int("size", 0, "override the preset size")
	cfg.RegisterPostFlags(fs)
	cfg.RegisterOutputFlags(fs)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	args, err := positional(fs, 0, 1)
	if err != nil {
		return err
	}

	var jobs []batch.Job
	if len(args) == 1 {
		src, err := newFetcher(cfg).Image(ctx, args[0])
		if err != nil {
			return err
		}
		vars := config.DefaultVariations
		if *colors != "" {
			if vars, err = config.ParseVariations(*colors); err != nil {
				return err
			}
		}
		for _, v := range vars {
			opts := cfg.Post()
			opts.Strip, opts.Crop = true, true
			c := v.Color
			opts.Recolor = &c
			jobs = append(jobs, batch.Job{Name: "logo_" + v.Name + ".png", Source: src, Post: opts})
		}
	} else {
		for _, name := range strings.Split(*presets, ",") {
			pc := *cfg
			if err := pc.ApplyPreset(strings.TrimSpace(name)); err != nil {
				return err
			}
			if *size > 0 {
				pc.Size = *size
			}
			sc := pc.Synth()
			jobs = append(jobs, batch.Job{Name: pc.Preset + ".png", Synth: &sc, Post: pc.Post()})
		}
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return errors.Wrap(err, "os.MkdirAll")
	}
	r := batch.NewRunner(cfg.Workers, cfg.Level(), batch.DefaultCacheBytes)
	var filters []filter.FilterFunc
	if *reference != "" {
		f, err := referenceFilter(ctx, cfg, *reference, *maxDist)
		if err != nil {
			return err
		}
		filters = append(filters, f)
	}
	// after the reference check, so rejected renders never count as seen
	if *distinct {
		filters = append(filters, filter.Distinct(filter.DefaultDim, 1))
	}
	if len(filters) > 0 {
		r.Filter = filter.Multi(filters...)
	}
	results, err := r.Run(ctx, jobs)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Skipped {
			logger.Entry(ctx).WithField("job", res.Name).Info("filtered")
			continue
		}
		if err := writePNG(ctx, cfg, filepath.Join(*dir, res.Name), res.Canvas, res.PNG); err != nil {
			return err
		}
	}
	return nil
}

// referenceFilter accepts renders within maxDist of the png or url at src,
// or of any image in it when src is a directory.
func referenceFilter(ctx context.Context, cfg *config.Config, src string, maxDist int) (filter.FilterFunc, error) {
	if st, err := os.Stat(src); err == nil && st.IsDir() {
		refs, err := corpus.LoadDir(src)
		if err != nil {
			return nil, err
		}
		return filter.MaxDistFromCorpus(refs, filter.DefaultDim, maxDist)
	}
	img, err := newFetcher(cfg).Image(ctx, src)
	if err != nil {
		return nil, err
	}
	return filter.MaxDistFromReference(img, filter.DefaultDim, maxDist)
}

func runMatch(ctx context.Context, cfg *config.Config, argv []string) error {
	fs := newFlagSet("match", "reference.png|url|dir")
	dim := fs.Int("dim", filter.DefaultDim, "perceptual hash dimension, a power of two")
	size := fs.Int("size", 256, "render edge for candidates")
	cfg.RegisterOutputFlags(fs)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	args, err := positional(fs, 1, 1)
	if err != nil {
		return err
	}

	refs := corpus.New(args[0])
	if st, err := os.Stat(args[0]); err == nil && st.IsDir() {
		if refs, err = corpus.LoadDir(args[0]); err != nil {
			return err
		}
	} else {
		img, err := newFetcher(cfg).Image(ctx, args[0])
		if err != nil {
			return err
		}
		refs.Add(filepath.Base(args[0]), img)
	}

	var jobs []batch.Job
	for _, name := range config.PresetNames() {
		pc := *cfg
		if err := pc.ApplyPreset(name); err != nil {
			return err
		}
		pc.Size = *size
		pc.Sharpen = nil
		sc := pc.Synth()
		jobs = append(jobs, batch.Job{Name: name, Synth: &sc, Post: post.Options{Crop: true}})
	}
	results, err := batch.NewRunner(cfg.Workers, cfg.Level(), 0).Run(ctx, jobs)
	if err != nil {
		return err
	}
	candidates := make([]filter.Candidate, 0, len(results))
	for _, res := range results {
		candidates = append(candidates, filter.Candidate{Name: res.Name, Image: res.Canvas})
	}

	for _, refName := range refs.Names() {
		ref := refs.ImagesMap()[refName]
		cropped, err := post.CropToContent(ref)
		if err != nil {
			return errors.Wrapf(err, "reference %s", refName)
		}
		scores, err := filter.Rank(ctx, cropped, *dim, candidates)
		if err != nil {
			return err
		}
		fmt.Printf("%s:\n", refName)
		for _, s := range scores {
			fmt.Printf("  %-11s %d\n", s.Name, s.Distance)
		}
	}
	return nil
}

func runInspect(ctx context.Context, cfg *config.Config, argv []string) error {
	fs := newFlagSet("inspect", "in.png|url")
	region := fs.String("region", "", "report the first translucent pixel in x0,y0,x1,y1")
	cfg.RegisterOutputFlags(fs)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	args, err := positional(fs, 1, 1)
	if err != nil {
		return err
	}
	c, err := newFetcher(cfg).Image(ctx, args[0])
	if err != nil {
		return err
	}

	s := post.Analyze(c)
	fmt.Printf("size:     %dx%d\n", s.Width, s.Height)
	fmt.Printf("visible:  %d\n", s.Visible)
	fmt.Printf("opaque:   %d\n", s.Opaque)
	fmt.Printf("bounds:   %v\n", s.Bounds)
	fmt.Printf("min rgb:  %s\n", s.Min)
	fmt.Printf("max rgb:  %s\n", s.Max)
	fmt.Printf("samples:  top-left %v centre %v bottom-right %v\n", s.TopLeft, s.Center, s.BottomRight)

	encoded, err := codec.EncodedSize(c, codec.BestLevel)
	if err != nil {
		return err
	}
	fmt.Printf("png:      %d bytes, %.1f%% of raw\n", encoded, 100*float64(encoded)/float64(codec.RawSize(c)))

	if *region != "" {
		var r image.Rectangle
		if _, err := fmt.Sscanf(*region, "%d,%d,%d,%d", &r.Min.X, &r.Min.Y, &r.Max.X, &r.Max.Y); err != nil {
			return errors.Wrapf(err, "region %q", *region)
		}
		if p, px, ok := post.FirstTranslucent(c, r.Canon()); ok {
			fmt.Printf("gap:      %v %v\n", p, px)
		} else {
			fmt.Println("gap:      none")
		}
	}

	if cfg.Preview {
		return preview.Stdout(c)
	}
	return nil
}

func runPresets(ctx context.Context, cfg *config.Config, argv []string) error {
	fs := newFlagSet("presets", "[name]")
	if err := fs.Parse(argv); err != nil {
		return err
	}
	args, err := positional(fs, 0, 1)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		// dotenv form, ready to be saved as .env
		if err := cfg.ApplyPreset(args[0]); err != nil {
			return err
		}
		env, err := godotenv.Marshal(cfg.Strings())
		if err != nil {
			return errors.Wrap(err, "godotenv.Marshal")
		}
		fmt.Println(env)
		return nil
	}
	for _, name := range config.PresetNames() {
		fmt.Printf("%-11s %s\n", name, config.Presets[name].Desc)
	}
	return nil
}
