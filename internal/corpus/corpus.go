// Package corpus loads a named set of reference rasters.
package corpus

import (
	"image"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/codec"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var extensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

type Corpus struct {
	name   string
	images map[string]*image.NRGBA
}

func New(name string) *Corpus {
	return &Corpus{name: name, images: make(map[string]*image.NRGBA)}
}

func (c *Corpus) Name() string {
	return c.name
}

// Names returns the image keys in sorted order.
func (c *Corpus) Names() []string {
	keys := maps.Keys(c.images)
	slices.Sort(keys)
	return keys
}

func (c *Corpus) Images() []*image.NRGBA {
	out := make([]*image.NRGBA, 0, len(c.images))
	for _, k := range c.Names() {
		out = append(out, c.images[k])
	}
	return out
}

func (c *Corpus) ImagesMap() map[string]*image.NRGBA {
	return c.images
}

func (c *Corpus) Len() int {
	return len(c.images)
}

// Add stores img under key, replacing any previous entry.
func (c *Corpus) Add(key string, img *image.NRGBA) {
	c.images[key] = img
}

// LoadDir loads every image directly inside dir on disk.
func LoadDir(dir string) (*Corpus, error) {
	c, err := LoadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	c.name = dir
	return c, nil
}

// LoadFS loads every image with a known extension directly inside dir of
// fsys. Subdirectories and other files are skipped.
func LoadFS(fsys fs.FS, dir string) (*Corpus, error) {
	c := New(dir)
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "ReadDir %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := extensions[strings.ToLower(path.Ext(entry.Name()))]; !ok {
			continue
		}
		if err := c.loadPath(fsys, path.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}
	if len(c.images) == 0 {
		return nil, errors.Errorf("no images in %s", dir)
	}
	return c, nil
}

func (c *Corpus) loadPath(fsys fs.FS, p string) error {
	f, err := fsys.Open(p)
	if err != nil {
		return errors.Wrapf(err, "open %s", p)
	}
	defer f.Close()
	img, err := codec.Decode(f)
	if err != nil {
		return errors.Wrap(err, p)
	}
	c.images[path.Base(p)] = img
	return nil
}
