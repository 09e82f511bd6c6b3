package filter

import (
	"context"
	"image"
	"image/color"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/corpus"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/logger"
	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

const (
	DefaultDim     = 16 // dim*dim must be a power of 2
	DefaultMaxDist = 12
)

// Hash is the ExtPerceptionHash of img flattened onto white, so that
// transparent surroundings hash the same as a white page.
func Hash(img image.Image, dim int) (*goimagehash.ExtImageHash, error) {
	hash, err := goimagehash.ExtPerceptionHash(flatten(img), dim, dim)
	if err != nil {
		return nil, errors.Wrap(err, "goimagehash.ExtPerceptionHash")
	}
	return hash, nil
}

// Distance is the Hamming distance between the perceptual hashes of a and b.
func Distance(a, b image.Image, dim int) (int, error) {
	ha, err := Hash(a, dim)
	if err != nil {
		return -1, err
	}
	hb, err := Hash(b, dim)
	if err != nil {
		return -1, err
	}
	dist, err := ha.Distance(hb)
	if err != nil {
		return -1, errors.Wrap(err, "hash.Distance")
	}
	return dist, nil
}

func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Point{}, 1)
}

// MaxDistFromReference returns a filter function that accepts images whose
// perceptual hash is within maxDist of ref.
func MaxDistFromReference(ref image.Image, dim, maxDist int) (FilterFunc, error) {
	c := corpus.New("reference")
	c.Add("reference", imaging.Clone(ref))
	return maxDistFromHashes(c, dim, maxDist)
}

// MaxDistFromCorpus returns a filter function that accepts images that fall within maxDist of at least one corpus
// image when comparing the ExtPerceptionHash. It is safe for concurrent use.
func MaxDistFromCorpus(c *corpus.Corpus, dim, maxDist int) (FilterFunc, error) {
	return maxDistFromHashes(c, dim, maxDist)
}

func maxDistFromHashes(c *corpus.Corpus, dim, maxDist int) (FilterFunc, error) {
	hashes := make(map[string]*goimagehash.ExtImageHash, c.Len())
	for file, img := range c.ImagesMap() {
		hash, err := Hash(img, dim)
		if err != nil {
			return nil, errors.Wrap(err, file)
		}
		hashes[file] = hash
	}
	return func(ctx context.Context, img image.Image) (ok bool, err error) {
		log := logger.Entry(ctx)
		defer func() {
			log.Tracef("MaxDistFromCorpus(%s): %v %v", c.Name(), ok, err)
		}()
		hash, err := Hash(img, dim)
		if err != nil {
			return false, err
		}
		for file, refHash := range hashes {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			dist, err := hash.Distance(refHash)
			if err != nil {
				return false, errors.Wrap(err, "hash.Distance")
			}
			if dist <= maxDist {
				log.Tracef("MaxDistFromCorpus(%s/%s): %v <= %v", c.Name(), file, dist, maxDist)
				return true, nil
			}
		}
		return false, nil
	}, nil
}
