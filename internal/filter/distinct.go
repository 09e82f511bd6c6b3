package filter

import (
	"context"
	"image"
	"sync"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/logger"
	"github.com/corona10/goimagehash"
	"github.com/pkg/errors"
)

// Distinct returns a filter function that rejects images whose
// ExtPerceptionHash is within minDist of an image it already accepted.
// Acceptance order decides which of two near-duplicates survives.
func Distinct(dim, minDist int) FilterFunc {
	var (
		mutex    sync.Mutex
		accepted []*goimagehash.ExtImageHash
	)

	return func(ctx context.Context, img image.Image) (bool, error) {
		log := logger.Entry(ctx)

		hash, err := Hash(img, dim)
		if err != nil {
			return false, err
		}

		mutex.Lock()
		defer mutex.Unlock()
		for _, prev := range accepted {
			distance, err := prev.Distance(hash)
			if err != nil {
				return false, errors.Wrap(err, "ExtPerceptionHash Distance error")
			}
			if distance < minDist {
				log.Tracef("ExtPerceptionHash distance is %d, threshold is %d", distance, minDist)
				return false, nil
			}
		}
		accepted = append(accepted, hash)
		return true, nil
	}
}
