package filter

import (
	"context"
	"image"
)

// FilterFunc is a function that evaluates if an image passes a filter. It must be safe for concurrent use.
type FilterFunc func(context.Context, image.Image) (bool, error)

// Multi passes an image only if every fxn passes it, stopping at the first
// rejection or error.
func Multi(fxns ...FilterFunc) FilterFunc {
	return func(ctx context.Context, img image.Image) (bool, error) {
		for _, fxn := range fxns {
			ok, err := fxn(ctx, img)
			if !ok || err != nil {
				return false, err
			}
		}
		return true, nil
	}
}
