package filter

import (
	"context"
	"image"
	"sort"

	"github.com/pkg/errors"
)

type Candidate struct {
	Name  string
	Image image.Image
}

type Score struct {
	Name     string
	Distance int
}

// Rank orders candidates by perceptual distance to ref, closest first. Ties
// keep candidate order.
func Rank(ctx context.Context, ref image.Image, dim int, candidates []Candidate) ([]Score, error) {
	refHash, err := Hash(ref, dim)
	if err != nil {
		return nil, errors.Wrap(err, "reference")
	}
	scores := make([]Score, 0, len(candidates))
	for _, c := range candidates {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		hash, err := Hash(c.Image, dim)
		if err != nil {
			return nil, errors.Wrap(err, c.Name)
		}
		dist, err := refHash.Distance(hash)
		if err != nil {
			return nil, errors.Wrap(err, "hash.Distance")
		}
		scores = append(scores, Score{Name: c.Name, Distance: dist})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Distance < scores[j].Distance
	})
	return scores, nil
}
