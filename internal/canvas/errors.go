package canvas

import "github.com/pkg/errors"

// Error kinds shared by the synthesis and post-processing stages. Stages wrap
// them with context; test for them with errors.Is.
var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrEmptyContent      = errors.New("canvas has no content")
)
