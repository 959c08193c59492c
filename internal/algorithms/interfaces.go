package algorithms

import (
	"context"

	"ordinal-complexity/internal/opencv/safe"
)

// MaskBuilder derives the inclusion mask of one image from its BGR pixels and
// a single-channel keep map of the same size.
type MaskBuilder interface {
	Build(ctx context.Context, bgr, keep *safe.Mat) (*safe.Mat, error)
	Name() string
}
