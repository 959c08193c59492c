package filters

import (
	"context"

	"ordinal-complexity/internal/opencv/conversion"
	"ordinal-complexity/internal/opencv/safe"
)

// GrayscaleConverter reduces BGR or BGRA input to one luminance channel.
// Single-channel input is cloned.
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Name() string {
	return "grayscale"
}

func (g *GrayscaleConverter) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return conversion.ConvertToGrayscale(input)
}
