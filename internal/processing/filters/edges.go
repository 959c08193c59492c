package filters

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"ordinal-complexity/internal/opencv/safe"
)

// CannyFilter marks edges of a grayscale Mat with 255.
type CannyFilter struct {
	Low  float32
	High float32
}

func NewCannyFilter(low, high float32) *CannyFilter {
	return &CannyFilter{Low: low, High: high}
}

func (c *CannyFilter) Name() string {
	return fmt.Sprintf("canny_%g_%g", c.Low, c.High)
}

func (c *CannyFilter) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateSingleChannel(input, c.Name()); err != nil {
		return nil, err
	}
	if c.Low > c.High {
		return nil, fmt.Errorf("canny low threshold %g above high threshold %g", c.Low, c.High)
	}

	dst, err := safe.Alloc(input.Rows(), input.Cols(), gocv.MatTypeCV8UC1, "edges")
	if err != nil {
		return nil, fmt.Errorf("failed to create edge Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	gocv.Canny(srcMat, &dstMat, c.Low, c.High)

	return dst, nil
}
