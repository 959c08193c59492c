package filters

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"ordinal-complexity/internal/opencv/safe"
)

// GaussianFilter blurs with a square kernel. A zero Sigma lets OpenCV derive
// it from the kernel size.
type GaussianFilter struct {
	Kernel int
	Sigma  float64
}

func NewGaussianFilter(kernel int, sigma float64) *GaussianFilter {
	return &GaussianFilter{Kernel: kernel, Sigma: sigma}
}

func (g *GaussianFilter) Name() string {
	return fmt.Sprintf("gaussian_%dx%d", g.Kernel, g.Kernel)
}

func (g *GaussianFilter) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := validKernel(g.Kernel); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatForOperation(input, g.Name()); err != nil {
		return nil, err
	}

	dst, err := safe.Alloc(input.Rows(), input.Cols(), input.Type(), "blur")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	gocv.GaussianBlur(srcMat, &dstMat, image.Point{X: g.Kernel, Y: g.Kernel}, g.Sigma, g.Sigma, gocv.BorderDefault)

	return dst, nil
}

func validKernel(k int) error {
	if k < 1 || k%2 == 0 {
		return fmt.Errorf("kernel size must be a positive odd number, got %d", k)
	}
	return nil
}
