package filters

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"ordinal-complexity/internal/opencv/safe"
)

// MorphologyFilter applies one morphological operation with a square
// rectangular kernel.
type MorphologyFilter struct {
	Op     gocv.MorphType
	Kernel int
	name   string
}

func NewOpenFilter(kernel int) *MorphologyFilter {
	return &MorphologyFilter{Op: gocv.MorphOpen, Kernel: kernel, name: "open"}
}

func NewCloseFilter(kernel int) *MorphologyFilter {
	return &MorphologyFilter{Op: gocv.MorphClose, Kernel: kernel, name: "close"}
}

func (m *MorphologyFilter) Name() string {
	return fmt.Sprintf("%s_%dx%d", m.name, m.Kernel, m.Kernel)
}

func (m *MorphologyFilter) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := validKernel(m.Kernel); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatForOperation(input, m.Name()); err != nil {
		return nil, err
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: m.Kernel, Y: m.Kernel})
	defer kernel.Close()

	result, err := safe.Alloc(input.Rows(), input.Cols(), input.Type(), m.name)
	if err != nil {
		return nil, fmt.Errorf("failed to create result Mat: %w", err)
	}

	srcMat := input.GetMat()
	resultMat := result.GetMat()
	gocv.MorphologyEx(srcMat, &resultMat, m.Op, kernel)

	return result, nil
}

// DilateFilter grows non-zero regions; Iterations of zero copies the input.
type DilateFilter struct {
	Kernel     int
	Iterations int
}

func NewDilateFilter(kernel, iterations int) *DilateFilter {
	return &DilateFilter{Kernel: kernel, Iterations: iterations}
}

func (d *DilateFilter) Name() string {
	return fmt.Sprintf("dilate_%dx%d_x%d", d.Kernel, d.Kernel, d.Iterations)
}

func (d *DilateFilter) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := validKernel(d.Kernel); err != nil {
		return nil, err
	}
	if d.Iterations < 0 {
		return nil, fmt.Errorf("dilate iterations must not be negative, got %d", d.Iterations)
	}
	if err := safe.ValidateMatForOperation(input, d.Name()); err != nil {
		return nil, err
	}

	result, err := input.Clone()
	if err != nil {
		return nil, err
	}
	if d.Iterations == 0 {
		return result, nil
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: d.Kernel, Y: d.Kernel})
	defer kernel.Close()

	tmp := gocv.NewMat()
	defer tmp.Close()

	resultMat := result.GetMat()
	for i := 0; i < d.Iterations; i++ {
		gocv.Dilate(resultMat, &tmp, kernel)
		tmp.CopyTo(&resultMat)
	}

	return result, nil
}
