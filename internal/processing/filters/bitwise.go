package filters

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"ordinal-complexity/internal/opencv/safe"
)

// InvertFilter flips every bit, turning a line map into a keep map.
type InvertFilter struct{}

func NewInvertFilter() *InvertFilter {
	return &InvertFilter{}
}

func (i *InvertFilter) Name() string {
	return "invert"
}

func (i *InvertFilter) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateMatForOperation(input, i.Name()); err != nil {
		return nil, err
	}

	dst, err := safe.Alloc(input.Rows(), input.Cols(), input.Type(), "inverted")
	if err != nil {
		return nil, err
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	gocv.BitwiseNot(srcMat, &dstMat)

	return dst, nil
}

// And returns the cell-wise AND of two single-channel Mats of equal size.
func And(a, b *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateSingleChannel(a, "and"); err != nil {
		return nil, err
	}
	if err := safe.ValidateSingleChannel(b, "and"); err != nil {
		return nil, err
	}
	if err := safe.ValidateSameSize(a, b, "and"); err != nil {
		return nil, err
	}

	dst, err := safe.Alloc(a.Rows(), a.Cols(), gocv.MatTypeCV8UC1, "and")
	if err != nil {
		return nil, fmt.Errorf("failed to create result Mat: %w", err)
	}

	aMat := a.GetMat()
	bMat := b.GetMat()
	dstMat := dst.GetMat()
	gocv.BitwiseAnd(aMat, bMat, &dstMat)

	return dst, nil
}
