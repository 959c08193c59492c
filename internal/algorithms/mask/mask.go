// Package mask builds inclusion masks from a color image and a keep map
// derived from the template. Every builder returns a single-channel Mat of
// the image size where non-zero cells may be counted.
package mask

import (
	"context"
	"fmt"

	"ordinal-complexity/internal/config"
	"ordinal-complexity/internal/opencv/safe"
	"ordinal-complexity/internal/processing/chain"
	"ordinal-complexity/internal/processing/filters"
)

const (
	ModeStencil = "stencil"
	ModeLines   = "lines"
	ModeHybrid  = "hybrid"
)

// Stencil uses the keep map as is.
type Stencil struct{}

func NewStencil() *Stencil {
	return &Stencil{}
}

func (s *Stencil) Name() string {
	return ModeStencil
}

func (s *Stencil) Build(ctx context.Context, bgr, keep *safe.Mat) (*safe.Mat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkInputs(bgr, keep); err != nil {
		return nil, err
	}
	return keep.Clone()
}

// Lines removes dilated Canny edges of the image from the keep map.
type Lines struct {
	lines *chain.ProcessingChain
}

func NewLines(cfg config.MaskConfig) *Lines {
	return &Lines{
		lines: chain.NewProcessingChain(
			filters.NewGrayscaleConverter(),
			filters.NewCannyFilter(cfg.LinesLow, cfg.LinesHigh),
			filters.NewDilateFilter(cfg.DilateKernel, cfg.DilateIter),
			filters.NewInvertFilter(),
		),
	}
}

func (l *Lines) Name() string {
	return ModeLines
}

func (l *Lines) Build(ctx context.Context, bgr, keep *safe.Mat) (*safe.Mat, error) {
	return keepOffLines(ctx, l.lines, bgr, keep)
}

// Hybrid is Lines with a Gaussian pre-blur and lower Canny thresholds, which
// keeps faint strokes of scanned sheets in the line map.
type Hybrid struct {
	lines *chain.ProcessingChain
}

func NewHybrid(cfg config.MaskConfig) *Hybrid {
	return &Hybrid{
		lines: chain.NewProcessingChain(
			filters.NewGrayscaleConverter(),
			filters.NewGaussianFilter(cfg.BlurKernel, 0),
			filters.NewCannyFilter(cfg.HybridLow, cfg.HybridHigh),
			filters.NewDilateFilter(cfg.DilateKernel, cfg.DilateIter),
			filters.NewInvertFilter(),
		),
	}
}

func (h *Hybrid) Name() string {
	return ModeHybrid
}

func (h *Hybrid) Build(ctx context.Context, bgr, keep *safe.Mat) (*safe.Mat, error) {
	return keepOffLines(ctx, h.lines, bgr, keep)
}

// Cleanup is the open-then-close pass applied after every builder.
func Cleanup(cfg config.MaskConfig) *chain.ProcessingChain {
	return chain.NewProcessingChain(
		filters.NewOpenFilter(cfg.OpenKernel),
		filters.NewCloseFilter(cfg.CloseKernel),
	)
}

func keepOffLines(ctx context.Context, lines *chain.ProcessingChain, bgr, keep *safe.Mat) (*safe.Mat, error) {
	if err := checkInputs(bgr, keep); err != nil {
		return nil, err
	}

	offLines, err := lines.Execute(ctx, bgr)
	if err != nil {
		return nil, fmt.Errorf("line map: %w", err)
	}
	defer offLines.Close()

	return filters.And(offLines, keep)
}

func checkInputs(bgr, keep *safe.Mat) error {
	if err := safe.ValidateMatForOperation(bgr, "mask build"); err != nil {
		return err
	}
	if err := safe.ValidateSingleChannel(keep, "mask build"); err != nil {
		return err
	}
	return safe.ValidateSameSize(bgr, keep, "mask build")
}
