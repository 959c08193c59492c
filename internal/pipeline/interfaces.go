package pipeline

import (
	"context"

	"ordinal-complexity/internal/models"
)

// ImageAnalyzer measures one image file end to end: decode, mask, sweep.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, path string) (models.Result, error)
}

// ResultSink receives results in input order as soon as every earlier file
// has finished.
type ResultSink interface {
	Emit(result models.Result) error
}

// SinkFunc adapts a function to ResultSink.
type SinkFunc func(result models.Result) error

func (f SinkFunc) Emit(result models.Result) error {
	return f(result)
}
