package chain

import (
	"context"
	"fmt"

	"ordinal-complexity/internal/opencv/safe"
)

type ProcessingStep interface {
	Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error)
	Name() string
}

// ProcessingChain runs steps in order, releasing every intermediate Mat.
// The input is never closed.
type ProcessingChain struct {
	steps []ProcessingStep
}

func NewProcessingChain(steps ...ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

func (pc *ProcessingChain) Execute(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	if len(pc.steps) == 0 {
		return input.Clone()
	}

	current := input
	release := func() {
		if current != input {
			current.Close()
		}
	}

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		default:
		}

		result, err := step.Apply(ctx, current)
		if err != nil {
			release()
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		release()
		current = result
	}

	return current, nil
}
