package pipeline

import (
	"context"
	"fmt"
	"sync"

	"ordinal-complexity/internal/models"
)

// Coordinator fans image files out to a bounded pool of analyzers and hands
// the results back in input order.
type Coordinator struct {
	analyzer   ImageAnalyzer
	logger     Logger
	timing     TimingTracker
	workerPool chan struct{}
}

func NewCoordinator(analyzer ImageAnalyzer, log Logger, tracker TimingTracker, workers int) *Coordinator {
	if workers < 1 {
		workers = 1
	}

	pool := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		pool <- struct{}{}
	}

	return &Coordinator{
		analyzer:   analyzer,
		logger:     log,
		timing:     tracker,
		workerPool: pool,
	}
}

func (c *Coordinator) Workers() int {
	return cap(c.workerPool)
}

// Run analyzes every path. A failing file is recorded in its Result.Err and
// the batch continues; only cancellation stops the run early, in which case
// the results emitted so far are returned with the context error.
func (c *Coordinator) Run(ctx context.Context, paths []string, sink ResultSink) ([]models.Result, error) {
	runCtx := c.timing.StartTiming(ctx, "batch")
	defer c.timing.EndTiming(runCtx)

	c.logger.Info("Coordinator", "batch started", map[string]interface{}{
		"files":   len(paths),
		"workers": c.Workers(),
	})

	results := make([]models.Result, len(paths))
	done := make([]bool, len(paths))
	next := 0

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		sinkErr error
	)

	release := func(i int, res models.Result) {
		mu.Lock()
		defer mu.Unlock()

		results[i] = res
		done[i] = true
		for next < len(paths) && done[next] {
			if sink != nil && sinkErr == nil {
				sinkErr = sink.Emit(results[next])
			}
			next++
		}
	}

dispatch:
	for i, path := range paths {
		select {
		case <-c.workerPool:
		case <-ctx.Done():
			break dispatch
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { c.workerPool <- struct{}{} }()

			release(i, c.analyzeOne(ctx, path))
		}(i, path)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		c.logger.Warning("Coordinator", "batch cancelled", map[string]interface{}{
			"completed": next,
			"files":     len(paths),
		})
		return results[:next], err
	}
	if sinkErr != nil {
		return results, fmt.Errorf("result sink: %w", sinkErr)
	}

	stats := models.Summarize(results)
	c.logger.Info("Coordinator", "batch finished", map[string]interface{}{
		"files":      stats.Total,
		"failed":     stats.Failed,
		"degenerate": stats.Degenerate,
	})

	return results, nil
}

func (c *Coordinator) analyzeOne(ctx context.Context, path string) models.Result {
	fileCtx := c.timing.StartTiming(ctx, "analyze")
	defer c.timing.EndTiming(fileCtx)

	res, err := c.analyzer.Analyze(ctx, path)
	if err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"file": path,
		})
		return models.Result{Source: path, Err: err}
	}

	res.Source = path
	return res
}
