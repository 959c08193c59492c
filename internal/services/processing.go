package services

import (
	"context"
	"fmt"
	"time"

	"ordinal-complexity/internal/algorithms/complexity"
	"ordinal-complexity/internal/algorithms/permutation"
	"ordinal-complexity/internal/debug/timing"
	"ordinal-complexity/internal/logger"
	"ordinal-complexity/internal/models"
	"ordinal-complexity/internal/processing/window"
)

// Params selects the window and inclusion rule of a measurement.
type Params struct {
	DX          int
	DY          int
	Rule        window.Rule
	TileWorkers int
}

// DefaultParams is a 2x2 window with the all-inside rule.
func DefaultParams() Params {
	return Params{
		DX:          2,
		DY:          2,
		Rule:        window.AllInside,
		TileWorkers: 1,
	}
}

func (p Params) Validate() error {
	if err := (permutation.Shape{DX: p.DX, DY: p.DY}).Validate(); err != nil {
		return err
	}
	if err := p.Rule.Validate(); err != nil {
		return err
	}
	if p.TileWorkers < 1 {
		return fmt.Errorf("%w: %d", window.ErrInvalidWorkers, p.TileWorkers)
	}
	return nil
}

// ProcessingService measures the ordinal-pattern entropy and complexity of
// intensity planes. It keeps no per-image state and can be shared across
// goroutines.
type ProcessingService struct {
	tables *permutation.Cache
	logger logger.Logger
	timing *timing.Tracker
}

func NewProcessingService(tables *permutation.Cache, log logger.Logger, tracker *timing.Tracker) *ProcessingService {
	if tables == nil {
		tables = permutation.Shared
	}
	if log == nil {
		log = logger.Nop{}
	}
	if tracker == nil {
		tracker = timing.NewTracker()
	}

	return &ProcessingService{
		tables: tables,
		logger: log,
		timing: tracker,
	}
}

// Analyze sweeps img under mask and returns the measurement. A run that
// accepts no window is not an error; the result reports WindowsUsed = 0.
func (ps *ProcessingService) Analyze(ctx context.Context, params Params, source string, img *models.Gray, mask *models.Mask) (models.Result, error) {
	startTime := time.Now()

	if err := params.Validate(); err != nil {
		return models.Result{}, fmt.Errorf("invalid parameters: %w", err)
	}

	table, err := ps.tables.Get(params.DX, params.DY)
	if err != nil {
		return models.Result{}, fmt.Errorf("pattern table: %w", err)
	}

	classifier, err := window.NewClassifier(table, params.Rule, window.WithWorkers(params.TileWorkers))
	if err != nil {
		return models.Result{}, err
	}

	sweepCtx := ps.timing.StartTiming(ctx, "sweep")
	hist, err := classifier.Sweep(sweepCtx, img, mask)
	ps.timing.EndTiming(sweepCtx)
	if err != nil {
		return models.Result{}, fmt.Errorf("window sweep failed: %w", err)
	}

	statsCtx := ps.timing.StartTiming(ctx, "stats")
	measures := complexity.Statistical(hist.Probabilities())
	ps.timing.EndTiming(statsCtx)

	result := models.Result{
		Source:      source,
		Rule:        params.Rule.String(),
		DX:          params.DX,
		DY:          params.DY,
		NPerm:       table.Len(),
		WindowsUsed: hist.Total(),
		BinsNonZero: hist.NonZero(),
		H:           measures.H,
		C:           measures.C,
		D:           measures.D,
		DStar:       measures.DStar,
		ProcessTime: time.Since(startTime),
	}

	if result.WindowsUsed == 0 {
		ps.logger.Warning("ProcessingService", "no windows accepted", map[string]interface{}{
			"source": source,
			"width":  img.Width,
			"height": img.Height,
			"window": table.Shape().String(),
			"rule":   result.Rule,
		})
	} else {
		ps.logger.Debug("ProcessingService", "image measured", map[string]interface{}{
			"source":       source,
			"windows_used": result.WindowsUsed,
			"bins_nonzero": result.BinsNonZero,
			"H":            result.H,
			"C":            result.C,
			"elapsed_ms":   result.ProcessTime.Milliseconds(),
		})
	}

	return result, nil
}

// Timing exposes the per-stage durations recorded so far.
func (ps *ProcessingService) Timing() *timing.Tracker {
	return ps.timing
}
