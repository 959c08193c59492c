package algorithms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"ordinal-complexity/internal/algorithms/mask"
	"ordinal-complexity/internal/config"
	"ordinal-complexity/internal/models"
	"ordinal-complexity/internal/opencv/conversion"
	"ordinal-complexity/internal/opencv/safe"
	"ordinal-complexity/internal/processing/chain"
)

var ErrUnknownMaskMode = errors.New("algorithms: unknown mask mode")

// Manager maps mask mode names to builders and applies the shared cleanup
// pass to whatever a builder returns.
type Manager struct {
	builders map[string]MaskBuilder
	cleanup  *chain.ProcessingChain
	mu       sync.RWMutex
}

func NewManager(cfg config.MaskConfig) *Manager {
	manager := &Manager{
		builders: make(map[string]MaskBuilder),
		cleanup:  mask.Cleanup(cfg),
	}

	manager.registerBuilders(cfg)

	return manager
}

func (m *Manager) registerBuilders(cfg config.MaskConfig) {
	m.Register(mask.NewStencil())
	m.Register(mask.NewLines(cfg))
	m.Register(mask.NewHybrid(cfg))
}

// Register adds or replaces the builder under its name.
func (m *Manager) Register(builder MaskBuilder) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.builders[strings.ToLower(builder.Name())] = builder
}

func (m *Manager) GetBuilder(mode string) (MaskBuilder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if builder, exists := m.builders[strings.ToLower(strings.TrimSpace(mode))]; exists {
		return builder, nil
	}

	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownMaskMode, mode, strings.Join(m.availableLocked(), ", "))
}

func (m *Manager) GetAvailableModes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.availableLocked()
}

func (m *Manager) availableLocked() []string {
	modes := make([]string, 0, len(m.builders))
	for name := range m.builders {
		modes = append(modes, name)
	}
	sort.Strings(modes)
	return modes
}

// BuildMask derives the mask of bgr under mode. A nil template keeps the
// whole image; a template of another size is resized with nearest-neighbour
// sampling first.
func (m *Manager) BuildMask(ctx context.Context, mode string, bgr, template *safe.Mat) (*models.Mask, error) {
	builder, err := m.GetBuilder(mode)
	if err != nil {
		return nil, err
	}
	if err := safe.ValidateMatForOperation(bgr, "mask build"); err != nil {
		return nil, err
	}

	keep, err := keepMap(bgr, template)
	if err != nil {
		return nil, fmt.Errorf("template keep map: %w", err)
	}
	defer keep.Close()

	raw, err := builder.Build(ctx, bgr, keep)
	if err != nil {
		return nil, fmt.Errorf("%s mask: %w", builder.Name(), err)
	}
	defer raw.Close()

	cleaned, err := m.cleanup.Execute(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("mask cleanup: %w", err)
	}
	defer cleaned.Close()

	return conversion.MatToMask(cleaned)
}

func keepMap(bgr, template *safe.Mat) (*safe.Mat, error) {
	width, height := bgr.Cols(), bgr.Rows()

	if template == nil {
		return conversion.MaskToMat(models.FullMask(width, height))
	}

	gray, err := conversion.ConvertToGrayscale(template)
	if err != nil {
		return nil, err
	}
	if gray.Cols() == width && gray.Rows() == height {
		return gray, nil
	}
	defer gray.Close()

	return conversion.ResizeNearest(gray, width, height)
}
