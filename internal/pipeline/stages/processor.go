package stages

import (
	"context"
	"fmt"

	"ordinal-complexity/internal/algorithms"
	"ordinal-complexity/internal/config"
	"ordinal-complexity/internal/models"
	"ordinal-complexity/internal/opencv/safe"
	"ordinal-complexity/internal/pipeline"
	"ordinal-complexity/internal/services"
)

// Processor chains load, mask and measurement for one file. It is safe for
// concurrent use; the template is read-only after construction.
type Processor struct {
	loader       *Loader
	masks        *algorithms.Manager
	service      *services.ProcessingService
	params       services.Params
	maskMode     string
	template     *safe.Mat
	templateName string
	logger       pipeline.Logger
	timing       pipeline.TimingTracker
}

func NewProcessor(cfg config.Config, service *services.ProcessingService, log pipeline.Logger, tracker pipeline.TimingTracker) (*Processor, error) {
	rule, err := cfg.Rule()
	if err != nil {
		return nil, err
	}

	masks := algorithms.NewManager(cfg.Mask)
	if _, err := masks.GetBuilder(cfg.MaskMode); err != nil {
		return nil, err
	}

	template, _, err := LoadTemplate(cfg.TemplateDir, cfg.TemplateName, cfg.Mask.TemplateExtList, log)
	if err != nil {
		return nil, err
	}

	return &Processor{
		loader:  NewLoader(log, tracker),
		masks:   masks,
		service: service,
		params: services.Params{
			DX:          cfg.DX,
			DY:          cfg.DY,
			Rule:        rule,
			TileWorkers: cfg.TileWorkers,
		},
		maskMode:     cfg.MaskMode,
		template:     template,
		templateName: cfg.TemplateName,
		logger:       log,
		timing:       tracker,
	}, nil
}

// Analyze implements pipeline.ImageAnalyzer.
func (p *Processor) Analyze(ctx context.Context, path string) (models.Result, error) {
	imageData, bgr, err := p.loader.LoadFile(ctx, path)
	if err != nil {
		return models.Result{}, err
	}
	defer bgr.Close()

	maskCtx := p.timing.StartTiming(ctx, "mask")
	mask, err := p.masks.BuildMask(ctx, p.maskMode, bgr, p.template)
	p.timing.EndTiming(maskCtx)
	if err != nil {
		return models.Result{}, fmt.Errorf("mask construction failed: %w", err)
	}

	p.logger.Debug("ImageProcessor", "mask built", map[string]interface{}{
		"file":     path,
		"mode":     p.maskMode,
		"included": mask.Included(),
		"pixels":   mask.Width * mask.Height,
	})

	result, err := p.service.Analyze(ctx, p.params, path, imageData.Gray, mask)
	if err != nil {
		return models.Result{}, err
	}

	result.Template = p.templateName
	result.MaskMode = p.maskMode
	return result, nil
}

// Close releases the template Mat.
func (p *Processor) Close() {
	if p.template != nil {
		p.template.Close()
	}
}
