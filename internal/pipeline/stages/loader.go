package stages

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"ordinal-complexity/internal/models"
	"ordinal-complexity/internal/opencv/conversion"
	"ordinal-complexity/internal/opencv/safe"
	"ordinal-complexity/internal/pipeline"
)

// Loader decodes an image file into its intensity plane and a BGR Mat for
// mask construction.
type Loader struct {
	logger pipeline.Logger
	timing pipeline.TimingTracker
}

func NewLoader(log pipeline.Logger, tracker pipeline.TimingTracker) *Loader {
	return &Loader{
		logger: log,
		timing: tracker,
	}
}

// LoadFile reads path from disk. The caller owns the returned Mat.
func (l *Loader) LoadFile(ctx context.Context, path string) (*models.ImageData, *safe.Mat, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image data: %w", err)
	}

	imageData, mat, err := l.LoadFromBytes(ctx, data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, nil, err
	}
	imageData.Path = path
	return imageData, mat, nil
}

func (l *Loader) LoadFromBytes(ctx context.Context, data []byte, extension string) (*models.ImageData, *safe.Mat, error) {
	loadCtx := l.timing.StartTiming(ctx, "load")
	defer l.timing.EndTiming(loadCtx)

	img, standardLibFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if err := safe.ValidateDimensions(bounds.Dx(), bounds.Dy(), "image load"); err != nil {
		return nil, nil, err
	}

	mat, err := conversion.ImageToMat(img)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create BGR Mat: %w", err)
	}

	imageData := &models.ImageData{
		Format:   determineActualFormat(extension, standardLibFormat),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: channelCount(img.ColorModel()),
		Gray:     models.GrayFromImage(img),
		LoadTime: time.Now(),
		FileSize: int64(len(data)),
	}

	l.logger.Debug("ImageLoader", "image loaded", map[string]interface{}{
		"width":    imageData.Width,
		"height":   imageData.Height,
		"channels": imageData.Channels,
		"format":   imageData.Format,
		"bytes":    imageData.FileSize,
	})

	return imageData, mat, nil
}

func channelCount(model color.Model) int {
	switch model {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return 4
	default:
		return 3
	}
}

func determineActualFormat(extension, stdLibFormat string) string {
	switch extension {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	default:
		if stdLibFormat != "" {
			return stdLibFormat
		}
		return "unknown"
	}
}
