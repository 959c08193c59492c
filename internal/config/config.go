// Package config holds the run configuration: defaults, an optional YAML or
// TOML file, and command-line overrides applied on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ordinal-complexity/internal/algorithms/permutation"
	"ordinal-complexity/internal/processing/window"
)

var (
	ErrMissingPath    = errors.New("config: path is required")
	ErrUnknownFormat  = errors.New("config: unsupported config file extension")
	ErrInvalidWorkers = errors.New("config: worker counts must be positive")
	ErrInvalidMask    = errors.New("config: invalid mask parameters")
)

// MaskConfig carries every threshold of the mask construction stage.
type MaskConfig struct {
	LinesLow        float32  `yaml:"lines_low" toml:"lines_low"`
	LinesHigh       float32  `yaml:"lines_high" toml:"lines_high"`
	HybridLow       float32  `yaml:"hybrid_low" toml:"hybrid_low"`
	HybridHigh      float32  `yaml:"hybrid_high" toml:"hybrid_high"`
	BlurKernel      int      `yaml:"blur_kernel" toml:"blur_kernel"`
	DilateKernel    int      `yaml:"dilate_kernel" toml:"dilate_kernel"`
	DilateIter      int      `yaml:"dilate_iterations" toml:"dilate_iterations"`
	OpenKernel      int      `yaml:"open_kernel" toml:"open_kernel"`
	CloseKernel     int      `yaml:"close_kernel" toml:"close_kernel"`
	TemplateExtList []string `yaml:"template_extensions" toml:"template_extensions"`
}

// Config is the complete run configuration.
type Config struct {
	Path         string     `yaml:"path" toml:"path"`
	TemplateDir  string     `yaml:"template_dir" toml:"template_dir"`
	TemplateName string     `yaml:"template_name" toml:"template_name"`
	MaskMode     string     `yaml:"mask_mode" toml:"mask_mode"`
	DX           int        `yaml:"dx" toml:"dx"`
	DY           int        `yaml:"dy" toml:"dy"`
	Include      string     `yaml:"include" toml:"include"`
	SaveCSV      string     `yaml:"save_csv" toml:"save_csv"`
	Workers      int        `yaml:"workers" toml:"workers"`
	TileWorkers  int        `yaml:"tile_workers" toml:"tile_workers"`
	LogLevel     string     `yaml:"log_level" toml:"log_level"`
	LogFormat    string     `yaml:"log_format" toml:"log_format"`
	Mask         MaskConfig `yaml:"mask" toml:"mask"`
}

// DefaultMask returns the thresholds tuned for scanned coloring sheets.
func DefaultMask() MaskConfig {
	return MaskConfig{
		LinesLow:        100,
		LinesHigh:       200,
		HybridLow:       80,
		HybridHigh:      160,
		BlurKernel:      3,
		DilateKernel:    3,
		DilateIter:      1,
		OpenKernel:      3,
		CloseKernel:     3,
		TemplateExtList: []string{".png", ".jpg", ".jpeg"},
	}
}

func Default() Config {
	return Config{
		MaskMode:    "stencil",
		DX:          2,
		DY:          2,
		Include:     string(window.AllInside),
		Workers:     runtime.NumCPU(),
		TileWorkers: 1,
		LogFormat:   "console",
		Mask:        DefaultMask(),
	}
}

// Load reads path over the defaults. The format follows the extension.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	return cfg, nil
}

// Rule parses Include.
func (c Config) Rule() (window.Rule, error) {
	return window.ParseRule(c.Include)
}

// Validate rejects configurations that cannot start a run.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return ErrMissingPath
	}
	if err := (permutation.Shape{DX: c.DX, DY: c.DY}).Validate(); err != nil {
		return err
	}
	if _, err := c.Rule(); err != nil {
		return err
	}
	if c.Workers < 1 || c.TileWorkers < 1 {
		return fmt.Errorf("%w: workers=%d tile_workers=%d", ErrInvalidWorkers, c.Workers, c.TileWorkers)
	}
	return c.Mask.Validate()
}

func (m MaskConfig) Validate() error {
	for name, k := range map[string]int{
		"blur_kernel":   m.BlurKernel,
		"dilate_kernel": m.DilateKernel,
		"open_kernel":   m.OpenKernel,
		"close_kernel":  m.CloseKernel,
	} {
		if k < 1 || k%2 == 0 {
			return fmt.Errorf("%w: %s must be a positive odd size, got %d", ErrInvalidMask, name, k)
		}
	}
	if m.DilateIter < 0 {
		return fmt.Errorf("%w: dilate_iterations must not be negative", ErrInvalidMask)
	}
	if m.LinesLow > m.LinesHigh || m.HybridLow > m.HybridHigh {
		return fmt.Errorf("%w: low threshold above high threshold", ErrInvalidMask)
	}
	if len(m.TemplateExtList) == 0 {
		return fmt.Errorf("%w: no template extensions", ErrInvalidMask)
	}
	return nil
}
