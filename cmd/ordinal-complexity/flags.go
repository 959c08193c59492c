package main

import (
	"flag"
	"fmt"
	"io"

	"ordinal-complexity/internal/config"
)

type cliFlags struct {
	configPath  string
	showVersion bool
	values      config.Config
}

// parseArgs builds the run configuration: defaults, then the --config file
// if given, then every flag set explicitly on the command line.
func parseArgs(args []string, output io.Writer) (config.Config, bool, error) {
	defaults := config.Default()
	cli := cliFlags{values: defaults}

	fs := flag.NewFlagSet("ordinal-complexity", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: ordinal-complexity --path <file|dir> [options]")
		fmt.Fprintln(output, "Ordinal-pattern permutation entropy and statistical complexity of images.")
		fmt.Fprintln(output)
		fs.PrintDefaults()
	}

	v := &cli.values
	fs.StringVar(&cli.configPath, "config", "", "YAML or TOML configuration file")
	fs.BoolVar(&cli.showVersion, "version", false, "print version and exit")
	fs.StringVar(&v.Path, "path", "", "image file or directory (required)")
	fs.StringVar(&v.TemplateDir, "tmpldir", "", "template directory")
	fs.StringVar(&v.TemplateName, "tmplname", "", "template name without extension")
	fs.StringVar(&v.MaskMode, "maskmode", defaults.MaskMode, "mask mode: stencil, lines or hybrid")
	fs.IntVar(&v.DX, "dx", defaults.DX, "window width")
	fs.IntVar(&v.DY, "dy", defaults.DY, "window height")
	fs.StringVar(&v.Include, "include", defaults.Include, "window rule: all4 (all-inside) or center")
	fs.StringVar(&v.SaveCSV, "save-csv", "", "write results to this CSV file")
	fs.IntVar(&v.Workers, "workers", defaults.Workers, "images analyzed in parallel")
	fs.IntVar(&v.TileWorkers, "tile-workers", defaults.TileWorkers, "row bands swept in parallel per image")
	fs.StringVar(&v.LogLevel, "log-level", "", "debug, info, warn or error (default from LOG_LEVEL)")
	fs.StringVar(&v.LogFormat, "log-format", defaults.LogFormat, "console or json")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, false, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, false, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cli.showVersion {
		return config.Config{}, true, nil
	}

	cfg := defaults
	if cli.configPath != "" {
		loaded, err := config.Load(cli.configPath)
		if err != nil {
			return config.Config{}, false, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.Path = v.Path
		case "tmpldir":
			cfg.TemplateDir = v.TemplateDir
		case "tmplname":
			cfg.TemplateName = v.TemplateName
		case "maskmode":
			cfg.MaskMode = v.MaskMode
		case "dx":
			cfg.DX = v.DX
		case "dy":
			cfg.DY = v.DY
		case "include":
			cfg.Include = v.Include
		case "save-csv":
			cfg.SaveCSV = v.SaveCSV
		case "workers":
			cfg.Workers = v.Workers
		case "tile-workers":
			cfg.TileWorkers = v.TileWorkers
		case "log-level":
			cfg.LogLevel = v.LogLevel
		case "log-format":
			cfg.LogFormat = v.LogFormat
		}
	})

	return cfg, false, nil
}
