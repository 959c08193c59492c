package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel maps debug/info/warn/error to a zerolog level. An empty string
// falls back to the environment.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return LevelFromEnv(), nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}

// LevelFromEnv reads LOG_LEVEL, then DEBUG=1, defaulting to info.
func LevelFromEnv() zerolog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		if os.Getenv("DEBUG") == "1" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
}

// New builds a logger writing JSON lines or human-readable console lines to w.
func New(format string, level zerolog.Level, w io.Writer) (*ZerologAdapter, error) {
	switch strings.ToLower(format) {
	case "", FormatConsole:
		return NewConsoleLogger(w, level), nil
	case FormatJSON:
		return NewZerolog(w, level), nil
	default:
		return nil, fmt.Errorf("logger: unknown format %q", format)
	}
}
