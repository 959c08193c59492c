package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordinal-complexity/internal/logger"
)

func TestZerologAdapter_WritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewZerolog(&buf, zerolog.DebugLevel)

	log.Info("Coordinator", "batch started", map[string]interface{}{"files": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Coordinator", entry["component"])
	assert.Equal(t, "batch started", entry["message"])
	assert.EqualValues(t, 3, entry["files"])
}

func TestZerologAdapter_ErrorCarriesCause(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewZerolog(&buf, zerolog.InfoLevel).With("run_id", "r1")

	log.Error("Loader", errors.New("no such file"), nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "no such file", entry["error"])
	assert.Equal(t, "r1", entry["run_id"])
}

func TestZerologAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("X", "hidden", nil)
	log.Info("X", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Warning("X", "shown", nil)
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
	}
	for in, want := range cases {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseLevel("loud")
	require.Error(t, err)
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "1")
	assert.Equal(t, zerolog.DebugLevel, logger.LevelFromEnv())

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, zerolog.ErrorLevel, logger.LevelFromEnv())
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := logger.New("xml", zerolog.InfoLevel, &bytes.Buffer{})
	require.Error(t, err)

	log, err := logger.New(logger.FormatJSON, zerolog.InfoLevel, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNew_ConsoleWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.FormatConsole, zerolog.InfoLevel, &buf)
	require.NoError(t, err)

	log.Info("Coordinator", "batch finished", map[string]interface{}{"files": 2})

	out := buf.String()
	assert.Contains(t, out, "batch finished")
	assert.Contains(t, out, "files=2")
	assert.Contains(t, out, "INF")
}
