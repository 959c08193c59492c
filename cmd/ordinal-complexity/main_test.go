package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BatchWithCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x*37 + y*91) % 251)})
		}
	}
	f, err := os.Create(filepath.Join(dir, "page.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("nope"), 0o644))

	csvPath := filepath.Join(t.TempDir(), "out.csv")
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"--path", dir,
		"--save-csv", csvPath,
		"--workers", "2",
		"--log-level", "error",
		"--log-format", "json",
	}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "[ERR] broken.jpg:"))
	assert.Contains(t, lines[1], "page.png")
	assert.Contains(t, lines[1], "win=     49")
	assert.Contains(t, lines[1], "mode=stencil")
	assert.Equal(t, "saved → "+csvPath, lines[2])

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	rows := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff")), "\n")
	require.Len(t, rows, 3)
	assert.True(t, strings.HasPrefix(rows[0], "file,tmpl,maskmode"))
}

func TestRun_UnknownMaskMode(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--path", t.TempDir(), "--maskmode", "outline", "--log-format", "json"}, &stdout, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "unknown mask mode")
}

func TestRun_ConsoleLogsGoToStderr(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--path", t.TempDir(), "--log-format", "console", "--log-level", "info"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	assert.Contains(t, stderr.String(), "run finished")
	assert.NotContains(t, stdout.String(), "run finished")
}

func TestRun_EmptyDirectoryStillWritesCSVHeader(t *testing.T) {
	t.Parallel()

	csvPath := filepath.Join(t.TempDir(), "empty.csv")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--path", t.TempDir(), "--save-csv", csvPath, "--log-format", "json"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "\ufefffile,tmpl,maskmode,dx,dy,n_perm,windows_used,bins_nonzero,H,C,error,run_id\n", string(data))
	assert.Contains(t, stdout.String(), "saved → "+csvPath)
}
