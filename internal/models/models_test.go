package models_test

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordinal-complexity/internal/models"
)

func TestGrayFromImage_AveragesChannels(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 30, G: 60, B: 90, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 1, A: 255})

	g := models.GrayFromImage(img)
	require.Equal(t, 2, g.Width)
	require.Equal(t, 1, g.Height)
	assert.InDelta(t, 60.0, g.At(0, 0), 1e-12)
	assert.InDelta(t, 256.0/3.0, g.At(1, 0), 1e-12)
}

func TestGrayFromImage_OffsetBounds(t *testing.T) {
	t.Parallel()

	img := image.NewGray(image.Rect(5, 5, 7, 7))
	img.SetGray(6, 6, color.Gray{Y: 9})

	g := models.GrayFromImage(img)
	assert.Equal(t, 9.0, g.At(1, 1))
	assert.Equal(t, 0.0, g.At(0, 0))
}

func TestGray_Window(t *testing.T) {
	t.Parallel()

	g, err := models.GrayFromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 6, 8, 9}, g.Window(1, 1, 2, 2, nil))
	assert.Equal(t, []float64{1, 2, 3}, g.Window(0, 0, 3, 1, make([]float64, 0, 9)))
}

func TestFromRows_Ragged(t *testing.T) {
	t.Parallel()

	_, err := models.GrayFromRows([][]float64{{1, 2}, {3}})
	require.Error(t, err)

	_, err = models.MaskFromRows([][]uint8{{1}, {1, 1}})
	require.Error(t, err)
}

func TestMask_Coverage(t *testing.T) {
	t.Parallel()

	m, err := models.MaskFromRows([][]uint8{
		{1, 1, 0},
		{1, 1, 1},
	})
	require.NoError(t, err)

	assert.True(t, m.Covered(0, 0, 2, 2))
	assert.False(t, m.Covered(1, 0, 2, 2))
	assert.True(t, m.Counts(2, 1))
	assert.False(t, m.Counts(2, 0))
	assert.Equal(t, 5, m.Included())
	assert.Equal(t, 6, models.FullMask(3, 2).Included())
	assert.Equal(t, 0, models.NewMask(3, 2).Included())
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	results := []models.Result{
		{Source: "a", WindowsUsed: 10, ProcessTime: 2 * time.Millisecond},
		{Source: "b", WindowsUsed: 0, ProcessTime: 4 * time.Millisecond},
		{Source: "c", Err: errors.New("decode failed")},
	}

	stats := models.Summarize(results)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Succeeded)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Degenerate)
	assert.Equal(t, 3*time.Millisecond, stats.AverageTime)

	assert.True(t, results[1].Degenerate())
	assert.False(t, results[2].Degenerate())
}
