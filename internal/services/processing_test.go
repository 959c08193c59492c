package services_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordinal-complexity/internal/algorithms/permutation"
	"ordinal-complexity/internal/models"
	"ordinal-complexity/internal/processing/window"
	"ordinal-complexity/internal/services"
)

func newService() *services.ProcessingService {
	return services.NewProcessingService(permutation.NewCache(), nil, nil)
}

func TestAnalyze_ConstantImage(t *testing.T) {
	t.Parallel()

	img, err := models.GrayFromRows([][]float64{
		{128, 128, 128},
		{128, 128, 128},
		{128, 128, 128},
	})
	require.NoError(t, err)

	res, err := newService().Analyze(context.Background(), services.DefaultParams(), "flat", img, models.FullMask(3, 3))
	require.NoError(t, err)

	assert.Equal(t, "flat", res.Source)
	assert.Equal(t, 24, res.NPerm)
	assert.Equal(t, int64(4), res.WindowsUsed)
	assert.Equal(t, 1, res.BinsNonZero)
	assert.InDelta(t, 0.0, res.H, 1e-12)
	assert.InDelta(t, 0.0, res.C, 1e-12)
	assert.False(t, res.Degenerate())
}

func TestAnalyze_SingleWindow(t *testing.T) {
	t.Parallel()

	img, err := models.GrayFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	res, err := newService().Analyze(context.Background(), services.DefaultParams(), "tiny", img, models.FullMask(2, 2))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.WindowsUsed)
	assert.Equal(t, 1, res.BinsNonZero)
	assert.InDelta(t, 0.0, res.H, 1e-12)
	assert.InDelta(t, 0.0, res.C, 1e-12)
}

func TestAnalyze_EmptyMaskIsDegenerate(t *testing.T) {
	t.Parallel()

	img := models.NewGray(6, 6)
	res, err := newService().Analyze(context.Background(), services.DefaultParams(), "blank", img, models.NewMask(6, 6))
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.WindowsUsed)
	assert.Equal(t, 0, res.BinsNonZero)
	assert.Equal(t, 0.0, res.H)
	assert.True(t, res.Degenerate())
}

func TestAnalyze_NoiseIsNearMaximumEntropy(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	img := models.NewGray(200, 200)
	for i := range img.Pix {
		img.Pix[i] = rng.Float64()
	}

	params := services.DefaultParams()
	params.TileWorkers = 4
	res, err := newService().Analyze(context.Background(), params, "noise", img, models.FullMask(200, 200))
	require.NoError(t, err)

	assert.Equal(t, int64(199*199), res.WindowsUsed)
	assert.Equal(t, 24, res.BinsNonZero)
	assert.Greater(t, res.H, 0.99)
	assert.Less(t, res.C, 0.05)
}

func TestAnalyze_RejectsBadParameters(t *testing.T) {
	t.Parallel()

	svc := newService()
	img := models.NewGray(4, 4)
	mask := models.FullMask(4, 4)

	params := services.DefaultParams()
	params.DX = 0
	_, err := svc.Analyze(context.Background(), params, "x", img, mask)
	require.ErrorIs(t, err, permutation.ErrInvalidShape)

	params = services.DefaultParams()
	params.Rule = "edge"
	_, err = svc.Analyze(context.Background(), params, "x", img, mask)
	require.ErrorIs(t, err, window.ErrUnknownRule)

	params = services.DefaultParams()
	params.TileWorkers = 0
	_, err = svc.Analyze(context.Background(), params, "x", img, mask)
	require.ErrorIs(t, err, window.ErrInvalidWorkers)

	_, err = svc.Analyze(context.Background(), services.DefaultParams(), "x", img, models.FullMask(3, 4))
	require.ErrorIs(t, err, window.ErrShapeMismatch)
}

func TestAnalyze_RecordsTimings(t *testing.T) {
	t.Parallel()

	svc := newService()
	_, err := svc.Analyze(context.Background(), services.DefaultParams(), "x", models.NewGray(3, 3), models.FullMask(3, 3))
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Timing().Count("sweep"))
	assert.Equal(t, 1, svc.Timing().Count("stats"))
}
