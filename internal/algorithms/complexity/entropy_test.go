package complexity_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordinal-complexity/internal/algorithms/complexity"
)

const eps = 1e-9

func oneHot(n, at int) []float64 {
	p := make([]float64, n)
	p[at] = 1
	return p
}

func TestShannon_ZeroBinsContributeNothing(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0, complexity.Shannon(oneHot(6, 2)), eps)
	assert.InDelta(t, math.Log(2), complexity.Shannon([]float64{0.5, 0, 0.5, 0}), eps)
	assert.InDelta(t, 0, complexity.Shannon(make([]float64, 5)), eps)
}

func TestNormalizedEntropy_Extremes(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 6, 24, 720} {
		assert.InDelta(t, 1, complexity.NormalizedEntropy(complexity.Uniform(n)), eps, "uniform n=%d", n)
		assert.InDelta(t, 0, complexity.NormalizedEntropy(oneHot(n, n-1)), eps, "one-hot n=%d", n)
	}

	assert.Equal(t, 0.0, complexity.NormalizedEntropy([]float64{1}))
	assert.Equal(t, 0.0, complexity.NormalizedEntropy(nil))
}

func TestStatistical_UniformHasNoComplexity(t *testing.T) {
	t.Parallel()

	m := complexity.Statistical(complexity.Uniform(24))
	assert.InDelta(t, 1.0, m.H, 1e-6)
	assert.InDelta(t, 0.0, m.C, 1e-6)
	assert.InDelta(t, 0.0, m.D, 1e-9)
}

func TestStatistical_OneHotReachesDStar(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 24, 120} {
		m := complexity.Statistical(oneHot(n, 0))
		assert.InDelta(t, m.DStar, m.D, 1e-9, "n=%d", n)
		assert.InDelta(t, 0.0, m.H, eps)
		assert.InDelta(t, 0.0, m.C, eps)
	}
}

func TestDStar(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, complexity.DStar(1), eps)
	assert.Equal(t, 0.0, complexity.DStar(0))

	// Closed form for n = 2: -1/2 * (3/2 ln 3 + ln 2 - 2 ln 4).
	want := -0.5 * (1.5*math.Log(3) + math.Log(2) - 2*math.Log(4))
	assert.InDelta(t, want, complexity.DStar(2), eps)
	assert.Greater(t, complexity.DStar(24), 0.0)
}

func TestStatistical_SingleBinIsZero(t *testing.T) {
	t.Parallel()

	m := complexity.Statistical([]float64{1})
	assert.Equal(t, 0.0, m.H)
	assert.Equal(t, 0.0, m.C)
}

func TestStatistical_ZeroDistribution(t *testing.T) {
	t.Parallel()

	m := complexity.Statistical(make([]float64, 24))
	assert.Equal(t, 0.0, m.H)
	assert.False(t, math.IsNaN(m.C))
}

func TestStatistical_BoundsOnRandomDistributions(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(60)
		p := make([]float64, n)
		var sum float64
		for i := range p {
			if rng.Float64() < 0.3 {
				continue
			}
			p[i] = rng.Float64()
			sum += p[i]
		}
		if sum == 0 {
			p[0], sum = 1, 1
		}
		for i := range p {
			p[i] /= sum
		}

		m := complexity.Statistical(p)
		require.GreaterOrEqual(t, m.H, -eps)
		require.LessOrEqual(t, m.H, 1+eps)
		require.GreaterOrEqual(t, m.D, -eps)
		require.LessOrEqual(t, m.D, m.DStar+eps)
		require.GreaterOrEqual(t, m.C, -eps)
		require.LessOrEqual(t, m.C, 1+1e-6)
	}
}

func TestStatistical_Deterministic(t *testing.T) {
	t.Parallel()

	p := []float64{0.1, 0.2, 0.3, 0.4}
	assert.Equal(t, complexity.Statistical(p), complexity.Statistical(p))
}
