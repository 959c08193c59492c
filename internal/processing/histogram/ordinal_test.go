package histogram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"ordinal-complexity/internal/processing/histogram"
)

func TestOrdinal_CountsSumToTotal(t *testing.T) {
	t.Parallel()

	h := histogram.NewOrdinal(6)
	for _, slot := range []int{0, 3, 3, 5, 0, 0} {
		h.Add(slot)
	}

	assert.Equal(t, int64(6), h.Total())
	assert.Equal(t, []int64{3, 0, 0, 2, 0, 1}, h.Counts())
	assert.Equal(t, 3, h.NonZero())

	var sum int64
	for _, c := range h.Counts() {
		sum += c
	}
	assert.Equal(t, h.Total(), sum)

	p := h.Probabilities()
	assert.InDelta(t, 1.0, floats.Sum(p), 1e-9)
	assert.InDelta(t, 0.5, p[0], 1e-12)
}

func TestOrdinal_EmptyIsZeroVector(t *testing.T) {
	t.Parallel()

	h := histogram.NewOrdinal(24)
	p := h.Probabilities()
	require.Len(t, p, 24)
	assert.Equal(t, 0.0, floats.Sum(p))
	assert.Equal(t, 0, h.NonZero())
}

func TestOrdinal_Merge(t *testing.T) {
	t.Parallel()

	a := histogram.NewOrdinal(3)
	b := histogram.NewOrdinal(3)
	a.Add(0)
	b.Add(2)
	b.Add(2)

	a.Merge(b)
	assert.Equal(t, []int64{1, 0, 2}, a.Counts())
	assert.Equal(t, int64(3), a.Total())

	assert.Panics(t, func() { a.Merge(histogram.NewOrdinal(4)) })
}

func TestOrdinal_OutOfRangeSlotPanics(t *testing.T) {
	t.Parallel()

	h := histogram.NewOrdinal(2)
	assert.Panics(t, func() { h.Add(2) })
}

func TestOrdinal_CountsIsACopy(t *testing.T) {
	t.Parallel()

	h := histogram.NewOrdinal(2)
	h.Add(1)
	c := h.Counts()
	c[1] = 99
	assert.Equal(t, []int64{0, 1}, h.Counts())
}
