package safe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"ordinal-complexity/internal/opencv/safe"
)

func TestAlloc_RejectsBadDimensions(t *testing.T) {
	t.Parallel()

	_, err := safe.Alloc(0, 4, gocv.MatTypeCV8UC1, "zero")
	require.Error(t, err)

	_, err = safe.Alloc(4, safe.MaxDimension+1, gocv.MatTypeCV8UC1, "huge")
	require.Error(t, err)
}

func TestMat_BytesIsACopy(t *testing.T) {
	t.Parallel()

	src, err := gocv.NewMatFromBytes(2, 3, gocv.MatTypeCV8UC1, []byte{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	defer src.Close()

	m, err := safe.CloneFrom(src, "mask")
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, "mask", m.Tag())
	require.NoError(t, safe.ValidateSingleChannel(m, "test"))

	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, data)

	data[0] = 99
	again, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, byte(1), again[0])
}

func TestMat_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	m, err := safe.Alloc(4, 4, gocv.MatTypeCV8UC1, "scratch")
	require.NoError(t, err)

	m.Close()
	m.Close()

	assert.False(t, m.IsValid())
	assert.True(t, m.Empty())
	assert.Zero(t, m.Rows())
	_, err = m.Bytes()
	require.Error(t, err)
	require.Error(t, safe.ValidateMatForOperation(m, "after close"))
}

func TestAdopt_EmptyMat(t *testing.T) {
	t.Parallel()

	_, err := safe.Adopt(gocv.NewMat(), "template")
	require.Error(t, err)
}

func TestValidateSameSize(t *testing.T) {
	t.Parallel()

	a, err := safe.Alloc(3, 3, gocv.MatTypeCV8UC1, "a")
	require.NoError(t, err)
	defer a.Close()
	b, err := safe.Alloc(3, 4, gocv.MatTypeCV8UC1, "b")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, safe.ValidateSameSize(a, a, "same"))
	require.Error(t, safe.ValidateSameSize(a, b, "differ"))
}
