package projection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenBenjamin97/movi-align/pkg/camera"
)

func newCamera(t *testing.T, translation []float64, intrinsic []float64) *camera.Model {
	t.Helper()
	cam, err := camera.New([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, translation, intrinsic)
	require.NoError(t, err)
	return cam
}

func TestProjectPinhole(t *testing.T) {
	t.Parallel()

	//focal length 100, principal point (320, 240). With row vectors the principal point sits in the last row of K.
	cam := newCamera(t, []float64{0, 0, 0}, []float64{
		100, 0, 0,
		0, 100, 0,
		320, 240, 1,
	})

	pixels, err := Project(cam, []Point{
		{0, 0, 2},
		{1, 0.5, 2},
		{-1, -2, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, []Pixel{
		{U: 320, V: 240},
		{U: 370, V: 265},
		{U: 295, V: 190},
	}, pixels)
}

func TestProjectTruncatesTowardZero(t *testing.T) {
	t.Parallel()

	cam := newCamera(t, []float64{0, 0, 0}, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

	pixels, err := Project(cam, []Point{
		{5.9, 2.99, 1},
		{-5.9, -0.5, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, Pixel{U: 5, V: 2}, pixels[0])
	assert.Equal(t, Pixel{U: -5, V: 0}, pixels[1])
}

func TestProjectAppliesTranslation(t *testing.T) {
	t.Parallel()

	cam := newCamera(t, []float64{1, 1, 1}, []float64{10, 0, 0, 0, 10, 0, 0, 0, 1})

	//[0 0 1 1] x [I; t] = [1 1 2], x K = [10 10 2]
	pixels, err := Project(cam, []Point{{0, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []Pixel{{U: 5, V: 5}}, pixels)
}

func TestProjectDegenerate(t *testing.T) {
	t.Parallel()

	cam := newCamera(t, []float64{0, 0, 0}, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

	_, err := Project(cam, []Point{{1, 1, 1}, {3, 4, 0}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateProjection))

	var degenerate *DegenerateError
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, 1, degenerate.Joint)
	assert.Equal(t, -1, degenerate.Frame)
}

func TestProjectNilCamera(t *testing.T) {
	t.Parallel()

	_, err := Project(nil, []Point{{0, 0, 1}})
	assert.True(t, errors.Is(err, camera.ErrInvalidCalibration))
}

func TestProjectSequence(t *testing.T) {
	t.Parallel()

	cam := newCamera(t, []float64{0, 0, 0}, []float64{2, 0, 0, 0, 2, 0, 0, 0, 1})

	frames := [][]Point{
		{{1, 1, 1}, {2, 4, 2}, {9, 3, 3}},
		{{1, 2, 1}, {3, 4, 2}, {-9, 3, 3}},
	}

	got, err := ProjectSequence(cam, frames)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i, frame := range frames {
		want, err := Project(cam, frame)
		require.NoError(t, err)
		assert.Equal(t, want, got[i], "frame %d", i)
	}
}

func TestProjectSequenceErrors(t *testing.T) {
	t.Parallel()

	cam := newCamera(t, []float64{0, 0, 0}, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

	t.Run("ragged frames", func(t *testing.T) {
		_, err := ProjectSequence(cam, [][]Point{{{0, 0, 1}}, {{0, 0, 1}, {0, 0, 1}}})
		assert.Error(t, err)
	})

	t.Run("degenerate point reports frame and joint", func(t *testing.T) {
		_, err := ProjectSequence(cam, [][]Point{
			{{0, 0, 1}, {0, 0, 1}},
			{{0, 0, 1}, {1, 1, 0}},
		})
		var degenerate *DegenerateError
		require.True(t, errors.As(err, &degenerate))
		assert.Equal(t, 1, degenerate.Frame)
		assert.Equal(t, 1, degenerate.Joint)
	})

	t.Run("empty sequence", func(t *testing.T) {
		got, err := ProjectSequence(cam, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
