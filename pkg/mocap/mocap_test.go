package mocap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenBenjamin97/movi-align/pkg/camera"
	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

//makeFrames returns n frames of given joints, where joint j in frame f is at (f, j, 1)
func makeFrames(n, joints int) [][]projection.Point {
	frames := make([][]projection.Point, n)
	for f := range frames {
		frames[f] = make([]projection.Point, joints)
		for j := range frames[f] {
			frames[f][j] = projection.Point{float64(f), float64(j), 1}
		}
	}
	return frames
}

func TestValidateSkeleton(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		parents []int
		wantErr bool
	}{
		{"chain", []int{0, 0, 1, 2}, false},
		{"star", []int{0, 0, 0, 0}, false},
		{"root only", []int{0}, false},
		{"root parent ignored", []int{7, 0, 1}, false},
		{"empty", nil, true},
		{"forward reference", []int{0, 2, 0}, true},
		{"self reference", []int{0, 1}, true},
		{"cycle", []int{0, 2, 1}, true},
		{"negative", []int{0, -1}, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateSkeleton(tc.parents)
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSkeleton), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSequence(t *testing.T) {
	t.Parallel()

	_, err := NewSequence(makeFrames(3, 3), []int{0, 0, 1}, 120)
	require.NoError(t, err)

	_, err = NewSequence(makeFrames(3, 2), []int{0, 0, 1}, 120)
	assert.True(t, errors.Is(err, ErrInvalidSequence))

	_, err = NewSequence(makeFrames(3, 3), []int{0, 0, 1}, 0)
	assert.True(t, errors.Is(err, ErrInvalidSequence))

	_, err = NewSequence(makeFrames(3, 3), []int{0, 2, 1}, 120)
	assert.True(t, errors.Is(err, ErrInvalidSkeleton))
}

func TestParentsFromBase(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1, 1}, ParentsFromBase([]int{0, 1, 2, 2}, 1))
	assert.Equal(t, []int{0, 0, 1}, ParentsFromBase([]int{0, 0, 1}, 0))
}

func TestBones(t *testing.T) {
	s, err := NewSequence(makeFrames(1, 4), []int{0, 0, 1, 1}, 120)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {1, 3}}, s.Bones())
}

func TestResample(t *testing.T) {
	t.Parallel()

	s, err := NewSequence(makeFrames(121, 2), []int{0, 0}, 120)
	require.NoError(t, err)

	got, err := Resample(s, 30)
	require.NoError(t, err)
	require.Equal(t, 31, got.Frames())
	for k := 0; k < got.Frames(); k++ {
		assert.Equal(t, s.Joints[4*k], got.Joints[k], "frame %d", k)
	}
	assert.Equal(t, 30, got.SourceFPS)
	assert.Equal(t, s.Parents, got.Parents)

	again, err := Resample(s, 30)
	require.NoError(t, err)
	assert.Equal(t, got.Joints, again.Joints)
}

func TestResampleComputesStride(t *testing.T) {
	t.Parallel()

	s, err := NewSequence(makeFrames(10, 1), []int{0}, 100)
	require.NoError(t, err)

	//floor(100/30) == 3
	got, err := Resample(s, 30)
	require.NoError(t, err)
	require.Equal(t, 4, got.Frames())
	assert.Equal(t, float64(9), got.Joints[3][0][0])
}

func TestResamplePrecondition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source int
		target int
	}{
		{"same rate", 30, 30},
		{"less than double", 50, 30},
		{"upsampling", 30, 120},
		{"zero target", 120, 0},
		{"negative target", 120, -30},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewSequence(makeFrames(5, 1), []int{0}, tc.source)
			require.NoError(t, err)

			got, err := Resample(s, tc.target)
			assert.True(t, errors.Is(err, ErrInvalidStride), "got %v", err)
			assert.Nil(t, got)
		})
	}
}

func TestJointsFromFlat(t *testing.T) {
	t.Parallel()

	data := []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}

	for _, shape := range [][]int{{2, 2, 3}, {2, 6}} {
		got, err := JointsFromFlat(data, shape, 2)
		require.NoError(t, err)
		assert.Equal(t, [][]projection.Point{
			{{1, 2, 3}, {4, 5, 6}},
			{{7, 8, 9}, {10, 11, 12}},
		}, got)
		assert.Equal(t, data, Flatten(got))
	}

	_, err := JointsFromFlat(data, []int{2, 3, 2}, 3)
	assert.True(t, errors.Is(err, ErrInvalidSequence))

	_, err = JointsFromFlat(data[:6], []int{2, 6}, 2)
	assert.True(t, errors.Is(err, ErrInvalidSequence))
}

func TestAdaptForVideo(t *testing.T) {
	t.Parallel()

	cam, err := camera.New(
		[]float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
		[]float64{0, 0, 0},
		[]float64{10, 0, 0, 0, 10, 0, 0, 0, 1},
	)
	require.NoError(t, err)

	s, err := NewSequence(makeFrames(9, 2), []int{0, 0}, 120)
	require.NoError(t, err)

	got, err := AdaptForVideo(s, cam, 30)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []projection.Pixel{{U: 40, V: 0}, {U: 40, V: 10}}, got[1])
	assert.Equal(t, []projection.Pixel{{U: 80, V: 0}, {U: 80, V: 10}}, got[2])

	_, err = AdaptForVideo(s, cam, 120)
	assert.True(t, errors.Is(err, ErrInvalidStride))
}
