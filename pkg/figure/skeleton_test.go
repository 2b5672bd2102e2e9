package figure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenBenjamin97/movi-align/pkg/mocap"
	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

func newSequence(t *testing.T, scale float64) *mocap.Sequence {
	t.Helper()
	frames := [][]projection.Point{
		{{0, 0, 1 * scale}, {0, 0, 1.5 * scale}, {0.2 * scale, 0, 1.4 * scale}},
		{{0.1 * scale, 0, 1 * scale}, {0.1 * scale, 0, 1.5 * scale}, {0.3 * scale, 0, 1.4 * scale}},
	}
	s, err := mocap.NewSequence(frames, []int{0, 0, 1}, 30)
	require.NoError(t, err)
	return s
}

func TestSkeletonPlot(t *testing.T) {
	t.Parallel()

	sk, err := NewSkeleton(newSequence(t, 1), FrontView)
	require.NoError(t, err)

	require.NoError(t, sk.Update(1))
	p, err := sk.Plot()
	require.NoError(t, err)
	assert.Equal(t, "frame 1", p.Title.Text)
	assert.Equal(t, "x", p.X.Label.Text)
	assert.Equal(t, "z", p.Y.Label.Text)
	assert.InDelta(t, -0.9, p.X.Min, 1e-9)
	assert.InDelta(t, 1.1, p.X.Max, 1e-9)

	assert.Error(t, sk.Update(2))
	assert.Error(t, sk.Update(-1))
}

func TestSkeletonPlotMillimeters(t *testing.T) {
	t.Parallel()

	sk, err := NewSkeleton(newSequence(t, 1000), FrontView)
	require.NoError(t, err)

	p, err := sk.Plot()
	require.NoError(t, err)
	assert.InDelta(t, -1000, p.X.Min, 1e-9)
	assert.InDelta(t, 0, p.Y.Min, 1e-9)
	assert.InDelta(t, 2000, p.Y.Max, 1e-9)
}

func TestSkeletonRender(t *testing.T) {
	t.Parallel()

	var v Visualizer
	sk, err := NewSkeleton(newSequence(t, 1), FrontView)
	require.NoError(t, err)
	v = sk

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, v.Render(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewSkeletonErrors(t *testing.T) {
	t.Parallel()

	_, err := NewSkeleton(nil, FrontView)
	assert.Error(t, err)

	_, err = NewSkeleton(newSequence(t, 1), Axes{0, 3})
	assert.Error(t, err)
}
