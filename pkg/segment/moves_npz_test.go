package segment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/chenBenjamin97/movi-align/pkg/archive"
	"github.com/chenBenjamin97/movi-align/pkg/mocap"
	"github.com/chenBenjamin97/movi-align/pkg/projection"
	"github.com/chenBenjamin97/movi-align/pkg/takes"
)

//writeSubjectArchive stores 'move_1' with 8 frames of 2 joints (joint j of frame f at 6f+3j+{0,1,2}) and a pose,
//'move_2' is absent
func writeSubjectArchive(t *testing.T, path string) {
	t.Helper()

	joints := make([]float64, 8*6)
	for i := range joints {
		joints[i] = float64(i)
	}

	err := archive.WriteFile(path, []string{"jointsParent", "move_1_jointsLocation", "move_1_pose"}, map[string]interface{}{
		"jointsParent":          []float64{0, 1},
		"move_1_jointsLocation": mat.NewDense(8, 6, joints),
		"move_1_pose":           mat.NewDense(8, 2, make([]float64, 16)),
	})
	require.NoError(t, err)
}

func TestArchiveMoves(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "F_amass_Subject_1.npz")
	writeSubjectArchive(t, src)

	a, err := archive.Open(src)
	require.NoError(t, err)
	defer a.Close()
	moves := NewArchiveMoves(a)

	parents, err := moves.Parents()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, parents)

	data, err := moves.Move(0)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 6}, data.JointsShape)
	assert.Len(t, data.Joints, 48)
	assert.Equal(t, []int{8, 2}, data.PoseShape)

	_, err = moves.Move(1)
	assert.ErrorIs(t, err, ErrMissingMove)
}

func TestSplitMovesToArchives(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "F_amass_Subject_1.npz")
	writeSubjectArchive(t, src)

	subject := &takes.Subject{
		ID:    1,
		Betas: []float64{0.1, -0.2},
		Moves: []takes.Move{
			{Description: "walking"},
			{Description: "running"},
		},
	}

	a, err := archive.Open(src)
	require.NoError(t, err)
	defer a.Close()

	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0755))

	n, err := SplitMoves(subject, NewArchiveMoves(a), 120, ArchiveWriter(outDir, src))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, filepath.Join(outDir, "F_amass_Subject_1_2.npz"))

	take := filepath.Join(outDir, "F_amass_Subject_1_1.npz")

	seq, err := mocap.Load(take, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 8, seq.Frames())
	assert.Equal(t, 2, seq.JointsCount())
	assert.Equal(t, []int{0, 0}, seq.Parents)
	assert.Equal(t, 120, seq.SourceFPS)
	assert.Equal(t, projection.Point{45, 46, 47}, seq.Joints[7][1])

	out, err := archive.Open(take)
	require.NoError(t, err)
	defer out.Close()

	betas, _, err := out.Float64s("betas")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, -0.2}, betas)

	_, poseShape, err := out.Float64s("pose")
	require.NoError(t, err)
	assert.Equal(t, []int{8, 2}, poseShape)

	_, jointsShape, err := out.Float64s(mocap.JointsKey)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 6}, jointsShape)

	info := viper.New()
	info.SetConfigFile(filepath.Join(outDir, "F_amass_Subject_1_1.yaml"))
	require.NoError(t, info.ReadInConfig())
	assert.Equal(t, 1, info.GetInt("subject"))
	assert.Equal(t, 1, info.GetInt("take"))
	assert.Equal(t, "walking", info.GetString("description"))
	assert.Equal(t, 120, info.GetInt("fps"))
	assert.Equal(t, 8, info.GetInt("frames"))
}
