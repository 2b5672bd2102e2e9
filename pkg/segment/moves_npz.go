package segment

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/chenBenjamin97/movi-align/pkg/archive"
	"github.com/chenBenjamin97/movi-align/pkg/mocap"
)

//Array names inside a subject archive. Move arrays are prefixed with 'move_<n>_' (1-based).
const (
	subjectParentsKey = "jointsParent"
	moveJointsSuffix  = "jointsLocation"
	movePoseSuffix    = "pose"
)

//ArchiveMoves reads moves of a subject '.npz' archive
type ArchiveMoves struct {
	a *archive.Reader
}

func NewArchiveMoves(a *archive.Reader) *ArchiveMoves {
	return &ArchiveMoves{a: a}
}

func (m *ArchiveMoves) Parents() ([]float64, error) {
	parents, _, err := m.a.Float64s(subjectParentsKey)
	return parents, err
}

func (m *ArchiveMoves) Move(i int) (MoveData, error) {
	jointsKey := moveKey(i, moveJointsSuffix)
	if !m.a.Has(jointsKey) {
		return MoveData{}, errors.Wrapf(ErrMissingMove, "'%s' in '%s'", jointsKey, m.a.Path())
	}

	var (
		data MoveData
		err  error
	)
	data.Joints, data.JointsShape, err = m.a.Float64s(jointsKey)
	if err != nil {
		return MoveData{}, err
	}

	if poseKey := moveKey(i, movePoseSuffix); m.a.Has(poseKey) {
		data.Pose, data.PoseShape, err = m.a.Float64s(poseKey)
		if err != nil {
			return MoveData{}, err
		}
	}

	return data, nil
}

func moveKey(i int, suffix string) string {
	return "move_" + strconv.Itoa(i+1) + "_" + suffix
}

//ArchiveWriter returns a MoveWriter saving every take as '<source>_<take>.npz' in dir,
//next to a '<source>_<take>.yaml' file holding subject id and description.
func ArchiveWriter(dir, source string) MoveWriter {
	return func(out MoveOutput) error {
		path := filepath.Join(dir, TakeName(source, out.Take, ".npz"))

		joints, err := rows(out.Joints, out.JointsShape)
		if err != nil {
			return errors.Wrapf(err, "take %d joints", out.Take)
		}

		names := []string{mocap.ParentsKey, mocap.JointsKey, mocap.FPSKey}
		arrays := map[string]interface{}{
			mocap.ParentsKey: out.Parents,
			mocap.JointsKey:  joints,
			mocap.FPSKey:     []float64{float64(out.FPS)},
		}
		if len(out.Betas) > 0 {
			names = append(names, "betas")
			arrays["betas"] = out.Betas
		}
		if len(out.Pose) > 0 {
			pose, err := rows(out.Pose, out.PoseShape)
			if err != nil {
				return errors.Wrapf(err, "take %d pose", out.Take)
			}
			names = append(names, "pose")
			arrays["pose"] = pose
		}

		if err := archive.WriteFile(path, names, arrays); err != nil {
			return err
		}

		v := viper.New()
		v.Set("subject", out.Subject)
		v.Set("take", out.Take)
		v.Set("description", out.Description)
		v.Set("fps", out.FPS)
		v.Set("frames", firstDim(out.JointsShape))
		return errors.Wrap(v.WriteConfigAs(strings.TrimSuffix(path, ".npz")+".yaml"), "could not write take info")
	}
}

//rows stores an n-d array as 2D (first dimension, everything else), which the loader reshapes back
func rows(data []float64, shape []int) (*mat.Dense, error) {
	r := firstDim(shape)
	if r == 0 || len(data) == 0 || len(data)%r != 0 || archive.Elements(shape) != len(data) {
		return nil, errors.Errorf("can not store %d values with shape %v", len(data), shape)
	}
	return mat.NewDense(r, len(data)/r, data), nil
}

func firstDim(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	return shape[0]
}
