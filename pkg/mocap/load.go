package mocap

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/chenBenjamin97/movi-align/pkg/archive"
	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

//Array names inside a single take MoCap archive
const (
	JointsKey  = "joints"
	ParentsKey = "jointsParent"
	FPSKey     = "fps"
)

//Load reads a single take archive (as written by the MoCap splitter).
//parentBase is the index base of the stored parents array (1 for MoVi data).
//defaultFPS is used when the archive has no 'fps' array.
func Load(path string, parentBase, defaultFPS int) (s *Sequence, err error) {
	a, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Combine(err, a.Close())
	}()

	rawParents, _, err := a.Float64s(ParentsKey)
	if err != nil {
		return nil, err
	}
	parents := make([]int, len(rawParents))
	for i, p := range rawParents {
		parents[i] = int(p)
	}
	parents = ParentsFromBase(parents, parentBase)

	data, shape, err := a.Float64s(JointsKey)
	if err != nil {
		return nil, err
	}
	joints, err := JointsFromFlat(data, shape, len(parents))
	if err != nil {
		return nil, errors.Wrapf(err, "'%s'", path)
	}

	fps := defaultFPS
	if a.Has(FPSKey) {
		v, err := a.Scalar(FPSKey)
		if err != nil {
			return nil, err
		}
		fps = int(v)
	}

	return NewSequence(joints, parents, fps)
}

//JointsFromFlat reshapes row-major joints data. Accepted shapes are (frames, joints, 3) and (frames, joints*3).
func JointsFromFlat(data []float64, shape []int, joints int) ([][]projection.Point, error) {
	var frames int
	switch {
	case len(shape) == 3 && shape[1] == joints && shape[2] == 3:
		frames = shape[0]
	case len(shape) == 2 && shape[1] == joints*3:
		frames = shape[0]
	default:
		return nil, errors.Wrapf(ErrInvalidSequence, "joints shape %v does not match %d joints", shape, joints)
	}

	if len(data) != frames*joints*3 {
		return nil, errors.Wrapf(ErrInvalidSequence, "joints data has %d values, shape %v", len(data), shape)
	}

	out := make([][]projection.Point, frames)
	for f := 0; f < frames; f++ {
		out[f] = make([]projection.Point, joints)
		for j := 0; j < joints; j++ {
			base := (f*joints + j) * 3
			out[f][j] = projection.Point{data[base], data[base+1], data[base+2]}
		}
	}

	return out, nil
}

//Flatten is the inverse of JointsFromFlat, returning (frames, joints*3) row-major data
func Flatten(joints [][]projection.Point) []float64 {
	out := make([]float64, 0, len(joints)*3*len(firstOrEmpty(joints)))
	for _, frame := range joints {
		for _, p := range frame {
			out = append(out, p[0], p[1], p[2])
		}
	}
	return out
}

func firstOrEmpty(joints [][]projection.Point) []projection.Point {
	if len(joints) == 0 {
		return nil
	}
	return joints[0]
}
