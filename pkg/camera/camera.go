package camera

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

//ErrInvalidCalibration is returned when calibration data is missing or has the wrong shape
var ErrInvalidCalibration = errors.New("invalid camera calibration")

//Model holds the calibrated parameters of one camera. It is immutable once built by New,
//callers share it by pointer between any number of projections.
type Model struct {
	rotation    *mat.Dense //3x3, world -> camera
	translation *mat.VecDense
	intrinsic   *mat.Dense //3x3, camera -> pixel
	matrix      *mat.Dense //4x3, [R; t] x K
}

//New validates given calibration values and builds a camera model.
//rotation and intrinsic must be 3x3 row-major (9 values), translation must hold 3 values.
//There is no identity fallback: nil or short data is an error.
func New(rotation, translation, intrinsic []float64) (*Model, error) {
	if len(rotation) != 9 {
		return nil, errors.Wrapf(ErrInvalidCalibration, "rotation matrix needs 9 values, got %d", len(rotation))
	}
	if len(translation) != 3 {
		return nil, errors.Wrapf(ErrInvalidCalibration, "translation vector needs 3 values, got %d", len(translation))
	}
	if len(intrinsic) != 9 {
		return nil, errors.Wrapf(ErrInvalidCalibration, "intrinsic matrix needs 9 values, got %d", len(intrinsic))
	}

	for name, values := range map[string][]float64{"rotation": rotation, "translation": translation, "intrinsic": intrinsic} {
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrInvalidCalibration, "%s contains non-finite value %v", name, v)
			}
		}
	}

	m := &Model{
		rotation:    mat.NewDense(3, 3, append([]float64(nil), rotation...)),
		translation: mat.NewVecDense(3, append([]float64(nil), translation...)),
		intrinsic:   mat.NewDense(3, 3, append([]float64(nil), intrinsic...)),
	}

	//pose matrix: rotation rows on top, translation appended as the 4th row
	pose := mat.NewDense(4, 3, nil)
	for i := 0; i < 3; i++ {
		pose.SetRow(i, rotation[i*3:i*3+3])
	}
	pose.SetRow(3, translation)

	m.matrix = mat.NewDense(4, 3, nil)
	m.matrix.Mul(pose, m.intrinsic)

	return m, nil
}

//FromDense builds a model from gonum matrices, checking their dimensions.
func FromDense(rotation mat.Matrix, translation mat.Vector, intrinsic mat.Matrix) (*Model, error) {
	if rotation == nil || translation == nil || intrinsic == nil {
		return nil, errors.Wrap(ErrInvalidCalibration, "missing rotation, translation or intrinsic data")
	}
	if r, c := rotation.Dims(); r != 3 || c != 3 {
		return nil, errors.Wrapf(ErrInvalidCalibration, "rotation matrix is %dx%d, want 3x3", r, c)
	}
	if translation.Len() != 3 {
		return nil, errors.Wrapf(ErrInvalidCalibration, "translation vector has length %d, want 3", translation.Len())
	}
	if r, c := intrinsic.Dims(); r != 3 || c != 3 {
		return nil, errors.Wrapf(ErrInvalidCalibration, "intrinsic matrix is %dx%d, want 3x3", r, c)
	}

	return New(flatten(rotation), []float64{translation.AtVec(0), translation.AtVec(1), translation.AtVec(2)}, flatten(intrinsic))
}

//Matrix returns a copy of the combined 4x3 camera matrix ([R; t] x K).
//Homogeneous row vectors [x y z 1] are right-multiplied by it.
func (m *Model) Matrix() *mat.Dense {
	return mat.DenseCopyOf(m.matrix)
}

func (m *Model) Rotation() *mat.Dense {
	return mat.DenseCopyOf(m.rotation)
}

func (m *Model) Translation() *mat.VecDense {
	return mat.VecDenseCopyOf(m.translation)
}

func (m *Model) Intrinsic() *mat.Dense {
	return mat.DenseCopyOf(m.intrinsic)
}

func flatten(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}
