package camera

import (
	"go.uber.org/multierr"

	"github.com/chenBenjamin97/movi-align/pkg/archive"
)

//Array names inside MoVi calibration archives
const (
	RotationKey    = "rotationMatrix"
	TranslationKey = "translationVector"
	IntrinsicKey   = "IntrinsicMatrix"
)

//Load reads a camera from the two MoVi calibration archives: the extrinsics one ('Extrinsics_PG1.npz')
//holding rotation and translation, and the camera parameters one ('cameraParams_PG1.npz') holding the intrinsic matrix.
func Load(extrinsicsPath, cameraParamsPath string) (m *Model, err error) {
	ext, err := archive.Open(extrinsicsPath)
	if err != nil {
		return nil, invalid(err)
	}
	defer func() {
		err = multierr.Combine(err, ext.Close())
	}()

	params, err := archive.Open(cameraParamsPath)
	if err != nil {
		return nil, invalid(err)
	}
	defer func() {
		err = multierr.Combine(err, params.Close())
	}()

	rotation, _, err := ext.Float64s(RotationKey)
	if err != nil {
		return nil, invalid(err)
	}

	translation, _, err := ext.Float64s(TranslationKey)
	if err != nil {
		return nil, invalid(err)
	}

	intrinsic, _, err := params.Float64s(IntrinsicKey)
	if err != nil {
		return nil, invalid(err)
	}

	return New(rotation, translation, intrinsic)
}

//invalid keeps both ErrInvalidCalibration and the cause matchable with errors.Is
func invalid(err error) error {
	return multierr.Append(ErrInvalidCalibration, err)
}
