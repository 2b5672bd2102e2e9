package mocap

import (
	"github.com/pkg/errors"

	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

//ErrInvalidStride is returned when the source rate is not high enough to be reduced to the target rate
var ErrInvalidStride = errors.New("invalid resample stride")

//Stride returns floor(source / target), failing when it's not greater than 1.
func Stride(sourceFPS, targetFPS int) (int, error) {
	if targetFPS <= 0 {
		return 0, errors.Wrapf(ErrInvalidStride, "target fps must be positive, got %d", targetFPS)
	}

	stride := sourceFPS / targetFPS
	if stride <= 1 {
		return 0, errors.Wrapf(ErrInvalidStride, "%d fps -> %d fps gives stride %d", sourceFPS, targetFPS, stride)
	}

	return stride, nil
}

//Resample keeps every stride-th frame, starting at frame 0, where stride = floor(source fps / target fps).
//No interpolation is done. Returned sequence shares the joints frames with s.
func Resample(s *Sequence, targetFPS int) (*Sequence, error) {
	stride, err := Stride(s.SourceFPS, targetFPS)
	if err != nil {
		return nil, err
	}

	frames := make([][]projection.Point, 0, (len(s.Joints)+stride-1)/stride)
	for i := 0; i < len(s.Joints); i += stride {
		frames = append(frames, s.Joints[i])
	}

	return &Sequence{Joints: frames, Parents: s.Parents, SourceFPS: s.SourceFPS / stride}, nil
}
