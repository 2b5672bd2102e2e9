//Package mocap holds motion capture recordings and aligns them with video frame rate.
package mocap

import (
	"github.com/pkg/errors"

	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

//ErrInvalidSkeleton is returned when joints parents do not describe a rooted tree
var ErrInvalidSkeleton = errors.New("invalid skeleton")

//ErrInvalidSequence is returned for malformed joints data or frame rate
var ErrInvalidSequence = errors.New("invalid motion capture sequence")

//Sequence is one continuous motion capture recording. Do not modify it after NewSequence.
type Sequence struct {
	Joints    [][]projection.Point //[frame][joint]
	Parents   []int                //Parents[i] is the parent joint of joint i, Parents[0] (root) is ignored
	SourceFPS int
}

//NewSequence validates given data and returns a sequence.
//parents must be 0-based; use ParentsFromBase for the 1-based arrays found in MoVi archives.
func NewSequence(joints [][]projection.Point, parents []int, fps int) (*Sequence, error) {
	if fps <= 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "source fps must be positive, got %d", fps)
	}

	if err := ValidateSkeleton(parents); err != nil {
		return nil, err
	}

	for i, frame := range joints {
		if len(frame) != len(parents) {
			return nil, errors.Wrapf(ErrInvalidSequence, "frame %d has %d joints, skeleton has %d", i, len(frame), len(parents))
		}
	}

	return &Sequence{Joints: joints, Parents: parents, SourceFPS: fps}, nil
}

//ValidateSkeleton checks every non root joint references an earlier joint as it's parent.
//This rules out cycles, self references and forward references.
func ValidateSkeleton(parents []int) error {
	if len(parents) == 0 {
		return errors.Wrap(ErrInvalidSkeleton, "no joints")
	}

	for i := 1; i < len(parents); i++ {
		if parents[i] < 0 || parents[i] >= i {
			return errors.Wrapf(ErrInvalidSkeleton, "joint %d has parent %d", i, parents[i])
		}
	}

	return nil
}

//ParentsFromBase converts a parents array indexed from base (MoVi uses 1) to 0-based indexes.
//The root entry is kept as 0.
func ParentsFromBase(parents []int, base int) []int {
	out := make([]int, len(parents))
	for i, p := range parents {
		if i == 0 {
			continue
		}
		out[i] = p - base
	}
	return out
}

func (s *Sequence) Frames() int {
	return len(s.Joints)
}

func (s *Sequence) JointsCount() int {
	return len(s.Parents)
}

//Bones returns (parent, child) joint pairs, root excluded
func (s *Sequence) Bones() [][2]int {
	bones := make([][2]int, 0, len(s.Parents))
	for i := 1; i < len(s.Parents); i++ {
		bones = append(bones, [2]int{s.Parents[i], i})
	}
	return bones
}
