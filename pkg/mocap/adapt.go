package mocap

import (
	"github.com/chenBenjamin97/movi-align/pkg/camera"
	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

//AdaptForVideo reduces given sequence to the video frame rate and projects every joint to the video's image plane.
//Result is indexed [video frame][joint].
func AdaptForVideo(s *Sequence, cam *camera.Model, videoFPS int) ([][]projection.Pixel, error) {
	reduced, err := Resample(s, videoFPS)
	if err != nil {
		return nil, err
	}

	return projection.ProjectSequence(cam, reduced.Joints)
}
