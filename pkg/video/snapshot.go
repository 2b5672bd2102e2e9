package video

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

//Snapshot renders single video frames with their projected joints to image files.
//It shares the figure.Visualizer capability (Update + Render) with the skeleton plotter.
type Snapshot struct {
	cap    *Capture
	points [][]projection.Pixel
	opts   OverlayOptions
	frame  int
}

//NewSnapshot opens given video. Caller must Close it.
func NewSnapshot(srcVideoPath string, points [][]projection.Pixel, opts OverlayOptions) (*Snapshot, error) {
	cap, err := OpenCapture(srcVideoPath)
	if err != nil {
		return nil, err
	}
	return &Snapshot{cap: cap, points: points, opts: opts}, nil
}

func (s *Snapshot) Update(frame int) error {
	if frame < 0 || frame >= len(s.points) {
		return errors.Errorf("frame %d out of range [0, %d)", frame, len(s.points))
	}
	s.frame = frame
	return nil
}

//Render seeks to the current frame, draws it's joints and writes it to path ('.png', '.jpg', ...)
func (s *Snapshot) Render(path string) error {
	s.cap.cap.Set(gocv.VideoCapturePosFrames, float64(s.frame))

	frame, ok, err := s.cap.Read()
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("could not read frame %d of '%s'", s.frame, s.cap.path)
	}

	plotJointsOnFrame(&frame, s.points[s.frame], s.opts)
	if !gocv.IMWrite(path, frame) {
		return errors.Errorf("could not write '%s'", path)
	}
	return nil
}

func (s *Snapshot) Close() error {
	return s.cap.Close()
}
