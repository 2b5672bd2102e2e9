package video

import (
	"go.uber.org/multierr"
	"gocv.io/x/gocv"

	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

const playerWindowName = "Motion Capture"

//Play shows given video in a window with the projected joints drawn on it, until the video ends or 'q' is pressed.
func Play(srcVideoPath string, points [][]projection.Pixel, opts OverlayOptions) (err error) {
	cap, err := OpenCapture(srcVideoPath)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, cap.Close())
	}()

	window := gocv.NewWindow(playerWindowName)
	defer func() {
		err = multierr.Combine(err, window.Close())
	}()

	delay := 10
	if fps := cap.Properties().FPS; fps > 0 {
		delay = int(1000 / fps)
	}

	for current := 0; ; current++ {
		frame, ok, _ := cap.Read()
		if !ok {
			return nil
		}

		if current < len(points) {
			plotJointsOnFrame(&frame, points[current], opts)
		}

		window.IMShow(frame)
		if window.WaitKey(delay)&0xFF == 'q' {
			return nil
		}
	}
}
