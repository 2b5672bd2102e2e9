package video

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

//plotJointsOnFrame draws every given joint pixel as a circle on frame.
//Circles crossing the frame border are clipped by OpenCV.
func plotJointsOnFrame(frame *gocv.Mat, joints []projection.Pixel, opts OverlayOptions) {
	for _, px := range joints {
		gocv.Circle(frame, image.Pt(px.U, px.V), opts.Radius, opts.Color, opts.Thickness)
	}
}
