package video

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/chenBenjamin97/movi-align/pkg/segment"
)

//Capture reads a video file frame by frame. It implements segment.Source, the returned Mat is reused between reads.
type Capture struct {
	path  string
	cap   *gocv.VideoCapture
	frame gocv.Mat
}

//OpenCapture opens given video file. Caller must Close it.
func OpenCapture(path string) (*Capture, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open video '%s'", path)
	}

	return &Capture{path: path, cap: cap, frame: gocv.NewMat()}, nil
}

func (c *Capture) Properties() Properties {
	return Properties{
		FPS:        c.cap.Get(gocv.VideoCaptureFPS),
		Width:      int(c.cap.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(c.cap.Get(gocv.VideoCaptureFrameHeight)),
		FrameCount: int(c.cap.Get(gocv.VideoCaptureFrameCount)),
	}
}

//Read returns the next frame, ok is false once all frames are read
func (c *Capture) Read() (gocv.Mat, bool, error) {
	if !c.cap.Read(&c.frame) || c.frame.Empty() {
		return c.frame, false, nil
	}
	return c.frame, true, nil
}

func (c *Capture) Close() error {
	c.frame.Close()
	return c.cap.Close()
}

//Writer writes frames to a new video file. It implements segment.Sink.
type Writer struct {
	path string
	w    *gocv.VideoWriter
}

//CreateWriter creates a video file using given fourcc codec ('XVID' for '.avi') and stream properties
func CreateWriter(path, fourcc string, props Properties) (*Writer, error) {
	w, err := gocv.VideoWriterFile(path, fourcc, props.FPS, props.Width, props.Height, true)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create video '%s'", path)
	}

	return &Writer{path: path, w: w}, nil
}

func (w *Writer) Write(frame gocv.Mat) error {
	return w.w.Write(frame)
}

func (w *Writer) Close() error {
	return w.w.Close()
}

func (w *Writer) Path() string {
	return w.path
}

var (
	_ segment.Source[gocv.Mat] = (*Capture)(nil)
	_ segment.Sink[gocv.Mat]   = (*Writer)(nil)
)
