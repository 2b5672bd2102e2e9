//Package projection maps 3D world points to 2D pixel points through a calibrated pinhole camera.
package projection

import (
	"fmt"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/chenBenjamin97/movi-align/pkg/camera"
)

//ErrDegenerateProjection is returned when a point lies on the camera's focal plane (w == 0)
//or the perspective division does not produce a finite pixel.
var ErrDegenerateProjection = errors.New("degenerate projection")

//Point is a 3D world position
type Point [3]float64

//Pixel is an image plane position, already truncated to integers
type Pixel struct {
	U int `json:"u"`
	V int `json:"v"`
}

//DegenerateError reports which point could not be projected.
//Frame is -1 when the point was projected outside of a sequence.
type DegenerateError struct {
	Frame int
	Joint int
	W     float64
}

func (e *DegenerateError) Error() string {
	if e.Frame < 0 {
		return fmt.Sprintf("%v: point %d (w=%v)", ErrDegenerateProjection, e.Joint, e.W)
	}
	return fmt.Sprintf("%v: frame %d joint %d (w=%v)", ErrDegenerateProjection, e.Frame, e.Joint, e.W)
}

func (e *DegenerateError) Unwrap() error {
	return ErrDegenerateProjection
}

//Project converts given world points to pixels.
//Each point is extended to the homogeneous row vector [x y z 1] and right-multiplied by the camera matrix,
//the resulting [x y w] is divided by w and truncated toward zero (not rounded).
func Project(cam *camera.Model, points []Point) ([]Pixel, error) {
	if cam == nil {
		return nil, errors.Wrap(camera.ErrInvalidCalibration, "nil camera")
	}

	cm := cam.Matrix()
	pixels := make([]Pixel, len(points))
	for i, p := range points {
		px, w, ok := projectPoint(cm, p)
		if !ok {
			return nil, &DegenerateError{Frame: -1, Joint: i, W: w}
		}
		pixels[i] = px
	}

	return pixels, nil
}

func projectPoint(cm *mat.Dense, p Point) (Pixel, float64, bool) {
	h := [4]float64{p[0], p[1], p[2], 1}

	var r [3]float64
	for c := 0; c < 3; c++ {
		for k := 0; k < 4; k++ {
			r[c] += h[k] * cm.At(k, c)
		}
	}

	w := r[2]
	if w == 0 {
		return Pixel{}, w, false
	}

	u, v := r[0]/w, r[1]/w
	if !representable(u) || !representable(v) {
		return Pixel{}, w, false
	}

	//conversion to int truncates toward zero
	return Pixel{U: int(u), V: int(v)}, w, true
}

func representable(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f < math.MaxInt32 && f > math.MinInt32
}

//ProjectSequence projects every frame of given joints (frames x joints) and returns pixels in the same layout.
//Joint tracks are independent, so they are projected concurrently.
func ProjectSequence(cam *camera.Model, frames [][]Point) ([][]Pixel, error) {
	if cam == nil {
		return nil, errors.Wrap(camera.ErrInvalidCalibration, "nil camera")
	}

	out := make([][]Pixel, len(frames))
	if len(frames) == 0 {
		return out, nil
	}

	joints := len(frames[0])
	for i, f := range frames {
		if len(f) != joints {
			return nil, errors.Errorf("frame %d has %d joints, expected %d", i, len(f), joints)
		}
		out[i] = make([]Pixel, joints)
	}

	cm := cam.Matrix()

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := 0; j < joints; j++ {
		j := j
		g.Go(func() error {
			for i := range frames {
				px, w, ok := projectPoint(cm, frames[i][j])
				if !ok {
					return &DegenerateError{Frame: i, Joint: j, W: w}
				}
				out[i][j] = px //each goroutine owns column j
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
