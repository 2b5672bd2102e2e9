//Package figure renders motion capture skeletons to image files.
package figure

import (
	"image/color"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/chenBenjamin97/movi-align/pkg/mocap"
)

//Visualizer advances to a frame and renders it
type Visualizer interface {
	Update(frame int) error
	Render(path string) error
}

//Axes selects which two world coordinates are drawn (0 == x, 1 == y, 2 == z)
type Axes [2]int

//FrontView draws x horizontally and z vertically, the MoVi up axis
var FrontView = Axes{0, 2}

var boneColor = color.RGBA{0, 128, 0, 255}

//Skeleton draws the bones of one frame of a sequence, on a square window centered on the root joint.
type Skeleton struct {
	seq    *mocap.Sequence
	axes   Axes
	frame  int
	width  vg.Length
	height vg.Length
}

//NewSkeleton returns a skeleton visualizer, positioned on the first frame
func NewSkeleton(seq *mocap.Sequence, axes Axes) (*Skeleton, error) {
	if seq == nil || seq.Frames() == 0 {
		return nil, errors.New("figure: empty sequence")
	}
	for _, a := range axes {
		if a < 0 || a > 2 {
			return nil, errors.Errorf("figure: invalid axis %d", a)
		}
	}

	return &Skeleton{seq: seq, axes: axes, width: 6 * vg.Inch, height: 6 * vg.Inch}, nil
}

func (s *Skeleton) Update(frame int) error {
	if frame < 0 || frame >= s.seq.Frames() {
		return errors.Errorf("figure: frame %d out of range [0, %d)", frame, s.seq.Frames())
	}
	s.frame = frame
	return nil
}

//Plot builds the plot of the current frame
func (s *Skeleton) Plot() (*plot.Plot, error) {
	joints := s.seq.Joints[s.frame]
	ax, ay := s.axes[0], s.axes[1]

	p := plot.New()
	p.Title.Text = "frame " + strconv.Itoa(s.frame)
	p.X.Label.Text = axisName(ax)
	p.Y.Label.Text = axisName(ay)

	for _, bone := range s.seq.Bones() {
		parent, child := joints[bone[0]], joints[bone[1]]
		line, err := plotter.NewLine(plotter.XYs{
			{X: parent[ax], Y: parent[ay]},
			{X: child[ax], Y: child[ay]},
		})
		if err != nil {
			return nil, errors.Wrap(err, "figure: bone line")
		}
		line.Color = boneColor
		p.Add(line)
	}

	pts := make(plotter.XYs, len(joints))
	for i, j := range joints {
		pts[i].X, pts[i].Y = j[ax], j[ay]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "figure: joints scatter")
	}
	p.Add(scatter)

	//millimeters data gets a wider window than meters data
	half := 1.0
	root := joints[0]
	if max3(root[0], root[1], root[2]) > 10 {
		half = 1000
	}
	p.X.Min, p.X.Max = root[ax]-half, root[ax]+half
	p.Y.Min, p.Y.Max = root[ay]-half, root[ay]+half

	return p, nil
}

//Render saves the current frame to path, format chosen by extension ('.png', '.svg', '.pdf', ...)
func (s *Skeleton) Render(path string) error {
	p, err := s.Plot()
	if err != nil {
		return err
	}
	return errors.Wrapf(p.Save(s.width, s.height, path), "figure: could not save '%s'", path)
}

func axisName(a int) string {
	return [...]string{"x", "y", "z"}[a]
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
