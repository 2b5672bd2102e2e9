//Package segment splits one continuous recording into per-take outputs using takes frame ranges.
package segment

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/chenBenjamin97/movi-align/pkg/takes"
)

//State of a segmentation run
type State int

const (
	Idle State = iota
	Writing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Writing:
		return "WRITING"
	case Done:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

//Source is read sequentially. Read returns ok == false once exhausted.
type Source[F any] interface {
	Read() (frame F, ok bool, err error)
}

//Sink receives all frames of one take. Lifecycle: open -> Write* -> Close.
type Sink[F any] interface {
	Write(frame F) error
	Close() error
}

//OpenFunc opens the output of given take number (1-based)
type OpenFunc[F any] func(take int, r takes.Range) (Sink[F], error)

//TakeResult describes one produced take
type TakeResult struct {
	Take     int
	Range    takes.Range
	Frames   int
	Complete bool //false if the source ended before the take's last frame
}

//Result describes a finished run
type Result struct {
	FramesRead int
	NextFrame  int //1-based number of the next frame that would have been read
	State      State
	Takes      []TakeResult
}

//Segmenter routes frames of a source to the currently open take's sink.
//It is a sequential fold over the frames stream, a Segmenter must not be shared between concurrent runs.
type Segmenter[F any] struct {
	ranges takes.Index
	open   OpenFunc[F]
	logger *zap.SugaredLogger

	state    State
	takeIdx  int
	frameNum int
	sink     Sink[F]
	current  *TakeResult
	result   Result
}

//New validates ranges and returns a segmenter ready for one Run
func New[F any](ranges takes.Index, open OpenFunc[F]) (*Segmenter[F], error) {
	if err := ranges.Validate(); err != nil {
		return nil, err
	}
	if open == nil {
		return nil, errors.New("segment: nil open function")
	}

	return &Segmenter[F]{
		ranges:   ranges,
		open:     open,
		logger:   zap.S().Named("segment"),
		state:    Idle,
		frameNum: 1,
	}, nil
}

//Run consumes src until it's exhausted, all takes are written, or ctx is done.
//A take still open when the source ends is closed here and reported with Complete == false; that is not an error.
func (s *Segmenter[F]) Run(ctx context.Context, src Source[F]) (res Result, err error) {
	defer func() {
		if s.sink != nil {
			//source ended (or failed) mid take
			err = multierr.Combine(err, s.closeTake(false))
		}
		s.result.NextFrame = s.frameNum
		s.result.State = s.state
		res = s.result
	}()

	for {
		if s.takeIdx >= len(s.ranges) {
			s.state = Done
			return
		}

		if err = ctx.Err(); err != nil {
			return
		}

		var (
			frame F
			ok    bool
		)
		frame, ok, err = src.Read()
		if err != nil {
			err = errors.Wrapf(err, "could not read frame %d", s.frameNum)
			return
		}
		if !ok {
			s.logger.Warnf("Run: source exhausted at frame %d, %d of %d takes not completed", s.frameNum, len(s.ranges)-s.takeIdx, len(s.ranges))
			return
		}
		s.result.FramesRead++

		if err = s.step(frame); err != nil {
			return
		}
		s.frameNum++
	}
}

func (s *Segmenter[F]) step(frame F) error {
	r := s.ranges[s.takeIdx]

	if s.frameNum == r.Start {
		sink, err := s.open(s.takeIdx+1, r)
		if err != nil {
			return errors.Wrapf(err, "could not open take %d", s.takeIdx+1)
		}
		s.sink = sink
		s.current = &TakeResult{Take: s.takeIdx + 1, Range: r}
		s.state = Writing
		s.logger.Debugf("step: opened take %d %v", s.takeIdx+1, r)
	}

	if r.Contains(s.frameNum) && s.sink != nil {
		if err := s.sink.Write(frame); err != nil {
			return errors.Wrapf(err, "could not write frame %d to take %d", s.frameNum, s.takeIdx+1)
		}
		s.current.Frames++
	}

	if s.frameNum == r.End {
		if err := s.closeTake(true); err != nil {
			return err
		}
		s.takeIdx++
	}

	return nil
}

func (s *Segmenter[F]) closeTake(complete bool) error {
	sink := s.sink
	s.sink = nil
	s.state = Idle

	if s.current != nil {
		s.current.Complete = complete
		s.result.Takes = append(s.result.Takes, *s.current)
		if !complete {
			s.logger.Warnf("closeTake: take %d %v finalized after %d frames, source ended early", s.current.Take, s.current.Range, s.current.Frames)
		}
		s.current = nil
	}

	if sink == nil {
		return nil
	}
	return errors.Wrap(sink.Close(), "could not close take output")
}
