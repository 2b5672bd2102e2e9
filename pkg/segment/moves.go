package segment

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/chenBenjamin97/movi-align/pkg/takes"
)

//ErrMissingMove is returned by a MoveReader when the archive has no data for a move
var ErrMissingMove = errors.New("move not found in archive")

//MoveData is the MoCap data of one take, as stored in a subject archive
type MoveData struct {
	Joints      []float64 //row-major
	JointsShape []int
	Pose        []float64 //row-major pose parameters, may be empty
	PoseShape   []int
}

//MoveReader gives access to a subject archive holding all moves of the subject
type MoveReader interface {
	Parents() ([]float64, error)
	Move(i int) (MoveData, error) //i is 0-based
}

//MoveOutput is everything written for one take
type MoveOutput struct {
	Take        int //1-based
	Subject     int
	Description string
	Betas       []float64
	Parents     []float64
	FPS         int
	MoveData
}

//MoveWriter persists one take
type MoveWriter func(out MoveOutput) error

//SplitMoves partitions a subject archive by move index, one output per metadata move entry.
//Subject id, shape parameters and description are copied verbatim, there is no frame range logic:
//one archive entry is one take. Moves missing from the archive are logged and skipped.
//Returns the number of written takes.
func SplitMoves(subject *takes.Subject, src MoveReader, fps int, write MoveWriter) (int, error) {
	logger := zap.S().Named("segment")

	parents, err := src.Parents()
	if err != nil {
		return 0, errors.Wrap(err, "could not read skeleton")
	}

	written := 0
	for i, move := range subject.Moves {
		data, err := src.Move(i)
		if errors.Is(err, ErrMissingMove) {
			logger.Warnf("SplitMoves: subject %d has no MoCap data for move %d ('%s'), skipping", subject.ID, i+1, move.Description)
			continue
		}
		if err != nil {
			return written, errors.Wrapf(err, "could not read move %d", i+1)
		}

		out := MoveOutput{
			Take:        i + 1,
			Subject:     subject.ID,
			Description: move.Description,
			Betas:       subject.Betas,
			Parents:     parents,
			FPS:         fps,
			MoveData:    data,
		}
		if err := write(out); err != nil {
			return written, errors.Wrapf(err, "could not write move %d", i+1)
		}
		written++
	}

	return written, nil
}
