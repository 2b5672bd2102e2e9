//Package takes describes where each take of a multi-take recording starts and ends.
package takes

import (
	"fmt"

	"github.com/pkg/errors"
)

//ErrInvalidRanges is returned when take ranges overlap, are out of order, or are not 1-indexed
var ErrInvalidRanges = errors.New("invalid take ranges")

//Range is an inclusive, 1-indexed frame range of one take
type Range struct {
	Start int `mapstructure:"start" json:"start"`
	End   int `mapstructure:"end" json:"end"`
}

func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) Contains(frame int) bool {
	return frame >= r.Start && frame <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

//Index is the ordered list of takes ranges. Index[i] is take number i+1.
type Index []Range

//NewIndex validates given ranges and returns them as an Index
func NewIndex(ranges []Range) (Index, error) {
	idx := Index(append([]Range(nil), ranges...))
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

//FromPairs builds an index out of [start, end] pairs, the way ranges are stored in metadata files
func FromPairs(pairs [][2]int) (Index, error) {
	ranges := make([]Range, len(pairs))
	for i, p := range pairs {
		ranges[i] = Range{Start: p[0], End: p[1]}
	}
	return NewIndex(ranges)
}

//Validate checks ranges are 1-indexed, non empty, increasing and not overlapping
func (idx Index) Validate() error {
	prevEnd := 0
	for i, r := range idx {
		if r.Start < 1 {
			return errors.Wrapf(ErrInvalidRanges, "take %d starts at frame %d", i+1, r.Start)
		}
		if r.Start > r.End {
			return errors.Wrapf(ErrInvalidRanges, "take %d range %v ends before it starts", i+1, r)
		}
		if r.Start <= prevEnd {
			return errors.Wrapf(ErrInvalidRanges, "take %d range %v overlaps previous take ending at %d", i+1, r, prevEnd)
		}
		prevEnd = r.End
	}
	return nil
}

//Frames returns the number of frames covered by all takes
func (idx Index) Frames() int {
	n := 0
	for _, r := range idx {
		n += r.Len()
	}
	return n
}
