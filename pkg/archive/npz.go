//Package archive reads and writes the numpy '.npz' containers the MoVi dataset ships with.
package archive

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

const npyExt = ".npy"

//ErrMissingArray is returned when a requested array does not exist in the archive
var ErrMissingArray = errors.New("array not found in archive")

//Reader gives typed access to the arrays of one '.npz' file.
type Reader struct {
	path string
	r    *npz.Reader
}

//Open opens '.npz' archive at given path. Caller must Close it.
func Open(path string) (*Reader, error) {
	r, err := npz.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open archive '%s'", path)
	}

	return &Reader{path: path, r: r}, nil
}

func (a *Reader) Close() error {
	return a.r.Close()
}

func (a *Reader) Path() string {
	return a.path
}

//Keys returns arrays names, without the '.npy' extension, sorted
func (a *Reader) Keys() []string {
	keys := make([]string, 0, len(a.r.Keys()))
	for _, k := range a.r.Keys() {
		keys = append(keys, strings.TrimSuffix(k, npyExt))
	}
	sort.Strings(keys)
	return keys
}

//Has returns true if given array name exists in archive
func (a *Reader) Has(name string) bool {
	_, ok := a.resolve(name)
	return ok
}

//Float64s reads given array flattened in row-major order, and returns it's shape as well.
func (a *Reader) Float64s(name string) ([]float64, []int, error) {
	key, ok := a.resolve(name)
	if !ok {
		return nil, nil, errors.Wrapf(ErrMissingArray, "'%s' in '%s'", name, a.path)
	}

	hdr := a.r.Header(key)
	if hdr == nil {
		return nil, nil, errors.Wrapf(ErrMissingArray, "'%s' in '%s' has no header", name, a.path)
	}
	if hdr.Descr.Fortran {
		return nil, nil, errors.Errorf("array '%s' in '%s' is stored in fortran order", name, a.path)
	}

	data, err := a.read(key, hdr.Descr.Type)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not read '%s' from '%s'", name, a.path)
	}

	shape := append([]int(nil), hdr.Descr.Shape...)
	if n := Elements(shape); n != len(data) {
		return nil, nil, errors.Errorf("array '%s' in '%s' has %d values but shape %v", name, a.path, len(data), shape)
	}

	return data, shape, nil
}

//Matrix reads a 2D array. 1D arrays are returned as a single row.
func (a *Reader) Matrix(name string) (*mat.Dense, error) {
	data, shape, err := a.Float64s(name)
	if err != nil {
		return nil, err
	}

	switch len(shape) {
	case 1:
		return mat.NewDense(1, shape[0], data), nil
	case 2:
		return mat.NewDense(shape[0], shape[1], data), nil
	default:
		return nil, errors.Errorf("array '%s' in '%s' has %d dimensions, want 2", name, a.path, len(shape))
	}
}

//Scalar reads the first value of an array, used for 0-d or single element arrays (e.g. 'fps')
func (a *Reader) Scalar(name string) (float64, error) {
	data, _, err := a.Float64s(name)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, errors.Errorf("array '%s' in '%s' is empty", name, a.path)
	}
	return data[0], nil
}

//read decodes array key to float64 values whatever it's numeric dtype is ('<f8', '<f4', '<i8', ...)
func (a *Reader) read(key, dtype string) ([]float64, error) {
	switch strings.TrimLeft(dtype, "<>|=") {
	case "f8":
		var data []float64
		err := a.r.Read(key, &data)
		return data, err
	case "f4":
		var data []float32
		if err := a.r.Read(key, &data); err != nil {
			return nil, err
		}
		return convert(data), nil
	case "i8":
		var data []int64
		if err := a.r.Read(key, &data); err != nil {
			return nil, err
		}
		return convert(data), nil
	case "i4":
		var data []int32
		if err := a.r.Read(key, &data); err != nil {
			return nil, err
		}
		return convert(data), nil
	case "u1":
		var data []uint8
		if err := a.r.Read(key, &data); err != nil {
			return nil, err
		}
		return convert(data), nil
	default:
		return nil, errors.Errorf("unsupported dtype '%s'", dtype)
	}
}

func convert[T float32 | int64 | int32 | uint8](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}

func (a *Reader) resolve(name string) (string, bool) {
	for _, k := range a.r.Keys() {
		if k == name || strings.TrimSuffix(k, npyExt) == name {
			return k, true
		}
	}
	return "", false
}

//Elements returns the number of values an array of given shape holds
func Elements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
