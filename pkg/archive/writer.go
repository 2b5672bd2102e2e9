package archive

import (
	"github.com/pkg/errors"
	"github.com/sbinet/npyio/npz"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

//Writer creates a new '.npz' file. Arrays are written in the order given.
type Writer struct {
	path string
	w    *npz.Writer
}

//Create creates (or truncates) the archive at given path.
func Create(path string) (*Writer, error) {
	w, err := npz.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create archive '%s'", path)
	}

	return &Writer{path: path, w: w}, nil
}

//Float64s writes a 1D array
func (a *Writer) Float64s(name string, data []float64) error {
	if err := a.w.Write(name+npyExt, data); err != nil {
		return errors.Wrapf(err, "could not write '%s' to '%s'", name, a.path)
	}
	return nil
}

//Matrix writes a 2D array
func (a *Writer) Matrix(name string, m *mat.Dense) error {
	if err := a.w.Write(name+npyExt, m); err != nil {
		return errors.Wrapf(err, "could not write '%s' to '%s'", name, a.path)
	}
	return nil
}

func (a *Writer) Close() error {
	return a.w.Close()
}

//WriteFile writes all given arrays into a new archive, closing it even on failure.
//Values may be []float64 or *mat.Dense.
func WriteFile(path string, names []string, arrays map[string]interface{}) (err error) {
	w, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, w.Close())
	}()

	for _, name := range names {
		switch v := arrays[name].(type) {
		case []float64:
			err = w.Float64s(name, v)
		case *mat.Dense:
			err = w.Matrix(name, v)
		default:
			err = errors.Errorf("unsupported array type %T for '%s'", v, name)
		}
		if err != nil {
			return err
		}
	}

	return nil
}
