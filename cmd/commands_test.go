package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenBenjamin97/movi-align/pkg/projection"
)

func TestParsePoints(t *testing.T) {
	points, err := parsePoints([]string{"1,0.5,2", " -3, 4 ,5e2"})
	require.NoError(t, err)
	assert.Equal(t, []projection.Point{{1, 0.5, 2}, {-3, 4, 500}}, points)

	for _, bad := range []string{"1,2", "1,2,3,4", "a,b,c", ""} {
		_, err := parsePoints([]string{bad})
		assert.Error(t, err, bad)
	}
}

type fakeVisualizer struct {
	updateErr error
	renderErr error
	closeErr  error
	rendered  string
	closed    bool
}

func (f *fakeVisualizer) Update(int) error { return f.updateErr }

func (f *fakeVisualizer) Render(path string) error {
	f.rendered = path
	return f.renderErr
}

func (f *fakeVisualizer) Close() error {
	f.closed = true
	return f.closeErr
}

func TestRenderFrameCloses(t *testing.T) {
	errClose := errors.New("close failed")
	errUpdate := errors.New("frame out of range")

	tests := []struct {
		name    string
		v       *fakeVisualizer
		wantErr []error
	}{
		{"ok", &fakeVisualizer{}, nil},
		{"close error is returned", &fakeVisualizer{closeErr: errClose}, []error{errClose}},
		{"update and close errors", &fakeVisualizer{updateErr: errUpdate, closeErr: errClose}, []error{errUpdate, errClose}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := renderFrame(tc.v, 3, "frame.png")
			assert.True(t, tc.v.closed)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "frame.png", tc.v.rendered)
				return
			}
			for _, want := range tc.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
