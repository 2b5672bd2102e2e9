package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraFromVideoName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"F_PG1_Subject_1_L.avi", "PG1", true},
		{"/data/videos/F_PG2_Subject_12_L.mp4", "PG2", true},
		{"F_CP1_Subject_3.avi", "CP1", true},
		{"Subject_1.avi", "", false},
	}

	for _, tc := range tests {
		got, ok := CameraFromVideoName(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestCalibrationPaths(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("directory.calibration", "/data/calib")

	ext, params := CalibrationPaths("PG1")
	assert.Equal(t, "/data/calib/Extrinsics_PG1.npz", ext)
	assert.Equal(t, "/data/calib/cameraParams_PG1.npz", params)

	_, err := LoadCamera("PG1")
	assert.Error(t, err)
}

func TestSplitMocapSkipsUnknownArchives(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	metadata := filepath.Join(dir, "metadata.yaml")
	require.NoError(t, writeFile(metadata, "subject_1_f:\n  subject: 1\n  moves:\n    - description: walk\n      flags30: [1, 10]\n      flags120: [1, 40]\n"))
	require.NoError(t, writeFile(filepath.Join(dir, "mocap", "unknown.npz"), ""))
	require.NoError(t, writeFile(filepath.Join(dir, "mocap", "F_amass_Subject_7.npz"), ""))

	viper.Set("metadata.file", metadata)
	viper.Set("directory.mocap", filepath.Join(dir, "mocap"))
	viper.Set("directory.output_mocap", filepath.Join(dir, "out"))

	written, err := SplitMocap(context.Background())
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestSplitMocapCancelled(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	metadata := filepath.Join(dir, "metadata.yaml")
	require.NoError(t, writeFile(metadata, "subject_1_f:\n  subject: 1\n"))
	require.NoError(t, writeFile(filepath.Join(dir, "mocap", "F_amass_Subject_1.npz"), ""))
	viper.Set("metadata.file", metadata)
	viper.Set("directory.mocap", filepath.Join(dir, "mocap"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SplitMocap(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
