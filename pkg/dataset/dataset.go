//Package dataset wires configured MoVi directories to the projection and segmentation pipelines.
package dataset

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/chenBenjamin97/movi-align/pkg/archive"
	"github.com/chenBenjamin97/movi-align/pkg/camera"
	"github.com/chenBenjamin97/movi-align/pkg/mocap"
	"github.com/chenBenjamin97/movi-align/pkg/projection"
	"github.com/chenBenjamin97/movi-align/pkg/segment"
	"github.com/chenBenjamin97/movi-align/pkg/takes"
	"github.com/chenBenjamin97/movi-align/pkg/utils"
	"github.com/chenBenjamin97/movi-align/pkg/video"
)

//CalibrationPaths returns the two calibration archives of given camera ('PG1', 'PG2', ...)
func CalibrationPaths(cameraName string) (extrinsics, params string) {
	dir := viper.GetString("directory.calibration")
	return path.Join(dir, "Extrinsics_"+cameraName+".npz"), path.Join(dir, "cameraParams_"+cameraName+".npz")
}

//LoadCamera loads calibration of given camera from 'directory.calibration'
func LoadCamera(cameraName string) (*camera.Model, error) {
	ext, params := CalibrationPaths(cameraName)
	return camera.Load(ext, params)
}

//CameraFromVideoName extracts the camera name from a MoVi video name, 'F_PG1_Subject_1_L.avi' -> 'PG1'
func CameraFromVideoName(name string) (string, bool) {
	for _, part := range strings.Split(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)), "_") {
		if strings.HasPrefix(strings.ToUpper(part), "PG") || strings.HasPrefix(strings.ToUpper(part), "CP") {
			return part, true
		}
	}
	return "", false
}

//LoadCatalog reads takes metadata file 'metadata.file'
func LoadCatalog() (*takes.Catalog, error) {
	return takes.LoadCatalog(viper.GetString("metadata.file"))
}

//SplitVideos splits every video of 'directory.videos' into 'directory.output_videos'
func SplitVideos(ctx context.Context) (map[string]segment.Result, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}

	videos, err := utils.ListFiles(viper.GetString("directory.videos"), utils.VideoExtensions)
	if err != nil {
		return nil, err
	}

	return video.SplitAll(ctx, videos, catalog, viper.GetString("directory.output_videos"), utils.VideoFourcc(), utils.VideoFormat())
}

//SplitMocap splits every subject archive of 'directory.mocap' into per move archives in 'directory.output_mocap'.
//Archives without metadata are logged and skipped. Returns written takes count by archive name.
func SplitMocap(ctx context.Context) (map[string]int, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}

	archives, err := utils.ListFiles(viper.GetString("directory.mocap"), []string{".npz"})
	if err != nil {
		return nil, err
	}

	written := make(map[string]int)
	for _, archivePath := range archives {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		name := filepath.Base(archivePath)
		prefix, ok := takes.SubjectPrefix(name)
		if !ok {
			zap.S().Warnf("SplitMocap: Could not find subject in archive name '%s', skipping", name)
			continue
		}

		subject, err := catalog.Subject(prefix)
		if errors.Is(err, takes.ErrSubjectNotFound) {
			zap.S().Warnf("SplitMocap: No metadata for archive '%s', skipping", name)
			continue
		}
		if err != nil {
			return written, errors.Wrapf(err, "archive '%s'", name)
		}

		n, err := splitArchive(archivePath, subject)
		if err != nil {
			return written, err
		}
		written[name] = n
		zap.S().Infof("SplitMocap: '%s' split into %d of %d takes", name, n, len(subject.Moves))
	}

	return written, nil
}

func splitArchive(archivePath string, subject *takes.Subject) (n int, err error) {
	a, err := archive.Open(archivePath)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = multierr.Combine(err, a.Close())
	}()

	out := segment.ArchiveWriter(viper.GetString("directory.output_mocap"), archivePath)
	return segment.SplitMoves(subject, segment.NewArchiveMoves(a), utils.MocapFPS(), out)
}

//ImagePoints loads a single take MoCap archive and projects it on the video plane of given camera
func ImagePoints(mocapPath string, cam *camera.Model) ([][]projection.Pixel, *mocap.Sequence, error) {
	seq, err := mocap.Load(mocapPath, utils.ParentIndexBase(), utils.MocapFPS())
	if err != nil {
		return nil, nil, err
	}

	points, err := mocap.AdaptForVideo(seq, cam, utils.VideoFPS())
	if err != nil {
		return nil, nil, err
	}

	return points, seq, nil
}

//Overlay draws the projected joints of mocapPath on videoPath and writes it to 'directory.overlays'.
//Returns the written video path.
func Overlay(videoPath, mocapPath, cameraName string) (string, error) {
	cam, err := LoadCamera(cameraName)
	if err != nil {
		return "", err
	}

	points, _, err := ImagePoints(mocapPath, cam)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	outPath := path.Join(viper.GetString("directory.overlays"), base+"."+utils.VideoFormat())
	if err := video.Tag(videoPath, outPath, points, video.OverlayOptionsFromConfig()); err != nil {
		return "", err
	}

	return outPath, nil
}
