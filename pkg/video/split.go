package video

import (
	"context"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/chenBenjamin97/movi-align/pkg/segment"
	"github.com/chenBenjamin97/movi-align/pkg/takes"
)

//Split writes every take of srcVideoPath described by ranges into outputDir, named '<source>_<take>.<ext>'.
//Frames are copied as decoded, with the source fps and resolution.
func Split(ctx context.Context, srcVideoPath string, ranges takes.Index, outputDir, fourcc, ext string) (res segment.Result, err error) {
	cap, err := OpenCapture(srcVideoPath)
	if err != nil {
		return segment.Result{}, err
	}
	defer func() {
		err = multierr.Combine(err, cap.Close())
	}()

	props := cap.Properties()
	open := func(take int, r takes.Range) (segment.Sink[gocv.Mat], error) {
		outPath := path.Join(outputDir, segment.TakeName(srcVideoPath, take, ext))
		zap.S().Debugf("Split: take %d %v -> '%s'", take, r, outPath)
		w, err := CreateWriter(outPath, fourcc, props)
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	seg, err := segment.New[gocv.Mat](ranges, open)
	if err != nil {
		return segment.Result{}, err
	}

	return seg.Run(ctx, cap)
}

//SplitAll splits each given video using it's subject's metadata from catalog.
//A video without metadata is logged and skipped, processing continues with the rest.
//Returns results by video file name.
func SplitAll(ctx context.Context, videos []string, catalog *takes.Catalog, outputDir, fourcc, ext string) (map[string]segment.Result, error) {
	results := make(map[string]segment.Result)

	for _, videoPath := range videos {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := filepath.Base(videoPath)
		prefix, ok := takes.SubjectPrefix(name)
		if !ok {
			zap.S().Warnf("SplitAll: Could not find subject in video name '%s', skipping", name)
			continue
		}

		subject, err := catalog.Subject(prefix)
		if errors.Is(err, takes.ErrSubjectNotFound) {
			zap.S().Warnf("SplitAll: No metadata for video '%s', skipping", name)
			continue
		}
		if err != nil {
			return results, errors.Wrapf(err, "video '%s'", name)
		}

		ranges, err := subject.VideoIndex()
		if err != nil {
			return results, err
		}

		res, err := Split(ctx, videoPath, ranges, outputDir, fourcc, ext)
		if err != nil {
			return results, errors.Wrapf(err, "could not split '%s'", name)
		}
		results[name] = res

		zap.S().Infof("SplitAll: '%s' split into %d of %d takes (%d frames read)", name, len(res.Takes), len(ranges), res.FramesRead)
	}

	return results, nil
}
