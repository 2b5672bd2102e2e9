package video

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/chenBenjamin97/movi-align/pkg/projection"
	"github.com/chenBenjamin97/movi-align/pkg/utils"
)

//Tag reads a video from given source, plots above each of it's frames the matching projected joints and saves the result
//to outputVideoPath. Frames are first written to an XVID ('.avi') temp file in 'directory.temp' and converted with ffmpeg
//when outputVideoPath has another extension.
//points are indexed [video frame][joint]; frames without points are written untouched.
func Tag(srcVideoPath, outputVideoPath string, points [][]projection.Pixel, opts OverlayOptions) (err error) {
	cap, err := OpenCapture(srcVideoPath)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, cap.Close())
	}()

	needConvert := !strings.EqualFold(filepath.Ext(outputVideoPath), ".avi")
	tmpVideoPath := outputVideoPath
	if needConvert {
		tmpVideoPath = path.Join(viper.GetString("directory.temp"), strings.TrimSuffix(filepath.Base(outputVideoPath), filepath.Ext(outputVideoPath))+".avi")
		defer os.Remove(tmpVideoPath) //remove '.avi' temp file at the end of this function
	}

	props := cap.Properties()
	if props.FrameCount > 0 && len(points) != props.FrameCount {
		padded := utils.PadSequence(points, props.FrameCount)
		if padded == nil {
			return errors.Errorf("Tag: %d frames of joints can not cover %d frames of '%s'", len(points), props.FrameCount, srcVideoPath)
		}
		points = padded
	}

	writer, err := CreateWriter(tmpVideoPath, utils.VideoFourcc(), props)
	if err != nil {
		return err
	}

	frames := 0
	for {
		frame, ok, err := cap.Read()
		if err != nil || !ok {
			break
		}

		if frames < len(points) {
			plotJointsOnFrame(&frame, points[frames], opts)
		}

		if err := writer.Write(frame); err != nil {
			_ = writer.Close()
			return errors.Wrapf(err, "could not write frame %d of '%s'", frames+1, tmpVideoPath)
		}
		frames++
	}

	if err := writer.Close(); err != nil {
		return errors.Wrapf(err, "could not finalize '%s'", tmpVideoPath)
	}

	if frames != len(points) {
		zap.S().Warnf("Tag: '%s' has %d frames but %d frames of joints were given", srcVideoPath, frames, len(points))
	}

	if needConvert {
		return Convert(tmpVideoPath, outputVideoPath)
	}
	return nil
}
