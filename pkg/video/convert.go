package video

import (
	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

//Convert re-encodes srcPath into dstPath, output container chosen by dstPath extension.
//example: ffmpeg -i F_PG1_Subject_1_L.avi F_PG1_Subject_1_L.mp4
func Convert(srcPath, dstPath string) error {
	err := ffmpeg.Input(srcPath).
		Output(dstPath).
		OverWriteOutput().
		Run()
	if err != nil {
		zap.S().Errorf("Convert: Error from ffmpeg, got '%v'", err)
		return errors.Wrapf(err, "could not convert '%s' to '%s'", srcPath, dstPath)
	}
	return nil
}
