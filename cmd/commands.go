package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/chenBenjamin97/movi-align/pkg/api"
	"github.com/chenBenjamin97/movi-align/pkg/dataset"
	"github.com/chenBenjamin97/movi-align/pkg/figure"
	"github.com/chenBenjamin97/movi-align/pkg/mocap"
	"github.com/chenBenjamin97/movi-align/pkg/projection"
	"github.com/chenBenjamin97/movi-align/pkg/utils"
	"github.com/chenBenjamin97/movi-align/pkg/video"
)

func ServeAction(c *cli.Context) error {
	jobs := api.NewJobs(c.Context)
	r := api.SetRouter(jobs)
	return r.Run(":" + viper.GetString("http.port"))
}

func SplitVideosAction(c *cli.Context) error {
	results, err := dataset.SplitVideos(c.Context)
	for name, res := range results {
		fmt.Fprintf(c.App.Writer, "%s: %d frames read, %d takes, state %s\n", filepath.Base(name), res.FramesRead, len(res.Takes), res.State)
	}
	return err
}

func SplitMocapAction(c *cli.Context) error {
	written, err := dataset.SplitMocap(c.Context)
	for name, n := range written {
		fmt.Fprintf(c.App.Writer, "%s: %d takes\n", name, n)
	}
	return err
}

func OverlayAction(c *cli.Context) error {
	videoPath, mocapPath := c.Path(flagVideo), c.Path(flagMocap)
	cameraName, err := cameraFor(c, videoPath)
	if err != nil {
		return err
	}

	if !c.Bool(flagShow) {
		outPath, err := dataset.Overlay(videoPath, mocapPath, cameraName)
		if err != nil {
			return err
		}
		zap.S().Infof("OverlayAction: Wrote '%s'", outPath)
		return nil
	}

	cam, err := dataset.LoadCamera(cameraName)
	if err != nil {
		return err
	}
	points, _, err := dataset.ImagePoints(mocapPath, cam)
	if err != nil {
		return err
	}
	return video.Play(videoPath, points, video.OverlayOptionsFromConfig())
}

func PlotAction(c *cli.Context) error {
	mocapPath := c.Path(flagMocap)
	frame := c.Int(flagFrame)

	outPath := c.Path(flagOutput)
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(mocapPath), filepath.Ext(mocapPath))
		outPath = path.Join(viper.GetString("directory.plots"), base+"_"+strconv.Itoa(frame)+".png")
	}

	var (
		v   figure.Visualizer
		err error
	)
	if videoPath := c.Path(flagVideo); videoPath != "" {
		v, err = snapshotVisualizer(c, videoPath, mocapPath)
	} else {
		v, err = skeletonVisualizer(mocapPath, c.Bool(flagNative))
	}
	if err != nil {
		return err
	}

	if err := renderFrame(v, frame, outPath); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, outPath)
	return nil
}

//renderFrame renders frame of v to outPath, closing v when it holds resources
func renderFrame(v figure.Visualizer, frame int, outPath string) (err error) {
	if closer, ok := v.(io.Closer); ok {
		defer func() {
			err = multierr.Combine(err, closer.Close())
		}()
	}

	if err = v.Update(frame); err != nil {
		return err
	}
	return v.Render(outPath)
}

func snapshotVisualizer(c *cli.Context, videoPath, mocapPath string) (*video.Snapshot, error) {
	cameraName, err := cameraFor(c, videoPath)
	if err != nil {
		return nil, err
	}
	cam, err := dataset.LoadCamera(cameraName)
	if err != nil {
		return nil, err
	}
	points, _, err := dataset.ImagePoints(mocapPath, cam)
	if err != nil {
		return nil, err
	}
	return video.NewSnapshot(videoPath, points, video.OverlayOptionsFromConfig())
}

func skeletonVisualizer(mocapPath string, native bool) (*figure.Skeleton, error) {
	seq, err := mocap.Load(mocapPath, utils.ParentIndexBase(), utils.MocapFPS())
	if err != nil {
		return nil, err
	}
	if !native {
		if seq, err = mocap.Resample(seq, utils.VideoFPS()); err != nil {
			return nil, err
		}
	}
	return figure.NewSkeleton(seq, figure.FrontView)
}

func ProjectAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("missing world points")
	}
	points, err := parsePoints(c.Args().Slice())
	if err != nil {
		return err
	}

	cam, err := dataset.LoadCamera(c.String(flagCamera))
	if err != nil {
		return err
	}

	pixels, err := projection.Project(cam, points)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	return enc.Encode(pixels)
}

//cameraFor returns --camera, or the camera found in the video name
func cameraFor(c *cli.Context, videoPath string) (string, error) {
	if name := c.String(flagCamera); name != "" {
		return name, nil
	}
	name, ok := dataset.CameraFromVideoName(videoPath)
	if !ok {
		return "", errors.Errorf("could not find camera name in '%s', use --%s", filepath.Base(videoPath), flagCamera)
	}
	return name, nil
}

//parsePoints parses 'x,y,z' values
func parsePoints(values []string) ([]projection.Point, error) {
	points := make([]projection.Point, 0, len(values))
	for _, value := range values {
		parts := strings.Split(value, ",")
		if len(parts) != 3 {
			return nil, errors.Errorf("point '%s' must be 'x,y,z'", value)
		}

		var p projection.Point
		for i, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "point '%s'", value)
			}
			p[i] = f
		}
		points = append(points, p)
	}
	return points, nil
}
