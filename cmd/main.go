package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/chenBenjamin97/movi-align/pkg/utils"
)

const (
	flagConfig = "config"
	flagDebug  = "debug"
	flagVideo  = "video"
	flagMocap  = "mocap"
	flagCamera = "camera"
	flagShow   = "show"
	flagFrame  = "frame"
	flagOutput = "output"
	flagNative = "native"
)

func main() {
	app := &cli.App{
		Name:  "movi",
		Usage: "align MoVi motion capture with it's videos",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "config file, defaults to ./config.yaml",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: setup,
		After: func(c *cli.Context) error {
			_ = zap.L().Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the http api",
				Action: ServeAction,
			},
			{
				Name:   "split-videos",
				Usage:  "split every video in 'directory.videos' into it's takes",
				Action: SplitVideosAction,
			},
			{
				Name:   "split-mocap",
				Usage:  "split every MoCap archive in 'directory.mocap' into it's moves",
				Action: SplitMocapAction,
			},
			{
				Name:  "overlay",
				Usage: "draw projected MoCap joints on a video",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagVideo, Required: true, Usage: "source video"},
					&cli.PathFlag{Name: flagMocap, Required: true, Usage: "single take MoCap archive"},
					&cli.StringFlag{Name: flagCamera, Usage: "camera name (PG1, PG2, ...), taken from the video name when empty"},
					&cli.BoolFlag{Name: flagShow, Usage: "play in a window instead of writing a video"},
				},
				Action: OverlayAction,
			},
			{
				Name:  "plot",
				Usage: "render one frame of a MoCap take to an image",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagMocap, Required: true, Usage: "single take MoCap archive"},
					&cli.IntFlag{Name: flagFrame, Usage: "frame index, at video frame rate unless --native"},
					&cli.PathFlag{Name: flagOutput, Aliases: []string{"o"}, Usage: "output image, defaults to 'directory.plots'"},
					&cli.BoolFlag{Name: flagNative, Usage: "index frames at MoCap frame rate"},
					&cli.PathFlag{Name: flagVideo, Usage: "draw the frame on this video instead of a skeleton plot"},
					&cli.StringFlag{Name: flagCamera, Usage: "camera name, used with --video"},
				},
				Action: PlotAction,
			},
			{
				Name:      "project",
				Usage:     "print pixels of world points for a calibrated camera",
				ArgsUsage: "x,y,z [x,y,z ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagCamera, Required: true, Usage: "camera name (PG1, PG2, ...)"},
				},
				Action: ProjectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

//setup builds the global logger, reads config file and creates missing data directories
func setup(c *cli.Context) error {
	var (
		logger *zap.Logger
		err    error
	)
	if c.Bool(flagDebug) {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	if path := c.Path(flagConfig); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file, got '%v'", err)
	}

	//first - create project's data root dir, then the rest of directories from config file
	if root := viper.GetString("directory.root"); root != "" {
		if err := utils.EnsureDir(root); err != nil {
			zap.S().Errorf("Error Creating '%s' directory, got '%v'", root, err)
		}
	}
	for name, dir := range viper.GetStringMapString("directory") {
		if dir == "" {
			continue
		}
		if err := utils.EnsureDir(dir); err != nil {
			zap.S().Errorf("Error Creating '%s' (%s) directory, got '%v'", dir, name, err)
		}
	}

	if viper.GetString("metadata.file") == "" || viper.GetString("directory.calibration") == "" {
		return fmt.Errorf("missing critical configurations ('metadata.file', 'directory.calibration')")
	}

	return nil
}
