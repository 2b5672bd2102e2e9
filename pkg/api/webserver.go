package api

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chenBenjamin97/movi-align/pkg/camera"
	"github.com/chenBenjamin97/movi-align/pkg/dataset"
	"github.com/chenBenjamin97/movi-align/pkg/projection"
	"github.com/chenBenjamin97/movi-align/pkg/utils"
)

//ProjectRequest holds either a stored camera name or raw calibration, plus the world points to project
type ProjectRequest struct {
	Camera      string             `json:"camera"`
	Rotation    []float64          `json:"rotation"`
	Translation []float64          `json:"translation"`
	Intrinsic   []float64          `json:"intrinsic"`
	Points      []projection.Point `json:"points" binding:"required"`
}

type ProjectResponse struct {
	Pixels []projection.Pixel `json:"pixels"`
}

type errorResponse struct {
	Error string `json:"error"`
	Joint *int   `json:"joint,omitempty"`
}

//split job kinds, matching the 'kind' url parameter of '/api/Split'
var splitJobs = map[string]JobFunc{
	"videos": func(ctx context.Context) (interface{}, error) { return dataset.SplitVideos(ctx) },
	"mocap":  func(ctx context.Context) (interface{}, error) { return dataset.SplitMocap(ctx) },
}

func SetRouter(jobs *Jobs) *gin.Engine {
	r := gin.Default()

	apiRoutes := r.Group("/api")

	apiRoutes.GET("/SplitVideosNames", func(ctx *gin.Context) {
		listNames(ctx, viper.GetString("directory.output_videos"))
	})

	apiRoutes.GET("/OverlaysNames", func(ctx *gin.Context) {
		listNames(ctx, viper.GetString("directory.overlays"))
	})

	apiRoutes.GET("/Play", func(ctx *gin.Context) {
		videoName := ctx.Query("name")
		if videoName == "" || videoName != filepath.Base(videoName) {
			ctx.Status(http.StatusNotAcceptable) //missing or invalid url parameter
			return
		}

		var dir string
		switch ctx.DefaultQuery("kind", "split") {
		case "split":
			dir = viper.GetString("directory.output_videos")
		case "overlay":
			dir = viper.GetString("directory.overlays")
		default:
			ctx.Status(http.StatusNotAcceptable)
			return
		}

		if filepath.Ext(videoName) == "" {
			videoName += "." + utils.VideoFormat()
		}
		videoPath := path.Join(dir, videoName)

		if _, err := os.Stat(videoPath); err != nil {
			if os.IsNotExist(err) {
				ctx.Status(http.StatusNotFound)
			} else {
				ctx.Status(http.StatusInternalServerError)
			}
			return
		}

		ctx.Header("Content-Type", contentType(videoPath))
		http.ServeFile(ctx.Writer, ctx.Request, videoPath)
	})

	apiRoutes.POST("/Split", func(ctx *gin.Context) {
		kind := ctx.Query("kind")
		fn, ok := splitJobs[kind]
		if !ok {
			ctx.Status(http.StatusNotAcceptable)
			return
		}

		id := jobs.Start("split-"+kind, fn)
		zap.S().Infof("api/Split: Started job '%s' splitting %s", id, kind)
		ctx.JSON(http.StatusAccepted, gin.H{"id": id})
	})

	apiRoutes.GET("/Jobs/:id", func(ctx *gin.Context) {
		job, ok := jobs.Get(ctx.Param("id"))
		if !ok {
			ctx.Status(http.StatusNotFound)
			return
		}
		ctx.JSON(http.StatusOK, job)
	})

	apiRoutes.POST("/Project", func(ctx *gin.Context) {
		var req ProjectRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		cam, err := requestCamera(req)
		if err != nil {
			zap.S().Infof("api/Project: Could not build camera, got '%v'", err)
			if errors.Is(err, camera.ErrInvalidCalibration) {
				ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			} else {
				ctx.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		pixels, err := projection.Project(cam, req.Points)
		if err != nil {
			var degenerate *projection.DegenerateError
			if errors.As(err, &degenerate) {
				joint := degenerate.Joint
				ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Joint: &joint})
				return
			}
			ctx.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, ProjectResponse{Pixels: pixels})
	})

	return r
}

func requestCamera(req ProjectRequest) (*camera.Model, error) {
	if req.Camera != "" {
		if req.Camera != filepath.Base(req.Camera) {
			return nil, camera.ErrInvalidCalibration
		}
		return dataset.LoadCamera(req.Camera)
	}
	return camera.New(req.Rotation, req.Translation, req.Intrinsic)
}

func listNames(ctx *gin.Context, dir string) {
	if names, err := utils.ListDir(dir); err != nil {
		zap.S().Errorf("api: Could not list '%s', got '%v'", dir, err)
		ctx.Status(http.StatusInternalServerError)
	} else {
		ctx.JSON(http.StatusOK, names)
	}
}

func contentType(videoPath string) string {
	switch strings.ToLower(filepath.Ext(videoPath)) {
	case ".mp4":
		return "video/mp4"
	case ".avi":
		return "video/x-msvideo"
	default:
		return "application/octet-stream"
	}
}
