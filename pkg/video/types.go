package video

import (
	"image/color"

	"github.com/spf13/viper"
)

//OverlayOptions controls how projected joints are drawn on frames
type OverlayOptions struct {
	Radius    int
	Color     color.RGBA
	Thickness int //-1 == filled circle
}

//DefaultOverlayOptions are the MoVi player defaults: filled green circles of radius 2,
//drawn as BGR (124, 252, 0)
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{
		Radius:    2,
		Color:     color.RGBA{0, 252, 124, 0},
		Thickness: -1,
	}
}

//OverlayOptionsFromConfig reads 'overlay.radius' and 'overlay.color' ([r, g, b]), falling back to defaults
func OverlayOptionsFromConfig() OverlayOptions {
	opts := DefaultOverlayOptions()
	if viper.IsSet("overlay.radius") {
		opts.Radius = viper.GetInt("overlay.radius")
	}
	if c := viper.GetIntSlice("overlay.color"); len(c) == 3 {
		opts.Color = color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 0}
	}
	return opts
}

//Properties of an opened video stream
type Properties struct {
	FPS        float64
	Width      int
	Height     int
	FrameCount int //0 when the container does not report it
}
