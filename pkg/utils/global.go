package utils

import "github.com/spf13/viper"

//DefaultVideoFPS is the frame rate of MoVi videos
const DefaultVideoFPS = 30

//DefaultMocapFPS is the native frame rate of MoVi motion capture
const DefaultMocapFPS = 120

//DefaultParentIndexBase is the index base of 'jointsParent' arrays in MoVi archives
const DefaultParentIndexBase = 1

//DefaultFourcc is the codec used for written videos (XVID == MPEG-4 codec, '.avi' extension)
const DefaultFourcc = "XVID"

//DefaultVideoFormat is the extension of written videos
const DefaultVideoFormat = "avi"

//VideoExtensions are the file extensions treated as videos when scanning directories
var VideoExtensions = []string{".avi", ".mp4", ".mov", ".mkv"}

//VideoFPS returns 'video.fps' from configuration, or DefaultVideoFPS
func VideoFPS() int {
	return intOrDefault("video.fps", DefaultVideoFPS)
}

//MocapFPS returns 'mocap.fps' from configuration, or DefaultMocapFPS
func MocapFPS() int {
	return intOrDefault("mocap.fps", DefaultMocapFPS)
}

//ParentIndexBase returns 'mocap.parent_index_base' from configuration, or DefaultParentIndexBase
func ParentIndexBase() int {
	if viper.IsSet("mocap.parent_index_base") {
		return viper.GetInt("mocap.parent_index_base")
	}
	return DefaultParentIndexBase
}

//VideoFourcc returns 'video.fourcc' from configuration, or DefaultFourcc
func VideoFourcc() string {
	if s := viper.GetString("video.fourcc"); len(s) == 4 {
		return s
	}
	return DefaultFourcc
}

//VideoFormat returns 'video.prod_format' from configuration, or DefaultVideoFormat
func VideoFormat() string {
	if s := viper.GetString("video.prod_format"); s != "" {
		return s
	}
	return DefaultVideoFormat
}

func intOrDefault(key string, def int) int {
	if v := viper.GetInt(key); v > 0 {
		return v
	}
	return def
}
