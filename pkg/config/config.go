package config

import "time"

const (
	// Path
	PathConfig = "config.txt"
	PathCache  = "cache"

	// frame files, zero padded so lexicographic order is temporal order
	FramePrefix  = "frame-"
	FramePattern = FramePrefix + "%07d.png"
	AudioFile    = "audio.wav"

	// defaults written to a fresh config file
	DefaultVideo  = "bad_apple.mp4"
	DefaultWidth  = 100
	DefaultHeight = 20
	DefaultFPS    = 30
	DefaultVolume = 0.1
	DefaultFFmpeg = "ffmpeg"
)

type Pacing string

const (
	// hold interval minus the time spent clearing and drawing
	PacingCompensated Pacing = "compensated"
	// hold the full interval, playback drifts slower by the render cost
	PacingFixed Pacing = "fixed"
)

type Config struct {
	Video  string
	Width  int
	Height int
	FPS    float64
	Volume float64
	Pacing Pacing
	FFmpeg string
}

func Default() Config {
	return Config{
		Video:  DefaultVideo,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
		Volume: DefaultVolume,
		Pacing: PacingCompensated,
		FFmpeg: DefaultFFmpeg,
	}
}

// FrameInterval is floor(1e6/fps) microseconds.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Duration(int64(1_000_000/c.FPS)) * time.Microsecond
}
