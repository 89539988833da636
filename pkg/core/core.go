package core

import (
	"context"
	"runtime"

	"github.com/1F47E/go-termreel/pkg/audio"
	"github.com/1F47E/go-termreel/pkg/config"
	"github.com/1F47E/go-termreel/pkg/glyph"
	"github.com/1F47E/go-termreel/pkg/logger"
	"github.com/1F47E/go-termreel/pkg/screen"
	"github.com/1F47E/go-termreel/pkg/storage"
	"github.com/1F47E/go-termreel/pkg/video"
)

var log = logger.Log

// Core runs one playback: extract, map, play.
type Core struct {
	ctx       context.Context
	cfg       config.Config
	cache     *storage.Cache
	extractor video.Extractor
	screen    screen.Screen
	output    audio.Output

	// Ramp maps luma to glyphs, DefaultRamp when nil.
	Ramp glyph.Ramp
	// Workers mapping frames in parallel, NumCPU when zero.
	Workers int
	// StrictAudio aborts playback when audio fails instead of
	// continuing video only.
	StrictAudio bool
}

func NewCore(ctx context.Context, cfg config.Config, cache *storage.Cache, ex video.Extractor, scr screen.Screen, out audio.Output) *Core {
	return &Core{
		ctx:       ctx,
		cfg:       cfg,
		cache:     cache,
		extractor: ex,
		screen:    scr,
		output:    out,
	}
}

func (c *Core) ramp() glyph.Ramp {
	if len(c.Ramp) == 0 {
		return glyph.DefaultRamp
	}
	return c.Ramp
}

func (c *Core) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// 1. lock and wipe the cache
// 2. extract frames and audio with the external tool
// 3. map every frame to text, all frames are buffered before playback
// 4. start audio and play frames
func (c *Core) Run() error {
	if err := c.cache.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := c.cache.Unlock(); err != nil {
			log.Warnf("Cannot release cache lock: %v", err)
		}
	}()

	if err := c.cache.Reset(); err != nil {
		return err
	}

	files, err := c.extract()
	if err != nil {
		return err
	}

	frames, err := c.render(files)
	if err != nil {
		return err
	}

	return c.play(frames)
}
