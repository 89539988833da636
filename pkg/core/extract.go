package core

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	cfg "github.com/1F47E/go-termreel/pkg/config"
	"github.com/1F47E/go-termreel/pkg/core/progress"
	"github.com/1F47E/go-termreel/pkg/logger"
)

// extract runs both ffmpeg passes and returns the frame files in order.
func (c *Core) extract() ([]string, error) {
	log := logger.Scope("core extract")

	if err := c.framesExtract(); err != nil {
		return nil, err
	}

	progress.ProgressSpinner("Extracting audio...")
	err := c.extractor.ExtractAudio(c.ctx, c.cfg.Video, c.cache.AudioPath())
	progress.Finish()
	if err != nil {
		return nil, err
	}

	files, err := c.cache.ScanFrames()
	if err != nil {
		return nil, err
	}
	log.Debugf("total frames: %d", len(files))
	return files, nil
}

func (c *Core) framesExtract() error {
	progress.ProgressSpinner("Extracting frames...")
	defer progress.Finish()

	// count frames while ffmpeg writes them
	done := make(chan struct{})
	watched := make(chan struct{})
	go func() {
		defer close(watched)
		c.watchFramesDir(done)
	}()

	err := c.extractor.ExtractFrames(c.ctx, c.cfg.Video, c.cfg.Width, c.cfg.Height, c.cache.FramePattern())
	close(done)
	<-watched
	return err
}

func (c *Core) watchFramesDir(done <-chan struct{}) {
	log := logger.Scope("core watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warnf("frames progress disabled: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(c.cache.FramesDir()); err != nil {
		log.Warnf("frames progress disabled: %v", err)
		return
	}

	count := 0
	for {
		select {
		case <-done:
			log.Debugf("Watched %d frames, %d on disk", count, c.cache.CountFrames())
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == 0 || !strings.HasPrefix(filepath.Base(ev.Name), cfg.FramePrefix) {
				continue
			}
			count++
			progress.Add(1)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watching frames dir error:", err)
		}
	}
}
