package core

import (
	"fmt"
	"time"

	"github.com/1F47E/go-termreel/pkg/core/progress"
	"github.com/1F47E/go-termreel/pkg/glyph"
	"github.com/1F47E/go-termreel/pkg/logger"
	"github.com/1F47E/go-termreel/pkg/workers"
)

// render maps frame files to text blocks, in file order.
// A frame that cannot be decoded fails the whole run.
func (c *Core) render(files []string) ([]string, error) {
	log := logger.Scope("core render")
	ramp := c.ramp()
	width, height := c.cfg.Width, c.cfg.Height

	progress.ProgressReset(len(files), fmt.Sprintf("Mapping %d frames...", len(files)))
	defer progress.Finish()

	now := time.Now()
	frames, err := workers.MapAll(c.ctx, files, c.workers(), func(file string) (string, error) {
		return glyph.MapFile(file, width, height, ramp)
	}, func() { progress.Add(1) })
	if err != nil {
		return nil, err
	}
	log.Debugf("Mapped %d frames. Took time: %s", len(frames), time.Since(now))
	return frames, nil
}
