package core

import (
	"context"
	"errors"

	"github.com/1F47E/go-termreel/pkg/audio"
	"github.com/1F47E/go-termreel/pkg/config"
	"github.com/1F47E/go-termreel/pkg/logger"
	"github.com/1F47E/go-termreel/pkg/player"
)

// play starts audio and frames together. Audio runs on its own goroutine
// and reports once; a failure is logged and playback continues silent
// unless StrictAudio is set. Audio is stopped when the last frame's hold
// ends.
func (c *Core) play(frames []string) error {
	log := logger.Scope("core play")

	ctx, cancel := context.WithCancelCause(c.ctx)
	defer cancel(nil)

	audioCtx, stopAudio := context.WithCancel(c.ctx)
	defer stopAudio()

	ap := audio.New(c.cache.AudioPath(), c.cfg.Volume)
	if c.output != nil {
		ap.Output = c.output
	}

	sched := player.New(c.screen, c.cfg.FrameInterval(), c.cfg.Pacing == config.PacingCompensated)

	audioRes := ap.Start(audioCtx)
	audioDone := make(chan error, 1)
	go func() {
		err := <-audioRes
		if failed(err) {
			if c.StrictAudio {
				cancel(err)
			} else {
				log.Warnf("Audio failed, playing video only: %v", err)
			}
		}
		audioDone <- err
	}()

	playErr := sched.Play(ctx, frames)
	stopAudio()
	audioErr := <-audioDone

	if c.StrictAudio && failed(audioErr) {
		return audioErr
	}
	return playErr
}

func failed(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}
