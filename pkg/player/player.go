// Package player paces rendered frames on a screen at a fixed frame rate.
//
// Each frame is a clear, a draw and a hold. With fixed pacing the hold is
// the full frame interval and playback runs slower than the target rate
// by the render cost of every frame. With compensated pacing the render
// time is subtracted from the hold, so frames start on the interval grid
// as long as rendering is faster than the interval.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/1F47E/go-termreel/pkg/errs"
	"github.com/1F47E/go-termreel/pkg/logger"
	"github.com/1F47E/go-termreel/pkg/screen"
)

type State int

const (
	Idle State = iota
	Playing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var ErrNotIdle = errors.New("scheduler already played")

type SleepFunc func(ctx context.Context, d time.Duration) error

type Scheduler struct {
	screen     screen.Screen
	interval   time.Duration
	compensate bool

	sleep SleepFunc
	now   func() time.Time

	mu    sync.Mutex
	state State
}

func New(s screen.Screen, interval time.Duration, compensate bool) *Scheduler {
	return &Scheduler{
		screen:     s,
		interval:   interval,
		compensate: compensate,
		sleep:      sleepCtx,
		now:        time.Now,
	}
}

// WithClock replaces the sleep and time source, used by tests.
func (s *Scheduler) WithClock(sleep SleepFunc, now func() time.Time) *Scheduler {
	s.sleep = sleep
	s.now = now
	return s
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Hold returns how long to wait after a frame that took render to draw.
func (s *Scheduler) Hold(render time.Duration) time.Duration {
	if !s.compensate {
		return s.interval
	}
	if render >= s.interval {
		return 0
	}
	return s.interval - render
}

// Play draws frames in order. It blocks until the last frame's hold has
// elapsed or ctx is done. A scheduler plays once.
func (s *Scheduler) Play(ctx context.Context, frames []string) error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return ErrNotIdle
	}
	s.state = Playing
	s.mu.Unlock()
	defer s.setState(Done)

	log := logger.Scope("player")
	log.Debugf("Playing %d frames, interval %s, compensated %v", len(frames), s.interval, s.compensate)

	start := s.now()
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			log.Debugf("Stopped at frame %d/%d", i, len(frames))
			return err
		}
		frameStart := s.now()
		if err := s.screen.Clear(); err != nil {
			return errs.New(errs.KindOutput, fmt.Sprintf("clear frame %d", i), err)
		}
		if err := s.screen.Draw(frame); err != nil {
			return errs.New(errs.KindOutput, fmt.Sprintf("draw frame %d", i), err)
		}
		if err := s.sleep(ctx, s.Hold(s.now().Sub(frameStart))); err != nil {
			return err
		}
	}
	log.Debugf("Played %d frames in %s", len(frames), s.now().Sub(start))
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
