package audio

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/1F47E/go-termreel/pkg/errs"
	"github.com/1F47E/go-termreel/pkg/logger"
)

// Output is the audio device.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
	Close()
}

// Speaker is the default sound card output.
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (Speaker) Play(s beep.Streamer)                          { speaker.Play(s) }
func (Speaker) Clear()                                        { speaker.Clear() }
func (Speaker) Close()                                        { speaker.Close() }

// Player plays one wav file once.
type Player struct {
	Path   string
	Volume float64
	Output Output
}

func New(path string, volume float64) *Player {
	return &Player{Path: path, Volume: volume, Output: Speaker{}}
}

// Start plays the track on its own goroutine. The returned channel
// receives exactly one value, nil when the track ended, and is closed.
// Cancelling ctx stops the track early and reports ctx.Err().
func (p *Player) Start(ctx context.Context) <-chan error {
	res := make(chan error, 1)
	go func() {
		defer close(res)
		res <- p.play(ctx)
	}()
	return res
}

func (p *Player) play(ctx context.Context) error {
	log := logger.Scope("audio")

	f, err := os.Open(p.Path)
	if err != nil {
		return errs.New(errs.KindDecode, p.Path, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return errs.New(errs.KindDecode, p.Path, err)
	}
	defer streamer.Close()

	out := p.Output
	if out == nil {
		out = Speaker{}
	}
	if err := out.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return errs.New(errs.KindPlayback, "init output", err)
	}
	defer out.Close()

	log.Debugf("Playing %s: %d Hz, %d channels, volume %.2f", p.Path, format.SampleRate, format.NumChannels, p.Volume)

	done := make(chan struct{}, 1)
	out.Play(beep.Seq(Volume(streamer, p.Volume), beep.Callback(func() {
		done <- struct{}{}
	})))

	select {
	case <-ctx.Done():
		out.Clear()
		return ctx.Err()
	case <-done:
	}
	if err := streamer.Err(); err != nil {
		return errs.New(errs.KindDecode, p.Path, fmt.Errorf("stream: %w", err))
	}
	return nil
}

// Volume scales amplitude linearly, 0 is silence and 1 the original level.
func Volume(s beep.Streamer, v float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: v - 1}
}
