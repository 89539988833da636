package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/1F47E/go-termreel/pkg/errs"
	"github.com/1F47E/go-termreel/pkg/logger"
)

// Extractor turns a source video into numbered still frames and one
// decoded audio track.
type Extractor interface {
	ExtractFrames(ctx context.Context, src string, width, height int, pattern string) error
	ExtractAudio(ctx context.Context, src, out string) error
}

// RunFunc runs a command and returns its stderr.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

type FFmpeg struct {
	Bin string
	run RunFunc
}

func NewFFmpeg(bin string) *FFmpeg {
	return &FFmpeg{Bin: bin, run: runCommand}
}

// WithRunner replaces process spawning, used by tests.
func (f *FFmpeg) WithRunner(run RunFunc) *FFmpeg {
	f.run = run
	return f
}

// call ffmpeg to decode the video into frames scaled to the glyph grid
func (f *FFmpeg) ExtractFrames(ctx context.Context, src string, width, height int, pattern string) error {
	args := []string{
		"-y", "-loglevel", "error",
		"-i", src,
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		pattern,
	}
	return f.exec(ctx, "frames", src, args)
}

// call ffmpeg to decode the audio track into a wav file
func (f *FFmpeg) ExtractAudio(ctx context.Context, src, out string) error {
	args := []string{
		"-y", "-loglevel", "error",
		"-i", src,
		"-vn",
		out,
	}
	return f.exec(ctx, "audio", src, args)
}

func (f *FFmpeg) exec(ctx context.Context, op, src string, args []string) error {
	if _, err := os.Stat(src); err != nil {
		return errs.New(errs.KindExtraction, op, err)
	}
	logger.Scope("video").Debugf("Running ffmpeg command: %s %s", f.Bin, strings.Join(args, " "))

	run := f.run
	if run == nil {
		run = runCommand
	}
	stderr, err := run(ctx, f.Bin, args...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(string(stderr))
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, lastLine(msg))
		}
		return errs.New(errs.KindExtraction, op, fmt.Errorf("%s broken: %w", f.Bin, err))
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return nil, fmt.Errorf("not found on PATH: %w", err)
	}
	return stderr.Bytes(), err
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
