package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/1F47E/go-termreel/pkg/audio"
	cfg "github.com/1F47E/go-termreel/pkg/config"
	"github.com/1F47E/go-termreel/pkg/core"
	"github.com/1F47E/go-termreel/pkg/errs"
	"github.com/1F47E/go-termreel/pkg/logger"
	"github.com/1F47E/go-termreel/pkg/screen"
	"github.com/1F47E/go-termreel/pkg/storage"
	"github.com/1F47E/go-termreel/pkg/video"
)

var app = cli.NewApp()
var log = logger.Log

func init() {
	app.Name = "termreel"
	app.Usage = "Play a video as ASCII art in the terminal"
	app.UsageText = "termreel [options]"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: cfg.PathConfig,
			Usage: "config file, created with defaults when missing",
		},
		cli.StringFlag{
			Name:  "cache",
			Value: cfg.PathCache,
			Usage: "scratch dir for frames and audio, wiped on every run",
		},
		cli.IntFlag{
			Name:  "workers, w",
			Usage: "frames mapped in parallel, 0 for one per CPU",
		},
		cli.BoolFlag{
			Name:  "strict-audio",
			Usage: "abort when audio cannot be played instead of playing video only",
		},
	}
	app.Action = run
}

func run(c *cli.Context) error {
	path := c.String("config")
	created, err := cfg.EnsureDefault(path)
	if err != nil {
		return err
	}
	if created {
		log.Infof("Created default config %s", path)
	}

	conf, err := cfg.Load(path)
	if err != nil {
		return err
	}
	log.Debugf("Config: %+v", conf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := screen.NewTerminal()
	if !term.IsTTY() {
		log.Debug("stdout is not a terminal, frames are not cleared")
	}

	p := core.NewCore(ctx, conf, storage.New(c.String("cache")), video.NewFFmpeg(conf.FFmpeg), term, audio.Speaker{})
	p.Workers = c.Int("workers")
	p.StrictAudio = c.Bool("strict-audio")
	return p.Run()
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Error(err)
		os.Exit(errs.ExitCode(err))
	}
}
