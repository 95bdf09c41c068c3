// Package main provides the CLI entry point for clipshift.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/clipshift/pkg/adapters/ffmpegdec"
	"github.com/user/clipshift/pkg/adapters/ffmpegenc"
	"github.com/user/clipshift/pkg/adapters/ffprobe"
	"github.com/user/clipshift/pkg/adapters/filesink"
	"github.com/user/clipshift/pkg/adapters/logger"
	"github.com/user/clipshift/pkg/adapters/mp4insp"
	"github.com/user/clipshift/pkg/adapters/nullsink"
	"github.com/user/clipshift/pkg/adapters/osfilesystem"
	"github.com/user/clipshift/pkg/adapters/pigodetect"
	"github.com/user/clipshift/pkg/config"
	"github.com/user/clipshift/pkg/overlay"
	"github.com/user/clipshift/pkg/pipeline"
	"github.com/user/clipshift/pkg/ports"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "clipshift",
		Usage:   l10n.T("Reframe horizontal gameplay clips into vertical short-form video"),
		Version: version,
		Commands: []*cli.Command{
			processCommand(),
			inspectCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func processCommand() *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     l10n.T("Reframe one clip into a vertical MP4"),
		ArgsUsage: "INPUT OUTPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: l10n.T("Broadcaster label stamped onto the output")},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file path")},
			&cli.IntFlag{Name: "crf", Usage: l10n.T("x264 quality target (lower is better)")},
			&cli.StringFlag{Name: "preset", Usage: l10n.T("x264 speed/quality preset")},
			&cli.StringFlag{Name: "cascade", Usage: l10n.T("Face cascade file path (falls back to PIGO_CASCADE env)")},
			&cli.StringFlag{Name: "font", Usage: l10n.T("TTF font path for the label badge")},
			&cli.StringFlag{Name: "logo", Usage: l10n.T("Logo image path for the badge")},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Save intermediate detection and frame artifacts")},
			&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug artifacts")},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runProcess,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     l10n.T("Print stream facts of a produced MP4"),
		ArgsUsage: "FILE",
		Action:    runInspect,
	}
}

func runProcess(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit(l10n.T("process requires INPUT and OUTPUT arguments"), 2)
	}
	input := c.Args().Get(0)
	output := c.Args().Get(1)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()

	var sink ports.DebugSink
	if c.Bool("debug") {
		if err := fs.MkdirAll(c.String("debug-dir")); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(c.String("debug-dir"), fs)
	} else {
		sink = nullsink.New()
	}

	prober := ffprobe.New(log)
	prober.CustomPath = cfg.FFprobePath

	frames := ffmpegdec.New(log)
	frames.CustomPath = cfg.FFmpegPath

	encoder := ffmpegenc.New(log)
	encoder.CustomPath = cfg.FFmpegPath

	detector, err := pigodetect.New(cfg.ToDetectorOptions(), log)
	if err != nil {
		return err
	}

	var passes []pipeline.FramePass
	stamp, err := overlay.New(cfg.ToOverlayOptions(c.String("label")))
	if err != nil {
		return err
	}
	if stamp != nil {
		passes = append(passes, stamp)
	}

	proc := pipeline.New(
		prober,
		frames,
		detector,
		encoder,
		mp4insp.New(),
		fs,
		sink,
		log,
		cfg.ToPipelineConfig(),
		passes...,
	)

	if err := proc.Run(ctx, pipeline.Job{
		InputPath:  input,
		OutputPath: output,
		Label:      c.String("label"),
	}); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func runInspect(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("inspect requires a FILE argument"), 2)
	}
	path := c.Args().Get(0)

	info, err := mp4insp.New().Inspect(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  video:    %t (%s, %dx%d)\n", info.HasVideo, info.VideoCodec, info.Width, info.Height)
	fmt.Printf("  audio:    %t\n", info.HasAudio)
	fmt.Printf("  duration: %d ms\n", info.DurationMs)
	return nil
}

// loadConfig merges the optional YAML file with CLI flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if c.IsSet("crf") {
		cfg.CRF = c.Int("crf")
	}
	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.IsSet("cascade") {
		cfg.CascadePath = c.String("cascade")
	}
	if c.IsSet("font") {
		cfg.FontPath = c.String("font")
	}
	if c.IsSet("logo") {
		cfg.LogoPath = c.String("logo")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}
