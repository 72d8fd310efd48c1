// Package main provides the CLI entry point for framegrab.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framegrab/pkg/adapters/filesink"
	"github.com/user/framegrab/pkg/adapters/ggrenderer"
	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/adapters/nullsink"
	"github.com/user/framegrab/pkg/adapters/osfilesystem"
	"github.com/user/framegrab/pkg/adapters/smartsource"
	"github.com/user/framegrab/pkg/adapters/stdoutreporter"
	"github.com/user/framegrab/pkg/config"
	"github.com/user/framegrab/pkg/orchestrator"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/sampler"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)

	err := app.RunContext(ctx, flagsFirst(app.Flags, args))
	if err == nil {
		return exitOK
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	// Flag parsing errors; urfave/cli has already printed usage.
	return exitUsage
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "framegrab",
		Usage:     l10n.T("Extract every Nth frame of a video as JPEG files"),
		ArgsUsage: "<input_video_path>",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "frame_rate",
				Aliases:  []string{"r"},
				Value:    30,
				Usage:    l10n.T("Sampling interval: store every Nth frame"),
				Category: l10n.T("Sampling"),
			},
			&cli.StringFlag{
				Name:     "output_frames_folder_path",
				Aliases:  []string{"o"},
				Value:    "output/frames/",
				Usage:    l10n.T("Existing directory for frame<N>.jpg files"),
				Category: l10n.T("Output"),
			},
			&cli.PathFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("YAML configuration file"),
				Category: l10n.T("Configuration"),
			},
			&cli.IntFlag{
				Name:     "jpeg-quality",
				Value:    filesink.DefaultQuality,
				Usage:    l10n.T("JPEG quality (1-100)"),
				Category: l10n.T("Output"),
			},
			&cli.IntFlag{
				Name:     "max-width",
				Usage:    l10n.T("Downscale frames wider than this (0 = original size)"),
				Category: l10n.T("Output"),
			},
			&cli.BoolFlag{
				Name:     "stamp",
				Usage:    l10n.T("Draw the frame number on saved frames"),
				Category: l10n.T("Output"),
			},
			&cli.BoolFlag{
				Name:     "dry-run",
				Usage:    l10n.T("Count frames without writing files"),
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "backend",
				Value:    string(smartsource.BackendAuto),
				Usage:    l10n.T("Decoding backend (auto, ffmpeg, mpeg)"),
				Category: l10n.T("Decoding"),
			},
			&cli.PathFlag{
				Name:     "ffmpeg-path",
				Usage:    l10n.T("Path to the ffmpeg binary"),
				Category: l10n.T("Decoding"),
			},
			&cli.PathFlag{
				Name:     "summary",
				Usage:    l10n.T("Output execution summary to file (Markdown format)"),
				Category: l10n.T("Logging"),
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Value:    "info",
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Action: func(c *cli.Context) error {
			return runSample(c, stdout, stderr)
		},
		ExitErrHandler: func(_ *cli.Context, err error) {
			if err == nil {
				return
			}
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(stderr, msg)
			}
		},
	}
}

// runSample executes the sampling run for the parsed command line.
func runSample(c *cli.Context, stdout, stderr io.Writer) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	backend, err := smartsource.ParseBackend(cfg.Backend)
	if err != nil {
		return cli.Exit(fmt.Errorf("%w: %w", config.ErrInvalidConfiguration, err).Error(), exitUsage)
	}

	log := newLogger(cfg, stderr)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.FrameSink
	if cfg.DryRun {
		sink = nullsink.New()
	} else {
		sink = filesink.New(cfg.OutputDir, fs, renderer, filesink.Options{
			Quality:  cfg.JPEGQuality,
			MaxWidth: cfg.MaxWidth,
			Stamp:    cfg.Stamp,
		})
	}

	opener := smartsource.New(smartsource.Options{
		Backend:    backend,
		FFmpegPath: cfg.FFmpegPath,
	}, log)

	stage := sampler.NewStage(sink, stdoutreporter.NewWriter(stdout), log)
	orch := orchestrator.New(opener, stage, fs, log)

	// Errors are logged by the orchestrator; only the exit code remains.
	if _, err := orch.Run(ctx, cfg); err != nil {
		if errors.Is(err, config.ErrInvalidConfiguration) {
			return cli.Exit("", exitUsage)
		}
		return cli.Exit("", exitFailure)
	}
	return nil
}

// buildConfig layers defaults, the config file, FRAMEGRAB_* variables and
// explicitly set flags, in increasing order of precedence.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		return cfg, err
	}

	switch c.NArg() {
	case 0:
	case 1:
		cfg.InputPath = c.Args().First()
	default:
		return cfg, fmt.Errorf(l10n.T("expected one input video path, got %d arguments"), c.NArg())
	}

	if c.IsSet("frame_rate") {
		cfg.Interval = c.Int("frame_rate")
	}
	if c.IsSet("output_frames_folder_path") {
		cfg.OutputDir = c.String("output_frames_folder_path")
	}
	if c.IsSet("jpeg-quality") {
		cfg.JPEGQuality = c.Int("jpeg-quality")
	}
	if c.IsSet("max-width") {
		cfg.MaxWidth = c.Int("max-width")
	}
	if c.IsSet("stamp") {
		cfg.Stamp = c.Bool("stamp")
	}
	if c.IsSet("dry-run") {
		cfg.DryRun = c.Bool("dry-run")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.Path("ffmpeg-path")
	}
	if c.IsSet("summary") {
		cfg.SummaryPath = c.Path("summary")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}

	return cfg, nil
}

// flagsFirst moves flags that follow the input path in front of it, since
// flag parsing stops at the first positional argument. Everything after "--"
// stays positional.
func flagsFirst(flags []cli.Flag, args []string) []string {
	if len(args) < 2 {
		return args
	}

	takesValue := make(map[string]bool)
	for _, f := range flags {
		_, isBool := f.(*cli.BoolFlag)
		for _, name := range f.Names() {
			takesValue[name] = !isBool
		}
	}

	out := []string{args[0]}
	var positional []string
	terminated := false
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "--" {
			terminated = true
			positional = append(positional, rest[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}

		out = append(out, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if takesValue[name] && i+1 < len(rest) {
			i++
			out = append(out, rest[i])
		}
	}

	if terminated {
		out = append(out, "--")
	}
	return append(out, positional...)
}

func newLogger(cfg config.Config, stderr io.Writer) ports.Logger {
	if cfg.Quiet {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.LogLevel)
	if f, ok := stderr.(*os.File); ok && f == os.Stderr {
		return logger.NewConsole(level)
	}
	return logger.NewWriter(level, stderr)
}
