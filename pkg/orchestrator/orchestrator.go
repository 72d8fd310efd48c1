// Package orchestrator coordinates a sampling run.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/framegrab/pkg/config"
	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/summarizer"
)

// ErrSourceOpen is returned when the input video cannot be opened.
var ErrSourceOpen = errors.New("cannot open video source")

// Orchestrator opens the source, runs the sampling stage and reports.
type Orchestrator struct {
	opener      ports.SourceOpener
	sampleStage pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult]
	fs          ports.FileSystem
	logger      ports.Logger
	now         func() time.Time
}

// New creates a new Orchestrator.
func New(
	opener ports.SourceOpener,
	sampleStage pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult],
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		opener:      opener,
		sampleStage: sampleStage,
		fs:          fs,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes a complete sampling run.
func (o *Orchestrator) Run(ctx context.Context, cfg config.Config) (RunResult, error) {
	result := RunResult{
		InputPath: cfg.InputPath,
		OutputDir: cfg.OutputDir,
		Interval:  cfg.Interval,
		DryRun:    cfg.DryRun,
	}

	if err := cfg.Validate(); err != nil {
		o.logger.Error("Invalid configuration: %s", err)
		return result, err
	}

	started := o.now()
	o.logger.Info("Sampling every %d frames of %s", cfg.Interval, cfg.InputPath)

	// 1. Open source
	source, info, err := o.opener.Open(ctx, cfg.InputPath)
	if err != nil {
		o.logger.Error("Failed to open %s: %s", cfg.InputPath, err)
		return result, fmt.Errorf("%w: %s: %w", ErrSourceOpen, cfg.InputPath, err)
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			o.logger.Warn("Failed to close source: %s", cerr)
		}
	}()
	result.Source = info

	// 2. Sample frames
	sampled, err := o.sampleStage.Execute(ctx, pipeline.SampleInput{
		Source:   source,
		Interval: cfg.Interval,
	})
	result.FramesRead = sampled.FramesRead
	result.FramesStored = sampled.FramesStored
	result.Saved = sampled.Saved
	result.ReadErr = sampled.ReadErr
	result.Elapsed = o.now().Sub(started)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			o.logger.Warn("Interrupted after %d frames", sampled.FramesRead)
		} else {
			o.logger.Error("Sampling failed: %s", err)
		}
		return result, err
	}

	if cfg.DryRun {
		o.logger.Info("Dry run: %d frames would be written", sampled.Saved)
	} else {
		o.logger.Info("Stored %d frames in %s", sampled.Saved, cfg.OutputDir)
	}
	o.logger.Debug("Decoded %d frames in %s", sampled.FramesRead, result.Elapsed)

	// 3. Summary (optional)
	if cfg.SummaryPath != "" {
		if err := o.writeSummary(cfg, result); err != nil {
			o.logger.Error("Failed to write summary: %s", err)
			return result, err
		}
		o.logger.Info("Summary saved to %s", cfg.SummaryPath)
	}

	return result, nil
}

func (o *Orchestrator) writeSummary(cfg config.Config, result RunResult) error {
	filesWritten := result.Saved
	if cfg.DryRun {
		filesWritten = 0
	}
	readError := ""
	if result.ReadErr != nil {
		readError = result.ReadErr.Error()
	}

	summary := summarizer.NewBuilder().
		WithGeneratedAt(o.now()).
		WithInput(summarizer.InputInfo{
			Path:            result.InputPath,
			Backend:         result.Source.Backend,
			Codec:           result.Source.Codec,
			Width:           result.Source.Width,
			Height:          result.Source.Height,
			FrameRate:       result.Source.FrameRate,
			EstimatedFrames: result.Source.Frames,
		}).
		WithSettings(summarizer.Settings{
			Interval:    cfg.Interval,
			OutputDir:   cfg.OutputDir,
			JPEGQuality: cfg.JPEGQuality,
			MaxWidth:    cfg.MaxWidth,
			Stamp:       cfg.Stamp,
			DryRun:      cfg.DryRun,
		}).
		WithResult(summarizer.ResultInfo{
			FramesRead:   result.FramesRead,
			FramesStored: result.FramesStored,
			FilesWritten: filesWritten,
			Elapsed:      result.Elapsed,
			ReadError:    readError,
		}).
		Build()

	return summarizer.NewWriter(o.fs, summarizer.NewMarkdownFormatter()).Write(cfg.SummaryPath, summary)
}

// RunResult contains the results of a sampling run for summary generation.
type RunResult struct {
	// Input information
	InputPath string
	Source    ports.SourceInfo

	// Settings
	OutputDir string
	Interval  int
	DryRun    bool

	// Counters
	FramesRead   int
	FramesStored int // FramesRead / Interval
	Saved        int

	// ReadErr is the decode error that ended sampling early, if any.
	ReadErr error

	Elapsed time.Duration
}
