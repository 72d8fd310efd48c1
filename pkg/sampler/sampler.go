// Package sampler implements the frame sampling stage.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
)

// ErrWriteFrame is returned when the sink fails to persist a sampled frame.
var ErrWriteFrame = errors.New("sampler: write frame failed")

// Stage reads a frame source to exhaustion and stores every Nth frame.
type Stage struct {
	sink     ports.FrameSink
	reporter ports.ProgressReporter
	logger   ports.Logger
}

// NewStage creates a new sampling stage.
func NewStage(sink ports.FrameSink, reporter ports.ProgressReporter, logger ports.Logger) *Stage {
	return &Stage{
		sink:     sink,
		reporter: reporter,
		logger:   logger.WithComponent("sampler"),
	}
}

// Execute runs the sampling loop.
//
// The counter is incremented once per decoded frame. A frame is saved as
// frame counter/interval whenever counter is a multiple of the interval, and
// progress is reported every pipeline.ProgressEvery intervals, after the next
// frame has been read. The loop ends on the first failed read; io.EOF is a
// clean end, any other error is recorded in the result. Save failures abort
// the run without a final report.
func (s *Stage) Execute(ctx context.Context, input pipeline.SampleInput) (pipeline.SampleResult, error) {
	result := pipeline.SampleResult{}

	if input.Interval <= 0 {
		return result, fmt.Errorf("sampler: interval must be positive, got %d", input.Interval)
	}
	if input.Source == nil {
		return result, fmt.Errorf("sampler: nil source")
	}

	interval := input.Interval

	img, err := input.Source.Read()
	counter := 0

	for err == nil {
		select {
		case <-ctx.Done():
			result.FramesRead = counter
			result.FramesStored = counter / interval
			return result, ctx.Err()
		default:
		}

		counter++

		if counter%interval == 0 {
			index := counter / interval
			if serr := s.sink.SaveFrame(index, img); serr != nil {
				result.FramesRead = counter
				result.FramesStored = result.Saved
				return result, fmt.Errorf("%w: frame %d: %w", ErrWriteFrame, index, serr)
			}
			result.Saved++
			s.logger.Debug("Saved frame %d (source frame %d)", index, counter)
		}

		img, err = input.Source.Read()

		// counter%(ProgressEvery*interval) == 0, without overflowing the product.
		if counter%interval == 0 && (counter/interval)%pipeline.ProgressEvery == 0 {
			s.reporter.Progress(counter / interval)
		}
	}

	if !errors.Is(err, io.EOF) {
		result.ReadErr = err
		s.logger.Warn("Stopped reading after %d frames: %s", counter, err)
	}

	result.FramesRead = counter
	result.FramesStored = counter / interval
	s.reporter.Finished(result.FramesStored)

	return result, nil
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult] = (*Stage)(nil)
