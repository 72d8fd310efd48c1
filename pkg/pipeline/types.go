package pipeline

import (
	"github.com/user/framegrab/pkg/ports"
)

// ProgressEvery is the number of sampling intervals between progress reports.
const ProgressEvery = 100

// SampleInput contains parameters for the sampling stage.
type SampleInput struct {
	// Source is read sequentially until it returns an error.
	Source ports.FrameSource

	// Interval selects every Interval-th frame. Must be positive.
	Interval int
}

// SampleResult contains the outcome of a sampling run.
type SampleResult struct {
	// FramesRead is the final counter value: frames successfully decoded.
	FramesRead int

	// FramesStored is FramesRead / Interval, the number reported to the user.
	FramesStored int

	// Saved is the number of frames actually handed to the sink.
	Saved int

	// ReadErr is the error that ended the loop, nil on a clean end of stream.
	ReadErr error
}
