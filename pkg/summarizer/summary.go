// Package summarizer provides summary generation for sampling runs.
package summarizer

import "time"

// Summary contains all data collected during a sampling run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source video
	Input InputInfo

	// Sampling configuration
	Settings Settings

	// Outcome
	Result ResultInfo
}

// InputInfo describes the decoded video. Zero values mean unknown.
type InputInfo struct {
	Path            string
	Backend         string
	Codec           string
	Width           int
	Height          int
	FrameRate       float64
	EstimatedFrames int
}

// Settings contains the sampling configuration.
type Settings struct {
	Interval    int
	OutputDir   string
	JPEGQuality int
	MaxWidth    int // 0 = original size
	Stamp       bool
	DryRun      bool
}

// ResultInfo contains the counters of a finished run.
type ResultInfo struct {
	FramesRead   int
	FramesStored int
	FilesWritten int
	Elapsed      time.Duration

	// ReadError is set when decoding stopped on an error instead of end of stream.
	ReadError string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets source video information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithSettings sets sampling settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithResult sets the run outcome.
func (b *Builder) WithResult(result ResultInfo) *Builder {
	b.summary.Result = result
	return b
}

// WithGeneratedAt overrides the generation timestamp.
func (b *Builder) WithGeneratedAt(t time.Time) *Builder {
	b.summary.GeneratedAt = t
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
