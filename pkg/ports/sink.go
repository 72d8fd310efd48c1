package ports

import (
	"image"
)

// FrameSink persists sampled frames.
type FrameSink interface {
	// SaveFrame stores the frame under the given 1-based index.
	// Saving an index twice overwrites the previous frame.
	SaveFrame(index int, img image.Image) error
}

// ProgressReporter announces how many frames have been stored.
type ProgressReporter interface {
	// Progress is called periodically while sampling.
	Progress(stored int)

	// Finished is called once when the source is exhausted.
	Finished(stored int)
}
