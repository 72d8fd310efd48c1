// Package nullsink provides a frame sink that discards frames.
package nullsink

import (
	"image"

	"github.com/user/framegrab/pkg/ports"
)

// Sink is a no-op implementation of ports.FrameSink used for dry runs.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// SaveFrame discards the frame.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
