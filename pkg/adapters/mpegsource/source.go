// Package mpegsource decodes MPEG-1 program streams in pure Go.
package mpegsource

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gen2brain/mpeg"

	"github.com/user/framegrab/pkg/ports"
)

// maxEmptyDecodes bounds consecutive decode attempts that yield no frame
// before the stream is considered corrupt.
const maxEmptyDecodes = 64

var (
	// ErrNoVideoStream is returned when the program stream carries no video.
	ErrNoVideoStream = errors.New("mpegsource: no video stream")
	// ErrCorruptStream is returned when frames stop decoding before the end.
	ErrCorruptStream = errors.New("mpegsource: corrupt stream")
)

// Source implements ports.FrameSource using the gen2brain/mpeg decoder.
type Source struct {
	file  *os.File
	mpg   *mpeg.MPEG
	ended bool
}

// Open opens path and prepares a video-only decoder. The caller must Close it.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	s, err := NewFromReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.file = f
	return s, nil
}

// NewFromReader prepares a decoder reading from r.
func NewFromReader(r io.Reader) (*Source, error) {
	mpg, err := mpeg.New(r)
	if err != nil {
		return nil, fmt.Errorf("mpeg: %w", err)
	}
	mpg.SetAudioEnabled(false)

	if mpg.NumVideoStreams() == 0 {
		return nil, ErrNoVideoStream
	}

	return &Source{mpg: mpg}, nil
}

// Size returns the display size of the video stream.
func (s *Source) Size() (int, int) {
	return s.mpg.Width(), s.mpg.Height()
}

// FrameRate returns the frame rate declared in the sequence header.
func (s *Source) FrameRate() float64 {
	return s.mpg.Framerate()
}

// EstimatedFrames returns the frame count implied by duration and frame rate.
func (s *Source) EstimatedFrames() int {
	return int(s.mpg.Duration().Seconds()*s.mpg.Framerate() + 0.5)
}

// Read returns the next frame as *image.YCbCr. The image is reused by the
// next call. io.EOF marks the end of the stream and is sticky.
func (s *Source) Read() (image.Image, error) {
	// The decoder signals its end once; decoding past it blocks.
	if s.ended {
		return nil, io.EOF
	}
	for empty := 0; empty < maxEmptyDecodes; empty++ {
		if frame := s.mpg.DecodeVideo(); frame != nil {
			return frame.YCbCr(), nil
		}
		if s.mpg.HasEnded() {
			s.ended = true
			return nil, io.EOF
		}
	}
	return nil, ErrCorruptStream
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
