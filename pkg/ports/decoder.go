package ports

import (
	"context"
	"image"
)

// FrameSource yields decoded frames in presentation order.
type FrameSource interface {
	// Read returns the next decoded frame. It returns io.EOF once the
	// source is exhausted. The returned image is only valid until the
	// next call to Read.
	Read() (image.Image, error)

	// Close releases the decoder and any underlying file or process.
	Close() error
}

// SourceInfo describes an opened video source.
type SourceInfo struct {
	Path      string
	Backend   string  // Decoding backend, e.g. "ffmpeg" or "mpeg"
	Codec     string  // Detected codec, empty when unknown
	Width     int     // Frame width in pixels, 0 when unknown
	Height    int     // Frame height in pixels, 0 when unknown
	FrameRate float64 // Nominal frames per second, 0 when unknown
	Frames    int     // Estimated frame count, 0 when unknown
}

// SourceOpener opens video sources.
type SourceOpener interface {
	// Open prepares a source for sequential reading.
	Open(ctx context.Context, path string) (FrameSource, SourceInfo, error)
}
