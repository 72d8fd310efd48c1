// Package filesink provides a frame sink that writes numbered JPEG files.
package filesink

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/user/framegrab/pkg/ports"
)

// DefaultQuality is the JPEG quality used when Options.Quality is zero.
const DefaultQuality = 95

// Options controls how frames are rendered before they are written.
type Options struct {
	Quality  int  // JPEG quality 1-100; 0 means DefaultQuality
	MaxWidth int  // downscale wider frames to this width; 0 disables
	Stamp    bool // draw "#<index>" in the top-left corner
}

// Sink saves frames as <dir>/frame<index>.jpg.
type Sink struct {
	dir      string
	fs       ports.FileSystem
	renderer ports.Renderer
	opts     Options
}

// New creates a new Sink. The directory is expected to exist.
func New(dir string, fs ports.FileSystem, renderer ports.Renderer, opts Options) *Sink {
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}
	return &Sink{
		dir:      dir,
		fs:       fs,
		renderer: renderer,
		opts:     opts,
	}
}

// Path returns the file path used for the given frame index.
func (s *Sink) Path(index int) string {
	return filepath.Join(s.dir, FileName(index))
}

// FileName returns the base name of the file for a frame index.
func FileName(index int) string {
	return fmt.Sprintf("frame%d.jpg", index)
}

// SaveFrame renders and writes a single frame.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	img = s.fit(img)

	if s.opts.Stamp {
		img = s.renderer.StampText(img, fmt.Sprintf("#%d", index), ports.TextStyle{
			FontSize:   16,
			Color:      color.White,
			Background: color.RGBA{A: 160},
		})
	}

	data, err := s.renderer.EncodeJPEG(img, s.opts.Quality)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}

	path := s.Path(index)
	if err := s.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// fit downscales img to MaxWidth keeping the aspect ratio. Never upscales.
func (s *Sink) fit(img image.Image) image.Image {
	if s.opts.MaxWidth <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= s.opts.MaxWidth {
		return img
	}
	height := b.Dy() * s.opts.MaxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	return s.renderer.ResizeImage(img, s.opts.MaxWidth, height)
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
