package mocks

import (
	"context"
	"image"
	"image/color"
	"io"

	"github.com/user/framegrab/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource that yields
// Total synthetic frames. Each frame is a 4x4 image whose red channel
// encodes the frame's 1-based position modulo 256.
type FrameSource struct {
	Total int

	// FailAt makes the read of frame FailAt (1-based) return FailErr.
	// Zero disables the failure.
	FailAt  int
	FailErr error

	Reads  int
	Closed int
}

// NewFrameSource creates a source that yields total frames.
func NewFrameSource(total int) *FrameSource {
	return &FrameSource{Total: total}
}

func (m *FrameSource) Read() (image.Image, error) {
	next := m.Reads + 1
	if m.FailAt > 0 && next == m.FailAt {
		return nil, m.FailErr
	}
	if m.Reads >= m.Total {
		return nil, io.EOF
	}
	m.Reads++
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: uint8(next % 256), A: 255})
	return img, nil
}

func (m *FrameSource) Close() error {
	m.Closed++
	return nil
}

var _ ports.FrameSource = (*FrameSource)(nil)

// SourceOpener is a mock implementation of ports.SourceOpener.
type SourceOpener struct {
	Source *FrameSource
	Info   ports.SourceInfo

	OpenFunc func(ctx context.Context, path string) (ports.FrameSource, ports.SourceInfo, error)

	OpenedPaths []string
}

func (m *SourceOpener) Open(ctx context.Context, path string) (ports.FrameSource, ports.SourceInfo, error) {
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	info := m.Info
	info.Path = path
	return m.Source, info, nil
}

var _ ports.SourceOpener = (*SourceOpener)(nil)
