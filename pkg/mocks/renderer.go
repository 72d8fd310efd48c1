package mocks

import (
	"fmt"
	"image"

	"github.com/user/framegrab/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// EncodeJPEG returns a short marker payload instead of real JPEG bytes.
type Renderer struct {
	EncodeJPEGFunc  func(img image.Image, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image
	StampTextFunc   func(img image.Image, text string, style ports.TextStyle) image.Image

	EncodeCalls  int
	ResizeCalls  int
	StampedTexts []string
}

func (m *Renderer) EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	m.EncodeCalls++
	if m.EncodeJPEGFunc != nil {
		return m.EncodeJPEGFunc(img, quality)
	}
	b := img.Bounds()
	return []byte(fmt.Sprintf("jpeg:%dx%d:q%d", b.Dx(), b.Dy(), quality)), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.ResizeCalls++
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) StampText(img image.Image, text string, style ports.TextStyle) image.Image {
	m.StampedTexts = append(m.StampedTexts, text)
	if m.StampTextFunc != nil {
		return m.StampTextFunc(img, text, style)
	}
	return img
}

var _ ports.Renderer = (*Renderer)(nil)
