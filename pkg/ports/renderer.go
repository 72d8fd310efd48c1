package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// EncodeJPEG encodes an image as JPEG at the given quality (1-100).
	EncodeJPEG(img image.Image, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image

	// StampText returns a copy of img with text drawn in a corner badge.
	StampText(img image.Image, text string, style TextStyle) image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize   float64
	FontPath   string // TrueType font file; the built-in face is used when empty
	Color      color.Color
	Background color.Color
}
