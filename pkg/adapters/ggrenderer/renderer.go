// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/framegrab/pkg/ports"
)

// stampPadding is the gap between the badge edge and its text, in pixels.
const stampPadding = 4.0

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// EncodeJPEG encodes an image as JPEG.
func (r *Renderer) EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer

	opts := &jpeg.Options{Quality: quality}
	if err := jpeg.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("encode JPEG: %w", err)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// StampText draws text on a filled badge in the top-left corner.
// The source image is not modified.
func (r *Renderer) StampText(img image.Image, text string, style ports.TextStyle) image.Image {
	bounds := img.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.DrawImage(img, -bounds.Min.X, -bounds.Min.Y)

	if style.FontPath != "" {
		// Keep the built-in face if the font cannot be loaded.
		_ = dc.LoadFontFace(style.FontPath, style.FontSize)
	}

	textColor := style.Color
	if textColor == nil {
		textColor = color.White
	}
	background := style.Background
	if background == nil {
		background = color.RGBA{A: 160}
	}

	w, h := dc.MeasureString(text)
	dc.SetColor(background)
	dc.DrawRectangle(0, 0, w+2*stampPadding, h+2*stampPadding)
	dc.Fill()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(text, stampPadding, stampPadding+h/2, 0, 0.5)

	return dc.Image()
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
