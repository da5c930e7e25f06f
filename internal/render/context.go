package render

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
)

// ErrClosed is returned when a DrawContext is used after Close.
var ErrClosed = errors.New("draw context closed")

// DrawContext owns the offscreen canvas, the font face and the banner image.
// It is created once by the application root and passed to every renderer call.
// It is not safe for concurrent use.
type DrawContext struct {
	canvas *image.RGBA
	face   font.Face
	banner image.Image
}

var _ Drawer = (*DrawContext)(nil)

// NewDrawContext prepares a width x height canvas. banner may be nil.
func NewDrawContext(width, height int, face font.Face, banner image.Image) (*DrawContext, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if face == nil {
		return nil, errors.New("draw context requires a font face")
	}
	return &DrawContext{
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
		face:   face,
		banner: banner,
	}, nil
}

// Canvas returns the back buffer, or nil after Close.
func (dc *DrawContext) Canvas() *image.RGBA { return dc.canvas }

func (dc *DrawContext) Closed() bool { return dc.canvas == nil }

func (dc *DrawContext) Size() (int, int) {
	if dc.canvas == nil {
		return 0, 0
	}
	b := dc.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (dc *DrawContext) Banner() image.Image { return dc.banner }

// Close releases the font face. A second Close returns ErrClosed.
func (dc *DrawContext) Close() error {
	if dc.canvas == nil {
		return ErrClosed
	}
	err := dc.face.Close()
	dc.canvas = nil
	dc.face = nil
	dc.banner = nil
	return err
}
