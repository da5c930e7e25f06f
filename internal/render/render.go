package render

import (
	"image"
	"image/color"
)

// Presenter pushes a finished frame to a display.
type Presenter interface {
	Present(frame *image.RGBA) error
	Close() error
}

// Drawer is the set of primitives screens compose frames from.
// Coordinates are in logical canvas pixels.
type Drawer interface {
	// Size returns the logical canvas size that screens draw into.
	Size() (width int, height int)

	Clear(c color.Color)
	FillRect(rect image.Rectangle, c color.Color)
	FillCircle(center image.Point, radius int, c color.Color)

	// Text primitives. DrawText anchors the top-left corner of the text box at (x, y).
	MeasureText(text string) TextMetrics
	DrawText(text string, x, y int, c color.Color) TextMetrics
	DrawTextCentered(text string, rect image.Rectangle, c color.Color)
	DrawTextCenteredX(text string, y int, c color.Color)

	// Banner returns the startup banner image, or nil when none was loaded.
	Banner() image.Image
	DrawImage(img image.Image, rect image.Rectangle)
}

type TextMetrics struct {
	Width   int
	Height  int
	Ascent  int
	Descent int
}

// NoopPresenter discards frames.
type NoopPresenter struct{}

func (NoopPresenter) Present(frame *image.RGBA) error { return nil }
func (NoopPresenter) Close() error                    { return nil }
