package render

import "image/color"

// Palette shared by every screen.
var (
	Background = color.RGBA{R: 0x02, G: 0x2F, B: 0x2A, A: 0xFF} // #022f2a
	Unselected = color.RGBA{R: 0x0E, G: 0x6C, B: 0x79, A: 0xFF} // #0e6c79
	Selected   = color.RGBA{R: 0x0D, G: 0xCE, B: 0xEB, A: 0xFF} // #0dceeb
	Text       = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Overlay    = color.RGBA{R: 0xB1, G: 0xE6, B: 0xED, A: 0xFF} // #b1e6ed
)

// Logical canvas size; presenters scale it to the physical display.
const (
	CanvasWidth  = 800
	CanvasHeight = 480
)
