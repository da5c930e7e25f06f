package render

// DisplayOptions selects and sizes the output device.
type DisplayOptions struct {
	// Device is the framebuffer path, e.g. /dev/fb0. Ignored by the preview window.
	Device string
	Title  string
	Width  int
	Height int
}
