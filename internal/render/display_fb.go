//go:build !preview

package render

// OpenDisplay opens the framebuffer named by opts.Device.
func OpenDisplay(opts DisplayOptions, l logger) (Presenter, error) {
	return OpenFramebuffer(opts.Device, l)
}
