package render

import (
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// FBPresenter blits frames to a Linux framebuffer device.
type FBPresenter struct {
	dev    *fb.Device
	Logger logger
}

// OpenFramebuffer opens the framebuffer device at path, e.g. /dev/fb0.
func OpenFramebuffer(path string, l logger) (*FBPresenter, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	if l != nil {
		bounds := dev.Bounds()
		l.Infof("fb", "framebuffer %s open, bounds=%dx%d", path, bounds.Dx(), bounds.Dy())
	}
	return &FBPresenter{dev: dev, Logger: l}, nil
}

func (p *FBPresenter) Present(frame *image.RGBA) error {
	return blitToFB(p.dev, frame)
}

func (p *FBPresenter) Close() error {
	if p.dev == nil {
		return nil
	}
	p.dev.Close()
	p.dev = nil
	return nil
}

// blitToFB copies frame onto dev with nearest-neighbour scaling.
func blitToFB(dev *fb.Device, frame *image.RGBA) error {
	if dev == nil || frame == nil {
		return nil
	}
	src := frame.Bounds()
	if src.Empty() {
		return nil
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	for y := 0; y < fbHeight; y++ {
		sy := src.Min.Y + (y*src.Dy())/fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := src.Min.X + (x*src.Dx())/fbWidth
			pixel := frame.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}
