package screens

import (
	"image"

	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/render/layout"
)

const SleepText = "Going to sleep..."

const (
	sleepFrameSize  = 200
	sleepFrameLift  = 40
	sleepTextMargin = 80
)

// SleepFrameRect is the 200x200 box for the animation frame, centered
// slightly above the middle of the canvas.
func SleepFrameRect(width, height int) image.Rectangle {
	r := layout.CenterIn(image.Rect(0, 0, width, height), sleepFrameSize, sleepFrameSize)
	return r.Sub(image.Pt(0, sleepFrameLift))
}

// DrawSleep draws the idle screen. frame may be nil.
func DrawSleep(d render.Drawer, frame image.Image) {
	d.Clear(render.Background)
	w, h := d.Size()
	if frame != nil {
		d.DrawImage(frame, SleepFrameRect(w, h))
	}
	m := d.MeasureText(SleepText)
	d.DrawTextCenteredX(SleepText, h-sleepTextMargin-m.Height/2, render.Text)
}
