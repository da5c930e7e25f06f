// Package screens composes full frames for each kiosk screen from the
// render primitives. Every Draw function clears the canvas and redraws
// everything; nothing is retained between calls.
package screens

import (
	"image"

	"github.com/rook-computer/kioskshell/internal/render"
)

// drawButton fills rect in the selected or unselected colour and centers label in it.
func drawButton(d render.Drawer, rect image.Rectangle, label string, selected bool) {
	fill := render.Unselected
	if selected {
		fill = render.Selected
	}
	d.FillRect(rect, fill)
	d.DrawTextCentered(label, rect, render.Text)
}

// drawList draws one button per label; only rects[selected] is highlighted.
func drawList(d render.Drawer, rects []image.Rectangle, labels []string, selected int) {
	for i, label := range labels {
		if i >= len(rects) {
			return
		}
		drawButton(d, rects[i], label, i == selected)
	}
}
