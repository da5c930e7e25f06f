package screens

import (
	"image"
	"path/filepath"

	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/render/layout"
)

const (
	PromptYes = iota
	PromptNo
)

const DrivePromptTitle = "Holotape Detected!"

var PromptButtons = []string{"Yes", "No"}

var PromptRect = image.Rect(200, 120, 600, 360)

const (
	promptBorder    = 4
	promptButtonPad = 10
)

// PromptButtonRects returns the Yes and No buttons along the bottom of the prompt.
func PromptButtonRects() []image.Rectangle {
	row := image.Rect(PromptRect.Min.X+30, PromptRect.Max.Y-80, PromptRect.Max.X-30, PromptRect.Max.Y-20)
	rects := layout.Columns(row, len(PromptButtons))
	for i := range rects {
		rects[i] = layout.Inset(rects[i], promptButtonPad)
	}
	return rects
}

// DrawDrivePrompt draws the drive prompt on top of whatever is already on
// the canvas. Only the drive's directory name is shown.
func DrawDrivePrompt(d render.Drawer, path string, selected int) {
	d.FillRect(PromptRect, render.Selected)
	d.FillRect(layout.Inset(PromptRect, promptBorder), render.Background)

	title := image.Rect(PromptRect.Min.X, PromptRect.Min.Y+20, PromptRect.Max.X, PromptRect.Min.Y+70)
	d.DrawTextCentered(DrivePromptTitle, title, render.Text)
	if path != "" {
		name := image.Rect(PromptRect.Min.X, title.Max.Y, PromptRect.Max.X, title.Max.Y+50)
		d.DrawTextCentered(filepath.Base(path), name, render.Overlay)
	}
	drawList(d, PromptButtonRects(), PromptButtons, selected)
}

// HitDrivePrompt returns PromptYes or PromptNo for a tap on a button, or -1.
func HitDrivePrompt(x, y int) int {
	return layout.HitIndex(PromptButtonRects(), x, y)
}
