package screens

import (
	"image"

	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/render/layout"
)

var SettingsItems = []string{"Display", "Sound", "Wi-Fi", "Bluetooth", "Storage"}

var settingsOrigin = image.Pt(40, 60)

const (
	settingsRowW    = 720
	settingsRowH    = 60
	settingsRowStep = 80
)

func SettingsRects() []image.Rectangle {
	return layout.Rows(settingsOrigin, settingsRowW, settingsRowH, settingsRowStep, len(SettingsItems))
}

// DrawSettings highlights the row at selected; pass -1 for a plain list.
func DrawSettings(d render.Drawer, selected int) {
	d.Clear(render.Background)
	drawList(d, SettingsRects(), SettingsItems, selected)
}

func HitSettings(x, y int) int {
	return layout.HitIndex(SettingsRects(), x, y)
}
