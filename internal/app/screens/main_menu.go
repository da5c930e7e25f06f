package screens

import (
	"image"

	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/render/layout"
)

// MainMenuItems is the fixed main menu. The last item returns to the welcome screen.
var MainMenuItems = []string{"Music Player", "Calendar", "Camera", "Files", "Back"}

var menuOrigin = image.Pt(100, 80)

const (
	menuRowW    = 600
	menuRowH    = 50
	menuRowStep = 60
)

func MenuRects(n int) []image.Rectangle {
	return layout.Rows(menuOrigin, menuRowW, menuRowH, menuRowStep, n)
}

// DrawMainMenu draws a vertical list of rows. A selected index outside the
// list highlights nothing.
func DrawMainMenu(d render.Drawer, items []string, selected int) {
	d.Clear(render.Background)
	drawList(d, MenuRects(len(items)), items, selected)
}

func HitMainMenu(n, x, y int) int {
	return layout.HitIndex(MenuRects(n), x, y)
}
