package screens

import (
	"image"

	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/render/layout"
)

const (
	WelcomeApps = iota
	WelcomeProfile
	WelcomeSettings
)

const WelcomeTitle = "WELCOME, USER!"

var WelcomeButtons = []string{"APPS", "PROFILE", "SETTINGS"}

var BannerRect = image.Rect(200, 100, 600, 340)

const (
	welcomeTitleY  = 50
	welcomeButtonY = 440
	welcomeButtonH = 40
)

// WelcomeButtonRects splits the bottom strip into one column per button.
func WelcomeButtonRects(width int) []image.Rectangle {
	row := image.Rect(0, welcomeButtonY, width, welcomeButtonY+welcomeButtonH)
	return layout.Columns(row, len(WelcomeButtons))
}

func DrawWelcome(d render.Drawer, selected int) {
	d.Clear(render.Background)
	d.DrawTextCenteredX(WelcomeTitle, welcomeTitleY, render.Text)
	if banner := d.Banner(); banner != nil {
		d.DrawImage(banner, BannerRect)
	}
	w, _ := d.Size()
	drawList(d, WelcomeButtonRects(w), WelcomeButtons, selected)
}

// HitWelcome returns the button index under (x, y), or -1.
func HitWelcome(width, x, y int) int {
	return layout.HitIndex(WelcomeButtonRects(width), x, y)
}
