package screens

import (
	"image"

	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/render/layout"
)

// Avatar placeholders: the current user and an "add user" affordance.
var (
	AvatarCenter = image.Pt(200, 180)
	AddCenter    = image.Pt(500, 180)
)

const (
	AvatarRadius = 60
	AddRadius    = 40

	profileColumnX = 620
	profilePadding = 20
	nameGap        = 10
	nameHeight     = 40
)

type Profile struct {
	Name string
	// QR is an optional pre-rendered code drawn in the right column.
	QR image.Image
}

// QRRect is where the profile QR code goes.
func QRRect(width, height int) image.Rectangle {
	_, right := layout.SplitVertical(image.Rect(0, 0, width, height), profileColumnX)
	return layout.FitSquare(layout.Inset(right, profilePadding))
}

func circleBounds(center image.Point, r int) image.Rectangle {
	return image.Rect(center.X-r, center.Y-r, center.X+r, center.Y+r)
}

func DrawProfile(d render.Drawer, p Profile) {
	d.Clear(render.Background)

	d.FillCircle(AvatarCenter, AvatarRadius, render.Overlay)
	nameTop := AvatarCenter.Y + AvatarRadius + nameGap
	nameRect := image.Rect(AvatarCenter.X-2*AvatarRadius, nameTop, AvatarCenter.X+2*AvatarRadius, nameTop+nameHeight)
	d.DrawTextCentered(p.Name, nameRect, render.Text)

	d.FillCircle(AddCenter, AddRadius, render.Overlay)
	d.DrawTextCentered("+", circleBounds(AddCenter, AddRadius), render.Text)

	if p.QR != nil {
		w, h := d.Size()
		d.DrawImage(p.QR, QRRect(w, h))
	}
}
