package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four segments approximate a circle.
const kappa = 0.5522847498

func (dc *DrawContext) Clear(c color.Color) {
	if dc.canvas == nil {
		return
	}
	draw.Draw(dc.canvas, dc.canvas.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (dc *DrawContext) FillRect(rect image.Rectangle, c color.Color) {
	if dc.canvas == nil {
		return
	}
	draw.Draw(dc.canvas, rect.Canon(), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// FillCircle draws an anti-aliased disc. Parts outside the canvas are clipped.
func (dc *DrawContext) FillCircle(center image.Point, radius int, c color.Color) {
	if dc.canvas == nil || radius <= 0 {
		return
	}
	size := 2 * radius
	r := float32(radius)
	k := r * kappa

	z := vector.NewRasterizer(size, size)
	z.MoveTo(r, 0)
	z.CubeTo(r+k, 0, 2*r, r-k, 2*r, r)
	z.CubeTo(2*r, r+k, r+k, 2*r, r, 2*r)
	z.CubeTo(r-k, 2*r, 0, r+k, 0, r)
	z.CubeTo(0, r-k, r-k, 0, r, 0)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	dst := image.Rect(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius)
	draw.DrawMask(dc.canvas, dst, &image.Uniform{C: c}, image.Point{}, mask, image.Point{}, draw.Over)
}

func (dc *DrawContext) MeasureText(text string) TextMetrics {
	if dc.face == nil {
		return TextMetrics{}
	}
	metrics := dc.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:   font.MeasureString(dc.face, text).Ceil(),
		Height:  ascent + descent,
		Ascent:  ascent,
		Descent: descent,
	}
}

func (dc *DrawContext) DrawText(text string, x, y int, c color.Color) TextMetrics {
	tm := dc.MeasureText(text)
	if dc.canvas == nil {
		return tm
	}
	drawer := &font.Drawer{
		Dst:  dc.canvas,
		Src:  &image.Uniform{C: c},
		Face: dc.face,
		Dot:  fixed.P(x, y+tm.Ascent),
	}
	drawer.DrawString(text)
	return tm
}

// DrawTextCentered centers text both ways inside rect.
func (dc *DrawContext) DrawTextCentered(text string, rect image.Rectangle, c color.Color) {
	tm := dc.MeasureText(text)
	x := rect.Min.X + (rect.Dx()-tm.Width)/2
	y := rect.Min.Y + (rect.Dy()-tm.Height)/2
	dc.DrawText(text, x, y, c)
}

// DrawTextCenteredX centers text horizontally on the canvas with its top at y.
func (dc *DrawContext) DrawTextCenteredX(text string, y int, c color.Color) {
	width, _ := dc.Size()
	tm := dc.MeasureText(text)
	dc.DrawText(text, (width-tm.Width)/2, y, c)
}

// DrawImage scales img into rect, compositing over what is already there.
func (dc *DrawContext) DrawImage(img image.Image, rect image.Rectangle) {
	if dc.canvas == nil || img == nil || rect.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(dc.canvas, rect, img, img.Bounds(), xdraw.Over, nil)
}
