package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	leftWidthPx = clamp(leftWidthPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// Columns splits rect into n columns of rect.Dx()/n pixels each, left to right.
// Any remainder stays unused at the right edge.
func Columns(rect image.Rectangle, n int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	rect = Normalize(rect)
	width := rect.Dx() / n
	out := make([]image.Rectangle, n)
	for i := range out {
		x := rect.Min.X + i*width
		out[i] = image.Rect(x, rect.Min.Y, x+width, rect.Max.Y)
	}
	return out
}

// Rows returns n boxes of size w x h stacked downwards from origin, step pixels apart.
func Rows(origin image.Point, w, h, step, n int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	out := make([]image.Rectangle, n)
	for i := range out {
		y := origin.Y + i*step
		out[i] = image.Rect(origin.X, y, origin.X+w, y+h)
	}
	return out
}

// Grid describes fixed-size cells laid out row-major with equal spacing.
type Grid struct {
	Origin  image.Point
	CellW   int
	CellH   int
	Spacing int
	Cols    int
}

// Cell returns the column, row and rectangle of the cell at a 0-based index.
func (g Grid) Cell(index int) (col, row int, rect image.Rectangle) {
	cols := g.Cols
	if cols <= 0 {
		cols = 1
	}
	col = index % cols
	row = index / cols
	x := g.Origin.X + col*(g.CellW+g.Spacing)
	y := g.Origin.Y + row*(g.CellH+g.Spacing)
	return col, row, image.Rect(x, y, x+g.CellW, y+g.CellH)
}

// AnchorTopLeft returns a rectangle of size (widthPx,heightPx) placed in the top-left of rect.
func AnchorTopLeft(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clamp(widthPx, 0, rect.Dx())
	heightPx = clamp(heightPx, 0, rect.Dy())
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+widthPx, rect.Min.Y+heightPx)
}

// FitSquare returns the largest square that fits into rect, anchored at the top-left.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := min(rect.Dx(), rect.Dy())
	return AnchorTopLeft(rect, size, size)
}

// CenterIn returns a w x h rectangle centered inside rect.
func CenterIn(rect image.Rectangle, w, h int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// HitIndex returns the index of the first rect containing (x, y), or -1.
func HitIndex(rects []image.Rectangle, x, y int) int {
	p := image.Pt(x, y)
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
