package screens

import (
	"fmt"
	"image"

	"github.com/rook-computer/kioskshell/internal/catalog"
	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/render/layout"
)

var GridLayout = layout.Grid{
	Origin:  image.Pt(40, 40),
	CellW:   160,
	CellH:   80,
	Spacing: 20,
	Cols:    catalog.Columns,
}

// Pager buttons, shown only when the catalog spans several pages.
var (
	PrevPageRect = image.Rect(40, 360, 200, 420)
	NextPageRect = image.Rect(580, 360, 740, 420)
)

const pagerLabelY = 376

// Cell is one placed grid tile.
type Cell struct {
	Index int // position on the page
	Col   int
	Row   int
	Rect  image.Rectangle
	Entry catalog.Entry
}

// GridCells lays out the entries visible on page. Pages outside the catalog
// have no cells.
func GridCells(c catalog.Catalog, page int) []Cell {
	entries := c.Page(page)
	cells := make([]Cell, len(entries))
	for i, e := range entries {
		col, row, rect := GridLayout.Cell(i)
		cells[i] = Cell{Index: i, Col: col, Row: row, Rect: rect, Entry: e}
	}
	return cells
}

// DrawAppGrid draws one catalog page and returns the cells it placed. The
// background is cleared even when the page is empty.
func DrawAppGrid(d render.Drawer, c catalog.Catalog, page, selected int) []Cell {
	d.Clear(render.Background)
	cells := GridCells(c, page)
	for _, cell := range cells {
		drawButton(d, cell.Rect, cell.Entry.Label, cell.Index == selected)
	}

	pages := c.PageCount()
	if pages > 1 && page >= 0 && page < pages {
		if page > 0 {
			drawButton(d, PrevPageRect, "<", false)
		}
		if page < pages-1 {
			drawButton(d, NextPageRect, ">", false)
		}
		d.DrawTextCenteredX(fmt.Sprintf("page %d / %d", page+1, pages), pagerLabelY, render.Text)
	}
	return cells
}

// HitAppGrid returns the page-local index of the cell under (x, y), or -1.
func HitAppGrid(c catalog.Catalog, page, x, y int) int {
	cells := GridCells(c, page)
	rects := make([]image.Rectangle, len(cells))
	for i, cell := range cells {
		rects[i] = cell.Rect
	}
	return layout.HitIndex(rects, x, y)
}

// HitPager returns -1 or +1 for a tap on a visible pager button, else 0.
func HitPager(c catalog.Catalog, page, x, y int) int {
	pages := c.PageCount()
	if pages <= 1 || page < 0 || page >= pages {
		return 0
	}
	p := image.Pt(x, y)
	switch {
	case page > 0 && p.In(PrevPageRect):
		return -1
	case page < pages-1 && p.In(NextPageRect):
		return 1
	}
	return 0
}
