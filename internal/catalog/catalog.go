// Package catalog holds the entries shown on the paginated app grid.
package catalog

import "github.com/rook-computer/kioskshell/internal/launcher"

const (
	Columns      = 4
	Rows         = 3
	ItemsPerPage = Columns * Rows
)

// Entry is one tile of the app grid. An entry with an empty App is the
// "Back" tile, which returns to the welcome screen instead of launching.
type Entry struct {
	Label string         `toml:"label"`
	App   launcher.AppID `toml:"app"`
	File  string         `toml:"file"`
}

func (e Entry) IsBack() bool { return e.App == "" }

// Catalog is an ordered list of grid entries.
type Catalog []Entry

// Default is the stock grid. Weather, Audio Player and Video Player have no
// launcher entry unless the configuration adds one.
func Default() Catalog {
	return Catalog{
		{Label: "Weather", App: "weather"},
		{Label: "Audio Player", App: "audio"},
		{Label: "Video Player", App: "video"},
		{Label: "Files", App: launcher.FileExplorer},
		{Label: "Terminal", App: launcher.Terminal},
		{Label: "Thonny", App: launcher.IDE},
		{Label: "Text File", App: launcher.TextEditor},
		{Label: "Calendar", App: launcher.Calendar},
		{Label: "Maps", App: launcher.Maps},
		{Label: "Notes", App: launcher.Notes},
		{Label: "Todo List", App: launcher.TodoList},
		{Label: "Writer", App: launcher.Writer},
		{Label: "Calc", App: launcher.Calc},
		{Label: "Impress", App: launcher.Impress},
		{Label: "Back"},
	}
}

// PageCount is the number of grid pages; an empty catalog still has one page.
func (c Catalog) PageCount() int {
	if len(c) == 0 {
		return 1
	}
	return (len(c) + ItemsPerPage - 1) / ItemsPerPage
}

// Page returns the entries visible on page p. Pages outside the catalog are
// empty rather than an error.
func (c Catalog) Page(p int) []Entry {
	if p < 0 {
		return nil
	}
	start := p * ItemsPerPage
	if start >= len(c) {
		return nil
	}
	end := start + ItemsPerPage
	if end > len(c) {
		end = len(c)
	}
	return c[start:end]
}

// At returns the entry at index i of page p.
func (c Catalog) At(p, i int) (Entry, bool) {
	page := c.Page(p)
	if i < 0 || i >= len(page) {
		return Entry{}, false
	}
	return page[i], true
}

// Labels returns the labels of the entries on page p.
func (c Catalog) Labels(p int) []string {
	page := c.Page(p)
	out := make([]string, len(page))
	for i, e := range page {
		out[i] = e.Label
	}
	return out
}
