package screens

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/rook-computer/kioskshell/internal/catalog"
	"github.com/rook-computer/kioskshell/internal/render"
)

type fillCall struct {
	rect image.Rectangle
	c    color.Color
}

// recordingDrawer captures primitive calls instead of rasterizing them.
type recordingDrawer struct {
	clears  int
	fills   []fillCall
	circles []image.Point
	texts   []string
	images  []image.Rectangle
	banner  image.Image
}

func (r *recordingDrawer) Size() (int, int) { return render.CanvasWidth, render.CanvasHeight }
func (r *recordingDrawer) Clear(c color.Color) {
	r.clears++
	r.fills, r.texts, r.circles, r.images = nil, nil, nil, nil
}
func (r *recordingDrawer) FillRect(rect image.Rectangle, c color.Color) {
	r.fills = append(r.fills, fillCall{rect, c})
}
func (r *recordingDrawer) FillCircle(center image.Point, radius int, c color.Color) {
	r.circles = append(r.circles, center)
}
func (r *recordingDrawer) MeasureText(text string) render.TextMetrics {
	return render.TextMetrics{Width: 7 * len(text), Height: 13, Ascent: 11, Descent: 2}
}
func (r *recordingDrawer) DrawText(text string, x, y int, c color.Color) render.TextMetrics {
	r.texts = append(r.texts, text)
	return r.MeasureText(text)
}
func (r *recordingDrawer) DrawTextCentered(text string, rect image.Rectangle, c color.Color) {
	r.texts = append(r.texts, text)
}
func (r *recordingDrawer) DrawTextCenteredX(text string, y int, c color.Color) {
	r.texts = append(r.texts, text)
}
func (r *recordingDrawer) Banner() image.Image { return r.banner }
func (r *recordingDrawer) DrawImage(img image.Image, rect image.Rectangle) {
	r.images = append(r.images, rect)
}

func (r *recordingDrawer) countFills(c color.RGBA) int {
	n := 0
	for _, f := range r.fills {
		if f.c == c {
			n++
		}
	}
	return n
}

func (r *recordingDrawer) hasText(s string) bool {
	for _, t := range r.texts {
		if t == s {
			return true
		}
	}
	return false
}

func TestDrawWelcomeHighlightsExactlyOne(t *testing.T) {
	tests := []struct {
		selected     int
		wantSelected int
	}{
		{0, 1}, {1, 1}, {2, 1}, {-1, 0}, {3, 0}, {100, 0},
	}
	for _, tt := range tests {
		d := &recordingDrawer{}
		DrawWelcome(d, tt.selected)
		if d.clears != 1 {
			t.Errorf("selected=%d: clears = %d", tt.selected, d.clears)
		}
		if got := d.countFills(render.Selected); got != tt.wantSelected {
			t.Errorf("selected=%d: %d highlighted, want %d", tt.selected, got, tt.wantSelected)
		}
		if got := d.countFills(render.Unselected); got != 3-tt.wantSelected {
			t.Errorf("selected=%d: %d unselected, want %d", tt.selected, got, 3-tt.wantSelected)
		}
		if !d.hasText(WelcomeTitle) {
			t.Errorf("missing title")
		}
	}
}

func TestDrawWelcomeBanner(t *testing.T) {
	d := &recordingDrawer{}
	DrawWelcome(d, 0)
	if len(d.images) != 0 {
		t.Errorf("drew %d images without a banner", len(d.images))
	}
	d = &recordingDrawer{banner: image.NewRGBA(image.Rect(0, 0, 10, 10))}
	DrawWelcome(d, 0)
	if len(d.images) != 1 || d.images[0] != BannerRect {
		t.Errorf("banner rects = %v", d.images)
	}
}

func TestWelcomeButtonLayout(t *testing.T) {
	rects := WelcomeButtonRects(render.CanvasWidth)
	want := []image.Rectangle{
		image.Rect(0, 440, 266, 480),
		image.Rect(266, 440, 532, 480),
		image.Rect(532, 440, 798, 480),
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("button %d = %v, want %v", i, rects[i], want[i])
		}
	}
	hits := []struct {
		x, y int
		want int
	}{
		{10, 450, WelcomeApps}, {400, 470, WelcomeProfile}, {700, 441, WelcomeSettings}, {400, 200, -1}, {799, 460, -1},
	}
	for _, h := range hits {
		if got := HitWelcome(render.CanvasWidth, h.x, h.y); got != h.want {
			t.Errorf("HitWelcome(%d,%d) = %d, want %d", h.x, h.y, got, h.want)
		}
	}
}

func TestDrawMainMenu(t *testing.T) {
	for _, selected := range []int{-1, 0, 2, 4, 5} {
		d := &recordingDrawer{}
		DrawMainMenu(d, MainMenuItems, selected)
		want := 0
		if selected >= 0 && selected < len(MainMenuItems) {
			want = 1
		}
		if got := d.countFills(render.Selected); got != want {
			t.Errorf("selected=%d: %d highlighted, want %d", selected, got, want)
		}
		if len(d.fills) != len(MainMenuItems) {
			t.Errorf("rows = %d", len(d.fills))
		}
		if want == 1 && d.fills[selected].c != render.Selected {
			t.Errorf("wrong row highlighted for %d", selected)
		}
	}
	rects := MenuRects(5)
	if rects[0] != image.Rect(100, 80, 700, 130) || rects[4] != image.Rect(100, 320, 700, 370) {
		t.Errorf("menu rows = %v", rects)
	}
	if got := HitMainMenu(5, 150, 150); got != 1 {
		t.Errorf("HitMainMenu = %d, want 1", got)
	}
	if got := HitMainMenu(5, 150, 135); got != -1 {
		t.Errorf("gap between rows hit %d", got)
	}
}

func TestDrawSettings(t *testing.T) {
	d := &recordingDrawer{}
	DrawSettings(d, -1)
	if d.countFills(render.Selected) != 0 || d.countFills(render.Unselected) != 5 {
		t.Errorf("plain settings fills = %+v", d.fills)
	}
	DrawSettings(d, 3)
	if d.countFills(render.Selected) != 1 || d.fills[3].c != render.Selected {
		t.Errorf("settings highlight wrong: %+v", d.fills)
	}
	if !d.hasText("Bluetooth") {
		t.Errorf("missing label")
	}
	if r := SettingsRects()[4]; r != image.Rect(40, 380, 760, 440) {
		t.Errorf("last row = %v", r)
	}
	if got := HitSettings(50, 150); got != 1 {
		t.Errorf("HitSettings = %d", got)
	}
}

func TestGridCellsPagination(t *testing.T) {
	c := catalog.Default()
	tests := []struct {
		page int
		want int
	}{
		{0, 12}, {1, 3}, {2, 0}, {-1, 0},
	}
	for _, tt := range tests {
		d := &recordingDrawer{}
		cells := DrawAppGrid(d, c, tt.page, -1)
		if len(cells) != tt.want {
			t.Errorf("page %d: %d cells, want %d", tt.page, len(cells), tt.want)
		}
		if d.clears != 1 {
			t.Errorf("page %d: background not cleared", tt.page)
		}
	}

	cells := GridCells(c, 1)
	for i, want := range []image.Point{{0, 0}, {1, 0}, {2, 0}} {
		if cells[i].Col != want.X || cells[i].Row != want.Y {
			t.Errorf("cell %d at (%d,%d), want %v", i, cells[i].Col, cells[i].Row, want)
		}
	}
	if cells[0].Entry.Label != "Calc" || cells[0].Rect != image.Rect(40, 40, 200, 120) {
		t.Errorf("first cell = %+v", cells[0])
	}
	if cells[2].Rect.Min != image.Pt(400, 40) {
		t.Errorf("third cell at %v", cells[2].Rect.Min)
	}

	full := GridCells(c, 0)
	if full[4].Col != 0 || full[4].Row != 1 || full[4].Rect.Min != image.Pt(40, 140) {
		t.Errorf("cell 4 = %+v", full[4])
	}
	if full[11].Rect != image.Rect(580, 240, 740, 320) {
		t.Errorf("cell 11 = %v", full[11].Rect)
	}
}

func TestDrawAppGridSelectionAndPager(t *testing.T) {
	c := catalog.Default()
	d := &recordingDrawer{}
	DrawAppGrid(d, c, 0, 5)
	if d.countFills(render.Selected) != 1 {
		t.Errorf("highlighted = %d", d.countFills(render.Selected))
	}
	if !d.hasText("page 1 / 2") || !d.hasText(">") || d.hasText("<") {
		t.Errorf("pager texts = %v", d.texts)
	}

	DrawAppGrid(d, c, 1, 7)
	if d.countFills(render.Selected) != 0 {
		t.Errorf("out-of-range cell highlighted")
	}
	if !d.hasText("page 2 / 2") || !d.hasText("<") || d.hasText(">") {
		t.Errorf("pager texts = %v", d.texts)
	}

	small := c[:5]
	DrawAppGrid(d, small, 0, 0)
	for _, s := range d.texts {
		if s == "<" || s == ">" || s == "page 1 / 1" {
			t.Errorf("single page drew pager text %q", s)
		}
	}
}

func TestHitAppGrid(t *testing.T) {
	c := catalog.Default()
	tests := []struct {
		page, x, y int
		want       int
	}{
		{0, 41, 41, 0},
		{0, 600, 300, 11},
		{0, 210, 50, -1},
		{1, 420, 60, 2},
		{1, 600, 60, -1},
	}
	for _, tt := range tests {
		if got := HitAppGrid(c, tt.page, tt.x, tt.y); got != tt.want {
			t.Errorf("HitAppGrid(%d, %d,%d) = %d, want %d", tt.page, tt.x, tt.y, got, tt.want)
		}
	}
	if got := HitPager(c, 0, 600, 380); got != 1 {
		t.Errorf("next = %d", got)
	}
	if got := HitPager(c, 0, 100, 380); got != 0 {
		t.Errorf("prev on first page = %d", got)
	}
	if got := HitPager(c, 1, 100, 380); got != -1 {
		t.Errorf("prev = %d", got)
	}
}

func TestDrawProfile(t *testing.T) {
	d := &recordingDrawer{}
	DrawProfile(d, Profile{Name: "User 1"})
	if len(d.circles) != 2 || d.circles[0] != AvatarCenter || d.circles[1] != AddCenter {
		t.Errorf("circles = %v", d.circles)
	}
	if !d.hasText("User 1") || !d.hasText("+") {
		t.Errorf("texts = %v", d.texts)
	}
	if len(d.images) != 0 {
		t.Errorf("QR drawn without an image")
	}

	DrawProfile(d, Profile{Name: "Ada", QR: image.NewGray(image.Rect(0, 0, 29, 29))})
	if len(d.images) != 1 || d.images[0] != QRRect(render.CanvasWidth, render.CanvasHeight) {
		t.Errorf("QR rects = %v", d.images)
	}
	if r := QRRect(render.CanvasWidth, render.CanvasHeight); r != image.Rect(640, 20, 780, 160) {
		t.Errorf("QRRect = %v", r)
	}
}

func TestDrawSleep(t *testing.T) {
	d := &recordingDrawer{}
	DrawSleep(d, nil)
	if !d.hasText(SleepText) || len(d.images) != 0 {
		t.Errorf("sleep without frame: texts=%v images=%v", d.texts, d.images)
	}
	DrawSleep(d, image.NewRGBA(image.Rect(0, 0, 50, 50)))
	if len(d.images) != 1 || d.images[0] != image.Rect(300, 100, 500, 300) {
		t.Errorf("sleep frame rect = %v", d.images)
	}
}

// Pixel-level check on a real canvas: the highlighted welcome button and
// grid cell carry the selected colour at their corners.
func TestScreensOnCanvas(t *testing.T) {
	dc, err := render.NewDrawContext(render.CanvasWidth, render.CanvasHeight, basicfont.Face7x13, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer dc.Close()

	DrawWelcome(dc, 1)
	canvas := dc.Canvas()
	rects := WelcomeButtonRects(render.CanvasWidth)
	for i, r := range rects {
		want := render.Unselected
		if i == 1 {
			want = render.Selected
		}
		if got := canvas.RGBAAt(r.Min.X+2, r.Min.Y+2); got != want {
			t.Errorf("welcome button %d = %v, want %v", i, got, want)
		}
	}
	if got := canvas.RGBAAt(5, 5); got != render.Background {
		t.Errorf("background = %v", got)
	}

	DrawAppGrid(dc, catalog.Default(), 2, 0)
	if got := canvas.RGBAAt(50, 50); got != render.Background {
		t.Errorf("empty page drew a cell: %v", got)
	}

	DrawAppGrid(dc, catalog.Default(), 0, 4)
	if got := canvas.RGBAAt(42, 142); got != render.Selected {
		t.Errorf("selected cell = %v", got)
	}
	if got := canvas.RGBAAt(42, 42); got != render.Unselected {
		t.Errorf("unselected cell = %v", got)
	}
}

func TestDrawDrivePrompt(t *testing.T) {
	rects := PromptButtonRects()
	if len(rects) != 2 || rects[PromptYes] != image.Rect(240, 290, 390, 330) || rects[PromptNo] != image.Rect(410, 290, 560, 330) {
		t.Fatalf("prompt buttons = %v", rects)
	}

	for _, sel := range []int{PromptYes, PromptNo, -1, 2} {
		d := &recordingDrawer{}
		DrawDrivePrompt(d, "/media/pi/HOLOTAPE", sel)
		if d.clears != 0 {
			t.Errorf("selected %d: prompt cleared the screen underneath", sel)
		}
		want := 1 // border
		if sel == PromptYes || sel == PromptNo {
			want++
		}
		if got := d.countFills(render.Selected); got != want {
			t.Errorf("selected %d: %d selected fills, want %d", sel, got, want)
		}
		if !d.hasText(DrivePromptTitle) || !d.hasText("HOLOTAPE") || !d.hasText("Yes") || !d.hasText("No") {
			t.Errorf("selected %d: texts = %v", sel, d.texts)
		}
	}

	d := &recordingDrawer{}
	DrawDrivePrompt(d, "", PromptYes)
	if len(d.texts) != 3 {
		t.Errorf("prompt without path drew %v", d.texts)
	}
}

func TestHitDrivePrompt(t *testing.T) {
	tests := []struct {
		x, y int
		want int
	}{
		{300, 300, PromptYes},
		{500, 320, PromptNo},
		{400, 300, -1}, // gap between buttons
		{300, 200, -1}, // title area
		{50, 50, -1},
	}
	for _, tt := range tests {
		if got := HitDrivePrompt(tt.x, tt.y); got != tt.want {
			t.Errorf("HitDrivePrompt(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrivePromptOverlaysCanvas(t *testing.T) {
	dc, err := render.NewDrawContext(render.CanvasWidth, render.CanvasHeight, basicfont.Face7x13, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer dc.Close()

	DrawWelcome(dc, 0)
	DrawDrivePrompt(dc, "/media/usb0", PromptNo)
	canvas := dc.Canvas()
	// The welcome buttons stay visible around the prompt.
	if got := canvas.RGBAAt(5, 445); got != render.Selected {
		t.Errorf("welcome button under prompt = %v", got)
	}
	if got := canvas.RGBAAt(201, 121); got != render.Selected {
		t.Errorf("prompt border = %v", got)
	}
	rects := PromptButtonRects()
	if got := canvas.RGBAAt(rects[PromptNo].Min.X+2, rects[PromptNo].Min.Y+2); got != render.Selected {
		t.Errorf("No button = %v", got)
	}
	if got := canvas.RGBAAt(rects[PromptYes].Min.X+2, rects[PromptYes].Min.Y+2); got != render.Unselected {
		t.Errorf("Yes button = %v", got)
	}
}
