package app

import (
	"errors"
	"fmt"
	"image"

	"github.com/rook-computer/kioskshell/internal/app/screens"
	"github.com/rook-computer/kioskshell/internal/catalog"
	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/state"
)

// Frontend is the drawing surface of the shell: every Draw call clears the
// canvas, composes one screen and presents the finished frame. It owns the
// DrawContext and the presenter and must only be used from the UI goroutine.
type Frontend struct {
	dc        *render.DrawContext
	presenter render.Presenter
	catalog   catalog.Catalog
	profile   screens.Profile

	sleepFrames []image.Image
	sleepFrame  int
}

type FrontendOptions struct {
	Catalog     catalog.Catalog
	ProfileName string
	// ProfileURL, when set, is shown as a QR code on the profile screen.
	ProfileURL  string
	SleepFrames []image.Image
}

const qrSizePx = 140

func NewFrontend(dc *render.DrawContext, presenter render.Presenter, opts FrontendOptions) (*Frontend, error) {
	if dc == nil || dc.Closed() {
		return nil, errors.New("frontend requires an open draw context")
	}
	if presenter == nil {
		return nil, errors.New("frontend requires a presenter")
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	qr, err := render.GenerateQRCodeImage(opts.ProfileURL, qrSizePx, render.Background, render.Overlay)
	if err != nil {
		return nil, fmt.Errorf("profile qr code: %w", err)
	}
	return &Frontend{
		dc:          dc,
		presenter:   presenter,
		catalog:     cat,
		profile:     screens.Profile{Name: opts.ProfileName, QR: qr},
		sleepFrames: opts.SleepFrames,
	}, nil
}

func (f *Frontend) Catalog() catalog.Catalog { return f.catalog }

func (f *Frontend) DrawWelcome(selected int) error {
	return f.frame(func(d render.Drawer) { screens.DrawWelcome(d, selected) })
}

func (f *Frontend) DrawMainMenu(items []string, selected int) error {
	return f.frame(func(d render.Drawer) { screens.DrawMainMenu(d, items, selected) })
}

func (f *Frontend) DrawAppGrid(page int) error { return f.DrawAppGridSelected(page, -1) }

func (f *Frontend) DrawAppGridSelected(page, selected int) error {
	return f.frame(func(d render.Drawer) { screens.DrawAppGrid(d, f.catalog, page, selected) })
}

func (f *Frontend) DrawSettings() error { return f.DrawSettingsSelected(-1) }

func (f *Frontend) DrawSettingsSelected(selected int) error {
	return f.frame(func(d render.Drawer) { screens.DrawSettings(d, selected) })
}

func (f *Frontend) DrawProfile() error {
	return f.frame(func(d render.Drawer) { screens.DrawProfile(d, f.profile) })
}

// DrawSleep draws the idle screen, advancing the animation one frame per call.
func (f *Frontend) DrawSleep() error {
	frame := f.nextSleepFrame()
	return f.frame(func(d render.Drawer) { screens.DrawSleep(d, frame) })
}

func (f *Frontend) nextSleepFrame() image.Image {
	n := len(f.sleepFrames)
	if n == 0 {
		return nil
	}
	frame := f.sleepFrames[f.sleepFrame%n]
	f.sleepFrame = (f.sleepFrame + 1) % n
	return frame
}

// Animated reports whether the sleep screen needs periodic redraws.
func (f *Frontend) Animated() bool { return len(f.sleepFrames) > 1 }

// Draw renders the screen described by st. The drive prompt is drawn over
// the screen it was opened from.
func (f *Frontend) Draw(st state.ScreenState) error {
	if st.Screen == state.DRIVE_PROMPT {
		under := state.Initial()
		if st.Previous != nil {
			under = *st.Previous
		}
		compose, err := f.composer(under)
		if err != nil {
			return err
		}
		return f.frame(func(d render.Drawer) {
			compose(d)
			screens.DrawDrivePrompt(d, st.Drive, st.Selected)
		})
	}
	compose, err := f.composer(st)
	if err != nil {
		return err
	}
	return f.frame(compose)
}

func (f *Frontend) composer(st state.ScreenState) (func(d render.Drawer), error) {
	switch st.Screen {
	case state.WELCOME:
		return func(d render.Drawer) { screens.DrawWelcome(d, st.Selected) }, nil
	case state.MAIN_MENU:
		return func(d render.Drawer) { screens.DrawMainMenu(d, screens.MainMenuItems, st.Selected) }, nil
	case state.APP_GRID:
		return func(d render.Drawer) { screens.DrawAppGrid(d, f.catalog, st.Page, st.Selected) }, nil
	case state.SETTINGS:
		return func(d render.Drawer) { screens.DrawSettings(d, st.Selected) }, nil
	case state.PROFILE:
		return func(d render.Drawer) { screens.DrawProfile(d, f.profile) }, nil
	case state.SLEEP:
		frame := f.nextSleepFrame()
		return func(d render.Drawer) { screens.DrawSleep(d, frame) }, nil
	}
	return nil, fmt.Errorf("no renderer for screen %s", st.Screen)
}

func (f *Frontend) frame(compose func(d render.Drawer)) error {
	if f.dc == nil || f.dc.Closed() {
		return render.ErrClosed
	}
	compose(f.dc)
	if err := f.presenter.Present(f.dc.Canvas()); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// Close releases the draw context and the presenter. Drawing afterwards
// returns render.ErrClosed, as does a second Close.
func (f *Frontend) Close() error {
	if f.dc == nil {
		return render.ErrClosed
	}
	err := f.dc.Close()
	f.dc = nil
	if perr := f.presenter.Close(); perr != nil && err == nil {
		err = perr
	}
	return err
}
