package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rook-computer/kioskshell/internal/app"
	"github.com/rook-computer/kioskshell/internal/app/screens"
	"github.com/rook-computer/kioskshell/internal/input"
	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/state"
)

// Simulator renders screens to PNG files without a display or input devices.
type Simulator struct {
	Frontend  *app.Frontend
	Presenter *render.PNGPresenter
	Logger    app.Logger
	// Store, when set, tracks the replayed screen and the last launch.
	Store *state.Store
}

type shot struct {
	name string
	draw func() error
}

// Gallery writes one named frame per screen and selection.
func (s *Simulator) Gallery(ctx context.Context) (int, error) {
	f := s.Frontend
	shots := []shot{
		{"welcome-apps", func() error { return f.DrawWelcome(screens.WelcomeApps) }},
		{"welcome-profile", func() error { return f.DrawWelcome(screens.WelcomeProfile) }},
		{"welcome-settings", func() error { return f.DrawWelcome(screens.WelcomeSettings) }},
		{"main-menu", func() error { return f.DrawMainMenu(screens.MainMenuItems, 0) }},
		{"app-grid", func() error { return f.DrawAppGrid(0) }},
		{"app-grid-selected", func() error { return f.DrawAppGridSelected(0, 5) }},
		{"settings", f.DrawSettings},
		{"settings-selected", func() error { return f.DrawSettingsSelected(2) }},
		{"profile", f.DrawProfile},
		{"sleep", f.DrawSleep},
		{"drive-prompt", func() error {
			return f.Draw(app.PromptDrive(state.ScreenState{Screen: state.APP_GRID}, "/media/pi/HOLOTAPE"))
		}},
	}
	for page := 1; page < f.Catalog().PageCount(); page++ {
		page := page
		shots = append(shots, shot{fmt.Sprintf("app-grid-page-%d", page+1), func() error { return f.DrawAppGrid(page) }})
	}

	for i, sh := range shots {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		s.Presenter.Name = sh.name
		if err := sh.draw(); err != nil {
			return i, fmt.Errorf("%s: %w", sh.name, err)
		}
	}
	return len(shots), nil
}

const driveStepPrefix = "drive="

// parseStep maps a replay step to an event and the name used in its frame
// file. "drive=<path>" simulates a USB drive mounted at path.
func parseStep(step string) (input.Event, string, error) {
	if path, ok := strings.CutPrefix(step, driveStepPrefix); ok {
		if path == "" {
			return input.Event{}, "", fmt.Errorf("step %q needs a mountpoint", step)
		}
		return input.DriveEvent(path), "drive", nil
	}
	k, ok := input.ParseKey(step)
	if !ok {
		return input.Event{}, "", fmt.Errorf("unknown key %q", step)
	}
	return input.KeyEvent(k), step, nil
}

// Replay feeds named keys through the navigator from the welcome screen and
// writes a numbered frame after each one. Launches are logged and recorded
// in Store, not started.
func (s *Simulator) Replay(ctx context.Context, keys []string) (int, error) {
	nav := app.NewNavigator(s.Frontend.Catalog())
	st := state.Initial()
	s.Presenter.Name = "step-00-start"
	if err := s.Frontend.Draw(st); err != nil {
		return 0, err
	}
	frames := 1
	for i, name := range keys {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		ev, label, err := parseStep(name)
		if err != nil {
			return frames, err
		}
		next, action := nav.Reduce(st, ev)
		switch action.Kind {
		case app.ActionExit:
			return frames, nil
		case app.ActionLaunch:
			s.Logger.Infof("sim", "would launch %s %q", action.App, action.File)
			if s.Store != nil {
				s.Store.RecordLaunch(state.LaunchInfo{App: string(action.App), At: time.Now()})
			}
		case app.ActionSelect:
			s.Logger.Infof("sim", "%s selected", action.Label)
		}
		st = next
		if s.Store != nil {
			s.Store.SetScreen(st)
		}
		s.Presenter.Name = fmt.Sprintf("step-%02d-%s-%s", i+1, label, st.Screen)
		if err := s.Frontend.Draw(st); err != nil {
			return frames, err
		}
		frames++
	}
	return frames, nil
}
