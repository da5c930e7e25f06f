package app

import (
	"github.com/rook-computer/kioskshell/internal/app/screens"
	"github.com/rook-computer/kioskshell/internal/catalog"
	"github.com/rook-computer/kioskshell/internal/input"
	"github.com/rook-computer/kioskshell/internal/launcher"
	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/state"
)

type ActionKind int

const (
	ActionNone   ActionKind = iota
	ActionRedraw            // state changed, draw it
	ActionLaunch            // start App with File
	ActionSelect            // a row without a handler was activated
	ActionExit
)

type Action struct {
	Kind  ActionKind
	App   launcher.AppID
	File  string
	Label string
}

// MainMenuApps binds main menu rows to launcher apps.
var MainMenuApps = map[string]launcher.AppID{
	"Calendar": launcher.Calendar,
	"Files":    launcher.FileExplorer,
}

const backLabel = "Back"

// driveLabel names drive launches in logs.
const driveLabel = "Holotape"

// Navigator turns input events into screen transitions. Reduce has no side
// effects; the caller performs the returned Action.
type Navigator struct {
	Catalog catalog.Catalog
	Width   int
}

func NewNavigator(c catalog.Catalog) Navigator {
	return Navigator{Catalog: c, Width: render.CanvasWidth}
}

// Sleep puts st behind the sleep screen.
func Sleep(st state.ScreenState) state.ScreenState {
	if st.Screen == state.SLEEP {
		return st
	}
	prev := st
	return state.ScreenState{Screen: state.SLEEP, Previous: &prev}
}

// PromptDrive opens the drive prompt for path over st. An open prompt keeps
// its underlying screen; a sleeping shell prompts over its wake target.
func PromptDrive(st state.ScreenState, path string) state.ScreenState {
	var under state.ScreenState
	switch {
	case st.Screen == state.SLEEP || st.Screen == state.DRIVE_PROMPT:
		under = state.Initial()
		if st.Previous != nil {
			under = *st.Previous
		}
	default:
		under = st
	}
	return state.ScreenState{Screen: state.DRIVE_PROMPT, Selected: screens.PromptYes, Drive: path, Previous: &under}
}

// DismissPrompt returns the screen underneath the drive prompt.
func DismissPrompt(st state.ScreenState) state.ScreenState {
	if st.Screen != state.DRIVE_PROMPT {
		return st
	}
	if st.Previous == nil {
		return state.Initial()
	}
	return *st.Previous
}

func (n Navigator) Reduce(st state.ScreenState, ev input.Event) (state.ScreenState, Action) {
	if ev.Kind == input.KindDrive {
		return PromptDrive(st, ev.Path), Action{Kind: ActionRedraw}
	}
	if st.Screen == state.SLEEP {
		// Waking consumes the event.
		if st.Previous == nil {
			return state.Initial(), Action{Kind: ActionRedraw}
		}
		return *st.Previous, Action{Kind: ActionRedraw}
	}
	if ev.Kind == input.KindKey && ev.Key == input.KeyExit {
		return st, Action{Kind: ActionExit}
	}

	switch st.Screen {
	case state.WELCOME:
		return n.welcome(st, ev)
	case state.MAIN_MENU:
		return n.mainMenu(st, ev)
	case state.APP_GRID:
		return n.appGrid(st, ev)
	case state.SETTINGS:
		return n.settings(st, ev)
	case state.PROFILE:
		return n.profile(st, ev)
	case state.DRIVE_PROMPT:
		return n.drivePrompt(st, ev)
	}
	return st, Action{}
}

func welcomeAt(selected int) (state.ScreenState, Action) {
	return state.ScreenState{Screen: state.WELCOME, Selected: selected}, Action{Kind: ActionRedraw}
}

func (n Navigator) welcome(st state.ScreenState, ev input.Event) (state.ScreenState, Action) {
	if ev.Kind == input.KindTap {
		hit := screens.HitWelcome(n.Width, ev.X, ev.Y)
		if hit < 0 {
			return st, Action{}
		}
		return openFromWelcome(hit)
	}
	switch ev.Key {
	case input.KeyLeft:
		return moveSelection(st, -1, len(screens.WelcomeButtons))
	case input.KeyRight:
		return moveSelection(st, 1, len(screens.WelcomeButtons))
	case input.KeyUp:
		return state.ScreenState{Screen: state.MAIN_MENU}, Action{Kind: ActionRedraw}
	case input.KeyEnter:
		return openFromWelcome(st.Selected)
	}
	return st, Action{}
}

func openFromWelcome(button int) (state.ScreenState, Action) {
	switch button {
	case screens.WelcomeApps:
		return state.ScreenState{Screen: state.APP_GRID}, Action{Kind: ActionRedraw}
	case screens.WelcomeProfile:
		return state.ScreenState{Screen: state.PROFILE}, Action{Kind: ActionRedraw}
	case screens.WelcomeSettings:
		return state.ScreenState{Screen: state.SETTINGS}, Action{Kind: ActionRedraw}
	}
	return welcomeAt(screens.WelcomeApps)
}

// moveSelection steps the selected index, clamped to [0, count).
func moveSelection(st state.ScreenState, delta, count int) (state.ScreenState, Action) {
	next := st.Selected + delta
	if next < 0 {
		next = 0
	}
	if next > count-1 {
		next = count - 1
	}
	if next == st.Selected {
		return st, Action{}
	}
	st.Selected = next
	return st, Action{Kind: ActionRedraw}
}

func (n Navigator) mainMenu(st state.ScreenState, ev input.Event) (state.ScreenState, Action) {
	items := screens.MainMenuItems
	if ev.Kind == input.KindTap {
		hit := screens.HitMainMenu(len(items), ev.X, ev.Y)
		if hit < 0 {
			return st, Action{}
		}
		st.Selected = hit
		return n.activateMenu(st, items[hit])
	}
	switch ev.Key {
	case input.KeyUp:
		return moveSelection(st, -1, len(items))
	case input.KeyDown:
		return moveSelection(st, 1, len(items))
	case input.KeyBack:
		return welcomeAt(screens.WelcomeApps)
	case input.KeyEnter:
		if st.Selected < 0 || st.Selected >= len(items) {
			return st, Action{}
		}
		return n.activateMenu(st, items[st.Selected])
	}
	return st, Action{}
}

func (n Navigator) activateMenu(st state.ScreenState, label string) (state.ScreenState, Action) {
	if label == backLabel {
		return welcomeAt(screens.WelcomeApps)
	}
	if id, ok := MainMenuApps[label]; ok {
		return st, Action{Kind: ActionLaunch, App: id, Label: label}
	}
	return st, Action{Kind: ActionSelect, Label: label}
}

func (n Navigator) settings(st state.ScreenState, ev input.Event) (state.ScreenState, Action) {
	items := screens.SettingsItems
	if ev.Kind == input.KindTap {
		hit := screens.HitSettings(ev.X, ev.Y)
		if hit < 0 {
			return welcomeAt(screens.WelcomeSettings)
		}
		st.Selected = hit
		return st, Action{Kind: ActionSelect, Label: items[hit]}
	}
	switch ev.Key {
	case input.KeyUp:
		return moveSelection(st, -1, len(items))
	case input.KeyDown:
		return moveSelection(st, 1, len(items))
	case input.KeyBack:
		return welcomeAt(screens.WelcomeSettings)
	case input.KeyEnter:
		if st.Selected < 0 || st.Selected >= len(items) {
			return st, Action{}
		}
		return st, Action{Kind: ActionSelect, Label: items[st.Selected]}
	}
	return st, Action{}
}

func (n Navigator) profile(st state.ScreenState, ev input.Event) (state.ScreenState, Action) {
	if ev.Kind == input.KindTap || ev.Key == input.KeyEnter || ev.Key == input.KeyBack {
		return welcomeAt(screens.WelcomeProfile)
	}
	return st, Action{}
}

func (n Navigator) appGrid(st state.ScreenState, ev input.Event) (state.ScreenState, Action) {
	if ev.Kind == input.KindTap {
		if hit := screens.HitAppGrid(n.Catalog, st.Page, ev.X, ev.Y); hit >= 0 {
			st.Selected = hit
			return n.activateCell(st)
		}
		if flip := screens.HitPager(n.Catalog, st.Page, ev.X, ev.Y); flip != 0 {
			return n.flipPage(st, flip)
		}
		return st, Action{}
	}
	switch ev.Key {
	case input.KeyLeft:
		return n.moveCell(st, -1)
	case input.KeyRight:
		return n.moveCell(st, 1)
	case input.KeyUp:
		return n.moveCell(st, -catalog.Columns)
	case input.KeyDown:
		return n.moveCell(st, catalog.Columns)
	case input.KeyPageUp:
		return n.flipPage(st, -1)
	case input.KeyPageDown:
		return n.flipPage(st, 1)
	case input.KeyBack:
		return welcomeAt(screens.WelcomeApps)
	case input.KeyEnter:
		return n.activateCell(st)
	}
	return st, Action{}
}

// moveCell moves the selection through the whole catalog; landing on
// another page flips to it. Moving down from the last full row onto a short
// final row selects its last entry.
func (n Navigator) moveCell(st state.ScreenState, delta int) (state.ScreenState, Action) {
	total := len(n.Catalog)
	if total == 0 {
		return st, Action{}
	}
	cur := st.Page*catalog.ItemsPerPage + st.Selected
	if cur < 0 || cur >= total {
		cur = st.Page * catalog.ItemsPerPage
		if cur < 0 || cur >= total {
			return state.ScreenState{Screen: state.APP_GRID}, Action{Kind: ActionRedraw}
		}
	}
	next := cur + delta
	switch {
	case next < 0:
		return st, Action{}
	case next >= total:
		if delta == catalog.Columns && (total-1)/catalog.Columns > cur/catalog.Columns {
			next = total - 1
		} else {
			return st, Action{}
		}
	}
	st.Page = next / catalog.ItemsPerPage
	st.Selected = next % catalog.ItemsPerPage
	return st, Action{Kind: ActionRedraw}
}

func (n Navigator) flipPage(st state.ScreenState, delta int) (state.ScreenState, Action) {
	next := st.Page + delta
	if next < 0 || next >= n.Catalog.PageCount() {
		return st, Action{}
	}
	return state.ScreenState{Screen: state.APP_GRID, Page: next}, Action{Kind: ActionRedraw}
}

func (n Navigator) activateCell(st state.ScreenState) (state.ScreenState, Action) {
	entry, ok := n.Catalog.At(st.Page, st.Selected)
	if !ok {
		return st, Action{}
	}
	if entry.IsBack() {
		return welcomeAt(screens.WelcomeApps)
	}
	return st, Action{Kind: ActionLaunch, App: entry.App, File: entry.File, Label: entry.Label}
}

func (n Navigator) drivePrompt(st state.ScreenState, ev input.Event) (state.ScreenState, Action) {
	if ev.Kind == input.KindTap {
		hit := screens.HitDrivePrompt(ev.X, ev.Y)
		if hit < 0 {
			return st, Action{}
		}
		return answerPrompt(st, hit)
	}
	switch ev.Key {
	case input.KeyLeft:
		return moveSelection(st, -1, len(screens.PromptButtons))
	case input.KeyRight:
		return moveSelection(st, 1, len(screens.PromptButtons))
	case input.KeyBack:
		return DismissPrompt(st), Action{Kind: ActionRedraw}
	case input.KeyEnter:
		return answerPrompt(st, st.Selected)
	}
	return st, Action{}
}

// answerPrompt closes the prompt; Yes opens the drive in the file explorer.
func answerPrompt(st state.ScreenState, button int) (state.ScreenState, Action) {
	under := DismissPrompt(st)
	if button == screens.PromptYes && st.Drive != "" {
		return under, Action{Kind: ActionLaunch, App: launcher.FileExplorer, File: st.Drive, Label: driveLabel}
	}
	return under, Action{Kind: ActionRedraw}
}
