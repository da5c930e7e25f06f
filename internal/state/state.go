package state

import (
	"fmt"
	"sync"
	"time"
)

type Screen int

const (
	WELCOME Screen = iota
	MAIN_MENU
	APP_GRID
	SETTINGS
	PROFILE
	SLEEP
	DRIVE_PROMPT
)

func (s Screen) String() string {
	switch s {
	case WELCOME:
		return "welcome"
	case MAIN_MENU:
		return "main-menu"
	case APP_GRID:
		return "app-grid"
	case SETTINGS:
		return "settings"
	case PROFILE:
		return "profile"
	case SLEEP:
		return "sleep"
	case DRIVE_PROMPT:
		return "drive-prompt"
	}
	return "unknown"
}

// ScreenState is everything the renderers need to redraw the current frame.
// Previous is the screen to return to when waking from SLEEP, and the screen
// drawn underneath DRIVE_PROMPT. Drive is the mountpoint the prompt offers.
type ScreenState struct {
	Screen   Screen
	Selected int
	Page     int
	Drive    string
	Previous *ScreenState
}

func Initial() ScreenState { return ScreenState{Screen: WELCOME} }

type LaunchInfo struct {
	App string
	At  time.Time
	Err string
}

type State struct {
	Screen     ScreenState
	LastInput  time.Time
	LastLaunch LaunchInfo
}

// String is the one-line status report logged on request and at shutdown.
func (s State) String() string {
	out := fmt.Sprintf("screen=%s selected=%d page=%d", s.Screen.Screen, s.Screen.Selected, s.Screen.Page)
	if !s.LastInput.IsZero() {
		out += " last-input=" + s.LastInput.Format(time.RFC3339)
	}
	if s.LastLaunch.App == "" {
		return out + " last-launch=none"
	}
	out += fmt.Sprintf(" last-launch=%s@%s", s.LastLaunch.App, s.LastLaunch.At.Format(time.RFC3339))
	if s.LastLaunch.Err != "" {
		out += fmt.Sprintf(" (%s)", s.LastLaunch.Err)
	}
	return out
}

// Store holds the latest state for readers outside the UI goroutine, such as
// the status signal handler.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Screen: Initial()}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetScreen(screen ScreenState) {
	store.mu.Lock()
	store.state.Screen = screen
	store.mu.Unlock()
}

func (store *Store) TouchInput(at time.Time) {
	store.mu.Lock()
	store.state.LastInput = at
	store.mu.Unlock()
}

func (store *Store) RecordLaunch(launch LaunchInfo) {
	store.mu.Lock()
	store.state.LastLaunch = launch
	store.mu.Unlock()
}
