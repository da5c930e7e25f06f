package input

import (
	"context"
	"strings"
)

type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBack
	KeyPageUp
	KeyPageDown
	KeyExit
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyBack:
		return "back"
	case KeyPageUp:
		return "page-up"
	case KeyPageDown:
		return "page-down"
	case KeyExit:
		return "exit"
	}
	return "none"
}

// ParseKey maps a key name, as printed by Key.String or a common alias, to a Key.
func ParseKey(name string) (Key, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return KeyUp, true
	case "down":
		return KeyDown, true
	case "left":
		return KeyLeft, true
	case "right":
		return KeyRight, true
	case "enter", "return":
		return KeyEnter, true
	case "back", "esc", "escape", "backspace":
		return KeyBack, true
	case "page-up", "pageup", "pgup":
		return KeyPageUp, true
	case "page-down", "pagedown", "pgdn":
		return KeyPageDown, true
	case "exit", "f4":
		return KeyExit, true
	}
	return KeyNone, false
}

type Kind int

const (
	KindKey Kind = iota
	KindTap
	KindDrive // a removable drive was mounted at Path
)

// Event is a key press, a touch tap in logical canvas coordinates or a
// drive arrival.
type Event struct {
	Kind Kind
	Key  Key
	X, Y int
	Path string
}

func KeyEvent(k Key) Event { return Event{Kind: KindKey, Key: k} }

func TapEvent(x, y int) Event { return Event{Kind: KindTap, X: x, Y: y} }

func DriveEvent(path string) Event { return Event{Kind: KindDrive, Path: path} }

// Source delivers events from an input device reader.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// Poller is implemented by displays that own an event queue which must be
// drained from the UI goroutine (the SDL preview window).
type Poller interface {
	PollEvents() (events []Event, quit bool)
}

type NoopSource struct{ ch chan Event }

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Event)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Stop() error                     { close(n.ch); return nil }
func (n *NoopSource) Events() <-chan Event            { return n.ch }
