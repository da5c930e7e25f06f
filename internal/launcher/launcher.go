// Package launcher starts the kiosk's external applications.
//
// Every app is described by one table entry, and a single Launch routine
// serves them all. Launch is fire-and-forget: the child is started detached
// and the call returns as soon as it exists, without waiting for it to exit.
package launcher

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rook-computer/kioskshell/internal/system"
)

// AppID names a launchable application.
type AppID string

const (
	FileExplorer AppID = "explorer"
	Terminal     AppID = "terminal"
	IDE          AppID = "ide"
	TextEditor   AppID = "editor"
	Calendar     AppID = "calendar"
	Maps         AppID = "maps"
	Notes        AppID = "notes"
	TodoList     AppID = "todo"
	Writer       AppID = "writer"
	Calc         AppID = "calc"
	Impress      AppID = "impress"
)

// ErrUnknownApp is returned for identifiers without a table entry.
var ErrUnknownApp = errors.New("unknown app")

// Descriptor is how one app is started.
type Descriptor struct {
	Executable string
	Args       []string
	// AcceptsFilename apps get a non-empty filename appended as the last argument.
	AcceptsFilename bool
}

// Table maps app identifiers to descriptors.
type Table map[AppID]Descriptor

// DefaultTable returns the stock Raspberry Pi OS launch commands.
func DefaultTable() Table {
	return Table{
		FileExplorer: {Executable: "pcmanfm", AcceptsFilename: true},
		Terminal:     {Executable: "lxterminal"},
		IDE:          {Executable: "thonny"},
		TextEditor:   {Executable: "mousepad"},
		Calendar:     {Executable: "flatpak", Args: []string{"run", "org.gnome.Calendar"}},
		Maps:         {Executable: "flatpak", Args: []string{"run", "org.gnome.Maps"}},
		Notes:        {Executable: "flatpak", Args: []string{"run", "com.github.flxzt.rnote"}},
		TodoList:     {Executable: "flatpak", Args: []string{"run", "io.github.mrvladus.List"}},
		Writer:       {Executable: "libreoffice", Args: []string{"--writer"}, AcceptsFilename: true},
		Calc:         {Executable: "libreoffice", Args: []string{"--calc"}, AcceptsFilename: true},
		Impress:      {Executable: "libreoffice", Args: []string{"--impress"}, AcceptsFilename: true},
	}
}

// IDs returns the table's identifiers in sorted order.
func (t Table) IDs() []AppID {
	ids := make([]AppID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Launcher dispatches app identifiers through its Table to a Spawner.
type Launcher struct {
	Table   Table
	Spawner system.Spawner
	Logger  Logger
}

func New(table Table, spawner system.Spawner, logger Logger) *Launcher {
	return &Launcher{Table: table, Spawner: spawner, Logger: logger}
}

// Argv returns the program and arguments Launch would start.
// An empty filename means "open with no document".
func (l *Launcher) Argv(id AppID, filename string) (string, []string, error) {
	d, ok := l.Table[id]
	if !ok || d.Executable == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownApp, id)
	}
	args := append([]string(nil), d.Args...)
	if d.AcceptsFilename && filename != "" {
		args = append(args, filename)
	}
	return d.Executable, args, nil
}

// Launch starts the app and returns without waiting for it. Failures are
// returned to the caller and never retried.
func (l *Launcher) Launch(id AppID, filename string) error {
	name, args, err := l.Argv(id, filename)
	if err != nil {
		return err
	}
	if l.Spawner == nil {
		return errors.New("launcher has no spawner")
	}
	if err := l.Spawner.Spawn(name, args...); err != nil {
		return fmt.Errorf("launch %s: %w", id, err)
	}
	if l.Logger != nil {
		l.Logger.Infof("launcher", "started %s (%s)", id, name)
	}
	return nil
}

// Open launches an app without a document.
func (l *Launcher) Open(id AppID) error { return l.Launch(id, "") }
