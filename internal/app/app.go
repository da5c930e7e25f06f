package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rook-computer/kioskshell/internal/drive"
	"github.com/rook-computer/kioskshell/internal/input"
	"github.com/rook-computer/kioskshell/internal/launcher"
	"github.com/rook-computer/kioskshell/internal/state"
)

// Launcher starts external applications without waiting for them.
type Launcher interface {
	Launch(id launcher.AppID, filename string) error
}

// DriveWatcher reports removable drives as they are mounted.
type DriveWatcher interface {
	Start(ctx context.Context) error
	Stop() error
	Arrivals() <-chan drive.Mount
}

const (
	DefaultTickInterval  = 100 * time.Millisecond
	DefaultPromptTimeout = 3 * time.Second
)

// App runs the shell: one goroutine owns the screen state, the Frontend and
// every launch. Input readers only feed the Input channel.
type App struct {
	Frontend  *Frontend
	Navigator Navigator
	Launcher  Launcher
	Input     input.Source
	// Poller, when set, is drained on every tick from the UI goroutine.
	Poller input.Poller
	// Drives, when set, opens the drive prompt for every arrival.
	Drives DriveWatcher
	Store  *state.Store
	Logger Logger

	// IdleTimeout switches to the sleep screen after this long without
	// input. Zero disables sleep.
	IdleTimeout  time.Duration
	TickInterval time.Duration
	// PromptTimeout dismisses an unanswered drive prompt. Zero keeps it open.
	PromptTimeout time.Duration

	now      func() time.Time
	screen   state.ScreenState
	promptAt time.Time
	exitOnce atomic.Bool
	exitCh   chan error
}

func New(frontend *Frontend, launch Launcher, source input.Source) *App {
	return &App{
		Frontend:      frontend,
		Navigator:     NewNavigator(frontend.Catalog()),
		Launcher:      launch,
		Input:         source,
		Store:         state.NewStore(),
		Logger:        NoopLogger{},
		TickInterval:  DefaultTickInterval,
		PromptTimeout: DefaultPromptTimeout,
		now:           time.Now,
		exitCh:        make(chan error, 1),
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start draws the welcome screen and runs the event loop until ctx is done,
// Exit is called, the Exit key is pressed or the preview window is closed.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.now == nil {
		app.now = time.Now
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Store == nil {
		app.Store = state.NewStore()
	}
	tick := app.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	var events <-chan input.Event
	if app.Input != nil {
		if err := app.Input.Start(ctx); err != nil {
			app.Logger.Errorf("input", "start failed: %v", err)
		} else {
			events = app.Input.Events()
			defer func() { _ = app.Input.Stop() }()
		}
	}

	var arrivals <-chan drive.Mount
	if app.Drives != nil {
		if err := app.Drives.Start(ctx); err != nil {
			app.Logger.Errorf("drive", "start failed: %v", err)
		} else {
			arrivals = app.Drives.Arrivals()
			defer func() { _ = app.Drives.Stop() }()
		}
	}

	app.setScreen(state.Initial())
	lastInput := app.now()
	app.Store.TouchInput(lastInput)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case ev, ok := <-events:
			if !ok {
				app.Logger.Infof("input", "event source closed")
				events = nil
				continue
			}
			lastInput = app.now()
			app.handle(ev, lastInput)
		case m, ok := <-arrivals:
			if !ok {
				arrivals = nil
				continue
			}
			lastInput = app.now()
			app.handle(input.DriveEvent(m.Path), lastInput)
		case <-ticker.C:
			if app.Poller != nil {
				evs, quit := app.Poller.PollEvents()
				if quit {
					app.Logger.Infof("app", "display closed")
					return nil
				}
				for _, ev := range evs {
					lastInput = app.now()
					app.handle(ev, lastInput)
				}
			}
			app.idle(lastInput)
		}
	}
}

// Screen returns the current screen state. Only valid on the UI goroutine;
// other goroutines read Store.
func (app *App) Screen() state.ScreenState { return app.screen }

func (app *App) handle(ev input.Event, at time.Time) {
	app.Store.TouchInput(at)
	next, action := app.Navigator.Reduce(app.screen, ev)
	switch action.Kind {
	case ActionNone:
		return
	case ActionExit:
		app.Logger.Infof("app", "exit requested")
		app.Exit(nil)
		return
	case ActionLaunch:
		app.launch(action)
	case ActionSelect:
		app.Logger.Infof("app", "%s selected on %s", action.Label, app.screen.Screen)
	}
	if ev.Kind == input.KindDrive {
		app.promptAt = at
	}
	app.setScreen(next)
}

func (app *App) launch(action Action) {
	info := state.LaunchInfo{App: string(action.App), At: app.now()}
	if app.Launcher == nil {
		app.Logger.Errorf("launcher", "no launcher configured for %s", action.App)
		return
	}
	if err := app.Launcher.Launch(action.App, action.File); err != nil {
		app.Logger.Errorf("launcher", "%s: %v", action.Label, err)
		info.Err = err.Error()
	}
	app.Store.RecordLaunch(info)
}

func (app *App) idle(lastInput time.Time) {
	switch app.screen.Screen {
	case state.SLEEP:
		if app.Frontend.Animated() {
			app.redraw()
		}
		return
	case state.DRIVE_PROMPT:
		if app.PromptTimeout > 0 && app.now().Sub(app.promptAt) >= app.PromptTimeout {
			app.Logger.Infof("drive", "prompt for %s timed out", app.screen.Drive)
			app.setScreen(DismissPrompt(app.screen))
		}
		return
	}
	if app.IdleTimeout <= 0 || app.now().Sub(lastInput) < app.IdleTimeout {
		return
	}
	app.Logger.Infof("app", "idle for %s, sleeping", app.IdleTimeout)
	app.setScreen(Sleep(app.screen))
}

func (app *App) setScreen(st state.ScreenState) {
	app.screen = st
	app.Store.SetScreen(st)
	app.redraw()
}

// redraw failures are logged; the next transition tries again.
func (app *App) redraw() {
	if err := app.Frontend.Draw(app.screen); err != nil {
		app.Logger.Errorf("render", "draw %s: %v", app.screen.Screen, err)
	}
}
