package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/kioskshell/internal/app"
	"github.com/rook-computer/kioskshell/internal/assets"
	"github.com/rook-computer/kioskshell/internal/config"
	"github.com/rook-computer/kioskshell/internal/drive"
	"github.com/rook-computer/kioskshell/internal/input"
	"github.com/rook-computer/kioskshell/internal/launcher"
	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/system"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "TOML config file; also configurable via "+config.EnvConfig+" (default "+config.DefaultConfigPath+" if present)")
	debug := flag.Bool("debug", false, "enable debug logging to ./kioskshell-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	fontPath := flag.String("font", "", "bold TTF/OTF font; overrides config and "+config.EnvFont)
	bannerPath := flag.String("banner", "", "welcome banner image; overrides config and "+config.EnvBanner)
	fbDevice := flag.String("fb", "", "framebuffer device; overrides config and "+config.EnvFramebuffer)
	noConsole := flag.Bool("no-console", false, "leave the console in text mode (no KD_GRAPHICS, cursor visible)")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(config.EnvStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logOut io.Writer = os.Stderr
	if *debug {
		f, err := os.OpenFile("./kioskshell-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logOut = f
		} else {
			fmt.Println("debug log open error:", err)
		}
	}
	logger := app.NewFileLogger(logOut)
	if *debug {
		logger.Infof("main", "debug logging enabled")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Errorf("config", "%v", err)
		return 2
	}
	if *fontPath != "" {
		cfg.FontPath = *fontPath
	}
	if *bannerPath != "" {
		cfg.BannerPath = *bannerPath
	}
	if *fbDevice != "" {
		cfg.Framebuffer = *fbDevice
	}

	// Assets are required: an unreadable UI is not a state worth running in.
	face, err := assets.LoadFontFace(cfg.FontPath, cfg.FontSize)
	if err != nil {
		logger.Errorf("assets", "font %s: %v", cfg.FontPath, err)
		return 1
	}
	banner, err := assets.LoadImage(cfg.BannerPath)
	if err != nil {
		logger.Errorf("assets", "banner %s: %v", cfg.BannerPath, err)
		return 1
	}
	sleepFrames, err := assets.LoadFrames(cfg.SleepFrames)
	if err != nil {
		logger.Errorf("assets", "sleep animation disabled: %v", err)
	}

	dc, err := render.NewDrawContext(render.CanvasWidth, render.CanvasHeight, face, banner)
	if err != nil {
		logger.Errorf("render", "%v", err)
		return 1
	}
	display, err := render.OpenDisplay(render.DisplayOptions{
		Device: cfg.Framebuffer,
		Title:  "kioskshell",
		Width:  render.CanvasWidth,
		Height: render.CanvasHeight,
	}, logger)
	if err != nil {
		logger.Errorf("render", "open display: %v", err)
		_ = dc.Close()
		return 1
	}

	frontend, err := app.NewFrontend(dc, display, app.FrontendOptions{
		Catalog:     cfg.AppCatalog(),
		ProfileName: cfg.Profile.Name,
		ProfileURL:  cfg.Profile.URL,
		SleepFrames: sleepFrames,
	})
	if err != nil {
		logger.Errorf("app", "%v", err)
		_ = dc.Close()
		_ = display.Close()
		return 1
	}
	defer func() {
		if err := frontend.Close(); err != nil {
			logger.Errorf("render", "close: %v", err)
		}
	}()

	if !*noConsole {
		restore := system.EnterKiosk(logger)
		defer restore()
	}

	spawner := system.ExecSpawner{OnExit: func(name string, err error, stderrTail string) {
		if err != nil {
			logger.Errorf("launcher", "%s exited: %v; stderr: %s", name, err, stderrTail)
			return
		}
		logger.Infof("launcher", "%s exited", name)
	}}
	launch := launcher.New(cfg.LaunchTable(), spawner, logger)

	source := input.NewEvdevSource(render.CanvasWidth, render.CanvasHeight, logger)
	source.Pattern = cfg.InputGlob

	a := app.New(frontend, launch, source)
	a.Logger = logger
	a.IdleTimeout = cfg.IdleTimeout
	if poller, ok := display.(input.Poller); ok {
		a.Poller = poller
	}
	if cfg.DrivePoll > 0 {
		drives := drive.NewWatcher(logger)
		drives.Interval = cfg.DrivePoll
		drives.Roots = cfg.DriveRoots
		a.Drives = drives
	}
	stopStatus := notifyStatus(a.Store, logger)
	defer stopStatus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("main", "kioskshell running on %s", cfg.Framebuffer)
	err = a.Start(ctx)
	logger.Infof("main", "final status: %s", a.Store.Snapshot())
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("app", "%v", err)
		return 1
	}
	logger.Infof("main", "shutting down")
	return 0
}

// loadConfig resolves the config file from the flag, then KIOSK_CONFIG, then
// the optional default path, and applies environment overrides.
func loadConfig(flagPath string) (config.Config, error) {
	path, optional := flagPath, false
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path == "" {
		path, optional = config.DefaultConfigPath, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
