package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/rook-computer/kioskshell/internal/app"
	"github.com/rook-computer/kioskshell/internal/assets"
	"github.com/rook-computer/kioskshell/internal/config"
	"github.com/rook-computer/kioskshell/internal/render"
	"github.com/rook-computer/kioskshell/internal/state"
)

func main() {
	configPath := flag.String("config", os.Getenv(config.EnvConfig), "TOML config file; also configurable via "+config.EnvConfig)
	outDir := flag.String("out", "/tmp/kioskshell-sim", "directory the PNG frames are written to")
	fontPath := flag.String("font", "", "font file (default: embedded Go Bold)")
	bannerPath := flag.String("banner", "", "banner image (default: none)")
	scenario := flag.String("scenario", "gallery", "simulator scenario: gallery | keys")
	keys := flag.String("keys", "enter,right,right,down,enter,back,right,enter", "comma-separated keys replayed by the keys scenario; drive=<path> simulates a mounted USB drive")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := app.NewFileLogger(os.Stderr)

	cfg, err := config.Load(*configPath, false)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	face, err := loadFace(*fontPath, cfg.FontSize)
	if err != nil {
		fmt.Println("font error:", err)
		os.Exit(1)
	}
	var banner image.Image
	if *bannerPath != "" {
		img, err := assets.LoadImage(*bannerPath)
		if err != nil {
			fmt.Println("banner error:", err)
			os.Exit(1)
		}
		banner = img
	}

	dc, err := render.NewDrawContext(render.CanvasWidth, render.CanvasHeight, face, banner)
	if err != nil {
		fmt.Println("render error:", err)
		os.Exit(1)
	}
	presenter := &render.PNGPresenter{Dir: *outDir}
	frontend, err := app.NewFrontend(dc, presenter, app.FrontendOptions{
		Catalog:     cfg.AppCatalog(),
		ProfileName: cfg.Profile.Name,
		ProfileURL:  cfg.Profile.URL,
	})
	if err != nil {
		fmt.Println("frontend error:", err)
		os.Exit(1)
	}
	defer frontend.Close()

	sim := &Simulator{Frontend: frontend, Presenter: presenter, Logger: logger, Store: state.NewStore()}
	var n int
	switch strings.TrimSpace(*scenario) {
	case "gallery", "":
		n, err = sim.Gallery(ctx)
	case "keys":
		var events []string
		for _, k := range strings.Split(*keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				events = append(events, k)
			}
		}
		n, err = sim.Replay(ctx, events)
	default:
		err = fmt.Errorf("unknown scenario %q", *scenario)
	}
	if err != nil {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
	fmt.Printf("kioskshell simulator wrote %d frames to %s\n", n, *outDir)
	if strings.TrimSpace(*scenario) == "keys" {
		fmt.Printf("final status: %s\n", sim.Store.Snapshot())
	}
}

func loadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return assets.ParseFontFace(gobold.TTF, size)
	}
	return assets.LoadFontFace(path, size)
}
