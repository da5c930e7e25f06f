// Package config resolves kioskshell settings from built-in defaults, an
// optional TOML file and KIOSK_* environment variables. Command-line flags
// are applied on top by main.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rook-computer/kioskshell/internal/assets"
	"github.com/rook-computer/kioskshell/internal/catalog"
	"github.com/rook-computer/kioskshell/internal/drive"
	"github.com/rook-computer/kioskshell/internal/launcher"
)

const (
	EnvConfig      = "KIOSK_CONFIG"
	EnvStdioLog    = "KIOSK_STDIO_LOG"
	EnvFont        = "KIOSK_FONT"
	EnvBanner      = "KIOSK_BANNER"
	EnvFramebuffer = "KIOSK_FB"
	EnvIdleTimeout = "KIOSK_IDLE_TIMEOUT"
	EnvDrivePoll   = "KIOSK_DRIVE_POLL"

	DefaultConfigPath  = "/etc/kioskshell/config.toml"
	DefaultFramebuffer = "/dev/fb0"
	DefaultIdleTimeout = 30 * time.Second
	DefaultProfileName = "User 1"
)

// AppConfig adds or replaces one launcher table entry.
type AppConfig struct {
	Exec            string   `toml:"exec"`
	Args            []string `toml:"args"`
	AcceptsFilename bool     `toml:"accepts_filename"`
}

type Profile struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

type Config struct {
	FontPath    string        `toml:"font"`
	FontSize    float64       `toml:"font_size"`
	BannerPath  string        `toml:"banner"`
	SleepFrames string        `toml:"sleep_frames"`
	Framebuffer string        `toml:"framebuffer"`
	InputGlob   string        `toml:"input"`
	IdleTimeout time.Duration `toml:"idle_timeout"`
	Profile     Profile       `toml:"profile"`

	// DrivePoll is how often the mount table is checked for USB drives.
	// Zero disables the drive prompt.
	DrivePoll  time.Duration `toml:"drive_poll"`
	DriveRoots []string      `toml:"drive_roots"`

	Apps    map[string]AppConfig `toml:"apps"`
	Catalog []catalog.Entry      `toml:"catalog"`
}

func Default() Config {
	return Config{
		FontPath:    assets.DefaultFontPath,
		FontSize:    assets.DefaultFontSize,
		BannerPath:  assets.DefaultBannerPath,
		SleepFrames: assets.DefaultSleepGlob,
		Framebuffer: DefaultFramebuffer,
		InputGlob:   "/dev/input/event*",
		IdleTimeout: DefaultIdleTimeout,
		Profile:     Profile{Name: DefaultProfileName},
		DrivePoll:   drive.DefaultInterval,
		DriveRoots:  append([]string(nil), drive.DefaultRoots...),
	}
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error when optional is set, so the default path can be tried silently.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from KIOSK_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvFont); v != "" {
		c.FontPath = v
	}
	if v := os.Getenv(EnvBanner); v != "" {
		c.BannerPath = v
	}
	if v := os.Getenv(EnvFramebuffer); v != "" {
		c.Framebuffer = v
	}
	if raw := os.Getenv(EnvIdleTimeout); raw != "" {
		d, err := parseDuration(raw)
		if err != nil {
			return fmt.Errorf("%s must be a duration (got %q): %w", EnvIdleTimeout, raw, err)
		}
		c.IdleTimeout = d
	}
	if raw := os.Getenv(EnvDrivePoll); raw != "" {
		d, err := parseDuration(raw)
		if err != nil {
			return fmt.Errorf("%s must be a duration (got %q): %w", EnvDrivePoll, raw, err)
		}
		c.DrivePoll = d
	}
	return c.Validate()
}

// parseDuration accepts Go durations and bare seconds.
func parseDuration(raw string) (time.Duration, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

func (c Config) Validate() error {
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive (got %v)", c.FontSize)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle_timeout must not be negative (got %s)", c.IdleTimeout)
	}
	if c.DrivePoll < 0 {
		return fmt.Errorf("drive_poll must not be negative (got %s)", c.DrivePoll)
	}
	if c.DrivePoll > 0 && len(c.DriveRoots) == 0 {
		return errors.New("drive_roots must not be empty while drive_poll is set")
	}
	for id, app := range c.Apps {
		if app.Exec == "" {
			return fmt.Errorf("apps.%s: exec is required", id)
		}
	}
	for i, e := range c.Catalog {
		if e.Label == "" {
			return fmt.Errorf("catalog[%d]: label is required", i)
		}
	}
	return nil
}

// LaunchTable returns the default launcher table with the configured apps
// merged over it.
func (c Config) LaunchTable() launcher.Table {
	table := launcher.DefaultTable()
	for id, app := range c.Apps {
		table[launcher.AppID(id)] = launcher.Descriptor{
			Executable:      app.Exec,
			Args:            append([]string(nil), app.Args...),
			AcceptsFilename: app.AcceptsFilename,
		}
	}
	return table
}

// AppCatalog returns the configured grid entries, or the default catalog.
func (c Config) AppCatalog() catalog.Catalog {
	if len(c.Catalog) == 0 {
		return catalog.Default()
	}
	return append(catalog.Catalog(nil), c.Catalog...)
}
