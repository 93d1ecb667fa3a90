package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"folio/internal/workspace"
)

const envPrefix = "FOLIO_"

type Config struct {
	Theme         string `koanf:"theme"`
	PaletteWidth  int    `koanf:"palette_width"`
	SpawnX        int    `koanf:"spawn_x"`
	SpawnY        int    `koanf:"spawn_y"`
	SpawnStep     int    `koanf:"spawn_step"`
	SpawnPerRow   int    `koanf:"spawn_per_row"`
	ExportDir     string `koanf:"export_dir"`
	LogFile       string `koanf:"log_file"`
	LogLevel      string `koanf:"log_level"`
	Confirmations bool   `koanf:"confirmations"`
	WatchConfig   bool   `koanf:"watch_config"`

	// path is the config file that was read, if any.
	path string
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "folio.toml"
	}
	return filepath.Join(dir, "folio", "folio.toml")
}

func defaults() map[string]interface{} {
	l := workspace.DefaultLayout()
	logFile := "folio.log"
	if dir, err := os.UserCacheDir(); err == nil {
		logFile = filepath.Join(dir, "folio", "folio.log")
	}
	return map[string]interface{}{
		"theme":         "dark",
		"palette_width": l.PaletteWidth,
		"spawn_x":       l.Spawn.X,
		"spawn_y":       l.Spawn.Y,
		"spawn_step":    l.SpawnStep,
		"spawn_per_row": l.SpawnPerRow,
		"export_dir":    "",
		"log_file":      logFile,
		"log_level":     "info",
		"confirmations": true,
		"watch_config":  true,
	}
}

// loadConfig layers defaults, the TOML file at path, FOLIO_* environment
// variables and flags, later sources winning. A missing file is not an error.
func loadConfig(path string, f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, interface{}) {
			if fl.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(fl.Name, "-", "_"), posflag.FlagVal(f, fl)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.path = path
	return &cfg, nil
}

// readThemeName reads only the theme key of the config file at path.
func readThemeName(path string) (string, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return "", err
	}
	return k.String("theme"), nil
}

func (c *Config) Layout() workspace.Layout {
	l := workspace.DefaultLayout()
	l.PaletteWidth = c.PaletteWidth
	l.Spawn.X = c.SpawnX
	l.Spawn.Y = c.SpawnY
	l.SpawnStep = c.SpawnStep
	if c.SpawnPerRow > 0 {
		l.SpawnPerRow = c.SpawnPerRow
	}
	return l
}

// ExportPath joins filename onto the export directory, creating it.
func (c *Config) ExportPath(filename string) (string, error) {
	if c.ExportDir == "" {
		return filename, nil
	}
	dir := c.ExportDir
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return filepath.Join(dir, filename), nil
}

type mapProvider map[string]interface{}

func (p mapProvider) Read() (map[string]interface{}, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
