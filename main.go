package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"folio/internal/logging"
	"folio/internal/theme"
	"folio/internal/views"
	"folio/internal/workspace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "A terminal portfolio with a drag-and-connect workspace",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", defaultConfigPath(), "config file (TOML)")
	f.String("theme", "dark", "initial theme: dark or light")
	f.Int("palette-width", workspace.DefaultLayout().PaletteWidth, "width of the tool palette in cells, 0 hides it")
	f.String("export-dir", "", "directory for PNG and text exports")
	f.String("log-file", "", "log file")
	f.String("log-level", "info", "log level: debug, info, warn or error")
	f.Bool("confirmations", true, "ask before quitting and deleting")
	f.Bool("watch-config", true, "follow theme changes in the config file")
	return cmd
}

func run(cfg *Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logging.Setup(logFile, level)

	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	logging.Info("starting folio", "theme", cfg.Theme, "config", cfg.path)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.WatchConfig && cfg.path != "" {
		if _, err := os.Stat(cfg.path); err == nil {
			err := theme.Watch(ctx, cfg.path, readThemeName, func(name string) {
				p.Send(themeMsg{name: name})
			})
			if err != nil {
				logging.Warn("theme watcher disabled", "error", err)
			}
		}
	}

	if _, err := p.Run(); err != nil {
		logging.Error("program failed", "error", err)
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// themeMsg carries a theme name from the config watcher into the UI loop.
type themeMsg struct {
	name string
}

var projects = []views.Project{
	{
		Title:   "Workspace",
		Summary: "drag-and-connect canvas",
		Detail:  "Drop shapes from the palette, drag them around, lock, edit and duplicate them, and connect them with lines. Modal elements open a canvas of their own.",
		Slides:  []string{"L lock  E edit  D duplicate", "M move  C connect", "ctrl+wheel zooms, drag empty space to pan"},
	},
	{
		Title:   "Sketch",
		Summary: "freehand pad",
		Detail:  "A self-contained drawing widget, mounted the first time its tab opens.",
		Slides:  []string{"left button paints", "right button erases", "b cycles the brush, c clears"},
	},
	{
		Title:   "Exports",
		Summary: "PNG and text snapshots",
		Detail:  "ctrl+s renders the current canvas to PNG, ctrl+t writes the viewport as plain text.",
	},
}

func newModel(cfg *Config) (model, error) {
	initial, err := theme.ByName(cfg.Theme)
	if err != nil {
		return model{}, err
	}
	themes := theme.NewSwitch(initial)

	root := workspace.NewCanvas(workspace.WithLayout(cfg.Layout()), workspace.WithTheme(initial))
	pad := views.NewPad(initial.Accent)
	themes.Subscribe(func(p theme.Palette) { pad.SetInk(p.Accent) })

	m := model{
		config:    cfg,
		mode:      ModeNormal,
		themes:    themes,
		layers:    []Layer{{canvas: root}},
		portfolio: views.NewPortfolio(projects, 3*time.Second),
		pad:       pad,
		views: views.NewSwitcher(
			&views.Tab{ID: viewAbout, Title: "About"},
			&views.Tab{ID: viewWorkspace, Title: "Workspace"},
			&views.Tab{ID: viewSketch, Title: "Sketch", Embed: pad},
			&views.Tab{ID: viewHelp, Title: "Help"},
		),
		readClipboard: readClipboardText,
	}
	m.detachTheme = root.AttachTheme(themes)
	if err := m.views.Activate(viewWorkspace); err != nil {
		return model{}, err
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	return m.portfolio.Init()
}
