// ABOUTME: CLI entry point for the timeline viewer demo
// ABOUTME: Drives the Engine against a synthetic waveform; no real VCD/FST backend exists

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wavecore/timeline/internal/config"
	"github.com/wavecore/timeline/internal/demo"
	"github.com/wavecore/timeline/internal/input"
	"github.com/wavecore/timeline/internal/log"
	"github.com/wavecore/timeline/internal/render"
	"github.com/wavecore/timeline/internal/state"
)

var (
	debug      bool
	themePath  string
	configPath string
	noMouse    bool
)

func main() {
	root := &cobra.Command{
		Use:   "timelinedemo",
		Short: "Waveform timeline viewer, driven by a synthetic trace",
		Long: `timelinedemo renders a synthetic clock/reset/counter waveform through
the timeline engine's keyboard and mouse controls. There is no real VCD/FST
reader in this build: it exists to exercise the viewer's cursor, zoom, pan,
and tooltip behavior end to end.`,
		RunE: run,
	}

	root.Flags().BoolVar(&debug, "debug", false, "enable debug logging and render tooltip educational text")
	root.Flags().StringVar(&themePath, "theme", "", "path to a YAML theme asset (defaults to the built-in theme)")
	root.Flags().StringVar(&configPath, "config", config.ConfigFile(), "path to the persisted viewer config JSON")
	root.Flags().BoolVar(&noMouse, "no-mouse", false, "disable mouse-driven tooltip hover")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if debug {
		log.SetLevel(log.LevelDebug)
	}

	theme := render.DefaultTheme()
	if themePath != "" {
		loaded, err := config.LoadTheme(themePath)
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}
		theme = loaded
	}

	if err := config.EnsureDir(config.GlobalDir()); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	store := config.NewFileConfigStore(configPath)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	engine := state.New(ctx, state.Dependencies{
		Transport: demo.Transport{},
		Config:    store,
		Theme:     theme,
	})
	defer engine.Close()

	engine.SetBounds(demo.Bounds())
	engine.SetVariables(demo.Variables())

	model := input.New(engine, 120, 32)
	model.Debug = debug

	var opts []tea.ProgramOption
	if !noMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	_, err := p.Run()
	return err
}
