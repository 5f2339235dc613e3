package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/focustree/internal/backend"
	"github.com/atomicstack/focustree/internal/layout"
	"github.com/atomicstack/focustree/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	LayoutPath string
	Watch      bool
	Debounce   time.Duration
	Width      int
	Height     int
	ShowFooter bool
	Mouse      bool
	Verbose    bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	spec, err := loadLayout(cfg.LayoutPath)
	if err != nil {
		return err
	}

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.LayoutPath, cfg.Debounce)
		if err != nil {
			return fmt.Errorf("watch layout: %w", err)
		}
		defer watcher.Stop()
	}

	model, err := ui.NewModel(ui.Options{
		Layout:     spec,
		LayoutPath: cfg.LayoutPath,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Watcher:    watcher,
	})
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func loadLayout(path string) (layout.Spec, error) {
	if path == "" {
		return layout.Default(), nil
	}
	spec, err := layout.Load(path)
	if err != nil {
		return layout.Spec{}, fmt.Errorf("load layout: %w", err)
	}
	return spec, nil
}
