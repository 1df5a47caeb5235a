package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/edvall/taskdeck/internal/config"
	"github.com/edvall/taskdeck/internal/logs"
	"github.com/edvall/taskdeck/internal/store"
	"github.com/edvall/taskdeck/internal/tui"
	"github.com/edvall/taskdeck/internal/watch"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: bad config, using defaults: %v\n", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir, err = store.DefaultDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := logs.Initialize(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logs.Close()

	st, err := store.Open(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening data directory: %v\n", err)
		os.Exit(1)
	}

	s := store.New(st)
	if !cfg.SidebarVisible() {
		s.UI.ToggleSidebar()
	}

	// External edits to the task slot still surface without the listener;
	// they just wait for the next launch.
	listener, err := watch.New(st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: file watching disabled: %v\n", err)
		listener = nil
	} else {
		defer listener.Close()
	}

	app := tui.NewApp(s, listener, cfg.AccentColor)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
