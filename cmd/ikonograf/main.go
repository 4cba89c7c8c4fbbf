package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ikonograf/internal/adapters/catalogjson"
	"ikonograf/internal/adapters/tui"
	"ikonograf/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := catalogjson.NewStore(cfg.Root)
	app := tui.NewApp(store)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
