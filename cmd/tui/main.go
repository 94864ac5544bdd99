// Local terminal viewer: runs a camp in-process and renders it, no server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/acaradonna/goblin-camp-sub001/internal/tui"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/world"
)

func main() {
	var (
		configPath = flag.String("config", "./configs/world.yaml", "world config path")
		seed       = flag.Int64("seed", 0, "world seed override (0 keeps the config value)")
	)
	flag.Parse()

	cfg, err := world.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, "load config:", err)
			os.Exit(1)
		}
		cfg = world.WorldConfig{}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	// Keep the map readable in a terminal.
	if cfg.Width <= 0 || cfg.Width > 48 {
		cfg.Width = 48
	}
	if cfg.Height <= 0 || cfg.Height > 24 {
		cfg.Height = 24
	}

	w, err := world.NewDemoWorld(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "world:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewApp(w), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui:", err)
		os.Exit(1)
	}
}
