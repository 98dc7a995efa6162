package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fretwork/config"
	"fretwork/debug"
	"fretwork/engine"
	"fretwork/fretboard"
	"fretwork/midi"
	"fretwork/theme"
	"fretwork/theory"
	"fretwork/tui"
)

func main() {
	if os.Getenv("FRETWORK_DEBUG") != "" {
		debug.Enable()
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Load theme
	th := theme.New(theme.LoadGPLOr(cfg.Palette))

	tun, ok := fretboard.ByName(cfg.Tuning)
	if !ok {
		tun = fretboard.Standard()
	}

	repo := theory.NewRepository()
	eng := engine.New(repo, tun)

	// MIDI output (hot-plug aware, playback is optional)
	watcher := midi.NewPortWatcher(cfg.MIDI.PreferredPorts, cfg.MIDI.ExcludedPorts)
	player := midi.NewPlayer(watcher, cfg.MIDI.Channel, cfg.MIDI.NoteMillis)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	m := tui.NewModel(eng, repo, watcher, player, cfg, th)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
