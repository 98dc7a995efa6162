package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fretwork/config"
	"fretwork/engine"
	"fretwork/fretboard"
	"fretwork/midi"
	"fretwork/theme"
	"fretwork/theory"
)

func newTestModel() Model {
	repo := theory.NewRepository()
	watcher := midi.NewPortWatcher(nil, nil)
	return NewModel(
		engine.New(repo, fretboard.Standard()),
		repo,
		watcher,
		midi.NewPlayer(watcher, 0, 250),
		config.DefaultConfig(),
		theme.New(theme.Default()),
	)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel()

	if v := m.View(); strings.Contains(v, "toggle this help") {
		t.Error("full key table shown before toggling")
	}

	next, _ := m.Update(keyMsg("?"))
	m = next.(Model)
	v := m.View()
	for _, want := range []string{"Query", "Playback", "toggle this help", "pattern"} {
		if !strings.Contains(v, want) {
			t.Errorf("help view missing %q", want)
		}
	}

	next, _ = m.Update(keyMsg("?"))
	m = next.(Model)
	if v := m.View(); strings.Contains(v, "Playback") {
		t.Error("key table still shown after toggling off")
	}
}

func TestHeaderShowsWrappedPattern(t *testing.T) {
	m := newTestModel()
	m.query.Pattern = 7 // wraps onto pattern 2
	m.recompute()
	if v := m.View(); !strings.Contains(v, "pattern:2/5") {
		t.Error("header does not show the wrapped pattern index")
	}
}
