package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fretwork/config"
	"fretwork/debug"
	"fretwork/engine"
	"fretwork/midi"
	"fretwork/theme"
	"fretwork/theory"
	"fretwork/widgets"
)

// layoutBounds holds cached layout info for mouse hit-testing
type layoutBounds struct {
	boardTop    int
	boardHeight int
}

type Model struct {
	Engine  *engine.Engine
	Repo    *theory.Repository
	Watcher *midi.PortWatcher
	Player  *midi.Player
	Cfg     *config.Config
	Theme   *theme.Theme

	query    engine.Query
	result   *engine.Result
	scales   []string
	scaleIdx int
	portName string
	status   string
	bounds   *layoutBounds
	showHelp bool
	quitting bool
}

type PortEventMsg midi.PortEvent

func NewModel(eng *engine.Engine, repo *theory.Repository, watcher *midi.PortWatcher, player *midi.Player, cfg *config.Config, th *theme.Theme) Model {
	m := Model{
		Engine:  eng,
		Repo:    repo,
		Watcher: watcher,
		Player:  player,
		Cfg:     cfg,
		Theme:   th,
		scales:  repo.GetNames(),
		bounds:  &layoutBounds{},
		query: engine.Query{
			Root:     theory.PitchClass(cfg.LastQuery.Root),
			Scale:    cfg.LastQuery.Scale,
			Mode:     cfg.LastQuery.Mode,
			Pattern:  cfg.LastQuery.Pattern,
			Extended: cfg.LastQuery.Extended,
			Octave:   cfg.LastQuery.Octave,
		},
	}
	for i, name := range m.scales {
		if name == m.query.Scale {
			m.scaleIdx = i
		}
	}
	m.recompute()
	return m
}

func ListenForPorts(watcher *midi.PortWatcher) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-watcher.Events()
		if !ok {
			return nil
		}
		return PortEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForPorts(m.Watcher)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Player.Stop()
			m.saveConfig()
			return m, tea.Quit

		case "right", "l":
			m.query.Root = m.query.Root.Add(1)
			m.recompute()

		case "left", "h":
			m.query.Root = m.query.Root.Add(-1)
			m.recompute()

		case "down", "j":
			m.scaleIdx = (m.scaleIdx + 1) % len(m.scales)
			m.query.Scale = m.scales[m.scaleIdx]
			m.query.Mode = 0
			m.recompute()

		case "up", "k":
			m.scaleIdx = (m.scaleIdx + len(m.scales) - 1) % len(m.scales)
			m.query.Scale = m.scales[m.scaleIdx]
			m.query.Mode = 0
			m.recompute()

		case "m":
			m.query.Mode++
			m.recompute()

		case "M":
			m.query.Mode--
			m.recompute()

		case "1", "2", "3", "4", "5":
			m.query.Pattern = int(msg.String()[0] - '0')
			m.recompute()

		case "e":
			m.query.Extended = !m.query.Extended
			m.recompute()

		case "o":
			m.query.Octave = !m.query.Octave
			m.recompute()

		case "p":
			m.Player.Play(m.Engine.BoxNotes(m.result))
			m.status = "playing"

		case "s":
			m.Player.Stop()
			m.status = ""

		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.handleClick(msg.X, msg.Y)
		}

	case PortEventMsg:
		if msg.Connected {
			m.portName = msg.Name
		} else {
			m.portName = ""
		}
		return m, ListenForPorts(m.Watcher)
	}

	return m, nil
}

// handleClick resolves a fretboard cell to the pattern and octave that
// contain it and jumps the view there.
func (m *Model) handleClick(x, y int) {
	relY := y - m.bounds.boardTop
	if relY < 0 || relY >= m.bounds.boardHeight {
		return
	}
	str, fret, ok := widgets.CellAt(x, relY)
	if !ok {
		return
	}
	debug.LogEvery(1, "click", "string=%d fret=%d", str, fret)

	pattern, octave, found := m.Engine.FindPatternForPosition(str, fret)
	if !found {
		m.status = fmt.Sprintf("no pattern contains string %d fret %d", str+1, fret)
		return
	}
	m.query.Pattern = pattern
	m.query.Octave = octave
	m.recompute()
	m.status = fmt.Sprintf("pattern %d", pattern)
}

func (m *Model) recompute() {
	m.result = m.Engine.Compute(m.query)
	// reconcile the octave hint with where the box landed
	m.query.Octave = m.result.Octave
}

func (m *Model) saveConfig() {
	m.Cfg.LastQuery = config.QueryConfig{
		Root:     int(m.query.Root),
		Scale:    m.query.Scale,
		Mode:     m.query.Mode,
		Pattern:  m.query.Pattern,
		Extended: m.query.Extended,
		Octave:   m.query.Octave,
	}
	if err := m.Cfg.Save(); err != nil {
		debug.Log("config", "save failed: %v", err)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())

	shape := "condensed"
	if m.query.Extended {
		shape = "extended"
	}
	octave := ""
	if m.query.Octave {
		octave = "  +8va"
	}
	port := "no MIDI out"
	if m.portName != "" {
		port = m.portName
	}

	header := headerStyle.Render(fmt.Sprintf("fretwork  %s %s  mode:%d  pattern:%d/%d  %s%s",
		rootName(m.query.Root), m.query.Scale, m.query.Mode,
		engine.NormalizePattern(m.query.Pattern), engine.NumPatterns, shape, octave))
	portLine := dimStyle.Render(port)

	board := widgets.RenderFretboard(m.result, m.Engine.Tuning(), m.Theme)
	legend := widgets.RenderLegend(m.result, m.Theme)

	help := dimStyle.Render("?:help  click a fret to locate its pattern")
	if m.showHelp {
		help = dimStyle.Render(widgets.RenderKeyHelp(keyHelp))
	}

	// Compute layout bounds
	headerHeight := lipgloss.Height(header) + lipgloss.Height(portLine) + 1
	m.bounds.boardTop = 1 + headerHeight
	m.bounds.boardHeight = widgets.Height

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(portLine)
	out.WriteString("\n\n")
	out.WriteString(board)
	out.WriteString("\n\n")
	out.WriteString(legend)
	out.WriteString("\n\n")
	out.WriteString(help)

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(statusStyle.Render(m.status))
	}

	return out.String()
}

// keyHelp is the full key table shown by the ? toggle.
var keyHelp = []widgets.KeySection{
	{
		Title: "Query",
		Keys: []widgets.KeyBinding{
			{Key: "←/→ h/l", Desc: "root down/up a semitone"},
			{Key: "↑/↓ k/j", Desc: "previous/next scale"},
			{Key: "m/M", Desc: "mode up/down"},
			{Key: "1-5", Desc: "pattern"},
			{Key: "e", Desc: "condensed/extended handshape"},
			{Key: "o", Desc: "octave up"},
		},
	},
	{
		Title: "Playback",
		Keys: []widgets.KeyBinding{
			{Key: "p", Desc: "play the pattern"},
			{Key: "s", Desc: "stop"},
		},
	},
	{
		Title: "Other",
		Keys: []widgets.KeyBinding{
			{Key: "click", Desc: "locate the pattern containing a fret"},
			{Key: "?", Desc: "toggle this help"},
			{Key: "q", Desc: "quit"},
		},
	},
}

// rootName spells a root pitch the way its own key signature writes the
// tonic: Db rather than C#, F# rather than Gb.
func rootName(root theory.PitchClass) string {
	k := theory.KeyForRoot(root)
	tonic := k.Tonic()
	return theory.NoteName(tonic, k.Alteration(tonic))
}
