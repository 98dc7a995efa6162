package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fretwork/engine"
	"fretwork/fretboard"
	"fretwork/theme"
	"fretwork/theory"
)

// Grid geometry, shared with the TUI's mouse hit-testing: a 4-column string
// label, then one 3-column cell per fret.
const (
	LabelWidth = 4
	CellWidth  = 3
)

// CellAt maps widget-relative coordinates to a fretboard cell. Row 0 is the
// fret-number header; string rows run high string at the top.
func CellAt(x, y int) (str, fret int, ok bool) {
	str = fretboard.NumStrings - y
	fret = (x - LabelWidth) / CellWidth
	if str < 0 || str >= fretboard.NumStrings || x < LabelWidth || fret > fretboard.NeckLength {
		return 0, 0, false
	}
	return str, fret, true
}

// Height is the widget's rendered line count: header plus one row per string.
const Height = fretboard.NumStrings + 1

// RenderFretboard renders the full neck: the pattern box over the scale
// overlay, root emphasized, colored by degree quality with character-tone
// emphasis.
func RenderFretboard(res *engine.Result, tun fretboard.Tuning, th *theme.Theme) string {
	box := make(map[[2]int]engine.Position)
	overlay := make(map[[2]int]engine.Position)
	if res != nil {
		for _, p := range res.Others {
			overlay[[2]int{p.String, p.Fret}] = p
		}
		for _, p := range res.Pattern {
			box[[2]int{p.String, p.Fret}] = p
		}
	}

	dim := lipgloss.NewStyle().Foreground(th.Muted())
	nut := string(th.Symbols.Nut)

	var lines []string
	lines = append(lines, renderFretNumbers(dim))

	for s := fretboard.NumStrings - 1; s >= 0; s-- {
		var line strings.Builder
		line.WriteString(dim.Render(fmt.Sprintf("%2s %s", openLabel(tun, s), nut)))
		for fret := 0; fret <= fretboard.NeckLength; fret++ {
			cell := [2]int{s, fret}
			if p, ok := box[cell]; ok {
				line.WriteString(renderTone(p, th, true))
			} else if p, ok := overlay[cell]; ok {
				line.WriteString(renderTone(p, th, false))
			} else {
				line.WriteString(dim.Render(" " + string(th.Symbols.EmptyCell) + " "))
			}
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

func renderFretNumbers(dim lipgloss.Style) string {
	var line strings.Builder
	line.WriteString(strings.Repeat(" ", LabelWidth))
	for fret := 0; fret <= fretboard.NeckLength; fret++ {
		line.WriteString(fmt.Sprintf("%2d ", fret))
	}
	return dim.Render(line.String())
}

func renderTone(p engine.Position, th *theme.Theme, inBox bool) string {
	color := th.QualityColor(p.Quality)
	if !inBox {
		// overlay tones recede
		return lipgloss.NewStyle().Foreground(th.Muted()).Render(" " + string(th.Symbols.OverlayTone) + " ")
	}
	sym := th.Symbols.BoxTone
	if p.Quality.Simple() == theory.Unison {
		sym = th.Symbols.RootTone
	}
	return th.CharacterStyle(p.Character, color).Render(" " + string(sym) + " ")
}

// openLabel names an open string with plain sharp-key spelling.
func openLabel(tun fretboard.Tuning, s int) string {
	d, a := theory.SpellInKey(tun.OpenClass(s), theory.TableForKey(0))
	return theory.NoteName(d, a)
}

// RenderLegend lists the scale degrees of a result in walk order: symbol,
// spelled name, and quality number for each distinct degree.
func RenderLegend(res *engine.Result, th *theme.Theme) string {
	if res == nil || len(res.Pattern) == 0 {
		return ""
	}
	seen := make(map[theory.ToneQuality]bool)
	var parts []string
	for _, p := range res.Pattern {
		if seen[p.Quality] {
			continue
		}
		seen[p.Quality] = true
		sym := th.Symbols.BoxTone
		if p.Quality.Simple() == theory.Unison {
			sym = th.Symbols.RootTone
		}
		entry := th.CharacterStyle(p.Character, th.QualityColor(p.Quality)).
			Render(fmt.Sprintf("%s %-3s", string(sym), p.Name()))
		parts = append(parts, entry)
	}
	return strings.Join(parts, "  ")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
