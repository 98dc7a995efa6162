package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"fretwork/theory"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Fretboard cells
	BoxTone     rune // ● scale tone inside the pattern box
	RootTone    rune // ◉ the pattern root
	OverlayTone rune // · scale tone outside the box
	EmptyCell   rune // ─ no scale tone on this cell
	Nut         rune // ┃ left edge of the neck
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			BoxTone:     '●',
			RootTone:    '◉',
			OverlayTone: '·',
			EmptyCell:   '─',
			Nut:         '┃',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.1
	RoleMuted   = 0.2
	RoleFG      = 0.45
	RoleAccent  = 0.6
	RoleWarning = 0.85
	RoleSuccess = 1.0
)

// qualityRole maps each simple scale-degree quality to a palette position:
// the root brightest, the third and seventh next, the rest receding.
var qualityRole = [7]float64{1.0, 0.35, 0.8, 0.4, 0.55, 0.45, 0.7}

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// QualityColor returns the color for a scale tone by its degree quality.
func (t *Theme) QualityColor(q theory.ToneQuality) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(qualityRole[q.Simple()]))
}

// CharacterStyle wraps a base color with the emphasis a character tone gets:
// primary tones render bold, secondary tones underlined.
func (t *Theme) CharacterStyle(c theory.CharacterTone, base lipgloss.Color) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(base)
	switch c {
	case theory.CharacterPrimary:
		style = style.Bold(true)
	case theory.CharacterSecondary:
		style = style.Underline(true)
	}
	return style
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
