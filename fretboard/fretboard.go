package fretboard

import (
	"fretwork/theory"
)

// NumStrings is the string count of the instrument, string 0 = lowest pitch.
const NumStrings = 6

// NeckLength is the highest playable fret.
const NeckLength = 19

// Tuning is an ordered set of open-string pitches as MIDI note numbers.
type Tuning struct {
	Name string          `json:"name"`
	Open [NumStrings]int `json:"open"`
}

// Standard returns the standard tuning E2 A2 D3 G3 B3 E4.
func Standard() Tuning {
	return Tuning{Name: "standard", Open: [NumStrings]int{40, 45, 50, 55, 59, 64}}
}

var tunings = []Tuning{
	Standard(),
	{Name: "drop-d", Open: [NumStrings]int{38, 45, 50, 55, 59, 64}},
	{Name: "dadgad", Open: [NumStrings]int{38, 45, 50, 55, 57, 62}},
	{Name: "open-g", Open: [NumStrings]int{38, 43, 50, 55, 59, 62}},
}

// ByName looks up a named tuning from the built-in catalog.
func ByName(name string) (Tuning, bool) {
	for _, t := range tunings {
		if t.Name == name {
			return t, true
		}
	}
	return Tuning{}, false
}

// Names returns the catalog tuning names in registration order.
func Names() []string {
	out := make([]string, len(tunings))
	for i, t := range tunings {
		out[i] = t.Name
	}
	return out
}

// OpenClass returns the pitch class of an open string.
func (t Tuning) OpenClass(str int) theory.PitchClass {
	return theory.PitchClass(((t.Open[str] % 12) + 12) % 12)
}

// PitchAt maps a (string, fret) cell to its pitch class. Negative frets are
// legal here: they arise transiently while a pattern walk rebases strings.
func (t Tuning) PitchAt(str, fret int) theory.PitchClass {
	return theory.PitchClass((((t.Open[str] + fret) % 12) + 12) % 12)
}

// MIDIAt maps a (string, fret) cell to its absolute MIDI note number.
func (t Tuning) MIDIAt(str, fret int) int {
	return t.Open[str] + fret
}

// Gap returns the semitone distance between a string and the one above it.
func (t Tuning) Gap(str int) int {
	return t.Open[str+1] - t.Open[str]
}

// FretFor returns the lowest fret on a string sounding the given pitch class.
func (t Tuning) FretFor(str int, p theory.PitchClass) int {
	return t.OpenClass(str).Interval(p)
}
