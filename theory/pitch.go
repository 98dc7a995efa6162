package theory

import "fmt"

// PitchClass is a semitone pitch class, C=0 .. B=11. All arithmetic is mod 12.
type PitchClass int

// Add transposes a pitch class by a (possibly negative) number of semitones.
func (p PitchClass) Add(semitones int) PitchClass {
	return PitchClass(((int(p)+semitones)%12 + 12) % 12)
}

// Interval returns the upward semitone distance from p to q (0..11).
func (p PitchClass) Interval(q PitchClass) int {
	return ((int(q)-int(p))%12 + 12) % 12
}

// DiatonicDegree is a scale-letter index, C=0 .. B=6. Arithmetic is mod 7.
type DiatonicDegree int

// degreePitch is the natural (unaltered) pitch class of each letter.
var degreePitch = [7]PitchClass{0, 2, 4, 5, 7, 9, 11}

var degreeName = [7]string{"C", "D", "E", "F", "G", "A", "B"}

// Natural returns the pitch class of the letter with no accidental.
func (d DiatonicDegree) Natural() PitchClass {
	return degreePitch[((int(d)%7)+7)%7]
}

// Add moves a letter up or down the musical alphabet.
func (d DiatonicDegree) Add(steps int) DiatonicDegree {
	return DiatonicDegree(((int(d)+steps)%7 + 7) % 7)
}

func (d DiatonicDegree) String() string {
	return degreeName[((int(d)%7)+7)%7]
}

// Accidental is a semitone offset from a letter's natural pitch, -2..+2.
type Accidental int

const (
	DoubleFlat Accidental = iota - 2
	Flat
	Natural
	Sharp
	DoubleSharp
)

func (a Accidental) String() string {
	switch a {
	case DoubleFlat:
		return "bb"
	case Flat:
		return "b"
	case Natural:
		return ""
	case Sharp:
		return "#"
	case DoubleSharp:
		return "##"
	}
	return fmt.Sprintf("Accidental(%d)", int(a))
}

// ToneQuality is a position's scale-degree distance from the pattern root.
// Compute emits the simple octave (Unison..Seventh); the compound values
// exist for rendering parity with compound-interval labels.
type ToneQuality int

const (
	Unison ToneQuality = iota
	Second
	Third
	Fourth
	Fifth
	Sixth
	Seventh
	Octave
	Ninth
	Tenth
	Eleventh
	Twelfth
	Thirteenth
)

var qualityName = [13]string{
	"1", "2", "3", "4", "5", "6", "7",
	"8", "9", "10", "11", "12", "13",
}

func (q ToneQuality) String() string {
	if q >= 0 && int(q) < len(qualityName) {
		return qualityName[q]
	}
	return fmt.Sprintf("ToneQuality(%d)", int(q))
}

// Simple folds a compound quality down to Unison..Seventh.
func (q ToneQuality) Simple() ToneQuality {
	return ToneQuality(((int(q) % 7) + 7) % 7)
}

// CharacterTone flags scale tones that are structurally distinctive. It is a
// display classification only; it never affects pitch computation.
type CharacterTone int

const (
	CharacterNone CharacterTone = iota
	CharacterPrimary
	CharacterSecondary
)

// NoteName spells a letter plus accidental, e.g. "F#" or "Bb".
func NoteName(d DiatonicDegree, a Accidental) string {
	return d.String() + a.String()
}

// letterAtOrBelow returns the letter whose natural pitch is at or just below
// the given pitch class. Used as the naive spelling candidate before the
// enharmonic resolver runs.
var letterAtOrBelow = [12]DiatonicDegree{
	0, 0, 1, 1, 2, 3, 3, 4, 4, 5, 5, 6,
}

// LetterBelow returns the naive spelling candidate for a pitch class.
func LetterBelow(p PitchClass) DiatonicDegree {
	return letterAtOrBelow[((int(p)%12)+12)%12]
}
