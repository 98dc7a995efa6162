package engine

import (
	"fretwork/fretboard"
	"fretwork/theory"
)

// Position is one playable cell of the fretboard, annotated with everything
// the renderer needs: spelled letter, accidental, scale-degree quality, and
// the character-tone emphasis class.
type Position struct {
	String     int
	Fret       int
	Pitch      theory.PitchClass
	Letter     theory.DiatonicDegree
	Quality    theory.ToneQuality
	Accidental theory.Accidental
	Character  theory.CharacterTone
}

// Name returns the spelled note name of the position, e.g. "Bb".
func (p Position) Name() string {
	return theory.NoteName(p.Letter, p.Accidental)
}

// Result is one computed fingering. Pattern is the compact box playable in a
// single hand position; Others is every instance of the scale across the
// whole neck, for overlay rendering. A Result is created fresh by every call
// to Compute and owned by the caller.
type Result struct {
	Pattern     []Position
	Others      []Position
	MinFret     int
	MaxFret     int
	StartDegree int
	Octave      bool
}

// Contains reports whether the box includes the given cell.
func (r *Result) Contains(str, fret int) bool {
	for _, p := range r.Pattern {
		if p.String == str && p.Fret == fret {
			return true
		}
	}
	return false
}

// Query names a fingering to compute: root pitch, scale and mode from the
// repository, canonical pattern index 1..5, handshape discipline, and the
// caller's octave preference.
type Query struct {
	Root     theory.PitchClass
	Scale    string
	Mode     int
	Pattern  int
	Extended bool
	Octave   bool
}

// SearchCursor is the reverse locator's persisted state: the pattern index
// and octave hypothesis the next search starts from.
type SearchCursor struct {
	Pattern int
	Octave  bool
}

// Engine computes fingering patterns against a read-only scale repository
// and a tuning. Compute is a pure function of its inputs; the only mutable
// state is the search cursor and last result kept for the reverse locator.
// Concurrent callers need separate engines or external synchronization.
type Engine struct {
	repo   *theory.Repository
	tuning fretboard.Tuning

	lastQuery Query
	cursor    SearchCursor
	last      *Result
}

// New creates an engine. The repository is referenced read-only.
func New(repo *theory.Repository, tuning fretboard.Tuning) *Engine {
	return &Engine{
		repo:   repo,
		tuning: tuning,
		cursor: SearchCursor{Pattern: 1},
	}
}

// Tuning returns the tuning the engine computes against.
func (e *Engine) Tuning() fretboard.Tuning {
	return e.tuning
}

// Cursor returns the reverse locator's current state.
func (e *Engine) Cursor() SearchCursor {
	return e.cursor
}

// Last returns the most recently computed result (nil before any Compute).
func (e *Engine) Last() *Result {
	return e.last
}

// BoxNotes returns the box positions as ascending MIDI note numbers, in the
// order the walk placed them (low string to high).
func (e *Engine) BoxNotes(r *Result) []int {
	notes := make([]int, 0, len(r.Pattern))
	for _, p := range r.Pattern {
		notes = append(notes, e.tuning.MIDIAt(p.String, p.Fret))
	}
	return notes
}
