package engine

import "fretwork/fretboard"

// FindPatternForPosition finds which canonical pattern (and which octave)
// of the engine's last query contains the given cell. The search starts from
// the cached cursor, walks pattern indices toward the target, and tries the
// opposite octave hypothesis if the first yields nothing. On success the
// cursor is updated so the next click continues from a sensible start; on a
// miss it is left untouched so a later click can retry.
func (e *Engine) FindPatternForPosition(str, fret int) (pattern int, octave bool, found bool) {
	if str < 0 || str >= fretboard.NumStrings || fret < 0 || fret > fretboard.NeckLength {
		return e.cursor.Pattern, e.cursor.Octave, false
	}

	for pass := 0; pass < 2; pass++ {
		hyp := e.cursor.Octave
		if pass == 1 {
			hyp = !hyp
		}
		if p, ok := e.searchOctave(hyp, str, fret); ok {
			e.cursor = SearchCursor{Pattern: p, Octave: hyp}
			return p, hyp, true
		}
	}
	return e.cursor.Pattern, e.cursor.Octave, false
}

// searchOctave probes up to all five patterns under one octave hypothesis.
// The cached pattern is tested first, then neighbors in the direction of the
// target: downward when the target sits at or below the current box's lowest
// fret, upward otherwise. Candidates whose recomputation silently flipped the
// octave away from the hypothesis are rejected.
func (e *Engine) searchOctave(hyp bool, str, fret int) (int, bool) {
	q := e.lastQuery
	q.Octave = hyp
	q.Pattern = e.cursor.Pattern

	r := compute(e.repo, e.tuning, q)
	if len(r.Pattern) == 0 {
		return 0, false
	}
	if r.Octave == hyp && r.Contains(str, fret) {
		return q.Pattern, true
	}
	down := fret <= r.MinFret

	p := q.Pattern
	for i := 0; i < NumPatterns; i++ {
		if down {
			p--
			if p < 1 {
				p = NumPatterns
			}
		} else {
			p++
			if p > NumPatterns {
				p = 1
			}
		}
		q.Pattern = p
		r = compute(e.repo, e.tuning, q)
		if len(r.Pattern) == 0 || r.Octave != hyp {
			continue
		}
		if r.Contains(str, fret) {
			return p, true
		}
	}
	return 0, false
}
