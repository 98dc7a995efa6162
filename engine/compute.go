package engine

import (
	"fretwork/fretboard"
	"fretwork/theory"
)

// NumPatterns is the number of canonical one-hand-position fingerings that
// cover a scale across all six strings.
const NumPatterns = 5

// Handshape limits. The 5/7 hard spans and the one-jump-per-string budget are
// empirically tuned for a 6-string neck; they have no derivation that would
// let them generalize to other instruments without re-validation.
const (
	condensedSpan     = 4 // soft span while walking, condensed handshape
	extendedSpan      = 6 // soft span while walking, extended handshape
	condensedHardSpan = 5 // post-walk hard limit, condensed
	extendedHardSpan  = 7 // post-walk hard limit, extended
	stringWindow      = 4 // reach on a single string (5 fret cells)
	condensedMaxStep  = 3 // widest interval a condensed shape stretches over
)

// Compute builds the fingering for a query and seeds the search cursor so
// that a following FindPatternForPosition continues from this pattern.
// Identical queries always produce identical results.
func (e *Engine) Compute(q Query) *Result {
	r := compute(e.repo, e.tuning, q)
	e.lastQuery = q
	e.cursor = SearchCursor{Pattern: NormalizePattern(q.Pattern), Octave: r.Octave}
	e.last = r
	return r
}

// compute is the pure constructor: no engine state is read or written.
func compute(repo *theory.Repository, tun fretboard.Tuning, q Query) *Result {
	q.Pattern = NormalizePattern(q.Pattern)

	intervals, ok := repo.GetScale(q.Scale, q.Mode)
	if !ok || !validIntervals(intervals) {
		// Lookup failure returns an empty result, never an error: the caller
		// still has something to draw.
		return &Result{Octave: q.Octave}
	}

	degrees := degreeTable(q.Root, intervals)
	startDeg, startOff := patternStart(intervals, q.Pattern)
	startFret := tun.OpenClass(0).Interval(q.Root.Add(startOff))

	raw := walkBox(tun, intervals, startDeg, startFret, q.Extended, -1)
	minF, maxF := extent(raw)

	hard := condensedHardSpan
	if q.Extended {
		hard = extendedHardSpan
	}
	if maxF-minF > hard {
		// Pass 2: the offending max fret becomes an exclusion that forces an
		// earlier string break. At most one retry; the second attempt stands
		// even if it is still over-width.
		if second := walkBox(tun, intervals, startDeg, startFret, q.Extended, maxF); len(second) > 0 {
			raw = second
			minF, maxF = extent(raw)
		}
	}

	n := len(intervals)
	r := &Result{StartDegree: startDeg, MinFret: minF, MaxFret: maxF}
	for _, w := range raw {
		d := degrees[(startDeg+w.step)%n]
		r.Pattern = append(r.Pattern, Position{
			String:     w.str,
			Fret:       w.fret,
			Pitch:      d.pitch,
			Letter:     d.letter,
			Quality:    d.quality,
			Accidental: d.accidental,
			Character:  d.character,
		})
	}
	r.Others = otherPositions(tun, degrees)
	normalize(r, q.Octave)
	return r
}

// NormalizePattern wraps any pattern index onto the canonical 1..5 range.
func NormalizePattern(pattern int) int {
	return ((pattern-1)%NumPatterns+NumPatterns)%NumPatterns + 1
}

func validIntervals(intervals []int) bool {
	if len(intervals) == 0 {
		return false
	}
	for _, iv := range intervals {
		if iv <= 0 {
			return false
		}
	}
	return true
}

// patternStart advances through the degree sequence counting fret moves (an
// interval of two or more semitones, or a semitone immediately followed by an
// interval of three or more) until pattern-1 moves have occurred. It returns
// the starting degree index and its semitone offset from the root.
func patternStart(intervals []int, pattern int) (deg, offset int) {
	n := len(intervals)
	moves := 0
	for moves < pattern-1 {
		iv := intervals[deg%n]
		next := intervals[(deg+1)%n]
		if iv >= 2 || (iv == 1 && next >= 3) {
			moves++
		}
		offset += iv
		deg++
	}
	return deg % n, offset
}

// walked is a raw box cell: string, fret (possibly negative until the box is
// normalized), and the number of scale intervals consumed since the box start.
type walked struct {
	str  int
	fret int
	step int
}

// walkBox places consecutive scale tones string by string. A position moves
// to the next string when the string's reach is used up, the handshape
// forbids the interval or has spent its jump budget, the global span would be
// exceeded, or the fret re-enters the region excluded by a previous pass.
func walkBox(tun fretboard.Tuning, intervals []int, startDeg, startFret int, extended bool, exclude int) []walked {
	n := len(intervals)
	span := condensedSpan
	if extended {
		span = extendedSpan
	}

	fret := startFret
	step := 0
	minF, maxF := fret, fret
	var out []walked

	for s := 0; s < fretboard.NumStrings; s++ {
		out = append(out, walked{str: s, fret: fret, step: step})
		if fret < minF {
			minF = fret
		}
		if fret > maxF {
			maxF = fret
		}
		stringMin := fret
		jumps := 0

		for {
			iv := intervals[(startDeg+step)%n]
			next := fret + iv

			brk := next-stringMin > stringWindow ||
				(!extended && iv > condensedMaxStep) ||
				(!extended && iv > 1 && jumps >= 1) ||
				maxInt(next, maxF)-minInt(next, minF) > span ||
				(exclude >= 0 && next >= exclude)

			if brk {
				if s == fretboard.NumStrings-1 {
					return out
				}
				// Carry the pending interval onto the next string, rebased by
				// the semitone distance between the two strings' tunings.
				fret = next - tun.Gap(s)
				step++
				break
			}

			fret = next
			step++
			out = append(out, walked{str: s, fret: fret, step: step})
			if fret < minF {
				minF = fret
			}
			if fret > maxF {
				maxF = fret
			}
			if iv > 1 {
				jumps++
			}
		}
	}
	return out
}

func extent(raw []walked) (minF, maxF int) {
	if len(raw) == 0 {
		return 0, 0
	}
	minF, maxF = raw[0].fret, raw[0].fret
	for _, w := range raw[1:] {
		if w.fret < minF {
			minF = w.fret
		}
		if w.fret > maxF {
			maxF = w.fret
		}
	}
	return minF, maxF
}

// otherPositions enumerates every occurrence of the scale across the entire
// neck, fret 0 through 19 on each string, with the same per-degree
// annotations as the box.
func otherPositions(tun fretboard.Tuning, degrees []degreeInfo) []Position {
	byPitch := make(map[theory.PitchClass]degreeInfo, len(degrees))
	for _, d := range degrees {
		if _, seen := byPitch[d.pitch]; !seen {
			byPitch[d.pitch] = d
		}
	}

	var out []Position
	for s := 0; s < fretboard.NumStrings; s++ {
		for fret := 0; fret <= fretboard.NeckLength; fret++ {
			d, ok := byPitch[tun.PitchAt(s, fret)]
			if !ok {
				continue
			}
			out = append(out, Position{
				String:     s,
				Fret:       fret,
				Pitch:      d.pitch,
				Letter:     d.letter,
				Quality:    d.quality,
				Accidental: d.accidental,
				Character:  d.character,
			})
		}
	}
	return out
}

// normalize shifts the box into the playable range and reconciles it with
// the caller's octave preference. The returned flag always reflects where
// the box actually landed.
func normalize(r *Result, octave bool) {
	if len(r.Pattern) == 0 {
		r.Octave = octave
		return
	}
	for r.MaxFret > fretboard.NeckLength {
		shiftOctave(r, -12)
	}
	for r.MinFret < 0 {
		shiftOctave(r, 12)
	}
	switch {
	case octave && r.MinFret < 12:
		if r.MaxFret+12 <= fretboard.NeckLength {
			shiftOctave(r, 12)
		} else {
			octave = false
		}
	case !octave && r.MinFret >= 12:
		shiftOctave(r, -12)
	}
	r.Octave = octave
}

func shiftOctave(r *Result, by int) {
	for i := range r.Pattern {
		r.Pattern[i].Fret += by
	}
	r.MinFret += by
	r.MaxFret += by
}

// degreeInfo is the per-scale-degree annotation shared by the box and the
// full-neck overlay: spelled letter, accidental, quality, character tone.
type degreeInfo struct {
	pitch      theory.PitchClass
	letter     theory.DiatonicDegree
	quality    theory.ToneQuality
	accidental theory.Accidental
	character  theory.CharacterTone
}

func degreeTable(root theory.PitchClass, intervals []int) []degreeInfo {
	key := theory.KeyForRoot(root)
	tab := theory.TableForKey(key)
	rootLetter := key.Tonic()
	offs := theory.Offsets(intervals)
	chars := characterTones(offs)

	n := len(intervals)
	out := make([]degreeInfo, n)
	for i := 0; i < n; i++ {
		pitch := root.Add(offs[i])
		cand := theory.LetterBelow(pitch)
		if n == 7 {
			// Heptatonic walks assign one letter per degree.
			cand = rootLetter.Add(i)
		}
		letter, acc := theory.ResolveSpelling(cand, pitch, tab)
		quality := theory.ToneQuality(((int(letter)-int(rootLetter))%7 + 7) % 7)
		out[i] = degreeInfo{
			pitch:      pitch,
			letter:     letter,
			quality:    quality,
			accidental: acc,
			character:  chars[i],
		}
	}
	return out
}

// functionalDegree folds a semitone offset from the root onto the scale
// degree it functions as (0=root .. 6=seventh).
var functionalDegree = [12]int{0, 1, 1, 2, 2, 3, 3, 4, 5, 5, 6, 6}

// majorOffset is the natural offset of each functional degree.
var majorOffset = [7]int{0, 2, 4, 5, 7, 9, 11}

// characterTones classifies each degree of a scale. In a scale whose third is
// flatted, the natural sixth and seventh are the distinctive tones and any
// other non-natural degree is too; elsewhere every non-natural degree is
// distinctive. Thirds and sevenths not otherwise flagged are secondary.
func characterTones(offs []int) []theory.CharacterTone {
	hasFlat3, hasNat3 := false, false
	for _, o := range offs {
		switch ((o % 12) + 12) % 12 {
		case 3:
			hasFlat3 = true
		case 4:
			hasNat3 = true
		}
	}
	minor := hasFlat3 && !hasNat3

	out := make([]theory.CharacterTone, len(offs))
	for i, o := range offs {
		o12 := ((o % 12) + 12) % 12
		fd := functionalDegree[o12]
		natural := o12 == majorOffset[fd]

		c := theory.CharacterNone
		switch {
		case minor && o12 == 3:
			// the flatted third defines the scale, it is not a character tone
		case minor && (fd == 5 || fd == 6):
			if natural {
				c = theory.CharacterPrimary
			}
		case !natural:
			c = theory.CharacterPrimary
		}
		if c == theory.CharacterNone && (fd == 2 || fd == 6) {
			c = theory.CharacterSecondary
		}
		out[i] = c
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
