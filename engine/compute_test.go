package engine

import (
	"reflect"
	"testing"

	"fretwork/fretboard"
	"fretwork/theory"
)

func newTestEngine() *Engine {
	return New(theory.NewRepository(), fretboard.Standard())
}

func TestCMajorPatternOne(t *testing.T) {
	eng := newTestEngine()
	res := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: 1})

	if len(res.Pattern) == 0 {
		t.Fatal("empty pattern")
	}
	first := res.Pattern[0]
	if first.String != 0 || first.Fret != 8 {
		t.Errorf("first position = string %d fret %d, want string 0 fret 8",
			first.String, first.Fret)
	}
	if first.Quality != theory.Unison || first.Accidental != theory.Natural {
		t.Errorf("first position quality %v accidental %v, want unison natural",
			first.Quality, first.Accidental)
	}
	if res.MinFret != 7 || res.MaxFret != 10 {
		t.Errorf("box frets %d-%d, want 7-10", res.MinFret, res.MaxFret)
	}
	if res.Octave {
		t.Error("octave flag set on an unrequested low box")
	}

	// B on the D string, one of the box's interior tones
	if !res.Contains(2, 9) {
		t.Error("box missing string 2 fret 9")
	}
	for _, p := range res.Pattern {
		if p.String == 2 && p.Fret == 9 {
			if p.Quality != theory.Seventh || p.Name() != "B" {
				t.Errorf("string 2 fret 9 = %s quality %v, want B seventh",
					p.Name(), p.Quality)
			}
		}
	}
}

func TestPatternStartFrets(t *testing.T) {
	// the five canonical C major boxes start where the CAGED system puts them
	want := map[int]int{1: 8, 2: 10, 3: 0, 4: 3, 5: 5}
	eng := newTestEngine()
	for pattern, fret := range want {
		res := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: pattern})
		if len(res.Pattern) == 0 {
			t.Fatalf("pattern %d: empty result", pattern)
		}
		first := res.Pattern[0]
		if first.String != 0 || first.Fret != fret {
			t.Errorf("pattern %d starts at string %d fret %d, want string 0 fret %d",
				pattern, first.String, first.Fret, fret)
		}
	}
}

// sweep runs fn over every root, catalog scale, pattern, and handshape.
func sweep(t *testing.T, fn func(t *testing.T, q Query, res *Result)) {
	t.Helper()
	repo := theory.NewRepository()
	eng := New(repo, fretboard.Standard())
	for _, scale := range repo.GetNames() {
		for root := theory.PitchClass(0); root < 12; root++ {
			for pattern := 1; pattern <= NumPatterns; pattern++ {
				for _, extended := range []bool{false, true} {
					q := Query{Root: root, Scale: scale, Pattern: pattern, Extended: extended}
					fn(t, q, eng.Compute(q))
				}
			}
		}
	}
}

func TestPositionsSoundTheScale(t *testing.T) {
	repo := theory.NewRepository()
	tun := fretboard.Standard()
	sweep(t, func(t *testing.T, q Query, res *Result) {
		intervals, _ := repo.GetScale(q.Scale, 0)
		inScale := make(map[theory.PitchClass]bool)
		for _, off := range theory.Offsets(intervals) {
			inScale[q.Root.Add(off)] = true
		}
		for _, p := range append(res.Pattern, res.Others...) {
			if got := tun.PitchAt(p.String, p.Fret); got != p.Pitch {
				t.Fatalf("%s pattern %d: string %d fret %d sounds %d, annotated %d",
					q.Scale, q.Pattern, p.String, p.Fret, got, p.Pitch)
			}
			if !inScale[p.Pitch] {
				t.Fatalf("%s root %d: pitch %d is not a scale tone",
					q.Scale, q.Root, p.Pitch)
			}
			if got := p.Letter.Natural().Add(int(p.Accidental)); got != p.Pitch {
				t.Fatalf("%s root %d: spelling %s sounds %d, want %d",
					q.Scale, q.Root, p.Name(), got, p.Pitch)
			}
		}
	})
}

func TestBoxStaysPlayable(t *testing.T) {
	sweep(t, func(t *testing.T, q Query, res *Result) {
		if len(res.Pattern) == 0 {
			return
		}
		limit := condensedHardSpan
		if q.Extended {
			limit = extendedHardSpan
		}
		if span := res.MaxFret - res.MinFret; span > limit {
			t.Fatalf("%s root %d pattern %d extended=%v: span %d exceeds %d",
				q.Scale, q.Root, q.Pattern, q.Extended, span, limit)
		}
		if res.MinFret < 0 || res.MaxFret > fretboard.NeckLength {
			t.Fatalf("%s root %d pattern %d: box %d-%d off the neck",
				q.Scale, q.Root, q.Pattern, res.MinFret, res.MaxFret)
		}
	})
}

func TestOctaveFlagMatchesBox(t *testing.T) {
	sweep(t, func(t *testing.T, q Query, res *Result) {
		if len(res.Pattern) == 0 {
			return
		}
		if res.Octave && res.MinFret < 12 {
			t.Fatalf("%s root %d pattern %d: octave set but box starts at %d",
				q.Scale, q.Root, q.Pattern, res.MinFret)
		}
		if !res.Octave && res.MinFret >= 12 {
			t.Fatalf("%s root %d pattern %d: octave clear but box starts at %d",
				q.Scale, q.Root, q.Pattern, res.MinFret)
		}
	})
}

func TestComputeDeterministic(t *testing.T) {
	eng := newTestEngine()
	q := Query{Root: 7, Scale: "Blues", Pattern: 4, Extended: true}
	a := eng.Compute(q)
	b := eng.Compute(q)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical queries produced different results")
	}
}

func TestOctavePreference(t *testing.T) {
	eng := newTestEngine()

	t.Run("honored when it fits", func(t *testing.T) {
		res := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: 3, Octave: true})
		if !res.Octave || res.MinFret < 12 {
			t.Errorf("octave %v box %d-%d, want shifted box above fret 12",
				res.Octave, res.MinFret, res.MaxFret)
		}
		if res.MaxFret > fretboard.NeckLength {
			t.Errorf("box runs to fret %d, past the neck", res.MaxFret)
		}
	})

	t.Run("refused when it runs off the neck", func(t *testing.T) {
		res := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: 1, Octave: true})
		if res.Octave {
			t.Error("octave flag kept although the shifted box would not fit")
		}
		if res.MinFret != 7 {
			t.Errorf("box starts at %d, want the unshifted 7", res.MinFret)
		}
	})
}

func TestUnknownScale(t *testing.T) {
	eng := newTestEngine()
	res := eng.Compute(Query{Root: 0, Scale: "Nonexistent", Pattern: 1, Octave: true})
	if len(res.Pattern) != 0 || len(res.Others) != 0 {
		t.Error("unknown scale produced positions")
	}
	if !res.Octave {
		t.Error("empty result dropped the requested octave flag")
	}
}

func TestCharacterTones(t *testing.T) {
	eng := newTestEngine()

	wantChar := func(t *testing.T, res *Result, quality theory.ToneQuality, want theory.CharacterTone) {
		t.Helper()
		for _, p := range res.Pattern {
			if p.Quality == quality {
				if p.Character != want {
					t.Errorf("quality %v: character %v, want %v", quality, p.Character, want)
				}
				return
			}
		}
		t.Errorf("quality %v not present in box", quality)
	}

	t.Run("major", func(t *testing.T) {
		res := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: 1})
		wantChar(t, res, theory.Unison, theory.CharacterNone)
		wantChar(t, res, theory.Third, theory.CharacterSecondary)
		wantChar(t, res, theory.Fifth, theory.CharacterNone)
		wantChar(t, res, theory.Seventh, theory.CharacterSecondary)
	})

	t.Run("dorian major sixth", func(t *testing.T) {
		res := eng.Compute(Query{Root: 0, Scale: "Major", Mode: 1, Pattern: 1})
		wantChar(t, res, theory.Sixth, theory.CharacterPrimary)
		wantChar(t, res, theory.Third, theory.CharacterSecondary)
	})

	t.Run("harmonic minor raised seventh", func(t *testing.T) {
		res := eng.Compute(Query{Root: 0, Scale: "Harmonic Minor", Pattern: 1})
		wantChar(t, res, theory.Seventh, theory.CharacterPrimary)
		wantChar(t, res, theory.Sixth, theory.CharacterNone)
	})
}

func TestSpellingAvoidsDoubles(t *testing.T) {
	// major-family and gapped scales never need double accidentals in any key
	eng := newTestEngine()
	for _, scale := range []string{"Major", "Major Pentatonic", "Minor Pentatonic", "Blues", "Melodic Minor"} {
		for root := theory.PitchClass(0); root < 12; root++ {
			res := eng.Compute(Query{Root: root, Scale: scale, Pattern: 1})
			for _, p := range res.Pattern {
				if p.Accidental == theory.DoubleFlat || p.Accidental == theory.DoubleSharp {
					t.Fatalf("%s root %d: %s spelled with a double accidental",
						scale, root, p.Name())
				}
			}
		}
	}

	// Db harmonic minor is the one catalog scale that genuinely requires one:
	// its sixth degree is B double flat, no neighboring letter spells pitch 9
	// the way the key of Db writes it
	res := eng.Compute(Query{Root: 1, Scale: "Harmonic Minor", Pattern: 1})
	found := false
	for _, p := range res.Pattern {
		if p.Accidental == theory.DoubleFlat {
			if p.Name() != "Bbb" {
				t.Errorf("double flat landed on %s, want Bbb", p.Name())
			}
			found = true
		}
	}
	if !found {
		t.Error("Db harmonic minor lost its Bbb")
	}
}

func TestNormalizePattern(t *testing.T) {
	cases := []struct{ in, want int }{
		{1, 1}, {5, 5}, {6, 1}, {10, 5}, {0, 5}, {-4, 1}, {-5, 5},
	}
	for _, c := range cases {
		if got := NormalizePattern(c.in); got != c.want {
			t.Errorf("NormalizePattern(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPatternIndexWraps(t *testing.T) {
	eng := newTestEngine()
	a := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: 1})
	b := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: 6})
	c := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: -4})
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, c) {
		t.Error("pattern indices 1, 6 and -4 should name the same box")
	}
}

func TestBoxNotes(t *testing.T) {
	eng := newTestEngine()
	res := eng.Compute(Query{Root: 0, Scale: "Major", Pattern: 1})
	notes := eng.BoxNotes(res)
	if len(notes) != len(res.Pattern) {
		t.Fatalf("got %d notes for %d positions", len(notes), len(res.Pattern))
	}
	if notes[0] != 48 { // C3: low E string, fret 8
		t.Errorf("first note %d, want 48", notes[0])
	}
	for i := 1; i < len(notes); i++ {
		if notes[i] <= notes[i-1] {
			t.Errorf("notes not ascending at %d: %d after %d", i, notes[i], notes[i-1])
		}
	}
}
