package theory

import "testing"

func TestKeySigAlteration(t *testing.T) {
	cases := []struct {
		name   string
		key    KeySig
		letter DiatonicDegree
		want   Accidental
	}{
		{"G major sharpens F", 1, 3, Sharp},
		{"G major leaves C alone", 1, 0, Natural},
		{"Eb major flattens B", -3, 6, Flat},
		{"Eb major flattens A", -3, 5, Flat},
		{"Eb major leaves D alone", -3, 1, Natural},
		{"C# major sharpens B", 7, 6, Sharp},
		{"Cb major flattens F", -7, 3, Flat},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.key.Alteration(c.letter); got != c.want {
				t.Errorf("KeySig(%d).Alteration(%s) = %v, want %v",
					c.key, c.letter, got, c.want)
			}
		})
	}
}

func TestKeySigTonic(t *testing.T) {
	cases := []struct {
		key  KeySig
		want DiatonicDegree
	}{
		{0, 0},  // C
		{1, 4},  // G
		{2, 1},  // D
		{3, 5},  // A
		{-1, 3}, // F
		{-2, 6}, // Bb
		{-5, 1}, // Db
		{6, 3},  // F#
	}
	for _, c := range cases {
		if got := c.key.Tonic(); got != c.want {
			t.Errorf("KeySig(%d).Tonic() = %s, want %s", c.key, got, c.want)
		}
	}
}

func TestKeyForRoot(t *testing.T) {
	cases := []struct {
		root PitchClass
		want KeySig
	}{
		{0, 0},   // C
		{1, -5},  // Db over C#
		{6, 6},   // F# over Gb
		{10, -2}, // Bb over A#
	}
	for _, c := range cases {
		if got := KeyForRoot(c.root); got != c.want {
			t.Errorf("KeyForRoot(%d) = %d, want %d", c.root, got, c.want)
		}
	}
}

func TestResolveSpelling(t *testing.T) {
	cases := []struct {
		name       string
		key        KeySig
		degree     DiatonicDegree
		pitch      PitchClass
		wantLetter DiatonicDegree
		wantAcc    Accidental
	}{
		// a foreign single accidental on the scale's own letter stays put
		{"Eb as E flat in C", 0, 2, 3, 2, Flat},
		// signature match on a neighbor wins over a foreign accidental
		{"Bb spelled on B in F major", -1, 5, 10, 6, Flat},
		// standing alteration of the candidate itself
		{"F# kept in G major", 1, 3, 6, 3, Sharp},
		// a double accidental yields to a clean neighbor
		{"Dbb becomes C in C major", 0, 1, 0, 0, Natural},
		// no clean neighbor, the double accidental stands
		{"Fx kept in C# major", 7, 3, 7, 3, DoubleSharp},
		// candidate letter too far away, fall back to the letter below
		{"F# from a C candidate", 0, 0, 6, 3, Sharp},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			letter, acc := ResolveSpelling(c.degree, c.pitch, TableForKey(c.key))
			if letter != c.wantLetter || acc != c.wantAcc {
				t.Errorf("got %s, want %s",
					NoteName(letter, acc), NoteName(c.wantLetter, c.wantAcc))
			}
		})
	}
}

func TestSpellInKey(t *testing.T) {
	cases := []struct {
		name  string
		key   KeySig
		pitch PitchClass
		want  string
	}{
		{"Bb in F major", -1, 10, "Bb"},
		{"F# in G major", 1, 6, "F#"},
		{"Db in Db major", -5, 1, "Db"},
		{"C# in A major", 3, 1, "C#"},
		{"plain E in C major", 0, 4, "E"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, a := SpellInKey(c.pitch, TableForKey(c.key))
			if got := NoteName(d, a); got != c.want {
				t.Errorf("SpellInKey(%d, key %d) = %s, want %s",
					c.pitch, c.key, got, c.want)
			}
		})
	}
}

func TestNoAvoidableDoubles(t *testing.T) {
	// a double accidental may only survive when neither adjacent letter can
	// spell the pitch with that letter's own standing alteration
	for k := KeySig(-7); k <= 7; k++ {
		tab := TableForKey(k)
		for d := DiatonicDegree(0); d < 7; d++ {
			for p := PitchClass(0); p < 12; p++ {
				letter, acc := ResolveSpelling(d, p, tab)
				if acc != DoubleFlat && acc != DoubleSharp {
					continue
				}
				for _, adj := range [2]DiatonicDegree{letter.Add(1), letter.Add(-1)} {
					if tab.Spellable[adj][p] && tab.Spelling[adj][p] == tab.Signature[adj] {
						t.Fatalf("key %d: kept %s although %s fits the signature",
							k, NoteName(letter, acc), NoteName(adj, tab.Spelling[adj][p]))
					}
				}
			}
		}
	}
}

func TestSpellingMatchesPitch(t *testing.T) {
	// whatever letter the resolver picks, letter natural + accidental must
	// sound the requested pitch class
	for k := KeySig(-7); k <= 7; k++ {
		tab := TableForKey(k)
		for d := DiatonicDegree(0); d < 7; d++ {
			for p := PitchClass(0); p < 12; p++ {
				letter, acc := ResolveSpelling(d, p, tab)
				if got := letter.Natural().Add(int(acc)); got != p {
					t.Fatalf("key %d degree %s pitch %d: spelled %s sounds %d",
						k, d, p, NoteName(letter, acc), got)
				}
			}
		}
	}
}
