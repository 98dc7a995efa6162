package theory

// KeySig is a key signature counted in sharps (positive) or flats (negative),
// -7 (Cb major) .. +7 (C# major).
type KeySig int

// sharpOrder lists the letters sharpened by successive sharp keys (F C G D A E B).
var sharpOrder = [7]DiatonicDegree{3, 0, 4, 1, 5, 2, 6}

// flatOrder lists the letters flattened by successive flat keys (B E A D G C F).
var flatOrder = [7]DiatonicDegree{6, 2, 5, 1, 4, 0, 3}

// Alteration returns the key's standing accidental for a letter: the
// accidental the key signature itself applies to that letter.
func (k KeySig) Alteration(d DiatonicDegree) Accidental {
	switch {
	case k > 0:
		for i := 0; i < int(k) && i < 7; i++ {
			if sharpOrder[i] == d {
				return Sharp
			}
		}
	case k < 0:
		for i := 0; i < int(-k) && i < 7; i++ {
			if flatOrder[i] == d {
				return Flat
			}
		}
	}
	return Natural
}

// Tonic returns the letter of the key's tonic. Walking the circle of fifths
// from C, each sharpward step moves the tonic up a fifth (four letters).
func (k KeySig) Tonic() DiatonicDegree {
	return DiatonicDegree(((4*int(k))%7 + 7) % 7)
}

// KeyTable is the per-key alteration table: for each (letter, pitch class)
// pair, the accidental required to spell that pitch class on that letter,
// plus the key's standing alteration per letter. Entries more than two
// semitones from the letter's natural pitch are unspellable.
type KeyTable struct {
	Key       KeySig
	Spelling  [7][12]Accidental
	Spellable [7][12]bool
	Signature [7]Accidental
}

var keyTables = buildKeyTables()

// TableForKey returns the fixed 7x12 alteration table for a key.
func TableForKey(k KeySig) *KeyTable {
	if k < -7 {
		k = -7
	}
	if k > 7 {
		k = 7
	}
	return keyTables[k+7]
}

func buildKeyTables() [15]*KeyTable {
	var tables [15]*KeyTable
	for i := range tables {
		k := KeySig(i - 7)
		t := &KeyTable{Key: k}
		for d := DiatonicDegree(0); d < 7; d++ {
			t.Signature[d] = k.Alteration(d)
			for p := PitchClass(0); p < 12; p++ {
				diff := d.Natural().Interval(p) // 0..11
				switch diff {
				case 0, 1, 2:
					t.Spelling[d][p] = Accidental(diff)
					t.Spellable[d][p] = true
				case 10, 11:
					t.Spelling[d][p] = Accidental(diff - 12)
					t.Spellable[d][p] = true
				}
			}
		}
		tables[i] = t
	}
	return tables
}

// keyForRoot maps a root pitch class to the conventional major-key signature
// of that tonic. Enharmonic roots take the customary side of the circle:
// F# over Gb, but Db, Ab, Eb, Bb over their sharp spellings.
var keyForRoot = [12]KeySig{
	0,  // C
	-5, // Db
	2,  // D
	-3, // Eb
	4,  // E
	-1, // F
	6,  // F#
	1,  // G
	-4, // Ab
	3,  // A
	-2, // Bb
	5,  // B
}

// KeyForRoot returns the key signature used as spelling context for a root.
func KeyForRoot(root PitchClass) KeySig {
	return keyForRoot[((int(root)%12)+12)%12]
}
