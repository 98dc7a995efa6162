package theory

// ResolveSpelling chooses the diatonic letter that spells a pitch class most
// simply in a key. The candidate letter comes from walking a scale; when the
// table marks it as needing an accidental foreign to the key signature, the
// neighboring letters are probed:
//
//  1. the candidate already matches the key's standing alteration: keep it;
//  2. the letter above matches its standing alteration: move up;
//  3. the candidate would need a double accidental and the letter above takes
//     a single accidental on an otherwise unaltered letter: move up anyway;
//  4. the same two checks on the letter below;
//  5. otherwise keep the candidate with whatever the table prescribes
//     (a double accidental is a legitimate, if rare, outcome).
func ResolveSpelling(degree DiatonicDegree, pitch PitchClass, t *KeyTable) (DiatonicDegree, Accidental) {
	d := degree.Add(0)
	p := pitch.Add(0)

	if t.Spellable[d][p] && t.Spelling[d][p] == t.Signature[d] {
		return d, t.Spelling[d][p]
	}

	double := !t.Spellable[d][p] ||
		t.Spelling[d][p] == DoubleFlat || t.Spelling[d][p] == DoubleSharp

	for _, cand := range [2]DiatonicDegree{d.Add(1), d.Add(-1)} {
		if !t.Spellable[cand][p] {
			continue
		}
		acc := t.Spelling[cand][p]
		if acc == t.Signature[cand] {
			return cand, acc
		}
		if double && (acc == Sharp || acc == Flat) && t.Signature[cand] == Natural {
			return cand, acc
		}
	}

	if t.Spellable[d][p] {
		return d, t.Spelling[d][p]
	}

	// The candidate letter is more than two semitones away. Fall back to the
	// letter at or below the pitch, which always spells as natural or sharp.
	fb := LetterBelow(p)
	return fb, t.Spelling[fb][p]
}

// SpellInKey spells an arbitrary pitch class in a key with no scale context,
// starting from the letter at or below the pitch.
func SpellInKey(pitch PitchClass, t *KeyTable) (DiatonicDegree, Accidental) {
	return ResolveSpelling(LetterBelow(pitch), pitch, t)
}
