package chord

import "github.com/rlackeyseattle/vynl-pro/util"

// Note is a pitch class, C=0 .. B=11. Spelling is chosen at render time.
type Note int

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var naturals = map[byte]Note{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// NoteIndex resolves a letter A-G with an optional single '#' or 'b'.
// E# and Cb resolve (to F and B) but are spelled back canonically.
func NoteIndex(token string) (Note, bool) {
	if len(token) == 0 || len(token) > 2 {
		return 0, false
	}
	n, ok := naturals[token[0]]
	if !ok {
		return 0, false
	}
	if len(token) == 2 {
		switch token[1] {
		case '#':
			n++
		case 'b':
			n--
		default:
			return 0, false
		}
	}
	return util.Mod(n, 12), true
}

func (n Note) Spell(useFlats bool) string {
	i := util.Mod(n, 12)
	if useFlats {
		return flatNames[i]
	}
	return sharpNames[i]
}

func (n Note) Transpose(semitones int) Note {
	return util.Mod(n+Note(semitones), 12)
}

// TransposeNote shifts a single note token. Unknown tokens pass through.
func TransposeNote(note string, semitones int, useFlats bool) string {
	n, ok := NoteIndex(note)
	if !ok {
		return note
	}
	return n.Transpose(semitones).Spell(useFlats)
}
