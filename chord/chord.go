package chord

import (
	"strings"

	"github.com/rlackeyseattle/vynl-pro/util"
)

// Chord is a root plus a quality suffix kept verbatim ("m7", "sus4", "°").
// Bass is set for slash chords.
type Chord struct {
	Root    Note
	Quality string
	Bass    *Chord
}

// ParseChord splits a token into its root note and quality. Slash chords
// are not handled here, see Parse.
func ParseChord(token string) (Chord, bool) {
	if len(token) == 0 {
		return Chord{}, false
	}
	if len(token) >= 2 {
		if n, ok := NoteIndex(token[:2]); ok {
			return Chord{Root: n, Quality: token[2:]}, true
		}
	}
	n, ok := NoteIndex(token[:1])
	if !ok {
		return Chord{}, false
	}
	return Chord{Root: n, Quality: token[1:]}, true
}

// Parse is ParseChord with slash chord support. It fails if either side
// of the slash fails to parse.
func Parse(token string) (Chord, bool) {
	upper, lower, isSlash := splitSlash(token)
	c, ok := ParseChord(upper)
	if !ok {
		return Chord{}, false
	}
	if isSlash {
		bass, ok := Parse(lower)
		if !ok {
			return Chord{}, false
		}
		c.Bass = &bass
	}
	return c, true
}

func (c Chord) Transpose(semitones int) Chord {
	res := Chord{Root: c.Root.Transpose(semitones), Quality: c.Quality}
	if c.Bass != nil {
		bass := c.Bass.Transpose(semitones)
		res.Bass = &bass
	}
	return res
}

func (c Chord) Format(useFlats bool) string {
	s := c.Root.Spell(useFlats) + c.Quality
	if c.Bass != nil {
		s += "/" + c.Bass.Format(useFlats)
	}
	return s
}

// Transpose shifts every note of a chord token by semitones. The quality
// is never touched and either side of a slash chord that does not parse is
// left as written. A shift that is a multiple of 12 returns the token as is.
func Transpose(token string, semitones int, useFlats bool) string {
	if util.Mod(semitones, 12) == 0 {
		return token
	}
	if upper, lower, isSlash := splitSlash(token); isSlash {
		return Transpose(upper, semitones, useFlats) + "/" + Transpose(lower, semitones, useFlats)
	}
	c, ok := ParseChord(token)
	if !ok {
		return token
	}
	return c.Root.Transpose(semitones).Spell(useFlats) + c.Quality
}

// a leading '/' is not a slash chord
func splitSlash(token string) (string, string, bool) {
	i := strings.Index(token, "/")
	if i <= 0 {
		return token, "", false
	}
	return token[:i], token[i+1:], true
}
