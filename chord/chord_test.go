package chord

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var validChords = []string{
	"C", "C#", "Db", "Dm7", "Eb", "E7", "Fmaj7", "F#m", "Gsus4", "Ab", "A°",
	"Bb+", "Bm7b5", "C/E", "D/F#", "Ebmaj7/Bb", "Gadd9",
}

func TestRoundTripSpelling(t *testing.T) {
	assert := assert.New(t)
	for i := 0; i < 12; i++ {
		sharp, ok := NoteIndex(Note(i).Spell(false))
		assert.True(ok)
		assert.Equal(Note(i), sharp)

		flat, ok := NoteIndex(Note(i).Spell(true))
		assert.True(ok)
		assert.Equal(Note(i), flat)
	}
}

func TestNoteIndexSharpAndFlatAgree(t *testing.T) {
	assert := assert.New(t)
	pairs := [][2]string{{"C#", "Db"}, {"D#", "Eb"}, {"F#", "Gb"}, {"G#", "Ab"}, {"A#", "Bb"}}
	for _, p := range pairs {
		a, _ := NoteIndex(p[0])
		b, _ := NoteIndex(p[1])
		assert.Equal(a, b, p[0])
	}
}

func TestNoteIndexRejectsNonNotes(t *testing.T) {
	for _, token := range []string{"", "N.C.", "H", "c", "C##", "Cx", "%"} {
		_, ok := NoteIndex(token)
		assert.False(t, ok, token)
	}
}

func TestUncommonSpellingsResolveCanonically(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("F", TransposeNote("E#", 12, false))
	assert.Equal("C", TransposeNote("Cb", 1, false))
}

func TestParseChord(t *testing.T) {
	assert := assert.New(t)

	c, ok := ParseChord("Bbm7")
	assert.True(ok)
	assert.Equal(Chord{Root: 10, Quality: "m7"}, c)

	c, ok = ParseChord("Cmaj7")
	assert.True(ok)
	assert.Equal(Chord{Root: 0, Quality: "maj7"}, c)

	_, ok = ParseChord("xyz")
	assert.False(ok)
}

func TestParseSlashChord(t *testing.T) {
	assert := assert.New(t)

	c, ok := Parse("Am7/G")
	assert.True(ok)
	assert.Equal(Note(9), c.Root)
	assert.Equal("m7", c.Quality)
	assert.Equal(Note(7), c.Bass.Root)
	assert.Equal("Bm7/A", c.Transpose(2).Format(false))

	_, ok = Parse("C/zz")
	assert.False(ok)
}

func TestTransposeIdentity(t *testing.T) {
	for _, c := range validChords {
		assert.Equal(t, c, Transpose(c, 0, false))
		assert.Equal(t, c, Transpose(c, 0, true))
	}
}

func TestTransposePeriodicity(t *testing.T) {
	for _, c := range validChords {
		for n := -14; n <= 14; n++ {
			name := fmt.Sprintf("%v by %v", c, n)
			t.Run(name, func(t *testing.T) {
				assert.Equal(t, Transpose(c, n, false), Transpose(c, n+12, false))
				assert.Equal(t, Transpose(c, n, true), Transpose(c, n-12, true))
			})
		}
	}
}

func TestTransposeSlashChord(t *testing.T) {
	assert.Equal(t, "D/F#", Transpose("C/E", 2, false))
	assert.Equal(t, "Db/F", Transpose("C/E", 1, true))
}

func TestTransposeKeepsQuality(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Fmaj7", Transpose("Cmaj7", 5, false))
	assert.Equal("Bm7b5", Transpose("C#m7b5", -2, false))
	assert.Equal("Eb°", Transpose("C°", 3, true))
}

func TestTransposeNegativeShift(t *testing.T) {
	assert.Equal(t, "A#", Transpose("C", -2, false))
	assert.Equal(t, "Bb", Transpose("C", -2, true))
}

func TestTransposePassesThroughGarbage(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("N.C.", Transpose("N.C.", 3, false))
	assert.Equal("/E", Transpose("/E", 3, false))
	assert.Equal("D/x", Transpose("C/x", 2, false))
	assert.Equal("", Transpose("", 2, false))
}
