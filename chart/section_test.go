package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionType(t *testing.T) {
	cases := [][2]string{
		{"[Verse 2]", "verse"},
		{"CHORUS", "chorus"},
		{"Pre-Chorus:", "pre-chorus"},
		{"[Outro]", "outro"},
		{"  [Solo]  ", "solo"},
		{"Interlude", "interlude"},
		{"[Hook]", "hook"},
		{"[Introducing]", "intro"},
	}
	for _, c := range cases {
		got, ok := SectionType(c[0])
		assert.True(t, ok, c[0])
		assert.Equal(t, c[1], got, c[0])
	}

	_, ok := SectionType("[Breakdown]")
	assert.False(t, ok)
}

func TestSectionColor(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("#ffbf47", SectionColor("chorus"))
	assert.Equal(SectionColor("chorus"), SectionColor("hook"))
	assert.Equal("", SectionColor("breakdown"))
}
