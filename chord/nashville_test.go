package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNashville(t *testing.T) {
	cases := []struct {
		chord string
		key   string
		want  string
	}{
		{"G", "C", "5"},
		{"Am", "C", "6m"},
		{"Am7", "C", "6m7"},
		{"Cmaj7", "C", "1maj7"},
		{"Bdim", "C", "7°"},
		{"B°7", "C", "7°"},
		{"Eaug", "C", "3+"},
		{"E+", "C", "3+"},
		{"Bb", "C", "b7"},
		{"Ebm", "C", "b3m"},
		{"F#", "Gb", "1"},
		{"Gsus4", "C", "5sus4"},
		{"C/E", "C", "1/3"},
		{"D", "Am", "4"},
	}
	for _, c := range cases {
		t.Run(c.chord+" in "+c.key, func(t *testing.T) {
			assert.Equal(t, c.want, ToNashville(c.chord, c.key))
		})
	}
}

func TestToNashvilleUnresolvable(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("N.C.", ToNashville("N.C.", "C"))
	assert.Equal("G", ToNashville("G", ""))
	assert.Equal("G", ToNashville("G", "?"))
}

func TestEffectiveKey(t *testing.T) {
	assert := assert.New(t)

	k, ok := EffectiveKey("C", 2, false)
	assert.True(ok)
	assert.Equal("D", k)

	k, ok = EffectiveKey("Am", -1, true)
	assert.True(ok)
	assert.Equal("Ab", k)

	_, ok = EffectiveKey("", 2, false)
	assert.False(ok)
}

func TestDisplayKey(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("?", DisplayKey("", 3, false))
	assert.Equal("Db", DisplayKey("Db", 0, false))
	assert.Equal("Bm", DisplayKey("Am", 2, false))
	assert.Equal("Ebm", DisplayKey("Dm", 1, true))
}
