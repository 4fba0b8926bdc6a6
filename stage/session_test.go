package stage

import (
	"testing"
	"time"

	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/rlackeyseattle/vynl-pro/scroll"
	"github.com/stretchr/testify/assert"
)

var (
	heyYou  = model.Song{Id: "s1", Name: "Hey You", Key: "C", Lyrics: "[C]Hey [Am]you [F]there [G]now"}
	minor   = model.Song{Id: "s2", Name: "Minor Thing", Key: "Am", Lyrics: "[Am]one [E7]two"}
	noKey   = model.Song{Id: "s3", Name: "No Key", Lyrics: "[G]three"}
	setlist = model.Setlist{Id: "l1", Name: "Friday", Songs: []model.Song{heyYou, minor, noKey}}
)

func newSession() (*Session, *clock.Manual) {
	m := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sc := scroll.New(m)
	sc.SetGeometry(10000, 500)
	return New(sc), m
}

func TestSelectSongResets(t *testing.T) {
	s, m := newSession()
	s.SelectSong(heyYou)
	s.SetTranspose(3)
	s.SetCapo(2)
	s.Scroll.Start()
	m.Advance(time.Second)

	s.SelectSong(minor)

	assert := assert.New(t)
	assert.Equal(0, s.Shift())
	assert.Equal(0, s.Scroll.Position())
	assert.False(s.Scroll.Scrolling())
	assert.Equal(0, m.Active())
}

func TestEndToEndScenario(t *testing.T) {
	s, _ := newSession()
	s.SelectSong(heyYou)
	s.SetTranspose(2)

	assert := assert.New(t)
	assert.Equal([]string{"D", "Bm", "G", "A"}, chart.Chords(s.Chart()))

	s.SetNashville(true)
	assert.Equal([]string{"1", "6m", "4", "5"}, chart.Chords(s.Chart()))
}

func TestCapoLowersShapes(t *testing.T) {
	s, _ := newSession()
	s.SelectSong(heyYou)
	s.SetCapo(2)

	assert := assert.New(t)
	assert.Equal(-2, s.Shift())
	assert.Equal([]string{"A#", "Gm", "D#", "F"}, chart.Chords(s.Chart()))
	assert.Equal("A#", s.DisplayedKey())

	s.SetCapo(-4)
	assert.Equal(0, s.Shift())
}

func TestDisplayedKey(t *testing.T) {
	s, _ := newSession()
	assert.Equal(t, "?", s.DisplayedKey())

	s.SelectSong(minor)
	s.SetTranspose(2)
	assert.Equal(t, "Bm", s.DisplayedKey())

	s.SelectSong(noKey)
	assert.Equal(t, "?", s.DisplayedKey())
	s.SetNashville(true)
	s.SetTranspose(2)
	assert.Equal(t, []string{"A"}, chart.Chords(s.Chart()))
}

func TestSetlistNavigation(t *testing.T) {
	s, _ := newSession()
	assert := assert.New(t)
	assert.False(s.Next())

	s.LoadSetlist(setlist)
	song, _ := s.Song()
	assert.Equal("s1", song.Id)
	assert.False(s.Prev())

	assert.True(s.Next())
	assert.True(s.Next())
	song, _ = s.Song()
	assert.Equal("s3", song.Id)
	assert.False(s.Next())

	assert.True(s.Prev())
	song, _ = s.Song()
	assert.Equal("s2", song.Id)
}

func TestSnapshot(t *testing.T) {
	s, _ := newSession()
	s.SelectSong(minor)
	s.SetTranspose(-1)
	s.SetCapo(1)
	s.SetUseFlats(true)
	s.SetAlignment(model.AlignCenter)
	s.SetAlignment("diagonal")
	s.Scroll.ScrollTo(2375)
	s.Scroll.SetSpeed(45)

	assert.Equal(t, model.PlaybackState{
		SongId:      "s2",
		SongKey:     "Am",
		Transpose:   -1,
		Capo:        1,
		UseFlats:    true,
		ScrollPct:   0.25,
		ScrollSpeed: 45,
		Alignment:   model.AlignCenter,
	}, s.Snapshot())
}

func TestFontSizeClamp(t *testing.T) {
	s, _ := newSession()
	assert.Equal(t, 1.6, s.FontSize())
	s.SetFontSize(10)
	assert.Equal(t, 4.0, s.FontSize())
}
