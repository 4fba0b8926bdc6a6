package cmd

import (
	"testing"
	"time"

	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/rlackeyseattle/vynl-pro/scroll"
	"github.com/rlackeyseattle/vynl-pro/stage"
	"github.com/stretchr/testify/assert"
)

func newStage() *stage.Session {
	sc := scroll.New(clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	sc.SetGeometry(2000, 500)
	s := stage.New(sc)
	s.LoadSetlist(model.Setlist{Id: "l1", Songs: []model.Song{
		{Id: "a", Name: "Alpha", Key: "C", Lyrics: "[C]one"},
		{Id: "b", Name: "Beta", Key: "G", Lyrics: "[G]two"},
	}})
	return s
}

func TestApplyCommand(t *testing.T) {
	s := newStage()
	assert := assert.New(t)

	assert.True(applyCommand(s, "+"))
	assert.True(applyCommand(s, "+"))
	assert.Equal(2, s.Snapshot().Transpose)
	assert.Equal("D", s.DisplayedKey())

	assert.True(applyCommand(s, "capo-"))
	assert.Equal(0, s.Snapshot().Capo)
	assert.True(applyCommand(s, "capo+"))
	assert.Equal(1, s.Snapshot().Capo)

	assert.True(applyCommand(s, "nash"))
	assert.True(s.Snapshot().NashvilleMode)
	assert.True(applyCommand(s, "flats"))
	assert.True(s.Snapshot().UseFlats)

	assert.True(applyCommand(s, "s"))
	assert.True(s.Scroll.Scrolling())
	assert.True(applyCommand(s, "s"))
	assert.False(s.Scroll.Scrolling())

	assert.True(applyCommand(s, "n"))
	assert.Equal("b", s.Snapshot().SongId)
	assert.Equal(0, s.Snapshot().Transpose)
	assert.True(applyCommand(s, "n"))
	assert.Equal("b", s.Snapshot().SongId)
	assert.True(applyCommand(s, "p"))
	assert.Equal("a", s.Snapshot().SongId)

	assert.False(applyCommand(s, "bogus"))
}

func TestLayoutSizesScroll(t *testing.T) {
	s := newStage()
	hostFlags.lineHeight = 100
	hostFlags.viewHeight = 50
	layout(s)

	s.Scroll.ScrollTo(1000)
	assert.Equal(t, 150, s.Scroll.Position())
}
