// Package stage holds the performer's view: which song is up, how it is
// transposed and where the chart is scrolled to.
package stage

import (
	"sync"

	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/chord"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/rlackeyseattle/vynl-pro/scroll"
	"github.com/rlackeyseattle/vynl-pro/util"
)

type Session struct {
	mu sync.Mutex

	song    *model.Song
	setlist *model.Setlist

	transpose int
	capo      int
	useFlats  bool
	nashville bool
	alignment model.Alignment
	fontSize  float64

	Scroll *scroll.Controller
}

func New(sc *scroll.Controller) *Session {
	return &Session{
		alignment: model.AlignLeft,
		fontSize:  constants.DefaultFontSize,
		Scroll:    sc,
	}
}

// SelectSong makes song current and puts transpose, capo and scroll back
// to their defaults.
func (s *Session) SelectSong(song model.Song) {
	s.mu.Lock()
	s.song = &song
	s.transpose = 0
	s.capo = 0
	s.mu.Unlock()

	s.Scroll.Reset()
}

// LoadSetlist queues a setlist and selects its first song.
func (s *Session) LoadSetlist(sl model.Setlist) {
	s.mu.Lock()
	s.setlist = &sl
	s.mu.Unlock()

	if len(sl.Songs) > 0 {
		s.SelectSong(sl.Songs[0])
	}
}

func (s *Session) Song() (model.Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.song == nil {
		return model.Song{}, false
	}
	return *s.song, true
}

func (s *Session) Setlist() (model.Setlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setlist == nil {
		return model.Setlist{}, false
	}
	return *s.setlist, true
}

// Next moves to the following song of the setlist. It does not wrap.
func (s *Session) Next() bool {
	return s.step(1)
}

// Prev moves to the previous song of the setlist. It does not wrap.
func (s *Session) Prev() bool {
	return s.step(-1)
}

func (s *Session) step(delta int) bool {
	s.mu.Lock()
	if s.setlist == nil || s.song == nil {
		s.mu.Unlock()
		return false
	}
	idx := -1
	for i, song := range s.setlist.Songs {
		if song.Id == s.song.Id {
			idx = i
			break
		}
	}
	target := idx + delta
	if idx == -1 || target < 0 || target >= len(s.setlist.Songs) {
		s.mu.Unlock()
		return false
	}
	next := s.setlist.Songs[target]
	s.mu.Unlock()

	s.SelectSong(next)
	return true
}

func (s *Session) SetTranspose(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transpose = n
}

func (s *Session) SetCapo(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capo = max(n, 0)
}

func (s *Session) SetUseFlats(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.useFlats = v
}

func (s *Session) SetNashville(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nashville = v
}

func (s *Session) SetAlignment(a model.Alignment) {
	if !a.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alignment = a
}

func (s *Session) SetFontSize(rem float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fontSize = util.Clamp(rem, constants.MinFontSize, constants.MaxFontSize)
}

func (s *Session) FontSize() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fontSize
}

// Shift is the net semitone shift: a capo raises the open strings, so the
// shapes read are moved down by it.
func (s *Session) Shift() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transpose - s.capo
}

func (s *Session) EffectiveKey() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.song == nil {
		return "", false
	}
	return chord.EffectiveKey(s.song.Key, s.transpose-s.capo, s.useFlats)
}

func (s *Session) DisplayedKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.song == nil {
		return "?"
	}
	return chord.DisplayKey(s.song.Key, s.transpose-s.capo, s.useFlats)
}

func (s *Session) Options() chart.Options {
	key, _ := s.EffectiveKey()
	s.mu.Lock()
	defer s.mu.Unlock()
	return chart.Options{
		Shift:     s.transpose - s.capo,
		UseFlats:  s.useFlats,
		Nashville: s.nashville,
		Key:       key,
	}
}

// Chart parses the current song with the current transform.
func (s *Session) Chart() []chart.Line {
	song, ok := s.Song()
	if !ok {
		return nil
	}
	return chart.Parse(song.Lyrics, s.Options())
}

// Snapshot is the state a host publishes to viewers.
func (s *Session) Snapshot() model.PlaybackState {
	pct := s.Scroll.Pct()
	scrolling := s.Scroll.Scrolling()
	speed := s.Scroll.Speed()

	s.mu.Lock()
	defer s.mu.Unlock()
	state := model.PlaybackState{
		Transpose:     s.transpose,
		Capo:          s.capo,
		NashvilleMode: s.nashville,
		UseFlats:      s.useFlats,
		ScrollPct:     pct,
		IsScrolling:   scrolling,
		ScrollSpeed:   speed,
		Alignment:     s.alignment,
	}
	if s.song != nil {
		state.SongId = s.song.Id
		state.SongKey = s.song.Key
	}
	return state
}
