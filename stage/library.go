package stage

import (
	"strings"

	"github.com/rlackeyseattle/vynl-pro/model"
	"golang.org/x/exp/slices"
)

type SortField string

const (
	SortByName   SortField = "name"
	SortByArtist SortField = "artist"
	SortByKey    SortField = "key"
	SortByGenre  SortField = "genre"
	SortByBpm    SortField = "bpm"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByArtist, SortByKey, SortByGenre, SortByBpm:
		return true
	}
	return false
}

// Library is the song list as browsed: a search query and a sort order.
type Library struct {
	Query string
	Field SortField
	Asc   bool
}

func NewLibrary() Library {
	return Library{Field: SortByName, Asc: true}
}

// SortBy switches to field ascending, or flips direction when field is
// already the active one.
func (l *Library) SortBy(field SortField) {
	if l.Field == field {
		l.Asc = !l.Asc
		return
	}
	l.Field = field
	l.Asc = true
}

// Apply filters and sorts songs without touching the input slice.
func (l Library) Apply(songs []model.Song) []model.Song {
	q := strings.ToLower(l.Query)
	res := make([]model.Song, 0, len(songs))
	for _, s := range songs {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Artist), q) {
			res = append(res, s)
		}
	}
	slices.SortStableFunc(res, func(a, b model.Song) int {
		cmp := compareSongs(a, b, l.Field)
		if !l.Asc {
			cmp = -cmp
		}
		return cmp
	})
	return res
}

func compareSongs(a model.Song, b model.Song, field SortField) int {
	if field == SortByBpm {
		switch {
		case a.Bpm < b.Bpm:
			return -1
		case a.Bpm > b.Bpm:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(sortValue(a, field)), strings.ToLower(sortValue(b, field)))
}

func sortValue(s model.Song, field SortField) string {
	switch field {
	case SortByArtist:
		return s.Artist
	case SortByKey:
		return s.Key
	case SortByGenre:
		return s.Genre
	}
	return s.Name
}
