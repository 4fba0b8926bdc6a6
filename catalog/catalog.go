// Package catalog provides the songs and setlists the stage plays from.
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/model"
)

var ErrNotFound = errors.New("not found")

type Catalog interface {
	Songs(ctx context.Context) ([]model.Song, error)
	Setlists(ctx context.Context) ([]model.SetlistSummary, error)
	Setlist(ctx context.Context, id string) (model.Setlist, error)
}

// Expand resolves a stored setlist's song ids in order. Ids without a song
// are dropped.
func Expand(stored model.StoredSetlist, lookup func(id string) (model.Song, bool)) model.Setlist {
	res := model.Setlist{
		Id:          stored.Id,
		Name:        stored.Name,
		Description: stored.Description,
		Songs:       make([]model.Song, 0, len(stored.SongIds)),
	}
	for _, id := range stored.SongIds {
		if song, ok := lookup(id); ok {
			res.Songs = append(res.Songs, song)
		}
	}
	return res
}

type data struct {
	Songs    []model.Song          `json:"songs"`
	Setlists []model.StoredSetlist `json:"setlists"`
}

// Memory is a catalog held entirely in memory, usually loaded from JSON.
type Memory struct {
	songs    []model.Song
	byId     map[string]model.Song
	setlists []model.StoredSetlist
}

func NewMemory(songs []model.Song, setlists []model.StoredSetlist) *Memory {
	m := &Memory{
		songs:    songs,
		byId:     make(map[string]model.Song, len(songs)),
		setlists: setlists,
	}
	for _, s := range songs {
		m.byId[s.Id] = s
	}
	return m
}

func Parse(r io.Reader) (*Memory, error) {
	var d data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "could not decode catalog")
	}
	return NewMemory(d.Songs, d.Setlists), nil
}

func Load(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open catalog")
	}
	defer f.Close()
	return Parse(f)
}

func (m *Memory) Songs(ctx context.Context) ([]model.Song, error) {
	res := make([]model.Song, len(m.songs))
	copy(res, m.songs)
	return res, nil
}

func (m *Memory) Song(id string) (model.Song, bool) {
	s, ok := m.byId[id]
	return s, ok
}

func (m *Memory) Setlists(ctx context.Context) ([]model.SetlistSummary, error) {
	res := make([]model.SetlistSummary, 0, len(m.setlists))
	for _, sl := range m.setlists {
		res = append(res, sl.Summary())
	}
	return res, nil
}

func (m *Memory) Setlist(ctx context.Context, id string) (model.Setlist, error) {
	for _, sl := range m.setlists {
		if sl.Id == id {
			return Expand(sl, m.Song), nil
		}
	}
	return model.Setlist{}, errors.Wrapf(ErrNotFound, "setlist %q", id)
}

// FindSong looks a song up by id through any catalog.
func FindSong(ctx context.Context, c Catalog, id string) (model.Song, error) {
	if m, ok := c.(*Memory); ok {
		if s, ok := m.Song(id); ok {
			return s, nil
		}
		return model.Song{}, errors.Wrapf(ErrNotFound, "song %q", id)
	}
	songs, err := c.Songs(ctx)
	if err != nil {
		return model.Song{}, err
	}
	for _, s := range songs {
		if s.Id == id {
			return s, nil
		}
	}
	return model.Song{}, errors.Wrapf(ErrNotFound, "song %q", id)
}
