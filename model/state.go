package model

import "github.com/rlackeyseattle/vynl-pro/constants"

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

func (a Alignment) Valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

// PlaybackState is the snapshot a host broadcasts to its viewers.
type PlaybackState struct {
	SongId        string    `json:"songId"`
	SongKey       string    `json:"songKey,omitempty"`
	Transpose     int       `json:"transpose"`
	Capo          int       `json:"capo"`
	NashvilleMode bool      `json:"nashvilleMode"`
	UseFlats      bool      `json:"useFlats"`
	ScrollPct     float64   `json:"scrollPct"`
	IsScrolling   bool      `json:"isScrolling"`
	ScrollSpeed   float64   `json:"scrollSpeed"`
	Alignment     Alignment `json:"alignment,omitempty"`

	// unix millis of the last accepted publish
	LastUpdate int64 `json:"lastUpdate"`
}

func InitialPlaybackState(now int64) PlaybackState {
	return PlaybackState{
		ScrollSpeed: constants.DefaultScrollSpeed,
		Alignment:   AlignLeft,
		LastUpdate:  now,
	}
}

// StatePatch is a partial PlaybackState. Nil fields are left untouched.
type StatePatch struct {
	SongId        *string    `json:"songId,omitempty"`
	SongKey       *string    `json:"songKey,omitempty"`
	Transpose     *int       `json:"transpose,omitempty"`
	Capo          *int       `json:"capo,omitempty"`
	NashvilleMode *bool      `json:"nashvilleMode,omitempty"`
	UseFlats      *bool      `json:"useFlats,omitempty"`
	ScrollPct     *float64   `json:"scrollPct,omitempty"`
	IsScrolling   *bool      `json:"isScrolling,omitempty"`
	ScrollSpeed   *float64   `json:"scrollSpeed,omitempty"`
	Alignment     *Alignment `json:"alignment,omitempty"`
}

// Apply merges p shallowly onto s. LastUpdate is left for the caller to stamp.
func (s PlaybackState) Apply(p StatePatch) PlaybackState {
	if p.SongId != nil {
		s.SongId = *p.SongId
	}
	if p.SongKey != nil {
		s.SongKey = *p.SongKey
	}
	if p.Transpose != nil {
		s.Transpose = *p.Transpose
	}
	if p.Capo != nil {
		s.Capo = *p.Capo
	}
	if p.NashvilleMode != nil {
		s.NashvilleMode = *p.NashvilleMode
	}
	if p.UseFlats != nil {
		s.UseFlats = *p.UseFlats
	}
	if p.ScrollPct != nil {
		s.ScrollPct = *p.ScrollPct
	}
	if p.IsScrolling != nil {
		s.IsScrolling = *p.IsScrolling
	}
	if p.ScrollSpeed != nil {
		s.ScrollSpeed = *p.ScrollSpeed
	}
	if p.Alignment != nil {
		s.Alignment = *p.Alignment
	}
	return s
}

// Patch turns a full snapshot into a patch that overwrites every field.
func (s PlaybackState) Patch() StatePatch {
	return StatePatch{
		SongId:        &s.SongId,
		SongKey:       &s.SongKey,
		Transpose:     &s.Transpose,
		Capo:          &s.Capo,
		NashvilleMode: &s.NashvilleMode,
		UseFlats:      &s.UseFlats,
		ScrollPct:     &s.ScrollPct,
		IsScrolling:   &s.IsScrolling,
		ScrollSpeed:   &s.ScrollSpeed,
		Alignment:     &s.Alignment,
	}
}
