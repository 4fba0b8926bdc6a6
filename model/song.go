package model

type Song struct {
	Id     string  `json:"id" dynamodbav:"PK"`
	Name   string  `json:"name" dynamodbav:"Name"`
	Artist string  `json:"artist,omitempty" dynamodbav:"Artist,omitempty"`
	Key    string  `json:"key,omitempty" dynamodbav:"Key,omitempty"`
	Bpm    float64 `json:"bpm,omitempty" dynamodbav:"Bpm,omitempty"`
	Genre  string  `json:"genre,omitempty" dynamodbav:"Genre,omitempty"`

	// raw chart text, lyrics interleaved with [chord] annotations
	Lyrics string `json:"lyrics" dynamodbav:"Lyrics"`
}

// StoredSetlist is a setlist as persisted: song references only.
type StoredSetlist struct {
	Id          string   `json:"id" dynamodbav:"PK"`
	Name        string   `json:"name" dynamodbav:"Name"`
	Description string   `json:"description" dynamodbav:"Description"`
	SongIds     []string `json:"song_ids" dynamodbav:"SongIds"`
}

type SetlistSummary struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SongCount   int    `json:"song_count"`
}

// Setlist has its song references expanded, in playback order.
type Setlist struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Songs       []Song `json:"songs"`
}

func (s StoredSetlist) Summary() SetlistSummary {
	return SetlistSummary{
		Id:          s.Id,
		Name:        s.Name,
		Description: s.Description,
		SongCount:   len(s.SongIds),
	}
}
