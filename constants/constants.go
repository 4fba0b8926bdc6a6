package constants

import (
	"os"
	"time"
)

func GetCatalogPath() string {
	path := os.Getenv("CATALOG_PATH")
	if path != "" {
		return path
	}
	return "./data/catalog.json"
}

// GetCatalogBackend is either "file" or "dynamo".
func GetCatalogBackend() string {
	backend := os.Getenv("CATALOG_BACKEND")
	if backend != "" {
		return backend
	}
	return "file"
}

func GetDynamoEndpoint() string {
	return getOr("DYNAMO_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getOr("DYNAMO_REGION", "localhost")
}

func GetSongsTable() string {
	return getOr("DYNAMO_SONGS_TABLE", "vynl-songs")
}

func GetSetlistsTable() string {
	return getOr("DYNAMO_SETLISTS_TABLE", "vynl-setlists")
}

func GetPort() string {
	return getOr("PORT", "8080")
}

func GetStageServer() string {
	return getOr("STAGE_SERVER", "http://localhost:8080")
}

func getOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

const PublishInterval = time.Second
const PollInterval = 1500 * time.Millisecond
const ChangeDebounce = 250 * time.Millisecond

// Publishes per second accepted for a single broadcast session.
const PublishRateLimit = 20
const PublishBurst = 5

// NOTE: heuristic, a short lyric such as "[C]oh" is read as a chord line
const ChordOnlyThreshold = 5

const FrameInterval = 16 * time.Millisecond
const ScrollEndTolerance = 10
const MinScrollSpeed = 1.0
const MaxScrollSpeed = 120.0
const DefaultScrollSpeed = 30.0

const MinFontSize = 0.8
const MaxFontSize = 4.0
const DefaultFontSize = 1.6

// Key used for Nashville conversion on viewers when the host never sent one.
const FallbackKey = "C"

const DefaultSession = "default"
