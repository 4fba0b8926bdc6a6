// Package broadcast shares a host's playback state with read-only viewers
// through a polled last-write-wins cell per session.
package broadcast

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/rlackeyseattle/vynl-pro/util"
	"golang.org/x/time/rate"
)

var (
	ErrUnknownSession = errors.New("unknown broadcast session")
	ErrNotHost        = errors.New("host token does not match session")
	ErrRateLimited    = errors.New("publish rate exceeded")
)

// Store owns one state cell per broadcast session. One host per session is
// assumed; the host token only keeps a second host from taking over, it
// does not order publishes, so a late stale publish still wins.
type Store struct {
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[string]*cell
}

type cell struct {
	mu        sync.Mutex
	state     model.PlaybackState
	hostToken string
	limiter   *rate.Limiter
}

// NewStore starts with the default session, which accepts any host.
func NewStore(clk clock.Clock) *Store {
	s := &Store{
		clock:    clk,
		sessions: make(map[string]*cell),
	}
	s.sessions[constants.DefaultSession] = s.newCell("")
	return s
}

func (s *Store) newCell(token string) *cell {
	return &cell{
		state:     model.InitialPlaybackState(s.clock.Now().UnixMilli()),
		hostToken: token,
		limiter:   rate.NewLimiter(rate.Limit(constants.PublishRateLimit), constants.PublishBurst),
	}
}

// Create opens a new session. The returned token must accompany publishes.
func (s *Store) Create() model.SessionInfo {
	info := model.SessionInfo{
		SessionId: uuid.New().String(),
		HostToken: uuid.New().String(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[info.SessionId] = s.newCell(info.HostToken)
	return info
}

func (s *Store) Close(id string) {
	if id == constants.DefaultSession {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sessions lists open session ids in order.
func (s *Store) Sessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return util.GetKeys(s.sessions)
}

func (s *Store) get(id string) (*cell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSession, "session %q", id)
	}
	return c, nil
}

// State is the current snapshot, or the initial state if nothing was
// published yet.
func (s *Store) State(id string) (model.PlaybackState, error) {
	c, err := s.get(id)
	if err != nil {
		return model.PlaybackState{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}

// Publish merges p shallowly into the session state and stamps it.
func (s *Store) Publish(id string, token string, p model.StatePatch) (model.PlaybackState, error) {
	c, err := s.get(id)
	if err != nil {
		return model.PlaybackState{}, err
	}
	now := s.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hostToken != "" && c.hostToken != token {
		return model.PlaybackState{}, errors.Wrapf(ErrNotHost, "session %q", id)
	}
	if !c.limiter.AllowN(now, 1) {
		return model.PlaybackState{}, errors.Wrapf(ErrRateLimited, "session %q", id)
	}

	next := c.state.Apply(p)
	next.Capo = max(next.Capo, 0)
	next.ScrollPct = util.Clamp(next.ScrollPct, 0, 1)
	next.ScrollSpeed = util.Clamp(next.ScrollSpeed, constants.MinScrollSpeed, constants.MaxScrollSpeed)
	if !next.Alignment.Valid() {
		next.Alignment = c.state.Alignment
	}
	next.LastUpdate = now.UnixMilli()
	c.state = next
	return next, nil
}
