package broadcast

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/chord"
	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/rlackeyseattle/vynl-pro/scroll"
)

type Fetcher interface {
	Fetch(ctx context.Context) (model.PlaybackState, error)
}

// Overrides are a viewer's own settings layered on the host's. Transpose
// and Capo add to the host's values; nil notation flags follow the host.
type Overrides struct {
	Transpose int
	Capo      int
	Nashville *bool
	UseFlats  *bool
}

// Compose combines host state and local overrides into one transform.
// Shifts are summed and applied in a single pass.
func Compose(state model.PlaybackState, local Overrides) chart.Options {
	shift := state.Transpose - state.Capo + local.Transpose - local.Capo
	opts := chart.Options{
		Shift:     shift,
		UseFlats:  state.UseFlats,
		Nashville: state.NashvilleMode,
	}
	if local.UseFlats != nil {
		opts.UseFlats = *local.UseFlats
	}
	if local.Nashville != nil {
		opts.Nashville = *local.Nashville
	}
	key := state.SongKey
	if key == "" {
		key = constants.FallbackKey
	}
	opts.Key, _ = chord.EffectiveKey(key, shift, opts.UseFlats)
	return opts
}

// Viewer polls a host's state. Until the first successful poll there is
// no state and callers show a waiting placeholder.
type Viewer struct {
	fetch Fetcher
	src   clock.Source

	mu          sync.Mutex
	task        clock.Task
	state       *model.PlaybackState
	local       Overrides
	lastSuccess time.Time
	onState     func(model.PlaybackState)
}

func NewViewer(fetch Fetcher, src clock.Source) *Viewer {
	return &Viewer{fetch: fetch, src: src}
}

// OnState is called after every successful poll.
func (v *Viewer) OnState(fn func(model.PlaybackState)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onState = fn
}

func (v *Viewer) Start() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.task != nil {
		return
	}
	v.task = v.src.Every(constants.PollInterval, func(time.Time) {
		v.Poll(context.Background())
	})
}

func (v *Viewer) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.task != nil {
		v.task.Stop()
		v.task = nil
	}
}

// Poll fetches the host state once. Failures are logged and leave the
// last known state in place.
func (v *Viewer) Poll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.PollInterval)
	defer cancel()

	state, err := v.fetch.Fetch(ctx)
	if err != nil {
		log.Printf("Poll failed: %v", err)
		return err
	}

	v.mu.Lock()
	v.state = &state
	v.lastSuccess = v.src.Now()
	onState := v.onState
	v.mu.Unlock()

	if onState != nil {
		onState(state)
	}
	return nil
}

func (v *Viewer) State() (model.PlaybackState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == nil {
		return model.PlaybackState{}, false
	}
	return *v.state, true
}

func (v *Viewer) SetOverrides(o Overrides) {
	o.Capo = max(o.Capo, 0)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.local = o
}

func (v *Viewer) Overrides() Overrides {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.local
}

// Options is the chord transform to draw with, false while waiting for
// the host.
func (v *Viewer) Options() (chart.Options, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == nil {
		return chart.Options{}, false
	}
	return Compose(*v.state, v.local), true
}

// ScrollTarget maps the host's scroll fraction onto this viewer's content.
func (v *Viewer) ScrollTarget(contentHeight int, viewHeight int) (int, bool) {
	state, ok := v.State()
	if !ok {
		return 0, false
	}
	return scroll.OffsetFor(state.ScrollPct, contentHeight, viewHeight), true
}

func (v *Viewer) LastSuccess() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSuccess
}
