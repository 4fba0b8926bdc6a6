package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	state model.PlaybackState
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context) (model.PlaybackState, error) {
	f.calls++
	return f.state, f.err
}

func TestViewerWaitsForHost(t *testing.T) {
	m := clock.NewManual(epoch)
	f := &fakeFetcher{err: errors.New("unreachable")}
	v := NewViewer(f, m)

	v.Start()
	m.Advance(time.Minute)

	_, ok := v.State()
	assert.False(t, ok)
	_, ok = v.Options()
	assert.False(t, ok)
	assert.Equal(t, 40, f.calls)
}

func TestViewerPollsEveryInterval(t *testing.T) {
	m := clock.NewManual(epoch)
	f := &fakeFetcher{state: model.PlaybackState{SongId: "s1", ScrollPct: 0.5}}
	v := NewViewer(f, m)
	var seen []model.PlaybackState
	v.OnState(func(s model.PlaybackState) { seen = append(seen, s) })

	v.Start()
	m.Advance(3 * time.Second)
	v.Stop()
	m.Advance(3 * time.Second)

	assert := assert.New(t)
	assert.Equal(2, f.calls)
	assert.Len(seen, 2)
	assert.Equal(epoch.Add(3*time.Second), v.LastSuccess())

	target, ok := v.ScrollTarget(2500, 500)
	assert.True(ok)
	assert.Equal(1000, target)
}

func TestViewerKeepsLastStateOnFailure(t *testing.T) {
	m := clock.NewManual(epoch)
	f := &fakeFetcher{state: model.PlaybackState{SongId: "s1"}}
	v := NewViewer(f, m)
	require.NoError(t, v.Poll(context.Background()))

	f.err = errors.New("timeout")
	assert.Error(t, v.Poll(context.Background()))

	state, ok := v.State()
	assert.True(t, ok)
	assert.Equal(t, "s1", state.SongId)
}

func TestComposeSumsShifts(t *testing.T) {
	host := model.PlaybackState{SongKey: "C", Transpose: 3, Capo: 1}
	opts := Compose(host, Overrides{Transpose: -1, Capo: 1})

	assert := assert.New(t)
	assert.Equal(0, opts.Shift)
	assert.Equal("C", opts.Key)

	lines := chart.Parse("[C]Hey [Am]you [F]there [G]now", opts)
	assert.Equal([]string{"C", "Am", "F", "G"}, chart.Chords(lines))
}

func TestComposeWrapsOnce(t *testing.T) {
	host := model.PlaybackState{SongKey: "C", Transpose: 11}
	opts := Compose(host, Overrides{Transpose: 3})

	lines := chart.Parse("[C/E]x", opts)
	assert.Equal(t, []string{"D/F#"}, chart.Chords(lines))
}

func TestComposeNashvilleOverride(t *testing.T) {
	host := model.PlaybackState{SongKey: "C", Transpose: 2, NashvilleMode: true}
	line := "[C]Hey [Am]you [F]there [G]now"

	opts := Compose(host, Overrides{})
	assert.Equal(t, []string{"1", "6m", "4", "5"}, chart.Chords(chart.Parse(line, opts)))

	opts = Compose(host, Overrides{Nashville: boolPtr(false), UseFlats: boolPtr(true), Transpose: 1})
	assert.Equal(t, []string{"Eb", "Cm", "Ab", "Bb"}, chart.Chords(chart.Parse(line, opts)))
}

func TestComposeFallbackKey(t *testing.T) {
	opts := Compose(model.PlaybackState{Transpose: 5}, Overrides{Nashville: boolPtr(true)})
	assert.Equal(t, "F", opts.Key)
	assert.Equal(t, []string{"5"}, chart.Chords(chart.Parse("[G]x", opts)))
}

func TestOverridesCapoNeverNegative(t *testing.T) {
	v := NewViewer(&fakeFetcher{}, clock.NewManual(epoch))
	v.SetOverrides(Overrides{Capo: -2, Transpose: -2})
	assert.Equal(t, Overrides{Transpose: -2}, v.Overrides())
}
