package scroll

import (
	"math"
	"testing"
	"time"

	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

func TestAccumulatorIndependentOfFrameRate(t *testing.T) {
	frameSets := [][]time.Duration{
		{16 * time.Millisecond},
		{7 * time.Millisecond, 33 * time.Millisecond, 5 * time.Millisecond},
		{250 * time.Millisecond},
		{1 * time.Millisecond, 100 * time.Millisecond},
	}
	for _, speed := range []float64{1, 7.5, 30, 119} {
		for _, frames := range frameSets {
			c := New(nil)
			c.SetGeometry(1000000, 500)
			c.SetSpeed(speed)
			c.Start()

			now := epoch
			c.Frame(now)
			var total time.Duration
			for i := 0; total < 10*time.Second; i++ {
				d := frames[i%len(frames)]
				now = now.Add(d)
				total += d
				c.Frame(now)
			}

			want := math.Floor(speed * total.Seconds())
			assert.InDelta(t, want, float64(c.Position()), 1, "speed %v frames %v", speed, frames)
		}
	}
}

func TestStopsAtEnd(t *testing.T) {
	m := clock.NewManual(epoch)
	c := New(m)
	c.SetGeometry(600, 500)
	c.SetSpeed(100)
	stopped := 0
	c.OnStop(func() { stopped++ })

	c.Start()
	m.Advance(5 * time.Second)

	assert := assert.New(t)
	assert.False(c.Scrolling())
	assert.Equal(1, stopped)
	assert.GreaterOrEqual(c.Position(), 90)
	assert.LessOrEqual(c.Position(), 100)
	assert.Equal(0, m.Active())
}

func TestStopCancelsTask(t *testing.T) {
	m := clock.NewManual(epoch)
	c := New(m)
	c.SetGeometry(100000, 500)
	c.Start()
	m.Advance(time.Second)
	pos := c.Position()

	c.Stop()
	m.Advance(time.Second)

	assert := assert.New(t)
	assert.Equal(pos, c.Position())
	assert.Equal(0, m.Active())
}

func TestToggleAndDoubleStart(t *testing.T) {
	m := clock.NewManual(epoch)
	c := New(m)
	c.SetGeometry(100000, 500)

	c.Toggle()
	c.Start()
	assert.True(t, c.Scrolling())
	assert.Equal(t, 1, m.Active())

	c.Toggle()
	assert.False(t, c.Scrolling())
	assert.Equal(t, 0, m.Active())
}

func TestReset(t *testing.T) {
	m := clock.NewManual(epoch)
	c := New(m)
	c.SetGeometry(100000, 500)
	c.Start()
	m.Advance(2 * time.Second)
	assert.Greater(t, c.Position(), 0)

	c.Reset()

	assert.Equal(t, 0, c.Position())
	assert.False(t, c.Scrolling())
	assert.Equal(t, 0, m.Active())
}

func TestSpeedIsClamped(t *testing.T) {
	c := New(nil)
	c.SetSpeed(0)
	assert.Equal(t, 1.0, c.Speed())
	c.SetSpeed(1000)
	assert.Equal(t, 120.0, c.Speed())
}

func TestPct(t *testing.T) {
	c := New(nil)
	c.SetGeometry(1500, 500)
	c.ScrollTo(250)
	assert.Equal(t, 0.25, c.Pct())

	c.ScrollTo(5000)
	assert.Equal(t, 1.0, c.Pct())

	c.SetGeometry(100, 500)
	assert.Equal(t, 0.0, c.Pct())
}

func TestOffsetFor(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(500, OffsetFor(0.5, 1500, 500))
	assert.Equal(1000, OffsetFor(3, 1500, 500))
	assert.Equal(0, OffsetFor(-1, 1500, 500))
	assert.Equal(0, OffsetFor(0.5, 200, 500))
}
