// Package scroll drives auto-scrolling of a chart from frame callbacks.
package scroll

import (
	"math"
	"sync"
	"time"

	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/util"
)

// Controller accumulates speed*elapsed into whole pixels and keeps the
// fractional remainder, so motion does not depend on the frame rate.
type Controller struct {
	mu     sync.Mutex
	ticker clock.Ticker
	task   clock.Task

	speed     float64
	accum     float64
	lastFrame time.Time
	scrolling bool

	position      int
	contentHeight int
	viewHeight    int

	onStop func()
}

func New(ticker clock.Ticker) *Controller {
	return &Controller{
		ticker: ticker,
		speed:  constants.DefaultScrollSpeed,
	}
}

// OnStop is called when scrolling ends on its own at the end of content.
func (c *Controller) OnStop(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStop = fn
}

func (c *Controller) SetGeometry(contentHeight int, viewHeight int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contentHeight = contentHeight
	c.viewHeight = viewHeight
	c.position = util.Clamp(c.position, 0, c.maxPosition())
}

func (c *Controller) SetSpeed(pxPerSecond float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = util.Clamp(pxPerSecond, constants.MinScrollSpeed, constants.MaxScrollSpeed)
}

func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scrolling {
		return
	}
	c.scrolling = true
	c.lastFrame = time.Time{}
	c.accum = 0
	if c.ticker != nil {
		c.task = c.ticker.Every(constants.FrameInterval, c.Frame)
	}
}

func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) Toggle() {
	if c.Scrolling() {
		c.Stop()
	} else {
		c.Start()
	}
}

// Reset stops any scroll in flight and returns to the top.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.position = 0
	c.accum = 0
}

func (c *Controller) stopLocked() {
	c.scrolling = false
	if c.task != nil {
		c.task.Stop()
		c.task = nil
	}
}

func (c *Controller) Scrolling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrolling
}

// Frame advances the scroll for a frame drawn at now. The first frame
// after Start only records the time.
func (c *Controller) Frame(now time.Time) {
	c.mu.Lock()
	if !c.scrolling {
		c.mu.Unlock()
		return
	}
	if c.lastFrame.IsZero() {
		c.lastFrame = now
	}
	elapsed := now.Sub(c.lastFrame).Seconds()
	c.lastFrame = now

	c.accum += c.speed * elapsed
	if c.accum >= 1 {
		px := math.Floor(c.accum)
		c.position = util.Clamp(c.position+int(px), 0, c.maxPosition())
		c.accum -= px
	}

	var onStop func()
	if c.atEnd() {
		c.stopLocked()
		onStop = c.onStop
	}
	c.mu.Unlock()

	if onStop != nil {
		onStop()
	}
}

func (c *Controller) maxPosition() int {
	if c.contentHeight <= c.viewHeight {
		return 0
	}
	return c.contentHeight - c.viewHeight
}

func (c *Controller) atEnd() bool {
	return c.position+c.viewHeight >= c.contentHeight-constants.ScrollEndTolerance
}

func (c *Controller) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *Controller) ScrollTo(position int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = util.Clamp(position, 0, c.maxPosition())
}

// Pct is the scroll position as a fraction of the scrollable range.
func (c *Controller) Pct() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	limit := c.maxPosition()
	if limit == 0 {
		return 0
	}
	return float64(c.position) / float64(limit)
}

// OffsetFor maps a fraction of the scrollable range onto a pixel offset
// for content of the given size.
func OffsetFor(pct float64, contentHeight int, viewHeight int) int {
	if contentHeight <= viewHeight {
		return 0
	}
	pct = util.Clamp(pct, 0, 1)
	return int(math.Round(pct * float64(contentHeight-viewHeight)))
}
