package broadcast

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/model"
)

type Publisher interface {
	Publish(ctx context.Context, p model.StatePatch) error
}

// Host publishes a full snapshot on every tick while broadcasting.
// Failed publishes are logged and the next tick tries again.
type Host struct {
	pub       Publisher
	snapshot  func() model.PlaybackState
	src       clock.Source
	debounced func(f func())

	mu          sync.Mutex
	task        clock.Task
	lastSuccess time.Time
	failures    int
}

func NewHost(pub Publisher, snapshot func() model.PlaybackState, src clock.Source) *Host {
	return &Host{
		pub:       pub,
		snapshot:  snapshot,
		src:       src,
		debounced: debounce.New(constants.ChangeDebounce),
	}
}

func (h *Host) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.task != nil {
		return
	}
	h.task = h.src.Every(constants.PublishInterval, func(time.Time) {
		h.Publish(context.Background())
	})
}

// Stop ends broadcasting. No tick starts after it returns and a pending
// change publish is dropped.
func (h *Host) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.task != nil {
		h.task.Stop()
		h.task = nil
	}
}

func (h *Host) Broadcasting() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.task != nil
}

// Changed publishes soon after a burst of local changes settles instead
// of waiting for the next tick.
func (h *Host) Changed() {
	h.debounced(func() {
		if h.Broadcasting() {
			h.Publish(context.Background())
		}
	})
}

// Publish sends one snapshot now.
func (h *Host) Publish(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.PublishInterval)
	defer cancel()

	err := h.pub.Publish(ctx, h.snapshot().Patch())

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.failures++
		log.Printf("Sync failed (%v in a row): %v", h.failures, err)
		return err
	}
	h.failures = 0
	h.lastSuccess = h.src.Now()
	return nil
}

// LastSuccess is when a publish last went through, zero if never.
func (h *Host) LastSuccess() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastSuccess
}

// Failures counts publishes failed since the last success.
func (h *Host) Failures() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failures
}
