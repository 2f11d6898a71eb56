package changefeed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// Hub fans one Source out to any number of in-process subscribers.
//
// Each subscriber has room for one pending event. When an event is already
// pending for a subscriber, newer ones are dropped for it: the pending event
// already tells it to re-fetch.
type Hub struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs map[chan domain.ChangeEvent]struct{}
}

// NewHub returns a hub with no subscribers.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{logger: logger, subs: map[chan domain.ChangeEvent]struct{}{}}
}

// Subscribe registers a subscriber. Call the returned func to unsubscribe;
// it closes the channel.
func (h *Hub) Subscribe() (<-chan domain.ChangeEvent, func()) {
	ch := make(chan domain.ChangeEvent, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers ev to every subscriber without blocking. It lets the hub
// serve as the in-process Publisher when no external feed is configured.
func (h *Hub) Publish(_ context.Context, ev domain.ChangeEvent) error {
	h.broadcast(ev)
	return nil
}

// Run forwards events from src until ctx is done or src closes.
func (h *Hub) Run(ctx context.Context, src Source) error {
	events, err := src.Listen(ctx)
	if err != nil {
		return err
	}
	h.logger.Info("changefeed: hub running")
	for ev := range events {
		h.logger.Debug("changefeed: event", "table", ev.Table, "op", ev.Op, "id", ev.ID)
		h.broadcast(ev)
	}
	return ctx.Err()
}

func (h *Hub) broadcast(ev domain.ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
