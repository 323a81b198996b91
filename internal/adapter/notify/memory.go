package notify

import (
	"context"
	"sync"

	"edfund-backend/internal/domain/watch"
)

// Hub is an in-process Broker for tests and single-node runs.
type Hub struct {
	mu   sync.Mutex
	subs map[*hubSub]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*hubSub]struct{})}
}

func (h *Hub) Publish(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.ch <- struct{}{}:
		default: // a signal is already pending; coalesce
		}
	}
	return nil
}

func (h *Hub) Subscribe(ctx context.Context) (watch.Subscription, error) {
	s := &hubSub{hub: h, ch: make(chan struct{}, 1)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s, nil
}

// Subscribers reports how many listeners are currently registered.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

type hubSub struct {
	hub  *Hub
	ch   chan struct{}
	once sync.Once
}

func (s *hubSub) Changes() <-chan struct{} { return s.ch }

func (s *hubSub) Release() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
	})
}
