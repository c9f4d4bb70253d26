package notify

import (
	"context"
	"sync"
	"time"

	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/metrics"

	"go.uber.org/zap"
)

const defaultBuffer = 16

// Subscription receives the events visible to one user (or to every admin).
type Subscription struct {
	C <-chan Event

	id      uint64
	userID  uint
	isAdmin bool
	ch      chan Event
	hub     *Hub
	once    sync.Once
}

// Close unregisters the subscription and closes C.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub is an in-process broadcaster. An event reaches subscriptions of the
// owning user and every admin subscription. Full buffers drop the event for
// that subscriber instead of blocking the publisher.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*Subscription
	buffer int

	Published metrics.Counter
	Dropped   metrics.Counter
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[uint64]*Subscription),
		buffer: defaultBuffer,
	}
}

func (h *Hub) Subscribe(userID uint, isAdmin bool) *Subscription {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		C:       ch,
		id:      h.nextID,
		userID:  userID,
		isAdmin: isAdmin,
		ch:      ch,
		hub:     h,
	}
	h.subs[sub.id] = sub
	return sub
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[s.id]; ok {
		delete(h.subs, s.id)
		close(s.ch)
	}
}

func (h *Hub) Publish(ctx context.Context, e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	h.Published.Inc()

	for _, sub := range h.subs {
		if !sub.isAdmin && sub.userID != e.UserID {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			h.Dropped.Inc()
			logger.FromCtx(ctx).Warn("notify: subscriber buffer full, event dropped",
				zap.String("type", string(e.Type)),
				zap.Uint("resource_id", e.ResourceID),
				zap.Uint("subscriber_user_id", sub.userID),
			)
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close drops every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}
