package realtime

import (
	"sync"
)

type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event is one change notification for an entity owned by a child.
// Payload is the JSON-ready view of the entity after the change.
type Event struct {
	ChildID string      `json:"child_id"`
	Entity  string      `json:"entity"`
	Action  Action      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
}

const subscriberBuffer = 16

// Hub fans change events out to per-child subscribers. Client views are
// caches refreshed from these events; the store stays the write source
// of truth. Publish never blocks: a subscriber that falls behind its
// buffer misses events and is expected to refetch.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers for all events of one child. The returned cancel
// func is idempotent and closes the channel, so teardown is deterministic.
func (h *Hub) Subscribe(childID string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[childID] == nil {
		h.subs[childID] = make(map[chan Event]struct{})
	}
	h.subs[childID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[childID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, childID)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[event.ChildID] {
		select {
		case ch <- event:
		default: // slow subscriber, drop
		}
	}
}

// SubscriberCount reports how many listeners a child currently has.
func (h *Hub) SubscriberCount(childID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[childID])
}
