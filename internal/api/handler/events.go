package handler

import "sync"

// EventHub fans cursor changes out to any number of subscribers.
// Publish never blocks; a subscriber that falls behind misses values.
type EventHub struct {
	mu   sync.Mutex
	subs map[chan int]struct{}
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[chan int]struct{})}
}

// Publish delivers index to every subscriber with room in its buffer.
func (h *EventHub) Publish(index int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- index:
		default:
		}
	}
}

// Subscribe registers a new subscriber. The returned func unsubscribes and
// closes the channel.
func (h *EventHub) Subscribe() (<-chan int, func()) {
	ch := make(chan int, 16)

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

// Subscribers returns the number of active subscribers.
func (h *EventHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
