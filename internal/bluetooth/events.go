package bluetooth

import (
	"sync"

	"pos-bridge-backend/internal/model"
)

type EventType string

const (
	EventDeviceFound            EventType = "DEVICE_FOUND"
	EventDeviceBondStateChanged EventType = "DEVICE_BOND_STATE_CHANGED"
	EventDeviceDisconnected     EventType = "DEVICE_DISCONNECTED"
)

// Event is a notification emitted by the connection manager.
type Event struct {
	Type      EventType       `json:"type"`
	Device    *model.Device   `json:"device,omitempty"`
	BondState model.BondState `json:"bondState,omitempty"`
}

// Bus fans events out to subscribers. Delivery is non-blocking: a subscriber
// whose channel is full misses the event rather than stalling the publisher.
type Bus struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber channel.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes ch and closes it.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers ev to every subscriber that has buffer space.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	b.mu.Unlock()
}
