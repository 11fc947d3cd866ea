package inputbus

import "sync"

// Subscription delivers events from the bus over a buffered channel. The
// channel is closed when the subscription ends, either through Close or when
// the subscribed device is removed.
type Subscription struct {
	id       uint64
	deviceID uint32
	ch       chan Event
	bus      *Bus

	closeOnce sync.Once
}

// Subscribe starts receiving events for one device, or for all devices when
// deviceID is 0. buffer is the channel depth; events beyond it are dropped,
// not queued.
func (b *Bus) Subscribe(deviceID uint32, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSubID++
	s := &Subscription{
		id:       b.nextSubID,
		deviceID: deviceID,
		ch:       make(chan Event, buffer),
		bus:      b,
	}
	b.subs[s.id] = s
	return s
}

// Events returns the receive channel.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Close ends the subscription and closes the event channel. Idempotent.
func (s *Subscription) Close() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s.id)
	s.bus.mu.Unlock()
	s.closeOnce.Do(func() { close(s.ch) })
}
