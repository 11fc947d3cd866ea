package pipeline

import "sync"

// Ring is a fixed-capacity FIFO byte buffer shared between any number of
// producers and one consumer. One slot is kept permanently empty to
// disambiguate full from empty, so a Ring of capacity N holds at most N-1
// bytes. Neither Push nor Pop ever blocks; contention is resolved by short
// disjoint critical sections.
type Ring struct {
	mu   sync.Mutex
	buf  []byte
	head int
	tail int
}

// NewRing creates a ring with the given slot count. Usable capacity is
// capacity-1.
func NewRing(capacity int) *Ring {
	if capacity < 2 {
		panic("pipeline: ring capacity must be at least 2")
	}
	return &Ring{buf: make([]byte, capacity)}
}

// Push appends one byte. Returns false if the ring is full; the byte is then
// permanently lost, matching hardware buffer-overrun semantics.
func (r *Ring) Push(b byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if (r.head+1)%len(r.buf) == r.tail {
		return false
	}
	r.buf[r.head] = b
	r.head = (r.head + 1) % len(r.buf)
	return true
}

// Pop removes and returns the oldest byte. The second return value is false
// if the ring is empty.
func (r *Ring) Pop() (byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.head == r.tail {
		return 0, false
	}
	b := r.buf[r.tail]
	r.tail = (r.tail + 1) % len(r.buf)
	return b, true
}

// Len returns the number of buffered bytes.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (r.head - r.tail + len(r.buf)) % len(r.buf)
}

// Cap returns the usable capacity (slot count minus the reserved empty slot).
func (r *Ring) Cap() int {
	return len(r.buf) - 1
}

// Drain pops until empty, invoking fn once per byte. The lock is held only
// per pop, never across fn or the whole drain, so producers can keep pushing
// while a drain is in progress.
func (r *Ring) Drain(fn func(byte)) {
	for {
		b, ok := r.Pop()
		if !ok {
			return
		}
		fn(b)
	}
}
