// Package pipeline implements the byte ingestion and decoding pipeline shared
// by all simulated peripherals: a bounded concurrent ring buffer fed from any
// goroutine, and a deferred single-flight dispatcher that drains the buffer
// and feeds one stateful decoder. Bytes are decoded strictly in push order.
package pipeline

import (
	"log/slog"
	"sync/atomic"

	"github.com/virtual-input/ps2d/input"
)

// Decoder turns raw bytes into normalized events. Decode is only ever called
// from a pipeline's single dispatcher goroutine, so decoder state needs no
// locking. A byte may produce zero or more events.
type Decoder interface {
	Decode(b byte, sink input.Sink)
}

// Pipeline binds one ring buffer, one decoder and one event sink. Ingest may
// be called from any number of goroutines; decoding happens on a deferred
// worker with at most one drain in flight at a time, which is the
// serialization boundary that keeps decoder state free of locks.
type Pipeline struct {
	ring     *Ring
	dec      Decoder
	sink     input.Sink
	counters *Counters
	logger   *slog.Logger

	draining atomic.Bool
	closed   atomic.Bool
}

// New creates a pipeline. The counters may be shared with the decoder and the
// sink so all diagnostics for one device land in one place.
func New(capacity int, dec Decoder, sink input.Sink, counters *Counters, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		ring:     NewRing(capacity),
		dec:      dec,
		sink:     sink,
		counters: counters,
		logger:   logger,
	}
}

// Ingest buffers one raw byte and triggers a drain. On overflow the byte is
// dropped, counted and logged; the producer is never blocked or asked to
// retry. Ingest after Close is a silent no-op.
func (p *Pipeline) Ingest(b byte) {
	if p.closed.Load() {
		return
	}
	p.counters.AddByteIn()
	if !p.ring.Push(b) {
		p.counters.AddOverflow()
		p.logger.Warn("buffer overflow, dropping byte", "byte", b)
		return
	}
	p.trigger()
}

// trigger schedules a drain unless one is already in flight. Multiple pending
// triggers coalesce into the drain that is already running.
func (p *Pipeline) trigger() {
	if p.draining.CompareAndSwap(false, true) {
		go p.drain()
	}
}

func (p *Pipeline) drain() {
	for {
		p.ring.Drain(func(b byte) {
			p.dec.Decode(b, p.sink)
		})
		p.draining.Store(false)

		// A producer may have pushed between the final Pop and the flag
		// store. Re-acquire the flag and go around again; if someone else
		// acquired it first their drain will see the bytes.
		if p.ring.Len() == 0 {
			return
		}
		if !p.draining.CompareAndSwap(false, true) {
			return
		}
	}
}

// Buffered returns the number of bytes waiting to be decoded.
func (p *Pipeline) Buffered() int {
	return p.ring.Len()
}

// Stats returns a snapshot of the pipeline's diagnostic counters.
func (p *Pipeline) Stats() Stats {
	return p.counters.Snapshot()
}

// Close stops accepting bytes and discards anything still buffered. Buffered
// but undrained bytes are acceptable data loss at teardown. Idempotent.
func (p *Pipeline) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.ring.Drain(func(byte) {})
}
