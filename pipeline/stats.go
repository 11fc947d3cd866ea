package pipeline

import "sync/atomic"

// Stats is a point-in-time snapshot of a pipeline's diagnostic counters.
// All conditions counted here are advisory, never fatal.
type Stats struct {
	BytesIn        uint64
	Overflows      uint64
	InvalidPackets uint64
	UnmappedCodes  uint64
	Events         uint64
	DroppedEvents  uint64
}

// Counters holds the live diagnostic counters for one pipeline. The pipeline
// owns BytesIn and Overflows; decoders record their own discard conditions;
// the event sink side records delivery counts.
type Counters struct {
	bytesIn        atomic.Uint64
	overflows      atomic.Uint64
	invalidPackets atomic.Uint64
	unmappedCodes  atomic.Uint64
	events         atomic.Uint64
	droppedEvents  atomic.Uint64
}

func (c *Counters) AddByteIn() { c.bytesIn.Add(1) }

func (c *Counters) AddOverflow() { c.overflows.Add(1) }

// AddInvalidPacket records a packet discarded for a failed validation check.
func (c *Counters) AddInvalidPacket() { c.invalidPackets.Add(1) }

// AddUnmappedCode records a scan code with no translation table entry.
func (c *Counters) AddUnmappedCode() { c.unmappedCodes.Add(1) }

func (c *Counters) AddEvent() { c.events.Add(1) }

// AddDroppedEvent records an event dropped on delivery to a slow subscriber.
func (c *Counters) AddDroppedEvent() { c.droppedEvents.Add(1) }

// Snapshot returns the current counter values.
func (c *Counters) Snapshot() Stats {
	return Stats{
		BytesIn:        c.bytesIn.Load(),
		Overflows:      c.overflows.Load(),
		InvalidPackets: c.invalidPackets.Load(),
		UnmappedCodes:  c.unmappedCodes.Load(),
		Events:         c.events.Load(),
		DroppedEvents:  c.droppedEvents.Load(),
	}
}
