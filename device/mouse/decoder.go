// Package mouse implements a simulated PS/2 mouse: 3-byte packets in,
// normalized button and relative-motion events out.
package mouse

import (
	"fmt"
	"log/slog"

	"github.com/virtual-input/ps2d/input"
	"github.com/virtual-input/ps2d/pipeline"
)

// Decoder assembles incoming bytes into 3-byte packets and decodes each
// completed packet. A packet whose always-one marker is missing is discarded
// whole; realignment starts at the very next byte, so a byte lost upstream
// misaligns the stream until it is deliberately realigned.
type Decoder struct {
	logger *slog.Logger
	stats  *pipeline.Counters

	packet [PacketSize]byte
	idx    int
}

// NewDecoder returns a mouse decoder reporting diagnostics into stats.
func NewDecoder(logger *slog.Logger, stats *pipeline.Counters) *Decoder {
	return &Decoder{logger: logger, stats: stats}
}

// Decode consumes one byte. The first two bytes of a packet produce no
// events; the third completes the packet and, if valid, emits button events
// for all three buttons, motion events for nonzero deltas, and one sync.
func (d *Decoder) Decode(b byte, sink input.Sink) {
	if d.idx < 0 || d.idx >= PacketSize {
		// Only reachable through a decoder bug, never through bad input.
		panic(fmt.Sprintf("mouse: packet index %d out of range", d.idx))
	}

	d.packet[d.idx] = b
	d.idx++
	if d.idx < PacketSize {
		return
	}
	d.idx = 0

	d.process(sink)
}

func (d *Decoder) process(sink input.Sink) {
	status := d.packet[0]

	if status&alwaysOne == 0 {
		d.stats.AddInvalidPacket()
		d.logger.Debug("invalid packet, marker bit not set",
			"b0", d.packet[0], "b1", d.packet[1], "b2", d.packet[2])
		return
	}

	// Overflow is diagnostic only; the deltas are reported as-is.
	if status&xOverflow != 0 {
		d.logger.Debug("x overflow")
	}
	if status&yOverflow != 0 {
		d.logger.Debug("y overflow")
	}

	dx := int32(int8(d.packet[1]))
	// PS/2 reports positive Y as up; consumers expect positive Y down.
	dy := -int32(int8(d.packet[2]))

	// Buttons are level-triggered: current state is reported every packet,
	// changed or not.
	sink.ReportButton(input.ButtonLeft, status&btnLeft != 0)
	sink.ReportButton(input.ButtonRight, status&btnRight != 0)
	sink.ReportButton(input.ButtonMiddle, status&btnMiddle != 0)

	if dx != 0 {
		sink.ReportMotion(input.AxisX, dx)
	}
	if dy != 0 {
		sink.ReportMotion(input.AxisY, dy)
	}
	sink.Sync()
}
