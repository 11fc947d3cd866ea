// Package keyboard implements a simulated PS/2 keyboard: set 1 make/break
// scan codes in, normalized key events out.
package keyboard

import (
	"log/slog"

	"github.com/virtual-input/ps2d/input"
	"github.com/virtual-input/ps2d/pipeline"
)

// Decoder translates one scan code per byte. The only state carried across
// bytes is the shift tracking; everything else is stateless per byte.
type Decoder struct {
	logger *slog.Logger
	stats  *pipeline.Counters

	shiftActive bool
}

// NewDecoder returns a keyboard decoder reporting diagnostics into stats.
func NewDecoder(logger *slog.Logger, stats *pipeline.Counters) *Decoder {
	return &Decoder{logger: logger, stats: stats}
}

// Decode handles one raw scan code byte. A mapped code emits exactly one key
// event followed by a sync; an unmapped code is a silent no-op apart from
// diagnostics, because the translation table is intentionally partial. Repeat
// press codes for a held key pass through verbatim; repeat semantics belong
// to the consumer.
func (d *Decoder) Decode(b byte, sink input.Sink) {
	release := b&ScanReleaseBit != 0
	code := b & ScanCodeMask

	key, ok := scanToKey[code]
	if !ok {
		d.stats.AddUnmappedCode()
		d.logger.Debug("no mapping for scan code", "code", code)
		return
	}

	// Shift state is tracked for inspection only; it does not gate the
	// translation of other keys.
	if key == input.KeyLeftShift || key == input.KeyRightShift {
		d.shiftActive = !release
	}

	sink.ReportKey(key, !release)
	sink.Sync()
}

// ShiftActive reports whether a shift key is currently held. Only meaningful
// from the dispatcher goroutine that drives Decode.
func (d *Decoder) ShiftActive() bool {
	return d.shiftActive
}
