package mouse_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/virtual-input/ps2d/device/mouse"
	"github.com/virtual-input/ps2d/input"
	"github.com/virtual-input/ps2d/pipeline"
)

type recordSink struct {
	events []input.Event
}

func (s *recordSink) ReportKey(k input.Key, pressed bool) {
	s.events = append(s.events, input.Event{Type: input.EventKey, Key: k, Pressed: pressed})
}

func (s *recordSink) ReportButton(b input.Button, pressed bool) {
	s.events = append(s.events, input.Event{Type: input.EventButton, Button: b, Pressed: pressed})
}

func (s *recordSink) ReportMotion(a input.Axis, delta int32) {
	s.events = append(s.events, input.Event{Type: input.EventMotion, Axis: a, Delta: delta})
}

func (s *recordSink) Sync() {
	s.events = append(s.events, input.Event{Type: input.EventSync})
}

func buttonsReleased() []input.Event {
	return []input.Event{
		{Type: input.EventButton, Button: input.ButtonLeft, Pressed: false},
		{Type: input.EventButton, Button: input.ButtonRight, Pressed: false},
		{Type: input.EventButton, Button: input.ButtonMiddle, Pressed: false},
	}
}

func TestDecodePackets(t *testing.T) {
	tests := []struct {
		name     string
		bytes    []byte
		expected []input.Event
	}{
		{
			name:  "motion right",
			bytes: []byte{0x08, 0x0A, 0x00},
			expected: append(buttonsReleased(),
				input.Event{Type: input.EventMotion, Axis: input.AxisX, Delta: 10},
				input.Event{Type: input.EventSync},
			),
		},
		{
			name:  "motion up reported as negative y",
			bytes: []byte{0x08, 0x00, 0x0A},
			expected: append(buttonsReleased(),
				input.Event{Type: input.EventMotion, Axis: input.AxisY, Delta: -10},
				input.Event{Type: input.EventSync},
			),
		},
		{
			name:  "negative x from sign-extended byte",
			bytes: []byte{0x08, 0xF6, 0x00},
			expected: append(buttonsReleased(),
				input.Event{Type: input.EventMotion, Axis: input.AxisX, Delta: -10},
				input.Event{Type: input.EventSync},
			),
		},
		{
			name:  "left button held without motion",
			bytes: []byte{0x09, 0x00, 0x00},
			expected: []input.Event{
				{Type: input.EventButton, Button: input.ButtonLeft, Pressed: true},
				{Type: input.EventButton, Button: input.ButtonRight, Pressed: false},
				{Type: input.EventButton, Button: input.ButtonMiddle, Pressed: false},
				{Type: input.EventSync},
			},
		},
		{
			name:  "all buttons with diagonal motion",
			bytes: []byte{0x0F, 0x05, 0x03},
			expected: []input.Event{
				{Type: input.EventButton, Button: input.ButtonLeft, Pressed: true},
				{Type: input.EventButton, Button: input.ButtonRight, Pressed: true},
				{Type: input.EventButton, Button: input.ButtonMiddle, Pressed: true},
				{Type: input.EventMotion, Axis: input.AxisX, Delta: 5},
				{Type: input.EventMotion, Axis: input.AxisY, Delta: -3},
				{Type: input.EventSync},
			},
		},
		{
			name:     "invalid packet discarded whole",
			bytes:    []byte{0x00, 0x05, 0x05},
			expected: nil,
		},
		{
			name:  "invalid packet then valid packet",
			bytes: []byte{0x00, 0x00, 0x00, 0x08, 0x0A, 0x00},
			expected: append(buttonsReleased(),
				input.Event{Type: input.EventMotion, Axis: input.AxisX, Delta: 10},
				input.Event{Type: input.EventSync},
			),
		},
		{
			name:  "overflow flags do not suppress deltas",
			bytes: []byte{0xC8, 0x7F, 0x81},
			expected: append(buttonsReleased(),
				input.Event{Type: input.EventMotion, Axis: input.AxisX, Delta: 127},
				input.Event{Type: input.EventMotion, Axis: input.AxisY, Delta: 127},
				input.Event{Type: input.EventSync},
			),
		},
		{
			name:     "incomplete packet produces nothing",
			bytes:    []byte{0x08, 0x0A},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var counters pipeline.Counters
			d := mouse.NewDecoder(slog.Default(), &counters)
			sink := &recordSink{}

			for _, b := range tt.bytes {
				d.Decode(b, sink)
			}
			assert.Equal(t, tt.expected, sink.events)
		})
	}
}

func TestDecodeCountsInvalidPackets(t *testing.T) {
	var counters pipeline.Counters
	d := mouse.NewDecoder(slog.Default(), &counters)
	sink := &recordSink{}

	for _, b := range []byte{0x00, 0x00, 0x00, 0x07, 0x01, 0x01} {
		d.Decode(b, sink)
	}

	assert.Empty(t, sink.events)
	assert.Equal(t, uint64(2), counters.Snapshot().InvalidPackets)
}

func TestZeroMotionPacketEmitsNoMotion(t *testing.T) {
	var counters pipeline.Counters
	d := mouse.NewDecoder(slog.Default(), &counters)
	sink := &recordSink{}

	for _, b := range []byte{0x08, 0x00, 0x00} {
		d.Decode(b, sink)
	}

	expected := append(buttonsReleased(), input.Event{Type: input.EventSync})
	assert.Equal(t, expected, sink.events)
}
