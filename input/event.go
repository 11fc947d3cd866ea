// Package input defines the normalized event model produced by the decoding
// pipelines and the sink interface events are reported into. It is the
// software equivalent of an input subsystem's event vocabulary: key and
// button state changes, relative motion, and sync markers that group the
// events belonging to one fully-processed input unit.
package input

import "strconv"

// Button identifies a pointer button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// ButtonName maps buttons to human-readable names.
var ButtonName = map[Button]string{
	ButtonLeft:   "Left",
	ButtonRight:  "Right",
	ButtonMiddle: "Middle",
}

func (b Button) String() string {
	if n, ok := ButtonName[b]; ok {
		return n
	}
	return "Button(" + strconv.Itoa(int(b)) + ")"
}

// Axis identifies a relative motion axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	}
	return "Axis(" + strconv.Itoa(int(a)) + ")"
}

// EventType discriminates the variants of Event.
type EventType uint8

const (
	EventKey EventType = iota
	EventButton
	EventMotion
	// EventSync marks the boundary after one fully-processed input unit
	// (one scan code, or one validated mouse packet).
	EventSync
)

func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventButton:
		return "button"
	case EventMotion:
		return "motion"
	case EventSync:
		return "sync"
	}
	return "event(" + strconv.Itoa(int(t)) + ")"
}

// Event is a single normalized input event. Which fields are meaningful
// depends on Type: Key+Pressed for EventKey, Button+Pressed for EventButton,
// Axis+Delta for EventMotion, none for EventSync.
type Event struct {
	Type    EventType
	Key     Key
	Button  Button
	Axis    Axis
	Pressed bool
	Delta   int32
}
