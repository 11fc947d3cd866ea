// Package inputbus registers simulated input devices and delivers their
// decoded events to subscribers. It plays the role the input subsystem plays
// for a real driver: devices get an identity when they register, and every
// event they report is stamped with that identity and fanned out to whoever
// is listening.
package inputbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/virtual-input/ps2d/input"
	"github.com/virtual-input/ps2d/pipeline"
)

// DeviceInfo describes a registered device.
type DeviceInfo struct {
	ID   uint32
	Name string
	Type string
	Phys string
}

// DeviceConfig describes a device to register. BufferSize is the ring slot
// count for the device's ingest buffer; NewDecoder builds the decoder bound
// to the device's pipeline.
type DeviceConfig struct {
	Name       string
	Type       string
	BufferSize int
	NewDecoder func(logger *slog.Logger, counters *pipeline.Counters) pipeline.Decoder
}

// Device is a registered device and its pipeline. The bus owns the device's
// lifetime; Ingest and Stats are safe from any goroutine.
type Device struct {
	info     DeviceInfo
	pipe     *pipeline.Pipeline
	counters *pipeline.Counters
}

// Info returns the device's registration metadata.
func (d *Device) Info() DeviceInfo { return d.info }

// Ingest feeds one raw byte into the device's pipeline.
func (d *Device) Ingest(b byte) { d.pipe.Ingest(b) }

// Stats returns the device's diagnostic counters.
func (d *Device) Stats() pipeline.Stats { return d.counters.Snapshot() }

// Event is a normalized input event stamped with the device that produced it.
type Event struct {
	Device uint32
	input.Event
}

// Bus manages device registration and event fan-out.
type Bus struct {
	logger *slog.Logger

	mu           sync.Mutex
	devices      map[uint32]*Device
	allocatedIDs map[uint32]bool
	subs         map[uint64]*Subscription
	nextSubID    uint64
}

// New creates an empty bus.
func New(logger *slog.Logger) *Bus {
	return &Bus{
		logger:       logger,
		devices:      make(map[uint32]*Device),
		allocatedIDs: make(map[uint32]bool),
		subs:         make(map[uint64]*Subscription),
	}
}

// Add registers a device and starts its pipeline. The device ID is the
// lowest free ID starting at 1.
func (b *Bus) Add(cfg DeviceConfig) (*Device, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("device name is empty")
	}
	if cfg.BufferSize < 2 {
		return nil, fmt.Errorf("buffer size %d too small", cfg.BufferSize)
	}
	if cfg.NewDecoder == nil {
		return nil, fmt.Errorf("device config has no decoder")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var id uint32
	for i := uint32(1); ; i++ {
		if !b.allocatedIDs[i] {
			id = i
			b.allocatedIDs[i] = true
			break
		}
	}

	dev := &Device{
		info: DeviceInfo{
			ID:   id,
			Name: cfg.Name,
			Type: cfg.Type,
			Phys: fmt.Sprintf("virtual/input%d", id-1),
		},
		counters: &pipeline.Counters{},
	}
	logger := b.logger.With("device", id, "type", cfg.Type)
	dec := cfg.NewDecoder(logger, dev.counters)
	dev.pipe = pipeline.New(cfg.BufferSize, dec, &deviceSink{bus: b, dev: dev}, dev.counters, logger)

	b.devices[id] = dev
	b.logger.Info("registered device", "device", id, "name", cfg.Name, "type", cfg.Type, "phys", dev.info.Phys)
	return dev, nil
}

// Get returns the device with the given ID, or nil.
func (b *Bus) Get(id uint32) *Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.devices[id]
}

// Devices returns registration metadata for all devices, ordered by ID.
func (b *Bus) Devices() []DeviceInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]DeviceInfo, 0, len(b.devices))
	for i := uint32(1); len(out) < len(b.devices); i++ {
		if d, ok := b.devices[i]; ok {
			out = append(out, d.info)
		}
	}
	return out
}

// Remove unregisters a device, closes its pipeline and ends all subscriptions
// bound to it. The ID becomes reusable.
func (b *Bus) Remove(id uint32) error {
	b.mu.Lock()
	dev, ok := b.devices[id]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("device %d not found", id)
	}
	delete(b.devices, id)
	delete(b.allocatedIDs, id)

	var orphaned []*Subscription
	for sid, s := range b.subs {
		if s.deviceID == id {
			delete(b.subs, sid)
			orphaned = append(orphaned, s)
		}
	}
	b.mu.Unlock()

	dev.pipe.Close()
	for _, s := range orphaned {
		s.closeOnce.Do(func() { close(s.ch) })
	}
	b.logger.Info("removed device", "device", id, "name", dev.info.Name)
	return nil
}

// Close removes all devices. Used at shutdown; idempotent.
func (b *Bus) Close() {
	b.mu.Lock()
	ids := make([]uint32, 0, len(b.devices))
	for id := range b.devices {
		ids = append(ids, id)
	}
	b.mu.Unlock()
	for _, id := range ids {
		_ = b.Remove(id)
	}
}

// publish stamps and fans out one event. Sends are non-blocking: a subscriber
// that cannot keep up loses events rather than stalling the dispatcher.
func (b *Bus) publish(dev *Device, ev input.Event) {
	dev.counters.AddEvent()
	out := Event{Device: dev.info.ID, Event: ev}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.deviceID != 0 && s.deviceID != dev.info.ID {
			continue
		}
		select {
		case s.ch <- out:
		default:
			dev.counters.AddDroppedEvent()
		}
	}
}

// deviceSink is the input.Sink handed to one device's pipeline.
type deviceSink struct {
	bus *Bus
	dev *Device
}

func (s *deviceSink) ReportKey(k input.Key, pressed bool) {
	s.bus.publish(s.dev, input.Event{Type: input.EventKey, Key: k, Pressed: pressed})
}

func (s *deviceSink) ReportButton(btn input.Button, pressed bool) {
	s.bus.publish(s.dev, input.Event{Type: input.EventButton, Button: btn, Pressed: pressed})
}

func (s *deviceSink) ReportMotion(a input.Axis, delta int32) {
	s.bus.publish(s.dev, input.Event{Type: input.EventMotion, Axis: a, Delta: delta})
}

func (s *deviceSink) Sync() {
	s.bus.publish(s.dev, input.Event{Type: input.EventSync})
}
