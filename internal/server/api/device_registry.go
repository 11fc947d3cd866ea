package api

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/virtual-input/ps2d/inputbus"
)

// DeviceRegistration describes a simulated device type: how to build its bus
// registration and how to parse the textual inject payload for it.
type DeviceRegistration interface {
	// Config returns the bus registration config for a new device instance.
	Config(name string) inputbus.DeviceConfig
	// ParseInject parses an inject command payload into the raw bytes to
	// feed the device's pipeline. It must reject malformed input without
	// side effects.
	ParseInject(payload string) ([]byte, error)
}

var (
	deviceRegistry   = make(map[string]DeviceRegistration)
	deviceRegistryMu sync.RWMutex
)

// RegisterDevice registers a device type for dynamic creation and inject
// dispatch. This should be called from device package init() functions. The
// name is case-insensitive and will be lowercased.
func RegisterDevice(name string, reg DeviceRegistration) {
	deviceRegistryMu.Lock()
	defer deviceRegistryMu.Unlock()
	deviceRegistry[strings.ToLower(name)] = reg
}

// GetRegistration retrieves a registered device type by name. Returns nil if
// not found. Name lookup is case-insensitive.
func GetRegistration(name string) DeviceRegistration {
	deviceRegistryMu.RLock()
	defer deviceRegistryMu.RUnlock()
	return deviceRegistry[strings.ToLower(name)]
}

// ListDeviceTypes returns a list of all registered device type names.
func ListDeviceTypes() []string {
	deviceRegistryMu.RLock()
	defer deviceRegistryMu.RUnlock()
	types := make([]string, 0, len(deviceRegistry))
	for name := range deviceRegistry {
		types = append(types, name)
	}
	return types
}

// ParseInjectBytes parses exactly want whitespace-separated byte values in
// base-prefixed (0x.., 0..) or decimal textual form. Any parse failure leaves
// no trace: either all values are returned or none.
func ParseInjectBytes(payload string, want int) ([]byte, error) {
	fields := strings.Fields(payload)
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d byte value(s), got %d", want, len(fields))
	}
	out := make([]byte, 0, want)
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid byte value %q: %w", f, err)
		}
		if v > 0xFF {
			return nil, fmt.Errorf("byte value %#x out of range (must be 0-255)", v)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
