package mouse

import (
	"log/slog"

	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/server/api"
	"github.com/virtual-input/ps2d/pipeline"
)

func init() {
	api.RegisterDevice("mouse", &handler{})
}

type handler struct{}

func (h *handler) Config(name string) inputbus.DeviceConfig {
	return inputbus.DeviceConfig{
		Name:       name,
		Type:       "mouse",
		BufferSize: BufferSize,
		NewDecoder: func(logger *slog.Logger, counters *pipeline.Counters) pipeline.Decoder {
			return NewDecoder(logger, counters)
		},
	}
}

// ParseInject accepts exactly three whitespace-separated byte values, one
// whole packet, in base-prefixed or decimal form, each in range 0-255.
func (h *handler) ParseInject(payload string) ([]byte, error) {
	return api.ParseInjectBytes(payload, PacketSize)
}
