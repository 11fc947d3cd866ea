package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/virtual-input/ps2d/apitypes"
	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/server/api"
	apierror "github.com/virtual-input/ps2d/internal/server/api/error"
)

// DevicesList returns a handler that lists all devices on the bus.
func DevicesList(bus *inputbus.Bus) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		infos := bus.Devices()
		out := make([]apitypes.Device, 0, len(infos))
		for _, info := range infos {
			out = append(out, apitypes.Device{
				ID:   info.ID,
				Name: info.Name,
				Type: info.Type,
				Phys: info.Phys,
			})
		}
		payload, err := json.Marshal(apitypes.DevicesListResponse{Devices: out})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
