package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/virtual-input/ps2d/apitypes"
	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/server/api"
	apierror "github.com/virtual-input/ps2d/internal/server/api/error"
)

// DeviceAdd returns a handler that creates a new simulated device on the bus.
func DeviceAdd(bus *inputbus.Bus) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}
		var createReq apitypes.DeviceCreateRequest
		if err := json.Unmarshal([]byte(req.Payload), &createReq); err != nil {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid JSON payload: %v", err))
		}
		if createReq.Type == nil {
			return apierror.ErrBadRequest("missing device type")
		}

		devType := strings.ToLower(*createReq.Type)

		reg := api.GetRegistration(devType)
		if reg == nil {
			return apierror.ErrBadRequest(fmt.Sprintf("unknown device type: %s", devType))
		}

		name := devType
		if createReq.Name != nil && *createReq.Name != "" {
			name = *createReq.Name
		}

		dev, err := bus.Add(reg.Config(name))
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to add device: %v", err))
		}

		info := dev.Info()
		payload, err := json.Marshal(apitypes.Device{
			ID:   info.ID,
			Name: info.Name,
			Type: info.Type,
			Phys: info.Phys,
		})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}

		res.JSON = string(payload)
		return nil
	}
}
