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

// DeviceRemove returns a handler that removes a device from the bus.
func DeviceRemove(bus *inputbus.Bus) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		dev, err := deviceByID(bus, req.Params)
		if err != nil {
			return err
		}
		id := dev.Info().ID
		if err := bus.Remove(id); err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to remove device: %v", err))
		}
		payload, err := json.Marshal(apitypes.DeviceRemoveResponse{ID: id})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
