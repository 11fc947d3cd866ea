package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/virtual-input/ps2d/apitypes"
	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/log"
	"github.com/virtual-input/ps2d/internal/server/api"
	apierror "github.com/virtual-input/ps2d/internal/server/api/error"
)

// Inject returns a handler that feeds raw bytes into a device's ingest
// buffer. The payload format is device-specific: keyboards take a single
// scan code, mice take a full 3-byte packet.
func Inject(bus *inputbus.Bus, raw log.RawLogger) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		dev, err := deviceByID(bus, req.Params)
		if err != nil {
			return err
		}
		if req.Payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}

		info := dev.Info()
		reg := api.GetRegistration(info.Type)
		if reg == nil {
			return apierror.ErrInternal(fmt.Sprintf("no registration for device type: %s", info.Type))
		}

		data, err := reg.ParseInject(req.Payload)
		if err != nil {
			return apierror.ErrBadRequest(err.Error())
		}

		if raw != nil {
			raw.Log(true, data)
		}
		for _, b := range data {
			dev.Ingest(b)
		}

		payload, err := json.Marshal(apitypes.InjectResponse{ID: info.ID, Injected: len(data)})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
