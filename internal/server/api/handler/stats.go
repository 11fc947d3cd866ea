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

// Stats returns a handler that reports a device's diagnostic counters.
func Stats(bus *inputbus.Bus) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		dev, err := deviceByID(bus, req.Params)
		if err != nil {
			return err
		}
		s := dev.Stats()
		payload, err := json.Marshal(apitypes.StatsResponse{
			ID:             dev.Info().ID,
			BytesIn:        s.BytesIn,
			Overflows:      s.Overflows,
			InvalidPackets: s.InvalidPackets,
			UnmappedCodes:  s.UnmappedCodes,
			Events:         s.Events,
			DroppedEvents:  s.DroppedEvents,
		})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
