package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/virtual-input/ps2d/apitypes"
	"github.com/virtual-input/ps2d/internal/server/api"
	apierror "github.com/virtual-input/ps2d/internal/server/api/error"
)

// Ping returns a handler that reports server identity and version.
func Ping(version string) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		payload, err := json.Marshal(apitypes.PingResponse{
			Server:  "ps2d",
			Version: version,
		})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(payload)
		return nil
	}
}
