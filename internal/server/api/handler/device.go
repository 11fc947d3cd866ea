package handler

import (
	"fmt"
	"strconv"

	"github.com/virtual-input/ps2d/inputbus"
	apierror "github.com/virtual-input/ps2d/internal/server/api/error"
)

// deviceByID resolves the {id} path parameter against the bus.
func deviceByID(bus *inputbus.Bus, params map[string]string) (*inputbus.Device, error) {
	idStr, ok := params["id"]
	if !ok {
		return nil, apierror.ErrBadRequest("missing id parameter")
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil, apierror.ErrBadRequest(fmt.Sprintf("invalid device id: %v", err))
	}
	dev := bus.Get(uint32(id))
	if dev == nil {
		return nil, apierror.ErrNotFound(fmt.Sprintf("device %d not found", id))
	}
	return dev, nil
}
