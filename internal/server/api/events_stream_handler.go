package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"

	"github.com/virtual-input/ps2d/apitypes"
	"github.com/virtual-input/ps2d/input"
	"github.com/virtual-input/ps2d/inputbus"
)

// EventsStreamHandler returns a stream handler that subscribes to a device's
// decoded events and writes them to the connection as JSON lines. The stream
// ends when the client disconnects or the device is removed.
func EventsStreamHandler(bus *inputbus.Bus, bufferSize int) StreamHandlerFunc {
	return func(conn net.Conn, dev *inputbus.Device, logger *slog.Logger) error {
		defer conn.Close()

		if dev == nil {
			return fmt.Errorf("nil device")
		}

		sub := bus.Subscribe(dev.Info().ID, bufferSize)
		defer sub.Close()

		// Watch for client disconnect so the subscription does not linger.
		done := make(chan struct{})
		go func() {
			buf := make([]byte, 1)
			for {
				if _, err := conn.Read(buf); err != nil {
					close(done)
					return
				}
			}
		}()

		enc := json.NewEncoder(conn)
		for {
			select {
			case ev, ok := <-sub.Events():
				if !ok {
					logger.Debug("event stream closed by device removal")
					return nil
				}
				rec := apitypes.EventRecord{
					Device:  ev.Device,
					Type:    ev.Type.String(),
					Pressed: ev.Pressed,
					Delta:   ev.Delta,
				}
				switch ev.Type {
				case input.EventKey:
					rec.Code = ev.Key.String()
				case input.EventButton:
					rec.Code = ev.Button.String()
				case input.EventMotion:
					rec.Code = ev.Axis.String()
				}
				if err := enc.Encode(rec); err != nil {
					return err
				}
			case <-done:
				logger.Debug("event stream client disconnected")
				return nil
			}
		}
	}
}
