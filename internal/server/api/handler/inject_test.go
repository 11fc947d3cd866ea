package handler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtual-input/ps2d/apiclient"
	"github.com/virtual-input/ps2d/input"
	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/log"
	_ "github.com/virtual-input/ps2d/internal/registry"
	"github.com/virtual-input/ps2d/internal/server/api"
	"github.com/virtual-input/ps2d/internal/server/api/handler"
	th "github.com/virtual-input/ps2d/internal/testing"
)

func TestInject(t *testing.T) {
	tests := []struct {
		name             string
		deviceType       string
		pathParams       map[string]string
		payload          any
		expectedResponse string
	}{
		{
			name:             "keyboard single scan code",
			deviceType:       "keyboard",
			pathParams:       map[string]string{"id": "1"},
			payload:          "0x1E",
			expectedResponse: `{"id":1,"injected":1}`,
		},
		{
			name:             "mouse full packet",
			deviceType:       "mouse",
			pathParams:       map[string]string{"id": "1"},
			payload:          "0x08 0x0A 0xF6",
			expectedResponse: `{"id":1,"injected":3}`,
		},
		{
			name:             "keyboard rejects packet arity",
			deviceType:       "keyboard",
			pathParams:       map[string]string{"id": "1"},
			payload:          "0x1E 0x9E",
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"expected 1 byte value(s), got 2"}`,
		},
		{
			name:             "mouse rejects partial packet",
			deviceType:       "mouse",
			pathParams:       map[string]string{"id": "1"},
			payload:          "0x08 0x0A",
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"expected 3 byte value(s), got 2"}`,
		},
		{
			name:             "value out of range",
			deviceType:       "keyboard",
			pathParams:       map[string]string{"id": "1"},
			payload:          "0x100",
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"byte value 0x100 out of range (must be 0-255)"}`,
		},
		{
			name:             "missing payload",
			deviceType:       "keyboard",
			pathParams:       map[string]string{"id": "1"},
			payload:          nil,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"missing payload"}`,
		},
		{
			name:             "unknown device",
			deviceType:       "keyboard",
			pathParams:       map[string]string{"id": "9"},
			payload:          "0x1E",
			expectedResponse: `{"status":404,"title":"Not Found","detail":"device 9 not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, bus, done := th.StartAPIServer(t, func(r *api.Router, bus *inputbus.Bus, apiSrv *api.Server) {
				r.Register("device/{id}/inject", handler.Inject(bus, log.NewRaw(nil)))
			})
			defer done()

			reg := api.GetRegistration(tt.deviceType)
			require.NotNil(t, reg)
			_, err := bus.Add(reg.Config(tt.deviceType))
			require.NoError(t, err)

			c := apiclient.NewTransport(addr)
			line, err := c.Do("device/{id}/inject", tt.payload, tt.pathParams)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expectedResponse, line)
		})
	}
}

func TestInjectProducesEvents(t *testing.T) {
	addr, bus, done := th.StartAPIServer(t, func(r *api.Router, bus *inputbus.Bus, apiSrv *api.Server) {
		r.Register("device/{id}/inject", handler.Inject(bus, log.NewRaw(nil)))
	})
	defer done()

	reg := api.GetRegistration("keyboard")
	dev, err := bus.Add(reg.Config("kb"))
	require.NoError(t, err)

	sub := bus.Subscribe(dev.Info().ID, 16)
	defer sub.Close()

	c := apiclient.NewTransport(addr)
	line, err := c.Do("device/{id}/inject", "0x1E", map[string]string{"id": "1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"injected":1}`, line)

	select {
	case ev := <-sub.Events():
		assert.Equal(t, input.EventKey, ev.Type)
		assert.Equal(t, input.KeyA, ev.Key)
		assert.True(t, ev.Pressed)
	case <-time.After(2 * time.Second):
		t.Fatal("no event after inject")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if dev.Stats().BytesIn == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, uint64(1), dev.Stats().BytesIn)
}
