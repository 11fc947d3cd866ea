// Package apiclient provides a Go client for the PS2D management API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/virtual-input/ps2d/apitypes"
)

// Client provides a high-level interface to the PS2D API, handling request
// formatting, response parsing, and error handling.
type Client struct{ transport *Transport }

// New constructs a high-level API client using the internal low-level Transport.
// The addr parameter specifies the TCP address (host:port) of the PS2D API server.
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithPassword constructs a client that authenticates with the given password.
func NewWithPassword(addr, password string) *Client {
	return &Client{transport: NewTransportWithPassword(addr, password)}
}

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport implementation.
// This is primarily useful for testing or when advanced transport configuration is needed.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the version and identity of the PS2D server.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

// PingCtx is the context-aware version of Ping.
func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	const path = "ping"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.PingResponse](raw)
}

// DeviceAdd creates a new simulated device of the specified type.
// The devType parameter is one of the registered types (e.g., "keyboard",
// "mouse"); name is optional and defaults to the type name.
func (c *Client) DeviceAdd(devType, name string) (*apitypes.Device, error) {
	return c.DeviceAddCtx(context.Background(), devType, name)
}

func (c *Client) DeviceAddCtx(ctx context.Context, devType, name string) (*apitypes.Device, error) {
	const path = "device/add"

	req := apitypes.DeviceCreateRequest{Type: &devType}
	if name != "" {
		req.Name = &name
	}
	payloadBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal device create request: %w", err)
	}
	raw, err := c.transport.DoCtx(ctx, path, string(payloadBytes), nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.Device](raw)
}

// DeviceRemove removes a device by its ID. Pending buffered bytes are
// discarded and open event streams on the device are closed.
func (c *Client) DeviceRemove(id uint32) (*apitypes.DeviceRemoveResponse, error) {
	return c.DeviceRemoveCtx(context.Background(), id)
}

func (c *Client) DeviceRemoveCtx(ctx context.Context, id uint32) (*apitypes.DeviceRemoveResponse, error) {
	pathParams := map[string]string{"id": fmt.Sprintf("%d", id)}
	const path = "device/{id}/remove"
	raw, err := c.transport.DoCtx(ctx, path, nil, pathParams)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.DeviceRemoveResponse](raw)
}

// DevicesList retrieves all registered devices with their IDs, names, types
// and phys labels.
func (c *Client) DevicesList() (*apitypes.DevicesListResponse, error) {
	return c.DevicesListCtx(context.Background())
}

func (c *Client) DevicesListCtx(ctx context.Context) (*apitypes.DevicesListResponse, error) {
	const path = "device/list"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.DevicesListResponse](raw)
}

// Inject feeds raw byte values into a device's ingest buffer. The payload
// is the textual form the device type expects: one scan code value for
// keyboards, three packet byte values for mice. Values may be decimal or
// base-prefixed (0x.., 0o.., 0b..).
func (c *Client) Inject(id uint32, payload string) (*apitypes.InjectResponse, error) {
	return c.InjectCtx(context.Background(), id, payload)
}

func (c *Client) InjectCtx(ctx context.Context, id uint32, payload string) (*apitypes.InjectResponse, error) {
	pathParams := map[string]string{"id": fmt.Sprintf("%d", id)}
	const path = "device/{id}/inject"
	raw, err := c.transport.DoCtx(ctx, path, payload, pathParams)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.InjectResponse](raw)
}

// Stats retrieves a snapshot of a device's diagnostic counters.
func (c *Client) Stats(id uint32) (*apitypes.StatsResponse, error) {
	return c.StatsCtx(context.Background(), id)
}

func (c *Client) StatsCtx(ctx context.Context, id uint32) (*apitypes.StatsResponse, error) {
	pathParams := map[string]string{"id": fmt.Sprintf("%d", id)}
	const path = "device/{id}/stats"
	raw, err := c.transport.DoCtx(ctx, path, nil, pathParams)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.StatsResponse](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
