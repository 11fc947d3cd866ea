package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/virtual-input/ps2d/apitypes"
)

// EventStream is a long-lived connection delivering a device's decoded
// events as JSON lines.
type EventStream struct {
	conn     net.Conn
	DeviceID uint32
	closed   bool

	readCancel context.CancelFunc
	readMu     sync.Mutex
}

// OpenEvents connects to an existing device's event feed.
// The device must already exist (use DeviceAdd first).
func (c *Client) OpenEvents(ctx context.Context, deviceID uint32) (*EventStream, error) {
	addr := c.transport.addr
	if c.transport.mock != nil {
		return nil, fmt.Errorf("stream connections not supported with mock transport")
	}

	d := &net.Dialer{Timeout: c.transport.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	if c.transport.cfg.Password != "" {
		conn, err = c.transport.authenticate(conn)
		if err != nil {
			return nil, err
		}
	}

	streamPath := fmt.Sprintf("device/%d/events\x00", deviceID)
	if _, err := conn.Write([]byte(streamPath)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}

	return &EventStream{conn: conn, DeviceID: deviceID}, nil
}

// AddDeviceAndWatch creates a device and immediately connects to its event
// feed. This is a convenience wrapper combining DeviceAdd + OpenEvents.
func (c *Client) AddDeviceAndWatch(ctx context.Context, devType, name string) (*EventStream, *apitypes.Device, error) {
	resp, err := c.DeviceAddCtx(ctx, devType, name)
	if err != nil {
		return nil, nil, err
	}

	stream, err := c.OpenEvents(ctx, resp.ID)
	if err != nil {
		return nil, resp, err
	}

	return stream, resp, nil
}

// StartReading begins asynchronously reading events in a background
// goroutine. Decoded events are delivered on the returned channel; the error
// channel receives the terminal error (io.EOF on orderly shutdown) and both
// channels are closed afterwards.
func (s *EventStream) StartReading(ctx context.Context, chSize int) (<-chan apitypes.EventRecord, <-chan error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()

	if s.readCancel != nil {
		panic("StartReading called twice on the same stream")
	}

	evCh := make(chan apitypes.EventRecord, chSize)
	errCh := make(chan error, 1)

	readCtx, cancel := context.WithCancel(ctx)
	s.readCancel = cancel

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer cancel()

		dec := json.NewDecoder(bufio.NewReader(s.conn))
		for {
			select {
			case <-readCtx.Done():
				errCh <- readCtx.Err()
				return
			default:
			}

			if s.closed {
				errCh <- io.EOF
				return
			}

			var rec apitypes.EventRecord
			if err := dec.Decode(&rec); err != nil {
				errCh <- err
				return
			}

			select {
			case evCh <- rec:
			case <-readCtx.Done():
				errCh <- readCtx.Err()
				return
			}
		}
	}()

	return evCh, errCh
}

// SetReadDeadline sets the read deadline for the underlying connection.
func (s *EventStream) SetReadDeadline(t time.Time) error {
	return s.conn.SetReadDeadline(t)
}

// Close closes the stream connection and stops any background reading.
func (s *EventStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.readMu.Lock()
	if s.readCancel != nil {
		s.readCancel()
	}
	s.readMu.Unlock()

	return s.conn.Close()
}
