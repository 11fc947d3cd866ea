package api

import "time"

// ServerConfig represents the API server configuration.
type ServerConfig struct {
	Addr              string        `help:"API server listen address" default:":3252" env:"PS2D_API_ADDR"`
	EventBufferSize   int           `help:"Per-subscriber event channel depth for event streams" default:"64" env:"PS2D_API_EVENT_BUFFER"`
	ConnectionTimeout time.Duration `kong:"-"`
	Password          string        `kong:"-"`
}
