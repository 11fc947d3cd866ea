package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/virtual-input/ps2d/apiclient"
)

// Inject sends raw byte values into a device on a running server.
type Inject struct {
	Addr     string   `help:"PS2D API server address" default:"localhost:3252" env:"PS2D_ADDR"`
	Password string   `help:"API password" env:"PS2D_PASSWORD"`
	Device   uint32   `arg:"" help:"Device ID"`
	Bytes    []string `arg:"" help:"Byte values to inject (decimal or base-prefixed, e.g. 0x1e)"`
}

func (i *Inject) Run(logger *slog.Logger) error {
	c := client(i.Addr, i.Password)
	resp, err := c.Inject(i.Device, strings.Join(i.Bytes, " "))
	if err != nil {
		return err
	}
	fmt.Printf("injected %d byte(s) into device %d\n", resp.Injected, resp.ID)
	return nil
}

func client(addr, password string) *apiclient.Client {
	if password != "" {
		return apiclient.NewWithPassword(addr, password)
	}
	return apiclient.New(addr)
}
