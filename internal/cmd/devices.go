package cmd

import (
	"fmt"
	"log/slog"
)

// Devices groups device management subcommands against a running server.
type Devices struct {
	List   DevicesList   `cmd:"" default:"1" help:"List devices"`
	Add    DevicesAdd    `cmd:"" help:"Add a device"`
	Remove DevicesRemove `cmd:"" help:"Remove a device"`
	Stats  DevicesStats  `cmd:"" help:"Show a device's diagnostic counters"`
}

type DevicesList struct {
	Addr     string `help:"PS2D API server address" default:"localhost:3252" env:"PS2D_ADDR"`
	Password string `help:"API password" env:"PS2D_PASSWORD"`
}

func (d *DevicesList) Run(logger *slog.Logger) error {
	c := client(d.Addr, d.Password)
	resp, err := c.DevicesList()
	if err != nil {
		return err
	}
	if len(resp.Devices) == 0 {
		fmt.Println("no devices")
		return nil
	}
	for _, dev := range resp.Devices {
		fmt.Printf("%d\t%s\t%s\t%s\n", dev.ID, dev.Type, dev.Name, dev.Phys)
	}
	return nil
}

type DevicesAdd struct {
	Addr     string `help:"PS2D API server address" default:"localhost:3252" env:"PS2D_ADDR"`
	Password string `help:"API password" env:"PS2D_PASSWORD"`
	Type     string `arg:"" help:"Device type (keyboard, mouse)"`
	Name     string `help:"Device name (defaults to the type)"`
}

func (d *DevicesAdd) Run(logger *slog.Logger) error {
	c := client(d.Addr, d.Password)
	dev, err := c.DeviceAdd(d.Type, d.Name)
	if err != nil {
		return err
	}
	fmt.Printf("created device %d (%s, %s)\n", dev.ID, dev.Type, dev.Phys)
	return nil
}

type DevicesRemove struct {
	Addr     string `help:"PS2D API server address" default:"localhost:3252" env:"PS2D_ADDR"`
	Password string `help:"API password" env:"PS2D_PASSWORD"`
	Device   uint32 `arg:"" help:"Device ID"`
}

func (d *DevicesRemove) Run(logger *slog.Logger) error {
	c := client(d.Addr, d.Password)
	resp, err := c.DeviceRemove(d.Device)
	if err != nil {
		return err
	}
	fmt.Printf("removed device %d\n", resp.ID)
	return nil
}

type DevicesStats struct {
	Addr     string `help:"PS2D API server address" default:"localhost:3252" env:"PS2D_ADDR"`
	Password string `help:"API password" env:"PS2D_PASSWORD"`
	Device   uint32 `arg:"" help:"Device ID"`
}

func (d *DevicesStats) Run(logger *slog.Logger) error {
	c := client(d.Addr, d.Password)
	s, err := c.Stats(d.Device)
	if err != nil {
		return err
	}
	fmt.Printf("device %d\n", s.ID)
	fmt.Printf("  bytes in:        %d\n", s.BytesIn)
	fmt.Printf("  overflows:       %d\n", s.Overflows)
	fmt.Printf("  invalid packets: %d\n", s.InvalidPackets)
	fmt.Printf("  unmapped codes:  %d\n", s.UnmappedCodes)
	fmt.Printf("  events:          %d\n", s.Events)
	fmt.Printf("  dropped events:  %d\n", s.DroppedEvents)
	return nil
}
