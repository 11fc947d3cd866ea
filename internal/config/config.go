// Package config defines the top-level CLI grammar parsed by kong.
package config

import (
	"github.com/virtual-input/ps2d/internal/cmd"
)

// LogConfig holds the logging flags shared by all commands.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" enum:"trace,debug,info,warn,error" default:"info" env:"PS2D_LOG_LEVEL"`
	File    string `help:"Log to this file instead of stdout/stderr" env:"PS2D_LOG_FILE"`
	RawFile string `help:"Write raw byte traffic hex dumps to this file" env:"PS2D_LOG_RAW_FILE"`
}

// CLI is the root command structure.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Path to a configuration file" env:"PS2D_CONFIG"`

	Server    cmd.Server        `cmd:"" help:"Run the PS2D server"`
	Proxy     cmd.Proxy         `cmd:"" help:"Run a transparent logging proxy in front of a PS2D server"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Devices   cmd.Devices       `cmd:"" help:"Manage devices on a running server"`
	Inject    cmd.Inject        `cmd:"" help:"Inject raw bytes into a device"`
	Watch     cmd.Watch         `cmd:"" help:"Watch a device's decoded events"`
	Install   cmd.Install       `cmd:"" help:"Install ps2d as a system service"`
	Uninstall cmd.Uninstall     `cmd:"" help:"Remove the ps2d system service"`
}
