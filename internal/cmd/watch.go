package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/virtual-input/ps2d/apitypes"
)

// Watch prints a device's decoded events as they happen.
type Watch struct {
	Addr     string `help:"PS2D API server address" default:"localhost:3252" env:"PS2D_ADDR"`
	Password string `help:"API password" env:"PS2D_PASSWORD"`
	Device   uint32 `arg:"" help:"Device ID"`
	NoColor  bool   `help:"Disable colored output"`
	Sync     bool   `help:"Also print sync markers"`
}

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiDim    = "\x1b[2m"
)

func (w *Watch) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client(w.Addr, w.Password)
	stream, err := c.OpenEvents(ctx, w.Device)
	if err != nil {
		return err
	}
	defer stream.Close()

	color := !w.NoColor && term.IsTerminal(int(os.Stdout.Fd()))

	evCh, errCh := stream.StartReading(ctx, 64)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-evCh:
			if !ok {
				return nil
			}
			w.printEvent(ev, color)
		case err := <-errCh:
			if err == nil || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func (w *Watch) printEvent(ev apitypes.EventRecord, color bool) {
	var line, tint string
	switch ev.Type {
	case "key":
		tint = ansiGreen
		line = fmt.Sprintf("[dev %d] key    %-12s %s", ev.Device, ev.Code, pressedWord(ev.Pressed))
	case "button":
		tint = ansiYellow
		line = fmt.Sprintf("[dev %d] button %-12s %s", ev.Device, ev.Code, pressedWord(ev.Pressed))
	case "motion":
		tint = ansiCyan
		line = fmt.Sprintf("[dev %d] motion %-12s %+d", ev.Device, ev.Code, ev.Delta)
	case "sync":
		if !w.Sync {
			return
		}
		tint = ansiDim
		line = fmt.Sprintf("[dev %d] ---- sync ----", ev.Device)
	default:
		line = fmt.Sprintf("[dev %d] %s %s", ev.Device, ev.Type, ev.Code)
	}
	if color && tint != "" {
		fmt.Println(tint + line + ansiReset)
	} else {
		fmt.Println(line)
	}
}

func pressedWord(pressed bool) string {
	if pressed {
		return "pressed"
	}
	return "released"
}
