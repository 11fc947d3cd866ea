package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/virtual-input/ps2d/internal/log"
	"github.com/virtual-input/ps2d/internal/server/proxy"
)

type Proxy struct {
	ListenAddr        string        `help:"Proxy listen address" default:":3251" env:"PS2D_PROXY_ADDR"`
	UpstreamAddr      string        `help:"Upstream PS2D API server address" required:"" env:"PS2D_PROXY_UPSTREAM"`
	ConnectionTimeout time.Duration `help:"Connection timeout" default:"30s" env:"PS2D_PROXY_TIMEOUT"`
}

// Run is called by Kong when the proxy command is executed.
func (p *Proxy) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if p.UpstreamAddr == "" {
		return errors.New("upstream address is empty")
	}

	logger.Info("Starting PS2D API proxy", "listen", p.ListenAddr, "upstream", p.UpstreamAddr)
	proxySrv := proxy.New(p.ListenAddr, p.UpstreamAddr, p.ConnectionTimeout, logger, rawLogger)

	proxyErrCh := make(chan error, 1)
	go func() {
		proxyErrCh <- proxySrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down proxy server")
		_ = proxySrv.Close()
		_ = <-proxyErrCh
		return nil
	case err := <-proxyErrCh:
		return err
	}
}
