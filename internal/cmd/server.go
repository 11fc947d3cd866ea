package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/configpaths"
	"github.com/virtual-input/ps2d/internal/log"
	"github.com/virtual-input/ps2d/internal/server/api"
	"github.com/virtual-input/ps2d/internal/server/api/auth"
	"github.com/virtual-input/ps2d/internal/server/api/handler"
	"github.com/virtual-input/ps2d/internal/util"
)

const keyFileName = "ps2d.key.txt"

// Version is stamped at build time via -ldflags.
var Version = "dev"

type Server struct {
	ApiServerConfig   api.ServerConfig `embed:"" prefix:"api."`
	ConnectionTimeout time.Duration    `help:"Connection operation timeout" default:"30s" env:"PS2D_CONNECTION_TIMEOUT"`
	DefaultDevices    bool             `help:"Create a keyboard and a mouse device on startup" default:"true" negatable:"" env:"PS2D_DEFAULT_DEVICES"`
	NoAuth            bool             `help:"Disable password authentication" default:"false" env:"PS2D_NO_AUTH"`
}

// Run is called by Kong when the server command is executed.
func (s *Server) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger)
}

func (s *Server) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	s.ApiServerConfig.ConnectionTimeout = s.ConnectionTimeout

	logger.Info("Starting PS2D server", "addr", s.ApiServerConfig.Addr)

	if !s.NoAuth {
		if err := s.loadOrCreatePassword(logger); err != nil {
			return err
		}
	}

	if s.ApiServerConfig.Addr == "" {
		logger.Error("API server address must be set (default :3252).")
		return fmt.Errorf("API server address must be set (default :3252)")
	}

	bus := inputbus.New(logger)
	defer bus.Close()

	apiSrv := api.New(bus, s.ApiServerConfig.Addr, s.ApiServerConfig, logger, rawLogger)
	r := apiSrv.Router()
	r.Register("ping", handler.Ping(Version))
	r.Register("device/list", handler.DevicesList(bus))
	r.Register("device/add", handler.DeviceAdd(bus))
	r.Register("device/{id}/remove", handler.DeviceRemove(bus))
	r.Register("device/{id}/inject", handler.Inject(bus, rawLogger))
	r.Register("device/{id}/stats", handler.Stats(bus))
	r.RegisterStream("device/{id}/events", api.EventsStreamHandler(bus, s.ApiServerConfig.EventBufferSize))

	if s.DefaultDevices {
		if err := seedDefaultDevices(bus, logger); err != nil {
			return err
		}
	}

	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		if util.IsRunFromGUI() {
			fmt.Println("Press any key to exit...")
			var b []byte = make([]byte, 1)
			_, _ = os.Stdin.Read(b)
		}
		return err
	}

	if util.IsRunFromGUI() {
		go (func() {
			time.Sleep(250 * time.Millisecond)
			util.HideConsoleWindow()
		})()
	}

	<-ctx.Done()
	apiSrv.Close()
	return nil
}

// loadOrCreatePassword reads the persisted API password, generating and
// storing a fresh one on first run.
func (s *Server) loadOrCreatePassword(logger *slog.Logger) error {
	keyFileDir, err := configpaths.DefaultConfigDir()
	if err != nil {
		return fmt.Errorf("failed to resolve key file path: %w", err)
	}
	keyFilePath := path.Join(keyFileDir, keyFileName)
	if pwd, err := os.ReadFile(keyFilePath); err == nil {
		s.ApiServerConfig.Password = strings.TrimSpace(string(pwd))
		return nil
	}
	newPwd, err := auth.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate new API password: %w", err)
	}
	if err := os.MkdirAll(keyFileDir, 0o700); err != nil {
		return fmt.Errorf("failed to create config dir for key file: %w", err)
	}
	if err := os.WriteFile(keyFilePath, []byte(newPwd), 0o600); err != nil {
		return fmt.Errorf("failed to write new API password to file: %w", err)
	}
	s.ApiServerConfig.Password = newPwd
	logger.Info("Generated API server password", "path", keyFilePath)
	logger.Info("-------------------------------------")
	logger.Info("Your PS2D API server password is:")
	logger.Info("-------------------------------------")
	logger.Info(newPwd)
	logger.Info("-------------------------------------")
	logger.Info("You can change this password at any time by editing the file")
	return nil
}

func seedDefaultDevices(bus *inputbus.Bus, logger *slog.Logger) error {
	for _, devType := range []string{"keyboard", "mouse"} {
		reg := api.GetRegistration(devType)
		if reg == nil {
			return fmt.Errorf("device type %q is not registered", devType)
		}
		dev, err := bus.Add(reg.Config(devType))
		if err != nil {
			return fmt.Errorf("failed to create default %s: %w", devType, err)
		}
		info := dev.Info()
		logger.Info("Created default device", "id", info.ID, "type", info.Type, "phys", info.Phys)
	}
	return nil
}
