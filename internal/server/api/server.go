package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/log"
	"github.com/virtual-input/ps2d/internal/server/api/auth"
)

// Server implements a small TCP API for managing simulated devices: byte
// injection, diagnostics, topology, and long-lived event streams.
type Server struct {
	bus    *inputbus.Bus
	addr   string
	ln     net.Listener
	logger *slog.Logger
	raw    log.RawLogger
	router *Router
	config ServerConfig
}

// New creates a new API server bound to an inputbus.Bus instance.
func New(bus *inputbus.Bus, addr string, config ServerConfig, logger *slog.Logger, raw log.RawLogger) *Server {
	a := &Server{
		bus:    bus,
		addr:   addr,
		logger: logger,
		raw:    raw,
		config: config,
	}
	a.router = NewRouter()
	return a
}

// Router returns the router used by the API server so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Bus returns the underlying input bus.
func (a *Server) Bus() *inputbus.Bus { return a.bus }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// RawLog returns the raw byte trace logger handed to inject handlers.
func (a *Server) RawLog() log.RawLogger { return a.raw }

// Start listens on the configured address and serves incoming API commands.
func (a *Server) Start() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	a.logger.Info("API listening", "addr", ln.Addr().String())
	go a.serve()
	return nil
}

// Addr returns the bound listen address, or "" before Start.
func (a *Server) Addr() string {
	if a.ln == nil {
		return ""
	}
	return a.ln.Addr().String()
}

// Close stops the API server.
func (a *Server) Close() {
	if a.ln != nil {
		_ = a.ln.Close()
	}
}

func (a *Server) serve() {
	for {
		c, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || strings.Contains(strings.ToLower(err.Error()), "use of closed network connection") {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Info("API accept error", "error", err)
			return
		}
		go a.handleConn(c)
	}
}

func (a *Server) writeError(w io.Writer, err error) {
	apiErr := WrapError(err)
	problemJSON, _ := json.Marshal(apiErr)
	fmt.Fprintf(w, "%s\n", string(problemJSON))
}

func (a *Server) writeOK(w io.Writer, rest string) {
	if rest == "" {
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "%s\n", rest)
	}
}

// authenticate performs the optional password handshake. When a password is
// configured every connection must open with the handshake; the returned
// conn is session-encrypted. Without a password the conn passes through.
func (a *Server) authenticate(conn net.Conn, r *bufio.Reader, logger *slog.Logger) (net.Conn, *bufio.Reader, error) {
	if a.config.Password == "" {
		return conn, r, nil
	}
	if ok, err := auth.IsAuthHandshake(r); err != nil || !ok {
		return nil, nil, auth.ErrHandshakeRequired
	}
	key, err := auth.DeriveKey(a.config.Password)
	if err != nil {
		return nil, nil, err
	}
	clientNonce, serverNonce, err := auth.HandleAuthHandshake(r, conn, key, false)
	if err != nil {
		return nil, nil, err
	}
	sessionKey := auth.DeriveSessionKey(key, serverNonce, clientNonce)
	wrapped, err := auth.WrapConn(conn, sessionKey)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("session authenticated")
	return wrapped, bufio.NewReader(wrapped), nil
}

func (a *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	connLogger := a.logger.With("remote", conn.RemoteAddr().String())
	r := bufio.NewReader(conn)

	conn, r, err := a.authenticate(conn, r, connLogger)
	if err != nil {
		connLogger.Error("api auth failed", "error", err)
		a.writeError(conn, err)
		return
	}
	w := conn

	// Read until null terminator
	reqData, err := r.ReadString('\x00')
	if err != nil {
		if err == io.EOF {
			connLogger.Error("api incomplete request (no null terminator)")
		} else {
			connLogger.Error("read api data", "error", err)
		}
		return
	}
	reqData = strings.TrimSuffix(reqData, "\x00")

	if reqData == "" {
		connLogger.Error("api empty command")
		a.writeError(w, ErrBadRequest("empty request"))
		return
	}

	// Split on first whitespace character
	wsRegex := regexp.MustCompile(`\s`)
	loc := wsRegex.FindStringIndex(reqData)

	var path, payload string
	if loc != nil {
		path = reqData[:loc[0]]
		payload = reqData[loc[1]:]
	} else {
		path = reqData
	}

	if path == "" {
		connLogger.Error("api empty path")
		a.writeError(w, ErrBadRequest("empty path"))
		return
	}

	path = strings.ToLower(path)
	connLogger.Info("api cmd", "path", path)

	if h, params := a.router.Match(path); h != nil {
		req := &Request{Ctx: connCtx, Params: params, Payload: payload}
		res := &Response{}
		if err := h(req, res, connLogger); err != nil {
			connLogger.Error("api handler error", "path", path, "error", err)
			a.writeError(w, err)
			return
		}
		connLogger.Debug("api handler success", "path", path)
		a.writeOK(w, res.JSON)
		return
	}

	if sh, params := a.router.MatchStream(path); sh != nil {
		connLogger.Info("api stream begin", "path", path)
		dev, err := a.deviceFromParams(params)
		if err != nil {
			a.writeError(w, err)
			return
		}
		// Stream handler takes ownership of the connection.
		if err := sh(conn, dev, connLogger); err != nil {
			connLogger.Error("api stream handler error", "path", path, "error", err)
		}
		connLogger.Info("api stream end", "path", path)
		return
	}

	connLogger.Error("api unknown path", "path", path)
	a.writeError(w, ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
}

func (a *Server) deviceFromParams(params map[string]string) (*inputbus.Device, error) {
	idStr, ok := params["id"]
	if !ok {
		return nil, ErrBadRequest("missing id parameter")
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil, ErrBadRequest(fmt.Sprintf("invalid device id: %v", err))
	}
	dev := a.bus.Get(uint32(id))
	if dev == nil {
		return nil, ErrNotFound(fmt.Sprintf("device %d not found", id))
	}
	return dev, nil
}
