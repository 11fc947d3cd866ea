package testing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"regexp"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/log"
	"github.com/virtual-input/ps2d/internal/server/api"
)

// StartAPIServer starts an API server on a free port and calls register to allow
// the caller to register the handlers needed for the test. Returns the address
// and a function to call when done.
func StartAPIServer(t *testing.T, register func(r *api.Router, bus *inputbus.Bus, apiSrv *api.Server)) (addr string, bus *inputbus.Bus, done func()) {
	t.Helper()
	bus = inputbus.New(slog.Default())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	addr = ln.Addr().String()
	_ = ln.Close()

	apiSrv := api.New(bus, addr, api.ServerConfig{}, slog.Default(), log.NewRaw(nil))
	if register != nil {
		register(apiSrv.Router(), bus, apiSrv)
	}
	if err := apiSrv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}

	done = func() {
		apiSrv.Close()
		bus.Close()
		time.Sleep(10 * time.Millisecond)
	}
	return addr, bus, done
}

// ExecCmd dials the API server, sends cmd and reads the full response.
// The command should not include a trailing newline. Returns the response
// without the trailing newline.
func ExecCmd(t *testing.T, addr string, cmd string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()

	// Null terminator matches API server framing
	_, _ = fmt.Fprintf(c, "%s\x00", cmd)

	r := bufio.NewReader(c)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatalf("read failed: %v", err)
	}

	result := strings.TrimSuffix(line, "\n")
	result = strings.TrimSuffix(result, "\r")
	return result
}

// ExecuteLine routes a command string through the provided router,
// emulating the API server's connection handling but without network IO.
// The data parameter is the full request data (path + optional payload).
// Returns the full response as produced by the API contract.
func ExecuteLine(t *testing.T, r *api.Router, data string) string {
	t.Helper()
	if data == "" {
		return jsonError("empty")
	}

	wsRegex := regexp.MustCompile(`\s`)
	loc := wsRegex.FindStringIndex(data)

	var path, payload string
	if loc != nil {
		path = data[:loc[0]]
		payload = data[loc[1]:]
	} else {
		path = data
		payload = ""
	}

	if path == "" {
		return jsonError("empty path")
	}

	path = strings.ToLower(path)

	if h, params := r.Match(path); h != nil {
		req := &api.Request{Params: params, Payload: payload}
		res := &api.Response{}
		if err := h(req, res, slog.Default()); err != nil {
			return jsonError(err.Error())
		}
		if res.JSON == "" {
			return ""
		}
		return res.JSON
	}
	return jsonError("unknown path")
}

func jsonError(msg string) string {
	problem := map[string]string{"error": msg}
	b, _ := json.Marshal(problem)
	return string(b)
}
