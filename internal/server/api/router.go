package api

import (
	"context"
	"log/slog"
	"net"
	"strings"

	"github.com/virtual-input/ps2d/inputbus"
)

// Request contains route parameters and additional args from the command.
type Request struct {
	Ctx     context.Context
	Params  map[string]string
	Payload string
}

// Response holds the JSON string to return to the client.
type Response struct {
	JSON string
}

// HandlerFunc processes a request and populates the response. The logger is
// connection-scoped, enriched with remote address metadata by the server.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

// StreamHandlerFunc handles long-lived TCP connections, e.g. the event feed.
// The handler takes ownership of the connection and should close it when
// done. Returning a non-nil error indicates a terminal failure; the server
// logs it.
type StreamHandlerFunc func(conn net.Conn, dev *inputbus.Device, logger *slog.Logger) error

// Router implements simple path pattern matching with placeholders in {name}.
type Router struct {
	routes       []routeEntry
	streamRoutes []streamRouteEntry
}

type routeEntry struct {
	pattern string
	handler HandlerFunc
}

type streamRouteEntry struct {
	pattern string
	handler StreamHandlerFunc
}

// NewRouter returns a new Router instance.
func NewRouter() *Router { return &Router{} }

// Register registers a handler for a path pattern like "device/{id}/stats".
func (r *Router) Register(pattern string, handler HandlerFunc) {
	r.routes = append(r.routes, routeEntry{pattern: pattern, handler: handler})
}

// RegisterStream registers a StreamHandler for long-lived connections.
func (r *Router) RegisterStream(pattern string, handler StreamHandlerFunc) {
	r.streamRoutes = append(r.streamRoutes, streamRouteEntry{pattern: pattern, handler: handler})
}

// Match returns the HandlerFunc and params if the given path matches any
// registered pattern. Returns nil if none match.
func (r *Router) Match(path string) (HandlerFunc, map[string]string) {
	for _, rt := range r.routes {
		if params, ok := matchPattern(rt.pattern, path); ok {
			return rt.handler, params
		}
	}
	return nil, nil
}

// MatchStream returns the StreamHandler and params if the given path matches
// any registered stream pattern. Returns nil if none match.
func (r *Router) MatchStream(path string) (StreamHandlerFunc, map[string]string) {
	for _, rt := range r.streamRoutes {
		if params, ok := matchPattern(rt.pattern, path); ok {
			return rt.handler, params
		}
	}
	return nil, nil
}

// matchPattern matches a lowercased request path against a pattern, binding
// {name} segments into params. Placeholder names keep the case they were
// registered with.
func matchPattern(pattern, path string) (map[string]string, bool) {
	patParts := strings.Split(pattern, "/")
	parts := strings.Split(strings.ToLower(path), "/")
	if len(patParts) != len(parts) {
		return nil, false
	}
	params := map[string]string{}
	for i, pp := range patParts {
		if strings.HasPrefix(pp, "{") && strings.HasSuffix(pp, "}") {
			params[pp[1:len(pp)-1]] = parts[i]
			continue
		}
		if strings.ToLower(pp) != parts[i] {
			return nil, false
		}
	}
	return params, true
}
