// ABOUTME: Echo HTTP server lifecycle: construction, start, graceful shutdown
package httpserver

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New creates a configured Echo server instance.
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	return e
}

// Server wraps the echo instance with its listen address.
type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer builds the server and registers all routes.
func NewServer(addr string, h *Handlers) *Server {
	e := New()
	h.Register(e)
	return &Server{echo: e, addr: addr}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
