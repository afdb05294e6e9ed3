// Package health serves the liveness endpoint hosting platforms probe.
package health

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const rootMessage = "Reminder bot is running!"

// Server is a tiny echo app answering liveness probes.
type Server struct {
	echo *echo.Echo
	addr string
	now  func() time.Time
}

// NewServer creates a liveness server on port. now stamps /healthz responses.
func NewServer(port int, now func() time.Time) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo: e,
		addr: fmt.Sprintf("0.0.0.0:%d", port),
		now:  now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.root)
	s.echo.HEAD("/", s.root)
	s.echo.GET("/healthz", s.healthz)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) root(c echo.Context) error {
	return c.String(http.StatusOK, rootMessage)
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   s.now().Format(time.RFC3339),
	})
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[health] Listening on %s", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server stopped: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
