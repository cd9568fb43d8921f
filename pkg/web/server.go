// Package web serves the demo over HTTP: the signaling relay endpoint, the
// action API, the live state stream and the static page.
package web

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-handcar/internal/log"
	"github.com/teslashibe/go-handcar/pkg/hub"
	"github.com/teslashibe/go-handcar/pkg/session"
	"github.com/teslashibe/go-handcar/pkg/signaling"
)

// Options configures a Server.
type Options struct {
	Port      string
	StaticDir string
	RelayPath string

	// Session receives actions and supplies state.
	Session *session.Session

	// States fans out session snapshots to websocket clients.
	States *hub.Hub

	// Negotiator forwards browser offers upstream. Nil disables the relay.
	Negotiator signaling.Negotiator

	// AccessLog enables the per-request log line.
	AccessLog bool
}

// Server is the demo HTTP server.
type Server struct {
	app        *fiber.App
	port       string
	session    *session.Session
	states     *hub.Hub
	negotiator signaling.Negotiator
	logger     *slog.Logger
}

// NewServer creates the server and registers its routes.
func NewServer(opts Options) *Server {
	if opts.RelayPath == "" {
		opts.RelayPath = "/rtc-connect"
	}
	s := &Server{
		port:       opts.Port,
		session:    opts.Session,
		states:     opts.States,
		negotiator: opts.Negotiator,
		logger:     log.With("component", "web"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "handcar",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{Output: log.Output()}))
	}

	// CORS for local development
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Signaling relay: raw SDP in, raw SDP out
	app.Post(opts.RelayPath, s.handleRelay)

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/actions", s.handleListActions)
	api.Post("/actions/:name", s.handleInvoke)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	if opts.StaticDir != "" {
		if info, err := os.Stat(opts.StaticDir); err == nil && info.IsDir() {
			app.Static("/", opts.StaticDir)
		}
	}

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("listening", "url", "http://localhost:"+s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
