// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
scrapbook handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It acts as the composition root for the chi router.
  - Only this package and internal/cli start net/http servers.
*/
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/scrapbook/internal/auth"
	"github.com/taibuivan/scrapbook/internal/feed"
	"github.com/taibuivan/scrapbook/internal/platform/config"
	"github.com/taibuivan/scrapbook/internal/platform/constants"
	"github.com/taibuivan/scrapbook/internal/platform/middleware"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the HTTP handler sets mounted by [NewServer].
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	// Items serves /api/scrapbook-items and /api/capabilities.
	Items *scrapbook.Handler

	// Feed serves the rendered three-copy feed.
	Feed *feed.Handler

	// Admin exchanges the passphrase for a token.
	Admin *auth.Handler

	// Events upgrades to the change-notification websocket. Optional.
	Events http.Handler

	// Page renders the scrapbook HTML page. Optional.
	Page http.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. ctx bounds background middleware goroutines.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Long-lived Endpoints
	// The websocket outlives any request deadline.
	if h.Events != nil {
		r.Method(http.MethodGet, "/api/scrapbook-items/events", h.Events)
	}

	// # Application API
	r.Group(func(api chi.Router) {
		api.Use(chimw.Timeout(constants.GlobalRequestTimeout))

		api.Route("/api", func(api chi.Router) {
			api.Route("/scrapbook-items", h.Items.RegisterRoutes)
			api.Get("/capabilities", h.Items.GetCapabilities)
			api.Get("/feed", h.Feed.GetFeed)
			api.Mount("/admin", h.Admin.Routes())
		})

		if h.Page != nil {
			api.Method(http.MethodGet, "/", h.Page)
		}
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
