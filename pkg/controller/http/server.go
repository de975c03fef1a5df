package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	workspaceUC interfaces.WorkspaceUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", newHealthHandler(time.Now()))

	// Workspace API for the presentation shell
	h := NewWorkspaceHandler(workspaceUC)
	router.Route("/api", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Post("/folder", h.SelectFolder)
		r.Put("/clicktag", h.SetClickTag)
		r.Post("/convert", h.Convert)
		r.Post("/preview", h.Preview)
		r.Put("/settings/api-key", h.SetAPIKey)
		r.Delete("/settings/api-key", h.DeleteAPIKey)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
