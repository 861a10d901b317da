package web

import (
	"context"

	"bracket-viewer/api/api"
	"bracket-viewer/api/ratelimit"
)

// Config holds the configuration for the web server
type Config struct {
	Addr    string
	API     *api.API
	Source  string                  // Backend base url, webhook events for other sources are ignored
	Limiter *ratelimit.KeyedLimiter // Limits skips per viewer, nil disables limiting
	// Lifetime bounds background work started by handlers. Start sets it to its own context when nil
	Lifetime context.Context
}

// Server is the HTTP server that serves the bracket to viewers and receives tournament webhooks
type Server struct {
	api     *api.API
	source  string
	limiter *ratelimit.KeyedLimiter
	// lifetime is cancelled when the server shuts down; webhook refreshes derive from it
	lifetime context.Context
}

// NewServer creates a server from the configuration
func NewServer(cfg Config) *Server {
	lifetime := cfg.Lifetime
	if lifetime == nil {
		lifetime = context.Background()
	}
	return &Server{
		api:      cfg.API,
		source:   cfg.Source,
		limiter:  cfg.Limiter,
		lifetime: lifetime,
	}
}
