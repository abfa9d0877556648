package config

import (
	"fmt"
	"time"
)

// ServerConfig holds settings for the HTTP and websocket server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// ReadHeaderTimeout bounds how long a client may take to send headers
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("empty listen address: %w", errInvalid)
	}
	if s.ReadHeaderTimeout < 0 || s.ShutdownTimeout < 0 {
		return fmt.Errorf("negative server timeout: %w", errInvalid)
	}
	return nil
}
