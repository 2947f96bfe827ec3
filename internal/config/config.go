// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Server holds the server tunables. The listen port comes from the command
// line; everything else is read from CHAT_* environment variables.
type Server struct {
	// HistorySize is how many recent messages newcomers receive.
	HistorySize int `envconfig:"HISTORY_SIZE" default:"50"`
	// MaxParticipants caps the room membership. Zero means unlimited.
	MaxParticipants int `envconfig:"MAX_PARTICIPANTS" default:"0"`
	// WebSocketAddr, when set (e.g. ":8081"), additionally serves the same
	// room over WebSocket.
	WebSocketAddr string `envconfig:"WS_ADDR"`
}

// LoadServer reads the server configuration from the environment.
func LoadServer() (Server, error) {
	var cfg Server
	if err := envconfig.Process("chat", &cfg); err != nil {
		return Server{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.HistorySize <= 0 {
		return Server{}, fmt.Errorf("history size must be positive, got %d", cfg.HistorySize)
	}
	return cfg, nil
}
