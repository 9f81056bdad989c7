// Package types provides configuration types for the journal backend.
package types

import "time"

// ServerConfig represents HTTP/WebSocket server configuration
type ServerConfig struct {
	Host           string        `json:"host" mapstructure:"host"`
	Port           int           `json:"port" mapstructure:"port"`
	WebSocketPath  string        `json:"websocketPath" mapstructure:"websocket_path"`
	ReadTimeout    time.Duration `json:"readTimeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `json:"writeTimeout" mapstructure:"write_timeout"`
	EnableMetrics  bool          `json:"enableMetrics" mapstructure:"enable_metrics"`
	MetricsPort    int           `json:"metricsPort" mapstructure:"metrics_port"`
	AllowedOrigins []string      `json:"allowedOrigins" mapstructure:"allowed_origins"`
}

// JournalConfig represents journal storage and analytics configuration
type JournalConfig struct {
	DataDir          string `json:"dataDir" mapstructure:"data_dir"`
	StartingBalance  string `json:"startingBalance" mapstructure:"starting_balance"`
	VolatilityWindow int    `json:"volatilityWindow" mapstructure:"volatility_window"`
	BreakevenPolicy  string `json:"breakevenPolicy" mapstructure:"breakeven_policy"` // "reset" or "ignore"
}

// Config is the root configuration loaded from file/env.
type Config struct {
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Journal JournalConfig `json:"journal" mapstructure:"journal"`
}
