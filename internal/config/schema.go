// Package config provides configuration loading and validation for Kick-Bot.
// It supports TOML configuration files with environment variable expansion,
// default values, and validation.
//
// Configuration structure:
//   - [telegram]: Bot token and transport timeouts
//   - [storage]: Activity store backend (MongoDB or in-memory)
//   - [moderation]: Kick pacing and proposal lifetime
//   - [metrics]: Prometheus listener
//   - [logging]: Logging level, format, and output
//
// Environment variables can be referenced using ${VAR} or ${VAR:default}
// syntax, for example: token = "${BOT_TOKEN}".
package config

// Config represents the main application configuration.
type Config struct {
	Telegram   TelegramConfig   `toml:"telegram"`
	Storage    StorageConfig    `toml:"storage"`
	Moderation ModerationConfig `toml:"moderation"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Logging    LoggingConfig    `toml:"logging"`
}

// TelegramConfig holds the bot transport settings.
type TelegramConfig struct {
	Token                  string `toml:"token"`
	LongPollTimeoutSeconds int    `toml:"long_poll_timeout_seconds"`
	SendTimeoutSeconds     int    `toml:"send_timeout_seconds"`
}

// StorageConfig selects and configures the activity store backend.
type StorageConfig struct {
	Backend  string `toml:"backend"` // "mongo" or "memory"
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ModerationConfig tunes the removal workflow.
type ModerationConfig struct {
	KickDelayMs        int `toml:"kick_delay_ms"`
	ProposalTTLMinutes int `toml:"proposal_ttl_minutes"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled    bool   `toml:"enabled"`
	ListenAddr string `toml:"listen_addr"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}
