package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration and returns all problems found.
func (c *Config) Validate() []error {
	var errors []error

	if c.Telegram.Token == "" {
		errors = append(errors, fmt.Errorf("telegram.token is required"))
	} else if err := validateTelegramToken(c.Telegram.Token); err != nil {
		errors = append(errors, err)
	}

	switch c.Storage.Backend {
	case "mongo":
		if c.Storage.URI == "" {
			errors = append(errors, fmt.Errorf("storage.uri is required when storage.backend is 'mongo'"))
		}
		if c.Storage.Database == "" {
			errors = append(errors, fmt.Errorf("storage.database is required when storage.backend is 'mongo'"))
		}
	case "memory":
		// No further settings.
	default:
		errors = append(errors, fmt.Errorf("invalid storage.backend: %s (expected: mongo, memory)", c.Storage.Backend))
	}

	if c.Moderation.KickDelayMs < 0 {
		errors = append(errors, fmt.Errorf("moderation.kick_delay_ms must be >= 0"))
	}
	if c.Moderation.ProposalTTLMinutes < 1 {
		errors = append(errors, fmt.Errorf("moderation.proposal_ttl_minutes must be >= 1"))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	return errors
}

func validateTelegramToken(token string) error {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return fmt.Errorf("telegram token has invalid format (expected <bot_id>:<token>, got: %s)", maskSecret(token))
	}

	botID := parts[0]
	botToken := parts[1]

	if len(botID) < 3 || len(botID) > 15 {
		return fmt.Errorf("telegram token has invalid bot ID length (expected 3-15 digits, got %d)", len(botID))
	}

	for _, r := range botID {
		if r < '0' || r > '9' {
			return fmt.Errorf("telegram token has invalid bot ID (expected digits only, got: %s)", botID)
		}
	}

	if len(botToken) < 10 || len(botToken) > 50 {
		return fmt.Errorf("telegram token has invalid token length (expected 10-50 characters, got %d)", len(botToken))
	}

	return nil
}

// maskSecret hides the bulk of a secret, keeping just enough to recognize it.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
