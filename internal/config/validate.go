package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/herflow/internal/models"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %s)", c.Server.ShutdownTimeout)
	}
	if c.Server.BodyLimitBytes <= 0 {
		return fmt.Errorf("server.body_limit_bytes must be > 0 (got %d)", c.Server.BodyLimitBytes)
	}
	if strings.TrimSpace(c.Storage.DBPath) == "" {
		return fmt.Errorf("storage.db_path is required")
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}

	if !models.Theme(strings.ToLower(strings.TrimSpace(c.App.DefaultTheme))).IsValid() {
		return fmt.Errorf("app.default_theme must be %q or %q (got %q)", models.ThemeModern, models.ThemeRetro, c.App.DefaultTheme)
	}
	if _, err := time.LoadLocation(strings.TrimSpace(c.App.TimeZone)); err != nil {
		return fmt.Errorf("app.time_zone: %w", err)
	}

	return nil
}

// Location resolves the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	name := strings.TrimSpace(c.App.TimeZone)
	if name == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

// Theme returns the normalized default theme.
func (c *Config) Theme() models.Theme {
	return models.Theme(strings.ToLower(strings.TrimSpace(c.App.DefaultTheme)))
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
