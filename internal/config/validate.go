package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if err := ValidateBaseURL(cfg.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if cfg.Backend.RequestTimeout < 0 {
		return fmt.Errorf("backend.request_timeout must be >= 0")
	}
	if cfg.Backend.MaxBodySize <= 0 {
		return fmt.Errorf("backend.max_body_size must be > 0")
	}
	if cfg.Backend.MaxIdleConns < 0 {
		return fmt.Errorf("backend.max_idle_conns must be >= 0, got %d", cfg.Backend.MaxIdleConns)
	}

	validLocales := map[string]bool{"ko": true, "en": true}
	if !validLocales[cfg.UI.Locale] {
		return fmt.Errorf("ui.locale must be 'ko' or 'en', got %q", cfg.UI.Locale)
	}
	if _, err := url.Parse(cfg.UI.ProductURL); err != nil {
		return fmt.Errorf("ui.product_url: %w", err)
	}

	validSinks := map[string]bool{"file": true, "mongodb": true}
	if len(cfg.Export.Sinks) == 0 {
		return fmt.Errorf("export.sinks must name at least one sink")
	}
	for _, s := range cfg.Export.Sinks {
		if !validSinks[strings.ToLower(s)] {
			return fmt.Errorf("export.sinks: %q is not supported (valid: file, mongodb)", s)
		}
		if strings.EqualFold(s, "mongodb") && cfg.Export.Mongo.URI == "" {
			return fmt.Errorf("export.mongo.uri is required for the mongodb sink")
		}
	}

	if cfg.Dashboard.Port < 1 || cfg.Dashboard.Port > 65535 {
		return fmt.Errorf("dashboard.port must be 1-65535, got %d", cfg.Dashboard.Port)
	}

	if cfg.Snapshot.Width <= 0 || cfg.Snapshot.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", cfg.Snapshot.Width, cfg.Snapshot.Height)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", cfg.Metrics.Path)
	}

	return nil
}

// ValidateBaseURL checks that a backend URL is absolute http(s).
func ValidateBaseURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
