package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and CLI flags.
// Priority (highest to lowest): CLI flags > env vars > .env > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(AppName)
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ConfigDir returns the per-user config directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("backend.base_url", cfg.Backend.BaseURL)
	v.SetDefault("backend.request_timeout", cfg.Backend.RequestTimeout)
	v.SetDefault("backend.max_body_size", cfg.Backend.MaxBodySize)
	v.SetDefault("backend.idle_conn_timeout", cfg.Backend.IdleConnTimeout)
	v.SetDefault("backend.max_idle_conns", cfg.Backend.MaxIdleConns)
	v.SetDefault("backend.tls_insecure", cfg.Backend.TLSInsecure)
	v.SetDefault("backend.user_agent", cfg.Backend.UserAgent)

	v.SetDefault("ui.locale", cfg.UI.Locale)
	v.SetDefault("ui.product_url", cfg.UI.ProductURL)
	v.SetDefault("ui.color", cfg.UI.Color)

	v.SetDefault("export.sinks", cfg.Export.Sinks)
	v.SetDefault("export.output_path", cfg.Export.OutputPath)
	v.SetDefault("export.mongo.uri", cfg.Export.Mongo.URI)
	v.SetDefault("export.mongo.database", cfg.Export.Mongo.Database)
	v.SetDefault("export.mongo.collection", cfg.Export.Mongo.Collection)

	v.SetDefault("dashboard.port", cfg.Dashboard.Port)

	v.SetDefault("snapshot.width", cfg.Snapshot.Width)
	v.SetDefault("snapshot.height", cfg.Snapshot.Height)
	v.SetDefault("snapshot.timeout", cfg.Snapshot.Timeout)
	v.SetDefault("snapshot.stealth", cfg.Snapshot.Stealth)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.path", cfg.Metrics.Path)
}
