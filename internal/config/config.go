package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// AppName names the config directory and env prefix.
const AppName = "reviewscope"

// Config is the root configuration for ReviewScope.
type Config struct {
	Backend   BackendConfig   `mapstructure:"backend"   yaml:"backend"`
	UI        UIConfig        `mapstructure:"ui"        yaml:"ui"`
	Export    ExportConfig    `mapstructure:"export"    yaml:"export"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"  yaml:"snapshot"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"   yaml:"metrics"`
}

// BackendConfig controls the sentiment backend client.
type BackendConfig struct {
	BaseURL         string        `mapstructure:"base_url"          yaml:"base_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"   yaml:"request_timeout"` // 0 = no timeout
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	UserAgent       string        `mapstructure:"user_agent"        yaml:"user_agent"`
}

// UIConfig controls rendering.
type UIConfig struct {
	Locale     string `mapstructure:"locale"      yaml:"locale"` // ko, en
	ProductURL string `mapstructure:"product_url" yaml:"product_url"`
	Color      bool   `mapstructure:"color"       yaml:"color"`
}

// ExportConfig controls where exported CSV files are delivered.
type ExportConfig struct {
	Sinks      []string    `mapstructure:"sinks"       yaml:"sinks"` // file, mongodb
	OutputPath string      `mapstructure:"output_path" yaml:"output_path"`
	Mongo      MongoConfig `mapstructure:"mongo"       yaml:"mongo"`
}

// MongoConfig controls the MongoDB export archive.
type MongoConfig struct {
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// DashboardConfig controls the served web dashboard.
type DashboardConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// SnapshotConfig controls headless rendering of the dashboard.
type SnapshotConfig struct {
	Width   int           `mapstructure:"width"   yaml:"width"`
	Height  int           `mapstructure:"height"  yaml:"height"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Stealth bool          `mapstructure:"stealth" yaml:"stealth"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// MetricsConfig controls the Prometheus text endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:         "http://localhost:5153",
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    10,
			UserAgent:       "ReviewScope/" + Version,
		},
		UI: UIConfig{
			Locale:     "ko",
			ProductURL: "https://www.amazon.com/dp/",
		},
		Export: ExportConfig{
			Sinks:      []string{"file"},
			OutputPath: "./output",
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   AppName,
				Collection: "exports",
			},
		},
		Dashboard: DashboardConfig{
			Port: 8080,
		},
		Snapshot: SnapshotConfig{
			Width:   1280,
			Height:  1600,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
