package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	PriceSource PriceSourceConfig `yaml:"price_source" mapstructure:"price_source"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
	Docs        DocsConfig        `yaml:"docs" mapstructure:"docs"`
	Development DevelopmentConfig `yaml:"development" mapstructure:"development"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// PriceSourceConfig contains the exchange ticker API configuration.
// MaxAttempts = 1 means a single outbound call per valuation.
type PriceSourceConfig struct {
	BaseURL       string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxAttempts   int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	MaxRetryDelay time.Duration `yaml:"max_retry_delay" mapstructure:"max_retry_delay"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// MetricsConfig controla la exposición de métricas Prometheus
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// DocsConfig controla la documentación Swagger
type DocsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// DevelopmentConfig contiene configuraciones para desarrollo y testing
type DevelopmentConfig struct {
	MockMode  bool `yaml:"mock_mode" mapstructure:"mock_mode"`
	DebugMode bool `yaml:"debug_mode" mapstructure:"debug_mode"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		PriceSource: PriceSourceConfig{
			BaseURL:       "https://www.buda.com/api/v2",
			Timeout:       30 * time.Second,
			MaxAttempts:   1,
			RetryDelay:    200 * time.Millisecond,
			MaxRetryDelay: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Docs: DocsConfig{
			Enabled: true,
		},
		Development: DevelopmentConfig{
			MockMode:  false,
			DebugMode: false,
		},
	}
}
