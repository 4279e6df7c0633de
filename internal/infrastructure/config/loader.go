package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for env vars: PORTFOLIO_VALUE_SERVER_PORT
const EnvPrefix = "PORTFOLIO_VALUE"

// Loader handles configuration loading using Viper
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// WithConfigFile fija un archivo de configuración explícito en lugar de buscar config.yaml
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration from files and environment variables
func (l *Loader) Load() (*Config, error) {
	// 1. Configure Viper
	l.setupViper()

	// 2. Read configuration
	if err := l.v.ReadInConfig(); err != nil {
		// Without config.yaml we run on env vars and defaults
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 3. Unmarshal into struct
	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// setupViper configures Viper to read files and env vars
func (l *Loader) setupViper() {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName("config")
		l.v.SetConfigType("yaml")

		l.v.AddConfigPath("./configs")                    // Configs directory in root
		l.v.AddConfigPath("../configs")                   // For when running from cmd/
		l.v.AddConfigPath(".")                            // Current directory
		l.v.AddConfigPath("/etc/portfolio-value-service") // System (production)
	}

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	// Viper only resolves env vars for keys it already knows
	l.setDefaults()
	l.bindEnvVars()
}

// setDefaults registra en viper cada clave de la configuración por defecto
func (l *Loader) setDefaults() {
	d := GetDefaultConfig()

	l.v.SetDefault("server.port", d.Server.Port)
	l.v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	l.v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	l.v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	l.v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	l.v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)

	l.v.SetDefault("price_source.base_url", d.PriceSource.BaseURL)
	l.v.SetDefault("price_source.timeout", d.PriceSource.Timeout)
	l.v.SetDefault("price_source.max_attempts", d.PriceSource.MaxAttempts)
	l.v.SetDefault("price_source.retry_delay", d.PriceSource.RetryDelay)
	l.v.SetDefault("price_source.max_retry_delay", d.PriceSource.MaxRetryDelay)

	l.v.SetDefault("logging.level", d.Logging.Level)
	l.v.SetDefault("logging.format", d.Logging.Format)

	l.v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	l.v.SetDefault("metrics.path", d.Metrics.Path)

	l.v.SetDefault("docs.enabled", d.Docs.Enabled)

	l.v.SetDefault("development.mock_mode", d.Development.MockMode)
	l.v.SetDefault("development.debug_mode", d.Development.DebugMode)
}

// bindEnvVars maps well known unprefixed environment variables to configuration keys
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":            "PORT",
		"price_source.base_url":  "BUDA_BASE_URL",
		"price_source.timeout":   "BUDA_TIMEOUT",
		"logging.level":          "LOG_LEVEL",
		"logging.format":         "LOG_FORMAT",
		"development.mock_mode":  "MOCK_MODE",
		"development.debug_mode": "DEBUG_MODE",
	}

	for configKey, envVar := range envMappings {
		// Prefixed form first so it wins over the compatibility name
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(configKey, ".", "_"))
		_ = l.v.BindEnv(configKey, prefixed, envVar)
	}
}

// LoadForEnvironment loads the base configuration and merges config.<environment>.yaml on top
func (l *Loader) LoadForEnvironment(environment string) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if environment == "" || l.configFile != "" {
		return config, nil
	}

	l.v.SetConfigName(fmt.Sprintf("config.%s", environment))
	if err := l.v.MergeInConfig(); err != nil {
		// Missing environment file is fine
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to merge environment config: %w", err)
		}
		return config, nil
	}

	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal merged config: %w", err)
	}

	return config, nil
}

// GetEnvironment determina el entorno actual desde ENV vars
func GetEnvironment() string {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = strings.ToLower(os.Getenv("ENVIRONMENT"))
	}
	if env == "" {
		env = "development"
	}
	return env
}
