package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validatePriceSource(config.PriceSource); err != nil {
		return fmt.Errorf("price source config validation failed: %w", err)
	}

	if config.Server.WriteTimeout <= config.PriceSource.Timeout {
		return fmt.Errorf("server write_timeout (%v) must be greater than price_source timeout (%v)",
			config.Server.WriteTimeout, config.PriceSource.Timeout)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	if err := v.validateMetrics(config.Metrics); err != nil {
		return fmt.Errorf("metrics config validation failed: %w", err)
	}

	return nil
}

// validateServer valida la configuración del servidor
func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive, got: %v", config.ReadTimeout)
	}

	if config.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be positive, got: %v", config.WriteTimeout)
	}

	if config.IdleTimeout <= 0 {
		return fmt.Errorf("idle_timeout must be positive, got: %v", config.IdleTimeout)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	if config.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got: %d", config.MaxBodyBytes)
	}

	return nil
}

// validatePriceSource valida la configuración del exchange
func (v *Validator) validatePriceSource(config PriceSourceConfig) error {
	if err := v.validateURL(config.BaseURL, "price_source base_url"); err != nil {
		return err
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("price_source timeout must be positive, got: %v", config.Timeout)
	}

	if config.Timeout > 5*time.Minute {
		return fmt.Errorf("price_source timeout too long: %v, max 5 minutes", config.Timeout)
	}

	if config.MaxAttempts < 1 || config.MaxAttempts > 10 {
		return fmt.Errorf("price_source max_attempts must be between 1-10, got: %d", config.MaxAttempts)
	}

	// Los delays solo importan si hay reintentos
	if config.MaxAttempts > 1 {
		if config.RetryDelay <= 0 {
			return fmt.Errorf("price_source retry_delay must be positive when retries are enabled, got: %v", config.RetryDelay)
		}
		if config.MaxRetryDelay < config.RetryDelay {
			return fmt.Errorf("price_source max_retry_delay (%v) must be >= retry_delay (%v)", config.MaxRetryDelay, config.RetryDelay)
		}
	}

	return nil
}

// validateLogging valida la configuración de logging
func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !lo.Contains(validLevels, strings.ToLower(config.Level)) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !lo.Contains(validFormats, strings.ToLower(config.Format)) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateMetrics valida la configuración de métricas
func (v *Validator) validateMetrics(config MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if !strings.HasPrefix(config.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got: %q", config.Path)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}
