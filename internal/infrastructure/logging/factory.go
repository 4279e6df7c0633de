package logging

import (
	"fmt"
	"io"
	"sync"
)

// LoggerFactory facilita la creación de diferentes tipos de loggers
type LoggerFactory struct {
	baseLogger Logger
}

// NewLoggerFactory crea una nueva factory de loggers
func NewLoggerFactory(config *LoggerConfig) (*LoggerFactory, error) {
	if config == nil {
		config = DefaultConfig()
	}

	baseLogger, err := NewStructuredLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create base logger: %w", err)
	}

	return &LoggerFactory{
		baseLogger: baseLogger,
	}, nil
}

// GetBaseLogger retorna el logger base
func (f *LoggerFactory) GetBaseLogger() Logger {
	return f.baseLogger
}

// UpdateLogLevel actualiza el nivel de log del logger base
func (f *LoggerFactory) UpdateLogLevel(level LogLevel) {
	f.baseLogger.SetLevel(level)
}

// LoggerSet contiene todos los loggers especializados
type LoggerSet struct {
	Base        Logger
	HTTP        HTTPLogger
	ExternalAPI ExternalAPILogger
	Business    BusinessLogger
	Security    SecurityLogger
}

// GetLoggerSet retorna un set completo de loggers especializados
func (f *LoggerFactory) GetLoggerSet() *LoggerSet {
	return &LoggerSet{
		Base:        f.baseLogger,
		HTTP:        NewHTTPLogger(f.baseLogger),
		ExternalAPI: NewExternalAPILogger(f.baseLogger),
		Business:    NewBusinessLogger(f.baseLogger),
		Security:    NewSecurityLogger(f.baseLogger),
	}
}

var (
	globalMu      sync.RWMutex
	globalFactory *LoggerFactory
	globalLoggers *LoggerSet
)

// InitializeGlobalLoggers inicializa los loggers globales
func InitializeGlobalLoggers(config *LoggerConfig) error {
	factory, err := NewLoggerFactory(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global loggers: %w", err)
	}

	globalMu.Lock()
	globalFactory = factory
	globalLoggers = factory.GetLoggerSet()
	globalMu.Unlock()
	return nil
}

// GetGlobalLoggers retorna todos los loggers globales, creando unos por defecto si hace falta
func GetGlobalLoggers() *LoggerSet {
	globalMu.RLock()
	loggers := globalLoggers
	globalMu.RUnlock()
	if loggers != nil {
		return loggers
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLoggers == nil {
		// DefaultConfig always validates
		factory, _ := NewLoggerFactory(DefaultConfig())
		globalFactory = factory
		globalLoggers = factory.GetLoggerSet()
	}
	return globalLoggers
}

// GetGlobalLogger retorna el logger base global
func GetGlobalLogger() Logger {
	return GetGlobalLoggers().Base
}

// SetGlobalLogLevel actualiza el nivel de log global
func SetGlobalLogLevel(level LogLevel) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalFactory != nil {
		globalFactory.UpdateLogLevel(level)
	}
}

// NewTestingConfig crea una configuración para tests que escribe en el writer indicado
func NewTestingConfig(output io.Writer) *LoggerConfig {
	return NewConfig(DefaultServiceName, "test", "testing").
		WithLevel(LevelDebug).
		WithFormat(FormatJSON).
		WithOutput(output)
}
