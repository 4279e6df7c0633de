package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// StructuredLogger implementa la interfaz Logger sobre logrus
type StructuredLogger struct {
	config *LoggerConfig
	logger *logrus.Logger
}

// NewStructuredLogger crea un nuevo logger estructurado
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	l := logrus.New()
	l.SetOutput(config.Output)
	l.SetLevel(toLogrusLevel(config.Level))
	l.SetReportCaller(config.AddSource)
	l.SetFormatter(newFormatter(config.Format))

	return &StructuredLogger{
		config: config,
		logger: l,
	}, nil
}

// newFormatter crea el formatter de logrus según el formato configurado
func newFormatter(format LogFormat) logrus.Formatter {
	if format == FormatText {
		return &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		}
	}

	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	}
}

func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// log escribe una entrada enriquecida con los datos del servicio y del contexto
func (sl *StructuredLogger) log(ctx context.Context, level LogLevel, message string, fields Fields) {
	lvl := toLogrusLevel(level)
	if !sl.logger.IsLevelEnabled(lvl) {
		return
	}

	entry := sl.logger.WithFields(logrus.Fields{
		FieldService: sl.config.Service,
		FieldVersion: sl.config.Version,
		FieldEnv:     sl.config.Environment,
	})

	if requestID := GetRequestID(ctx); requestID != "" {
		entry = entry.WithField(FieldRequestID, requestID)
	}

	// Duración transcurrida desde el inicio del request, si existe
	if startTime := GetStartTime(ctx); !startTime.IsZero() {
		entry = entry.WithField(FieldDuration, float64(time.Since(startTime).Nanoseconds())/1e6)
	}

	if len(fields) > 0 {
		entry = entry.WithFields(logrus.Fields(fields))
	}

	entry.Log(lvl, message)
}

// Debug logs a debug message
func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelDebug, message, fields)
}

// Info logs an info message
func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelInfo, message, fields)
}

// Warn logs a warning message
func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelWarn, message, fields)
}

// Error logs an error message
func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelError, message, fields)
}

// WarnWithError logs a warning message with error details
func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelWarn, message, enrichWithError(fields, err))
}

// ErrorWithError logs an error message with error details
func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelError, message, enrichWithError(fields, err))
}

// enrichWithError copia los campos y agrega la información del error
func enrichWithError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}

	enriched := make(Fields, len(fields)+2)
	for k, v := range fields {
		enriched[k] = v
	}
	enriched[FieldError] = err.Error()
	enriched[FieldErrorType] = getErrorType(err)
	return enriched
}

// SetLevel establece el nivel de logging
func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.config.Level = level
	sl.logger.SetLevel(toLogrusLevel(level))
}

// GetLevel retorna el nivel actual de logging
func (sl *StructuredLogger) GetLevel() LogLevel {
	return sl.config.Level
}

// GetConfig retorna la configuración actual
func (sl *StructuredLogger) GetConfig() *LoggerConfig {
	return sl.config
}
