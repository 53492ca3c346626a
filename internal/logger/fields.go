package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by provider clients.
const (
	FieldProvider    = "ai_provider"
	FieldModel       = "ai_model"
	FieldJobProvider = "job_provider"
)

// WithFields attaches fields to logger. A nil logger becomes a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithCommonFields tags logger with the reasoning provider and model.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, nonBlank(FieldProvider, provider, FieldModel, model)...)
}

// WithJobProvider tags logger with the job listings provider.
func WithJobProvider(logger *zap.Logger, provider string) *zap.Logger {
	return WithFields(logger, nonBlank(FieldJobProvider, provider)...)
}

// nonBlank turns key/value pairs into string fields, dropping blank values.
func nonBlank(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if value := strings.TrimSpace(pairs[i+1]); value != "" {
			fields = append(fields, zap.String(pairs[i], value))
		}
	}
	return fields
}
