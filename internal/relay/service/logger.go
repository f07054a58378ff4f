package service

import (
	"context"
	"fmt"

	"github.com/storyboard-studio/storyboard-relay/internal/api/http/middleware"
	"go.uber.org/zap"
)

// Logger provides structured logging for services
type Logger struct {
	requestID string
	zl        *zap.Logger
}

// NewLogger creates a logger with request context. It writes through the
// global zap logger, which main replaces at startup.
func NewLogger(ctx context.Context) *Logger {
	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID, zl: zap.L()}
}

func (l *Logger) fields(operation string) []zap.Field {
	return []zap.Field{zap.String("request_id", l.requestID), zap.String("operation", operation)}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.zl.Error("operation failed", append(l.fields(operation), zap.Error(err))...)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.zl.Error(fmt.Sprintf(format, args...), l.fields(operation)...)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.zl.Info(fmt.Sprintf(format, args...), l.fields(operation)...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.zl.Warn(fmt.Sprintf(format, args...), l.fields(operation)...)
}
