package server

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"procesos/server/middleware"
)

// Logger глобальный структурированный логгер (JSON в stdout)
var Logger *slog.Logger

func init() {
	InitLogger("INFO")
}

// InitLogger пересоздает глобальный логгер с уровнем из LOG_LEVEL
// Неизвестный уровень трактуется как INFO
func InitLogger(level string) {
	InitLoggerTo(os.Stdout, level)
}

// InitLoggerTo направляет глобальный логгер в w и делает его логгером slog по умолчанию
func InitLoggerTo(w io.Writer, level string) {
	Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}))
	slog.SetDefault(Logger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext логгер с request_id запроса; вне запроса возвращает глобальный логгер
func FromContext(ctx context.Context) *slog.Logger {
	if reqID := middleware.GetRequestID(ctx); reqID != "" {
		return Logger.With("request_id", reqID)
	}
	return Logger
}

// LogWarn логирует предупреждение
func LogWarn(ctx context.Context, msg string, attrs ...any) {
	FromContext(ctx).WarnContext(ctx, msg, attrs...)
}

// LogInfo логирует информационное сообщение
func LogInfo(ctx context.Context, msg string, attrs ...any) {
	FromContext(ctx).InfoContext(ctx, msg, attrs...)
}

// LogDuration логирует завершение операции вместе с ее длительностью
func LogDuration(ctx context.Context, operation string, duration time.Duration, attrs ...any) {
	attrs = append(attrs, "duration_ms", duration.Milliseconds())
	FromContext(ctx).InfoContext(ctx, operation+" completed", attrs...)
}
