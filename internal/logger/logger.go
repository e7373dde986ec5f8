package logger

import (
	"context"
	"log/slog"
	"os"
)

var log *slog.Logger

type ctxKey struct{}

// Init инициализирует глобальный логгер.
// env: "development" или "production".
func Init(env string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if env == "development" {
		// Development: читаемый текстовый формат
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Production: JSON формат для парсинга
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// GetLogger возвращает глобальный логгер.
func GetLogger() *slog.Logger {
	if log == nil {
		// Fallback если Init не вызван
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует ошибку и завершает процесс.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With создает логгер с дополнительными полями.
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithRequestID кладет в контекст логгер с привязанным request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, With("request_id", requestID))
}

// FromContext возвращает логгер запроса или глобальный.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return GetLogger()
}

// JobLog логирует результат прогона фоновой джобы.
func JobLog(job string, total, success, failed int, err error) {
	fields := []any{
		"job", job,
		"total", total,
		"success", success,
		"failed", failed,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("job run failed", fields...)
	} else {
		GetLogger().Info("job run completed", fields...)
	}
}
