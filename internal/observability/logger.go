package observability

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger тонкая обёртка над slog с вызовами вида Info(msg, "key", value, ...)
type Logger struct {
	slog   *slog.Logger
	closer io.Closer
}

// NewLogger пишет JSON-записи в файл с ротацией. Без пути логи отбрасываются,
// чтобы stderr оставался только для фатальной ошибки.
func NewLogger(logPath, logLevel string, maxSizeMB, maxBackups int) *Logger {
	if logPath == "" {
		return newLogger(io.Discard, logLevel, nil)
	}

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	return newLogger(rotator, logLevel, rotator)
}

// Nop возвращает логгер, который ничего не пишет
func Nop() *Logger {
	return newLogger(io.Discard, "error", nil)
}

func newLogger(w io.Writer, logLevel string, closer io.Closer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(logLevel)})
	return &Logger{
		slog:   slog.New(handler),
		closer: closer,
	}
}

// ParseLevel переводит уровень из конфига; неизвестное значение даёт info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, fields ...any) {
	l.slog.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...any) {
	l.slog.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...any) {
	l.slog.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...any) {
	l.slog.Error(msg, fields...)
}

// With возвращает логгер с постоянными полями
func (l *Logger) With(fields ...any) *Logger {
	return &Logger{slog: l.slog.With(fields...), closer: l.closer}
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
