package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/go-chi/httplog/v3"
)

const (
	AppName = "attendance-tracker"
	Version = "v1.0.0"
)

// New builds the JSON logger shared by the request logger and the services.
func New(cfg config.AppConfig) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg)
}

func NewWithWriter(w io.Writer, cfg config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(cfg.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", AppName),
		slog.String("version", Version),
		slog.String("env", cfg.Env),
	)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
