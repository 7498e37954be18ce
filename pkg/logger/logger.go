package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config configures a logger.
type Config struct {
	// Output receives log records. Defaults to os.Stdout.
	Output io.Writer `koanf:"-"`

	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `koanf:"level"`

	// Format is json or text. Defaults to json.
	Format string `koanf:"format"`

	// Component is attached to every record when set.
	Component string `koanf:"component"`

	Sentry SentryConfig `koanf:"sentry"`
}

// New creates a logger from cfg. Context extractors are applied to every
// destination, including Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	handler := localHandler(cfg)

	if sh, ok := newSentryHandler(cfg.Sentry, handler); ok {
		handler = newFanout(handler, sh)
	}

	l := slog.New(newContextHandler(handler, extractors...))
	if cfg.Component != "" {
		l = l.With(slog.String("component", cfg.Component))
	}
	return l
}

// NewNope creates a logger that discards everything.
// Packages use it as the default when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a level name to slog.Level.
// Unknown names resolve to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func localHandler(cfg Config) slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, FormatText) {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
