// Package logger builds the console's slog loggers and carries request-scoped
// fields through context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

type contextKey int

const (
	correlationIDKey contextKey = iota
	loggerKey
)

// Output formats accepted by Options.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Options configures a logger. Zero values log info and above as JSON to stdout.
type Options struct {
	Service string
	Level   string
	Format  string
	Writer  io.Writer
}

// ParseLevel maps a textual level to a slog.Level. The second return value
// reports whether the text was recognised; unknown text yields info.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", FormatJSON, FormatText:
		return true
	}
	return false
}

// New builds a logger tagged with the service name. Debug level also records
// the source location.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	lvl, _ := ParseLevel(opts.Level)
	ho := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(opts.Format, FormatText) {
		h = slog.NewTextHandler(w, ho)
	} else {
		h = slog.NewJSONHandler(w, ho)
	}

	l := slog.New(h)
	if opts.Service != "" {
		l = l.With(slog.String("service", opts.Service))
	}
	return l
}

// WithCorrelationID stores the request correlation id in ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the correlation id in ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// NewContext stores l in ctx.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the request-scoped logger, falling back to slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithContext decorates l with the correlation id and the active span ids
// found in ctx.
func WithContext(ctx context.Context, l *slog.Logger) *slog.Logger {
	var attrs []any
	if id := CorrelationIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("correlation_id", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}
