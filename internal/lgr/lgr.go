// Package lgr provides the process-wide structured logger.
package lgr

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mdobak/go-xerrors"
	"github.com/natefinch/lumberjack"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the package-wide logger used throughout the service.
var Logger *slog.Logger

func init() {
	fileSink := &lumberjack.Logger{
		Filename:   "visiongrid.log",
		MaxSize:    20, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	}

	Logger = slog.New(&multiHandler{
		console: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		file:    slog.NewJSONHandler(fileSink, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

// Wrap annotates err with a stack trace, matching the xerrors usage already
// present at the teacher's error-construction sites.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return xerrors.New(err)
}

// FromContext returns Logger with a trace_id attribute attached when ctx
// carries a span with a valid span context.
func FromContext(ctx context.Context) *slog.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return Logger
	}
	return Logger.With(slog.String("trace_id", span.SpanContext().TraceID().String()))
}

// multiHandler fans a log record out to a colorized console handler and a
// rotating-file JSON handler.
type multiHandler struct {
	console slog.Handler
	file    slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.file.Handle(ctx, r.Clone()); err != nil {
		return err
	}
	return h.handleConsole(ctx, r)
}

func (h *multiHandler) handleConsole(ctx context.Context, r slog.Record) error {
	colorize(r.Level)("%s ", r.Level.String())
	color.Unset()
	return h.console.Handle(ctx, r)
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &multiHandler{console: h.console.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return &multiHandler{console: h.console.WithGroup(name), file: h.file.WithGroup(name)}
}

func colorize(level slog.Level) func(format string, a ...interface{}) {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed).PrintfFunc()
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow).PrintfFunc()
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen).PrintfFunc()
	default:
		return color.New(color.FgCyan).PrintfFunc()
	}
}

var _ io.Writer = (*lumberjack.Logger)(nil)
