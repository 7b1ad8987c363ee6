// Package logger builds pigate's slog.Logger: pterm-styled output for an
// attached terminal, plain JSON everywhere else (piped stdout, a
// containerised process, or the rotated log file lumberjack manages).
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thushan/pigate/internal/util"
	"github.com/thushan/pigate/theme"
)

// Config controls both output sinks New can build: the terminal handler
// (always present) and, when FileOutput is set, a lumberjack-rotated JSON
// file alongside it.
type Config struct {
	Level      string
	LogDir     string
	Theme      string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	FileOutput bool
}

const (
	// DefaultLogOutputName is the file lumberjack rotates when Config.FileOutput is set.
	DefaultLogOutputName = "pigate.log"
	// DefaultDetailedCookie marks a context whose log line should skip the
	// terminal handler - used for the full-request-body dumps that are only
	// ever worth reading back from the file sink.
	DefaultDetailedCookie = "detailed"

	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelFatal   = "fatal"
	LogLevelPanic   = "panic"
)

// New builds the logger described by cfg and a cleanup func that must run
// before the process exits, so the rotator flushes and closes its file.
func New(cfg *Config) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Level)
	appTheme := theme.GetTheme(cfg.Theme)

	terminal := newTerminalHandler(level, appTheme)

	if !cfg.FileOutput {
		return slog.New(terminal), func() {}, nil
	}

	file, closeFile, err := newFileHandler(cfg, level)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: opening file sink: %w", err)
	}

	dual := &splitHandler{terminal: terminal, file: file}
	return slog.New(dual), closeFile, nil
}

// newTerminalHandler picks pterm's styled handler when the process has a
// real terminal to write to and hasn't been told otherwise (see
// util.ShouldUseColors, which also treats a containerised process as
// non-interactive), falling back to plain JSON on stdout.
func newTerminalHandler(level slog.Level, appTheme *theme.Theme) slog.Handler {
	if !util.ShouldUseColors() {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: scrubAttr,
		})
	}

	styled := pterm.DefaultLogger.
		WithLevel(toPTermLevel(level)).
		WithWriter(os.Stdout).
		WithFormatter(pterm.LogFormatterColorful).
		WithKeyStyles(map[string]pterm.Style{
			"level": *appTheme.Info,
			"msg":   *appTheme.Info,
			"time":  *appTheme.Muted,
		})

	return pterm.NewSlogHandler(styled)
}

// newFileHandler wires a JSON handler to a lumberjack rotator so the file
// sink survives long-running gateway processes without unbounded disk use.
func newFileHandler(cfg *Config, level slog.Level) (slog.Handler, func(), error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, DefaultLogOutputName),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}

	handler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: scrubAttr,
	})

	return handler, func() { _ = rotator.Close() }, nil
}

// scrubAttr reformats the timestamp key to a fixed layout and strips ANSI
// escapes that leak into attribute values from strings built for the
// styled terminal handler - a JSON log line has no business carrying them.
func scrubAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{
			Key:   "timestamp",
			Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05")),
		}
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if str := a.Value.String(); strings.ContainsRune(str, '\x1b') {
			return slog.Attr{Key: a.Key, Value: slog.StringValue(stripAnsiCodes(str))}
		}
	case slog.KindAny:
		return slog.Attr{Key: a.Key, Value: slog.StringValue(fmt.Sprintf("%v", a.Value.Any()))}
	}

	return a
}

// splitHandler fans a record out to a terminal handler and a file handler.
// A record carrying DefaultDetailedCookie skips the terminal side - large
// request/response dumps are worth keeping on disk but would flood a live
// terminal session.
type splitHandler struct {
	terminal slog.Handler
	file     slog.Handler
}

func (h *splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.terminal.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *splitHandler) Handle(ctx context.Context, record slog.Record) error {
	if !isDetailed(ctx) && h.terminal.Enabled(ctx, record.Level) {
		if err := h.terminal.Handle(ctx, record); err != nil {
			return err
		}
	}

	if h.file.Enabled(ctx, record.Level) {
		return h.file.Handle(ctx, record)
	}

	return nil
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{
		terminal: h.terminal.WithAttrs(attrs),
		file:     h.file.WithAttrs(attrs),
	}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{
		terminal: h.terminal.WithGroup(name),
		file:     h.file.WithGroup(name),
	}
}

func isDetailed(ctx context.Context) bool {
	d, ok := ctx.Value(DefaultDetailedCookie).(bool)
	return ok && d
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func toPTermLevel(level slog.Level) pterm.LogLevel {
	switch level {
	case slog.LevelDebug:
		return pterm.LogLevelTrace
	case slog.LevelInfo:
		return pterm.LogLevelInfo
	case slog.LevelWarn:
		return pterm.LogLevelWarn
	case slog.LevelError:
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}
