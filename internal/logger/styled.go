package logger

import (
	"fmt"
	"log/slog"

	"github.com/thushan/pigate/theme"
)

// StyledLogger wraps slog.Logger with theme-aware formatting for the
// handful of message shapes the gateway logs often enough to warrant a
// helper: route/model/request-id highlighting and counted summaries.
type StyledLogger struct {
	logger *slog.Logger
	Theme  *theme.Theme
}

func NewStyledLogger(log *slog.Logger, t *theme.Theme) *StyledLogger {
	return &StyledLogger{logger: log, Theme: t}
}

func NewWithTheme(cfg *Config) (*slog.Logger, *StyledLogger, func(), error) {
	log, cleanup, err := New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return log, NewStyledLogger(log, theme.GetTheme(cfg.Theme)), cleanup, nil
}

func (sl *StyledLogger) Debug(msg string, args ...any) { sl.logger.Debug(msg, args...) }
func (sl *StyledLogger) Info(msg string, args ...any)  { sl.logger.Info(msg, args...) }
func (sl *StyledLogger) Warn(msg string, args ...any)  { sl.logger.Warn(msg, args...) }
func (sl *StyledLogger) Error(msg string, args ...any) { sl.logger.Error(msg, args...) }

func (sl *StyledLogger) InfoWithCount(msg string, count int, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Highlight.Sprint("(", count, ")"))
	sl.logger.Info(styledMsg, args...)
}

// InfoWithRoute highlights an HTTP route in the message, following the
// same convention as InfoWithCount for highlighting a dynamic value.
func (sl *StyledLogger) InfoWithRoute(msg string, route string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Accent.Sprint(route))
	sl.logger.Info(styledMsg, args...)
}

func (sl *StyledLogger) WarnWithRoute(msg string, route string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Accent.Sprint(route))
	sl.logger.Warn(styledMsg, args...)
}

func (sl *StyledLogger) ErrorWithRoute(msg string, route string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Accent.Sprint(route))
	sl.logger.Error(styledMsg, args...)
}

func (sl *StyledLogger) GetUnderlying() *slog.Logger {
	return sl.logger
}

func (sl *StyledLogger) WithRequestID(requestID string) *StyledLogger {
	return sl.With("request_id", requestID)
}

func (sl *StyledLogger) With(args ...any) *StyledLogger {
	return &StyledLogger{
		logger: sl.logger.With(args...),
		Theme:  sl.Theme,
	}
}
