// Package logging builds the leveled slog.Logger used by the CLI and the
// simulator.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/san-kum/episim/internal/epidemic"
)

// LevelTrace sits below Debug and enables per-step output.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a level name to a slog.Level. Supported values are
// "error", "warn", "info", "debug" and "trace" (case-insensitive); anything
// else means info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// StepLogger is an epidemic observer that logs every vector at trace level.
type StepLogger struct {
	logger *slog.Logger
	model  string
}

func NewStepLogger(logger *slog.Logger, model string) *StepLogger {
	return &StepLogger{logger: logger, model: model}
}

func (l *StepLogger) OnStep(x epidemic.State, t float64) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, LevelTrace) {
		return
	}
	labels, counts := x.Labels(), x.Counts()
	args := make([]any, 0, 2*len(labels)+4)
	args = append(args, "model", l.model, "t", t)
	for i, label := range labels {
		args = append(args, label, counts[i])
	}
	l.logger.Log(ctx, LevelTrace, "step", args...)
}
