package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type state struct{ S, I int64 }

func (x state) Labels() []string  { return []string{"S", "I"} }
func (x state) Counts() []int64   { return []int64{x.S, x.I} }
func (x state) Population() int64 { return x.S + x.I }
func (x state) Infectious() int64 { return x.I }

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"trace", LevelTrace},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("info", &buf)
	l.Debug("hidden")
	l.Info("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Errorf("missing info line: %q", out)
	}
}

func TestStepLogger(t *testing.T) {
	var buf bytes.Buffer
	NewStepLogger(NewLogger("trace", &buf), "sir").OnStep(state{S: 9, I: 1}, 2)

	out := buf.String()
	for _, want := range []string{"level=TRACE", "model=sir", "t=2", "S=9", "I=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}

	buf.Reset()
	NewStepLogger(NewLogger("debug", &buf), "sir").OnStep(state{S: 9, I: 1}, 2)
	if buf.Len() != 0 {
		t.Errorf("trace output at debug level: %q", buf.String())
	}
}
