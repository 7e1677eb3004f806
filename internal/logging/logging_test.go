package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},
		{" warning ", slog.LevelWarn},
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"", slog.LevelDebug},
		{"nonsense", slog.LevelDebug},
	}

	for _, tc := range cases {
		if got := levelFromString(tc.in); got != tc.want {
			t.Fatalf("levelFromString(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestComponentLoggerTagsOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Component(NewWithWriter(&buf, "info"), "poller")
	logger.Info("checking for updates")

	out := buf.String()
	if !strings.Contains(out, "component=poller") {
		t.Fatalf("output missing component tag:\n%s", out)
	}
	if !strings.Contains(out, "checking for updates") {
		t.Fatalf("output missing message:\n%s", out)
	}
}

func TestComponentNilLoggerStaysNil(t *testing.T) {
	t.Parallel()

	if Component(nil, "pipeline") != nil {
		t.Fatal("nil base logger must stay nil")
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "error")
	logger.Info("quiet")
	logger.Error("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info line leaked at error level:\n%s", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("error line missing:\n%s", out)
	}
}
