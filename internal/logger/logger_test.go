package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerCreation(t *testing.T) {
	l := New("test")
	if l.Name() != "test" {
		t.Errorf("Expected logger name 'test', got '%s'", l.Name())
	}
}

func TestEnvironmentVariablePrecedence(t *testing.T) {
	t.Setenv("BEACONFLOW_LOG_LEVEL", "error")

	var buf bytes.Buffer
	l := NewWithLevel("test", "debug", &buf)

	// Env var "error" (index 0) wins over the "debug" argument.
	if l.level != 0 {
		t.Errorf("Expected level 0 (error), got %d", l.level)
	}
}

func TestLogLevelHierarchy(t *testing.T) {
	t.Setenv("BEACONFLOW_LOG_LEVEL", "")

	testCases := []struct {
		setLevel   string
		shouldShow []string
		shouldHide []string
	}{
		{
			setLevel:   "error",
			shouldShow: []string{"error"},
			shouldHide: []string{"warn", "info", "debug"},
		},
		{
			setLevel:   "warn",
			shouldShow: []string{"error", "warn"},
			shouldHide: []string{"info", "debug"},
		},
		{
			setLevel:   "info",
			shouldShow: []string{"error", "warn", "info"},
			shouldHide: []string{"debug"},
		},
		{
			setLevel:   "debug",
			shouldShow: []string{"error", "warn", "info", "debug"},
			shouldHide: []string{},
		},
	}

	emit := func(l *Logger, level string) {
		switch level {
		case "error":
			l.Error("test message")
		case "warn":
			l.Warn("test message")
		case "info":
			l.Info("test message")
		case "debug":
			l.Debug("test message")
		}
	}

	for _, tc := range testCases {
		t.Run("level_"+tc.setLevel, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithLevel("test", tc.setLevel, &buf)

			for _, level := range tc.shouldShow {
				buf.Reset()
				emit(l, level)
				if !strings.Contains(buf.String(), "test message") {
					t.Errorf("level %s should emit at configured level %s", level, tc.setLevel)
				}
			}

			for _, level := range tc.shouldHide {
				buf.Reset()
				emit(l, level)
				if buf.Len() != 0 {
					t.Errorf("level %s should be suppressed at configured level %s, got %q", level, tc.setLevel, buf.String())
				}
			}
		})
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	t.Setenv("BEACONFLOW_LOG_LEVEL", "")

	var buf bytes.Buffer
	l := NewWithLevel("test", "verbose", &buf)

	if l.level != 2 {
		t.Errorf("Expected unknown level to default to 2 (info), got %d", l.level)
	}
}

func TestDebugfFormatting(t *testing.T) {
	t.Setenv("BEACONFLOW_LOG_LEVEL", "")

	var buf bytes.Buffer
	l := NewWithLevel("telemetry", "debug", &buf)

	l.Debugf("no provider configured, dropping %s", "track")

	out := buf.String()
	if !strings.Contains(out, "[telemetry]") {
		t.Errorf("expected name prefix in output, got %q", out)
	}
	if !strings.Contains(out, "dropping track") {
		t.Errorf("expected formatted message in output, got %q", out)
	}
}
