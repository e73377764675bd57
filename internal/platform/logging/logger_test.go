package logging

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/greeter/internal/platform/timeutil"
)

// captureStdout returns everything logFn writes through the process logger.
func captureStdout(t *testing.T, logFn func(*zap.Logger)) string {
	t.Helper()
	resetLoggerForTest()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer func() { _ = r.Close() }()

	origStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	logger := Logger()
	logFn(logger)
	_ = logger.Sync()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read log output: %v", err)
	}
	return strings.TrimSpace(string(data))
}

func captureEntry(t *testing.T, logFn func(*zap.Logger)) map[string]any {
	t.Helper()
	line := captureStdout(t, logFn)
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to unmarshal log JSON %q: %v", line, err)
	}
	return payload
}

func resetLoggerForTest() {
	loggerOnce = sync.Once{}
	baseLogger = nil
	loggerErr = nil
	level.SetLevel(zapcore.InfoLevel)
}

func TestLoggerStructuredOutput(t *testing.T) {
	payload := captureEntry(t, func(l *zap.Logger) {
		l.Info("server listening", zap.String("addr", ":8080"))
	})

	if got := payload["severity"]; got != "INFO" {
		t.Fatalf("expected severity INFO, got %v", got)
	}
	if _, exists := payload["level"]; exists {
		t.Fatalf("did not expect level field")
	}
	if got := payload["message"]; got != "server listening" {
		t.Fatalf("expected message 'server listening', got %v", got)
	}
	if got := payload["addr"]; got != ":8080" {
		t.Fatalf("expected addr ':8080', got %v", got)
	}
	ts, ok := payload["timestamp"].(string)
	if !ok {
		t.Fatalf("expected timestamp string, got %T", payload["timestamp"])
	}
	if _, err := time.Parse(timeutil.RFC3339Micros, ts); err != nil {
		t.Fatalf("timestamp is not RFC3339Micros: %v", err)
	}
	if caller, _ := payload["caller"].(string); !strings.Contains(caller, "logger_test.go") {
		t.Fatalf("expected caller to reference logger_test.go, got %q", caller)
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	out := captureStdout(t, func(l *zap.Logger) {
		l.Debug("hidden")
	})
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should not be written at info level: %s", out)
	}
}

func TestSetLevelEnablesDebug(t *testing.T) {
	defer level.SetLevel(zapcore.InfoLevel)

	out := captureStdout(t, func(l *zap.Logger) {
		if err := SetLevel("debug"); err != nil {
			t.Fatalf("SetLevel: %v", err)
		}
		l.Debug("visible")
	})
	if !strings.Contains(out, `"severity":"DEBUG"`) {
		t.Fatalf("expected DEBUG entry, got %s", out)
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	if err := SetLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoggerSingleton(t *testing.T) {
	resetLoggerForTest()

	if Logger() != Logger() {
		t.Fatal("expected Logger() to return the same instance")
	}
	if err := Err(); err != nil {
		t.Fatalf("expected nil init error, got %v", err)
	}
}

func TestEncodeSeverityMapping(t *testing.T) {
	tests := []struct {
		level    zapcore.Level
		expected string
	}{
		{zapcore.DebugLevel, "DEBUG"},
		{zapcore.InfoLevel, "INFO"},
		{zapcore.WarnLevel, "WARNING"},
		{zapcore.ErrorLevel, "ERROR"},
		{zapcore.DPanicLevel, "CRITICAL"},
		{zapcore.PanicLevel, "ALERT"},
		{zapcore.FatalLevel, "EMERGENCY"},
		{zapcore.Level(99), "DEFAULT"},
	}

	for _, tt := range tests {
		enc := &stringArrayEncoder{}
		encodeSeverity(tt.level, enc)
		if len(enc.values) != 1 || enc.values[0] != tt.expected {
			t.Fatalf("encodeSeverity(%v) = %v, want %s", tt.level, enc.values, tt.expected)
		}
	}
}

func TestEncodeTimeMicrosUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	enc := &stringArrayEncoder{}
	encodeTimeMicros(time.Date(2024, 6, 15, 12, 30, 45, 123456000, loc), enc)
	if len(enc.values) != 1 || enc.values[0] != "2024-06-15T10:30:45.123456Z" {
		t.Fatalf("unexpected encoded time: %v", enc.values)
	}
}

// stringArrayEncoder records AppendString calls and ignores everything else.
type stringArrayEncoder struct {
	zapcore.PrimitiveArrayEncoder
	values []string
}

func (e *stringArrayEncoder) AppendString(s string) { e.values = append(e.values, s) }
