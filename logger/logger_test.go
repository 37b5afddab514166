package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func jsonLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: level, Format: "json"}, "seqd", &buf)
	return l, &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("unmarshal log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json", Output: "stdout"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	if l := NewFromEnv("env-svc"); l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "LOG_NO_COLOR", "LOG_TIMESTAMP"} {
		os.Unsetenv(k)
	}
	if l := NewFromEnv("defaults-svc"); l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestJSONOutputCarriesServiceAndFields(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.Info("pipeline finished", Fields(FieldPipeline, "evens", FieldElements, 3))

	entry := lastEntry(t, buf)
	if entry["message"] != "pipeline finished" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["service"] != "seqd" {
		t.Errorf("service = %v", entry["service"])
	}
	if entry[FieldPipeline] != "evens" {
		t.Errorf("%s = %v", FieldPipeline, entry[FieldPipeline])
	}
	if entry[FieldElements] != float64(3) {
		t.Errorf("%s = %v", FieldElements, entry[FieldElements])
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	cl := l.WithComponent("runner")
	if cl.service != "seqd" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
	cl.Info("hello")
	if got := lastEntry(t, buf)[FieldComponent]; got != "runner" {
		t.Errorf("component = %v, want runner", got)
	}
}

func TestWithContext(t *testing.T) {
	l, buf := jsonLogger(t, "info")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithRunID(ctx, "run-1")

	l.WithContext(ctx).Info("ctx")
	entry := lastEntry(t, buf)

	want := map[string]string{
		FieldTraceID:   "4bf92f3577b34da6a3ce929d0e0e4736",
		FieldSpanID:    "00f067aa0ba902b7",
		FieldRequestID: "req-1",
		FieldRunID:     "run-1",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %s", k, entry[k], v)
		}
	}
}

func TestWithContextEmpty(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.WithContext(context.Background()).Info("bare")
	entry := lastEntry(t, buf)
	for _, k := range []string{FieldTraceID, FieldRequestID, FieldRunID} {
		if _, ok := entry[k]; ok {
			t.Errorf("unexpected field %s", k)
		}
	}
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || RunIDFromContext(ctx) != "" {
		t.Fatal("expected empty IDs on bare context")
	}
	ctx = ContextWithRunID(ContextWithRequestID(ctx, "r"), "x")
	if RequestIDFromContext(ctx) != "r" {
		t.Errorf("request id = %q", RequestIDFromContext(ctx))
	}
	if RunIDFromContext(ctx) != "x" {
		t.Errorf("run id = %q", RunIDFromContext(ctx))
	}
}

func TestWithFieldsAndError(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.WithFields(map[string]interface{}{"key": "value"}).WithError(fmt.Errorf("boom")).Warn("failed")
	entry := lastEntry(t, buf)
	if entry["key"] != "value" {
		t.Errorf("key = %v", entry["key"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v", entry["error"])
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := jsonLogger(t, "warn")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info line written at warn level: %s", buf.String())
	}
	l.Warn("kept")
	if lastEntry(t, buf)["message"] != "kept" {
		t.Error("warn line missing")
	}
}

func TestInit(t *testing.T) {
	Init(&Config{Level: "info", Format: "console", Output: "stdout"}, "seqd")
	gl := GetGlobalLogger()
	if gl == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	if gl.service != "seqd" {
		t.Errorf("service = %q", gl.service)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&Config{Level: "debug", Format: "json"}, "pkg", &buf))

	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	WithComponent("handler").Info("tagged")
	WithContext(ContextWithRunID(context.Background(), "r1")).Info("ctx")

	if n := strings.Count(buf.String(), "\n"); n != 6 {
		t.Errorf("got %d lines, want 6", n)
	}
	_ = GetLoggerZ()
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"valid pretty stderr", Config{Level: "warn", Format: "pretty", Output: "stderr"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleFormats(t *testing.T) {
	for _, format := range []string{"console", "pretty"} {
		var buf bytes.Buffer
		l := NewWithWriter(&Config{Level: "info", Format: format, NoColor: true}, "seqd", &buf)
		l.Info("hello")
		if !strings.Contains(buf.String(), "[SEQ][INF]") {
			t.Errorf("%s output = %q, want service and level tags", format, buf.String())
		}
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "run", "id", 42}, map[string]interface{}{"op": "run", "id": 42}},
		{"odd number of args", []interface{}{"op", "run", "trailing"}, map[string]interface{}{"op": "run"}},
		{"empty", []interface{}{}, map[string]interface{}{}},
		{"non-string key skipped", []interface{}{123, "value", "key", "val"}, map[string]interface{}{"key": "val"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("len = %d, want %d", len(result), len(tc.expected))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestErrorFields(t *testing.T) {
	fields := ErrorFields("load", fmt.Errorf("something broke"))
	if fields[FieldOperation] != "load" {
		t.Errorf("expected operation 'load', got %v", fields[FieldOperation])
	}
	if fields[FieldError] != "something broke" {
		t.Errorf("expected error 'something broke', got %v", fields[FieldError])
	}
}

func TestDurationFields(t *testing.T) {
	fields := DurationFields("run", 150*time.Millisecond)
	if fields[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", fields[FieldDuration])
	}
}

func TestMergeHelpers(t *testing.T) {
	err := fmt.Errorf("test error")

	result := MergeWithError(map[string]interface{}{"op": "save"}, err)
	if result[FieldError] != "test error" || result["op"] != "save" {
		t.Errorf("MergeWithError = %v", result)
	}
	if MergeWithError(nil, err)[FieldError] != "test error" {
		t.Error("expected error field from nil map")
	}

	result = MergeWithDuration(map[string]interface{}{"op": "query"}, 200*time.Millisecond)
	if result[FieldDuration] != int64(200) || result["op"] != "query" {
		t.Errorf("MergeWithDuration = %v", result)
	}
	if MergeWithDuration(nil, time.Second)[FieldDuration] != int64(1000) {
		t.Error("expected duration from nil map")
	}
}
