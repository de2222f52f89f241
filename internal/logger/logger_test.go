package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{name: "debug", value: "debug", want: slog.LevelDebug},
		{name: "upperWarn", value: " WARN ", want: slog.LevelWarn},
		{name: "error", value: "error", want: slog.LevelError},
		{name: "emptyDefaultsToInfo", value: "", want: slog.LevelInfo},
		{name: "unknownDefaultsToInfo", value: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.value); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestJSONLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json").With("request_id", "abc")

	log.Info("cannot add item", "error", "boom")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if record["request_id"] != "abc" {
		t.Errorf("request_id = %v, want abc", record["request_id"])
	}
	if record["msg"] != "cannot add item" {
		t.Errorf("msg = %v", record["msg"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "text")

	log.Info("hidden")
	log.Debugf("hidden %d", 1)
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered records: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("output misses warn record: %s", out)
	}
}

func TestNoopLogger(t *testing.T) {
	log := NewNoopLogger()
	log.Error("nothing")
	log.With("k", "v").Infof("still %s", "nothing")
}
