package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/phuslu/log"

	"github.com/ochairo/packdesc/internal/domain/interfaces"
)

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", JSON: true, Writer: &buf})

	l.Info("Resolved descriptor",
		interfaces.F("id", "abc"),
		interfaces.F("active_dependencies", 3),
		interfaces.F("signed_release", true),
		interfaces.F("error", errors.New("boom")))

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}

	if entry["message"] != "Resolved descriptor" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["id"] != "abc" {
		t.Errorf("id = %v, want abc", entry["id"])
	}
	if entry["active_dependencies"] != float64(3) {
		t.Errorf("active_dependencies = %v, want 3", entry["active_dependencies"])
	}
	if entry["signed_release"] != true {
		t.Errorf("signed_release = %v, want true", entry["signed_release"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", JSON: true, Writer: &buf})

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn should be logged, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if got := LevelFromEnv("info"); got != "info" {
		t.Errorf("LevelFromEnv() = %s, want flag value", got)
	}

	t.Setenv(EnvLogLevel, "debug")
	if got := LevelFromEnv("info"); got != "debug" {
		t.Errorf("LevelFromEnv() = %s, want env override", got)
	}
}
