package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel, "json")

	log.Info("http: listening", "addr", ":8080")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "http: listening" {
		t.Fatalf("unexpected message %v", entry["message"])
	}
	if entry["addr"] != ":8080" {
		t.Fatalf("expected addr field, got %v", entry["addr"])
	}
	if entry["level"] != "info" {
		t.Fatalf("expected info level, got %v", entry["level"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel, "json")

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
}

func TestBusinessErrorSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.DebugLevel, "json")

	log.BusinessError("tasks.get: not found", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nil error to be ignored, got %q", buf.String())
	}

	log.InternalError("tasks.get: failed", errors.New("boom"), "task_id", "t-1")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line: %v", err)
	}
	if entry["error"] != "boom" || entry["level"] != "error" || entry["task_id"] != "t-1" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel, "json").With("component", "sessions")

	log.Warn("prune failed")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line: %v", err)
	}
	if entry["component"] != "sessions" {
		t.Fatalf("expected component field, got %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"WARN":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"critical": zerolog.FatalLevel,
		"":         zerolog.InfoLevel,
	}
	for input, want := range cases {
		if got := parseLevel(input, "production"); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
	if got := parseLevel("", "development"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug in development, got %v", got)
	}
}
