package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smileynet/addressbook/internal/config"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestNew_TextToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, closer := New(config.Log{Level: "info", Format: "text", File: path})

	l.Info("loaded contacts", "count", 3)
	l.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	out := readLog(t, path)
	if !strings.Contains(out, "msg=\"loaded contacts\"") || !strings.Contains(out, "count=3") {
		t.Errorf("log = %q, want info record", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("log = %q, debug record should be filtered at info level", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, closer := New(config.Log{Level: "warn", Format: "json", File: path})

	l.Warn("skipping contact", "contact", "John")
	_ = closer.Close()

	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, path))), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["contact"] != "John" {
		t.Errorf("contact = %v, want John", rec["contact"])
	}
}

func TestNew_BadSettingsFallBackWithWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, closer := New(config.Log{Level: "loud", Format: "xml", File: path})
	_ = closer.Close()

	if !l.Enabled(t.Context(), slog.LevelWarn) || l.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("fallback level should be warn")
	}
	out := readLog(t, path)
	for _, want := range []string{"could not parse logger level", "could not parse logger format"} {
		if !strings.Contains(out, want) {
			t.Errorf("log = %q, want %q", out, want)
		}
	}
}

func TestNew_DevNullDiscards(t *testing.T) {
	l, closer := New(config.Log{Level: "debug", File: os.DevNull})
	defer func() { _ = closer.Close() }()

	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("devnull logger should discard everything")
	}
}
