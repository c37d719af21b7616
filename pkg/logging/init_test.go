package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		logType   string
		level     string
		wantError bool
	}{
		{"json/info", JSON, "info", false},
		{"text/debug", Text, "debug", false},
		{"tint/warn", Tint, "warn", false},
		{"json/error", JSON, "error", false},
		{"invalid level", JSON, "bogus", true},
		{"unknown type", "unknown", "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(&buf, tt.logType, tt.level)
			if (err != nil) != tt.wantError {
				t.Fatalf("New(%q, %q) error = %v, wantError = %v", tt.logType, tt.level, err, tt.wantError)
			}
			if tt.wantError {
				return
			}
			logger.Error("probe", "key", "value")
			if !strings.Contains(buf.String(), "probe") {
				t.Errorf("expected log output to contain message, got %q", buf.String())
			}
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, JSON, "warn")
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, `"level":"WARN"`) {
		t.Errorf("expected JSON warn line, got %q", out)
	}
}

func TestInitialize(t *testing.T) {
	if _, err := Initialize(Text, "info"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Initialize("unknown", "info"); err == nil {
		t.Fatal("expected error for unknown logging type")
	}
}
