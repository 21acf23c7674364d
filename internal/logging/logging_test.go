package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "error", Format: "logfmt"})

	logger.Info("should be dropped")
	logger.Error("persist task", "id", 3)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line logged at error level: %q", out)
	}
	if !strings.Contains(out, "persist task") {
		t.Errorf("error line missing: %q", out)
	}
}
