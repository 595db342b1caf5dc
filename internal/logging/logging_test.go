package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarning, false},
		{"error", LevelError, false},
		{"off", LevelNone, false},
		{"loud", LevelNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	defer func() {
		SetLevel(LevelWarning)
	}()

	Debug("hidden %d", 1)
	Info("shown %d", 2)
	Error("also shown")
	Dump("state", map[string]int{"a": 1})

	s := buf.String()
	if strings.Contains(s, "hidden") || strings.Contains(s, "state") {
		t.Errorf("debug output leaked: %q", s)
	}
	if !strings.Contains(s, "I ") || !strings.Contains(s, "shown 2") {
		t.Errorf("info missing: %q", s)
	}
	if !strings.Contains(s, "E ") {
		t.Errorf("error missing: %q", s)
	}

	buf.Reset()
	SetLevel(LevelDebug)
	Dump("state", map[string]int{"a": 1})
	if !strings.Contains(buf.String(), "state:") {
		t.Errorf("dump missing: %q", buf.String())
	}
}
