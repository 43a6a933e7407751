package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{"off", LevelOff, false, false},
		{"normal", LevelNormal, false, true},
		{"verbose", LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)
			log.Debug("debug %d", 1)
			log.Info("info %d", 2)

			out := buf.String()
			if got := strings.Contains(out, "[DBG] debug 1"); got != tt.wantDebug {
				t.Fatalf("debug visible=%v, want %v (output %q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "[INF] info 2"); got != tt.wantInfo {
				t.Fatalf("info visible=%v, want %v (output %q)", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNamedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelOff, &buf)
	child := root.Named("registry").Named("sink")

	child.Warn("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output while off, got %q", buf.String())
	}

	root.SetLevel(LevelNormal)
	child.Warn("dropped %s", "key")
	if !strings.Contains(buf.String(), "[WRN] registry: sink: dropped key") {
		t.Fatalf("expected prefixed warning, got %q", buf.String())
	}
	if child.GetLevel() != LevelNormal {
		t.Fatalf("expected child level normal, got %d", child.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel(true, true) != LevelOff {
		t.Fatal("quiet should win over verbose")
	}
	if ParseLevel(true, false) != LevelVerbose {
		t.Fatal("expected verbose")
	}
	if ParseLevel(false, false) != LevelNormal {
		t.Fatal("expected normal")
	}
}
