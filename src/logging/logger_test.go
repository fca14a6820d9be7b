package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()
	SetLevel("info")

	msg := "[trace 3 key=0x2b] drawn samples=5000 (100.0% visible) alpha=1.0"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100.0% visible)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!v(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()
	defer SetLevel("info")

	if !SetLevel("warn") {
		t.Fatalf("expected warn to be a known level")
	}
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked through warn level: %s", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") {
		t.Fatalf("warn line missing: %s", out)
	}
	if SetLevel("loud") {
		t.Fatalf("unknown level should be rejected")
	}
	if GetLevel() != LevelWarn {
		t.Fatalf("unknown level must not change the current level, got %v", GetLevel())
	}
}

func TestComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()
	SetLevel("debug")
	defer SetLevel("info")

	For("render").Debugf("redraw #%d", 4)
	if !strings.Contains(buf.String(), "[DEBUG] render: redraw #4") {
		t.Fatalf("unexpected component line: %q", buf.String())
	}
}
