package main

import (
	"bytes"
	"strings"
	"testing"

	"musiclink/internal/preflight"
)

func TestResultKind(t *testing.T) {
	tests := []struct {
		result preflight.Result
		want   statusKind
	}{
		{preflight.Result{Name: "Source", Passed: true, Detail: "/music"}, statusOK},
		{preflight.Result{Name: "Source", Passed: false, Detail: "not readable"}, statusError},
		{preflight.Result{Name: "ffprobe", Passed: true, Detail: "not found (optional)"}, statusWarn},
		{preflight.Result{Name: "Same device", Passed: true, Detail: "different devices (files will be copied)"}, statusWarn},
	}
	for _, tt := range tests {
		if got := resultKind(tt.result); got != tt.want {
			t.Errorf("resultKind(%+v) = %d, want %d", tt.result, got, tt.want)
		}
	}
}

func TestRenderPreflightPlain(t *testing.T) {
	var buf bytes.Buffer
	renderPreflight(&buf, []preflight.Result{
		{Name: "Source", Passed: true, Detail: "/music"},
		{Name: "Destination", Passed: false, Detail: "not writable"},
	}, false)

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI codes, got %q", out)
	}
	if !strings.Contains(out, "== Preflight ==\n---------------\n") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "  Destination:             [ERROR] not writable") {
		t.Fatalf("unexpected destination line: %q", out)
	}
}

func TestRenderStatusLineColorized(t *testing.T) {
	line := renderStatusLine("Source", statusOK, "", true)
	if !strings.HasPrefix(line, "\x1b[32m") || !strings.HasSuffix(line, "[OK]"+ansiReset) {
		t.Fatalf("unexpected colorized line %q", line)
	}
}
