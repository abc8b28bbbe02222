package debug

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(true)
	t.Cleanup(func() {
		SetEnabled(false)
		SetOutput(io.Discard)
	})
	return &buf
}

func TestSectionAndDump(t *testing.T) {
	buf := capture(t)

	Section("glossnet v0.1.0")
	Dump("size", struct{ W, H int }{3, 4})

	out := buf.String()
	if !strings.Contains(out, "=== glossnet v0.1.0 ===") {
		t.Errorf("missing section header:\n%s", out)
	}
	if !strings.Contains(out, "size: struct { W int; H int } = {W:3 H:4}") {
		t.Errorf("unexpected dump:\n%s", out)
	}
	if !strings.HasPrefix(out, prefix) {
		t.Errorf("lines should carry the prefix:\n%s", out)
	}
}

func TestDisabledIsSilent(t *testing.T) {
	buf := capture(t)
	SetEnabled(false)

	Log("hidden %d", 1)
	Section("hidden")
	Dump("hidden", 1)
	LogIf(true, "hidden")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestLogIf(t *testing.T) {
	buf := capture(t)
	LogIf(false, "skipped")
	LogIf(true, "kept %s", "this")
	out := buf.String()
	if strings.Contains(out, "skipped") || !strings.Contains(out, "kept this") {
		t.Errorf("output = %q", out)
	}
}
