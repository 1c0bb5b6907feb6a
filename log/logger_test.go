package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	specs := []struct {
		in  string
		exp Level
	}{
		{"debug", Debug},
		{"INFO", Info},
		{" notice ", Notice},
		{"warn", Warning},
		{"warning", Warning},
		{"error", Error},
	}

	for idx, s := range specs {
		level, err := ParseLevel(s.in)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", idx, err)
		}
		if level != s.exp {
			t.Fatalf("[spec %d] expected level %d; got %d", idx, s.exp, level)
		}
	}

	expError := `log: unknown level "chatty"`
	if _, err := ParseLevel("chatty"); err == nil || err.Error() != expError {
		t.Fatalf("expected to get error: %s; got %v", expError, err)
	}
}

func TestSinkAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Warning)
	logger.Noticef("hidden %d", 1)
	logger.Warningf("visible %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Fatalf("expected notice message to be filtered out; got %q", out)
	}
	if !strings.Contains(out, "visible 2") {
		t.Fatalf("expected warning message to be logged; got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Fatalf("expected module name in log output; got %q", out)
	}
}
