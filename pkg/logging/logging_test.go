package logging

import (
	"bytes"
	"log"
	"os"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	prev := GetLevel()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		SetLevel(prev)
	})
	return &buf
}

func TestDebugDisabled(t *testing.T) {
	buf := captureLog(t)
	SetLevel(LevelInfo)

	Debug("this should not appear")

	if buf.Len() > 0 {
		t.Errorf("Debug output when disabled: %s", buf.String())
	}
}

func TestDebugEnabled(t *testing.T) {
	buf := captureLog(t)
	SetLevel(LevelDebug)

	Debug("test message %d", 42)

	if !bytes.Contains(buf.Bytes(), []byte("DEBUG: test message 42")) {
		t.Errorf("Expected debug output, got: %s", buf.String())
	}
}

func TestLevelGating(t *testing.T) {
	buf := captureLog(t)
	SetLevel(LevelWarn)

	Info("quiet")
	Warn("loud %s", "warn")
	Error("loud %s", "error")

	out := buf.String()
	if bytes.Contains([]byte(out), []byte("quiet")) {
		t.Errorf("Info output at warn level: %s", out)
	}
	if !bytes.Contains([]byte(out), []byte("WARN: loud warn")) || !bytes.Contains([]byte(out), []byte("ERROR: loud error")) {
		t.Errorf("Expected warn and error output, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "chatty", want: LevelInfo, wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
