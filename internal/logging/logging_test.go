package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew_LevelFollowsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info message logged without debug: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn message missing: %q", buf.String())
	}

	buf.Reset()
	New(&buf, true).Debug("details")
	if !strings.Contains(buf.String(), "details") {
		t.Errorf("debug message missing with debug on: %q", buf.String())
	}
}

func TestDuration(t *testing.T) {
	attr := Duration(1500 * time.Millisecond)
	if attr.Key != KeyDuration {
		t.Errorf("Duration key = %q, want %q", attr.Key, KeyDuration)
	}
	if attr.Value.Duration() != 1500*time.Millisecond {
		t.Errorf("Duration value = %v, want 1.5s", attr.Value.Duration())
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "boom")
	}

	var buf bytes.Buffer
	New(&buf, true).Info("ok", Err(nil))
	if strings.Contains(buf.String(), KeyError) {
		t.Errorf("nil error should be omitted: %q", buf.String())
	}
}

func TestWithList(t *testing.T) {
	var buf bytes.Buffer
	WithList(New(&buf, true), "abc").Info("hello", Count(3), Sink("today"), Operation("update"))
	out := buf.String()
	for _, want := range []string{"list=abc", "count=3", "sink=today", "operation=update"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestOrDefault(t *testing.T) {
	if OrDefault(nil) == nil {
		t.Error("OrDefault(nil) returned nil")
	}
	l := Discard()
	if OrDefault(l) != l {
		t.Error("OrDefault should return the given logger")
	}
}
