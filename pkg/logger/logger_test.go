package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := log.Load()
	SetOutput(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() { SetOutput(prev) })
	return buf
}

func TestInfoCF_ComponentAndFields(t *testing.T) {
	buf := capture(t)

	InfoCF("router", "payload rewritten", map[string]any{"method": "sendPoll"})

	out := buf.String()
	if !strings.Contains(out, "component=router") {
		t.Errorf("missing component tag: %s", out)
	}
	if !strings.Contains(out, "method=sendPoll") {
		t.Errorf("missing field: %s", out)
	}
	if !strings.Contains(out, "payload rewritten") {
		t.Errorf("missing message: %s", out)
	}
}

func TestSetLevel_FiltersDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := log.Load()
	SetOutput(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: levelVar,
	})))
	t.Cleanup(func() {
		SetOutput(prev)
		SetLevel(INFO)
	})

	SetLevel(INFO)
	DebugCF("router", "hidden", nil)
	if buf.Len() != 0 {
		t.Errorf("debug entry should be filtered at info level: %s", buf.String())
	}

	SetLevel(DEBUG)
	DebugCF("router", "visible", nil)
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug entry should pass at debug level: %s", buf.String())
	}
}
