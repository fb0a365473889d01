package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("roast.created", map[string]any{"roast_id": "r-1", "err": errors.New("boom")})

	line := strings.TrimSpace(buf.String())
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("decode log json %q: %v", line, err)
	}
	if payload["msg"] != "roast.created" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if payload["roast_id"] != "r-1" {
		t.Fatalf("unexpected roast_id: %v", payload["roast_id"])
	}
	if payload["err"] != "boom" {
		t.Fatalf("expected error rendered as string, got %v", payload["err"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts")
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()
	SetLevel("info")

	Debug("meme.miss", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	SetLevel("debug")
	defer SetLevel("info")
	Debug("meme.miss", nil)
	if !strings.Contains(buf.String(), `"meme.miss"`) {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}
