package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type bufferOutput struct {
	buf bytes.Buffer
}

func (o *bufferOutput) Write(_ *Entry, formatted []byte) error {
	o.buf.Write(formatted)
	return nil
}

func (o *bufferOutput) Close() error { return nil }

func TestLevelFiltering(t *testing.T) {
	out := &bufferOutput{}
	l := NewLogger(WithLevel(WarnLevel), WithOutput(out))
	l.Debug("drop me")
	l.Info("drop me too")
	l.Warn("keep me")
	got := out.buf.String()
	if strings.Contains(got, "drop me") {
		t.Fatalf("below-level entries were written: %q", got)
	}
	if !strings.Contains(got, "keep me") {
		t.Fatalf("warn entry missing: %q", got)
	}
}

func TestWithCarriesFields(t *testing.T) {
	out := &bufferOutput{}
	l := NewLogger(WithFormatter(&JSONFormatter{}), WithOutput(out))
	l = l.With(Component("journals"), Str("journal", "orders"))
	l.Info("appended", Uint64("seq", 7))

	var obj map[string]interface{}
	if err := json.Unmarshal(out.buf.Bytes(), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if obj["component"] != "journals" || obj["journal"] != "orders" {
		t.Fatalf("with-fields missing: %v", obj)
	}
	if obj["seq"] != float64(7) {
		t.Fatalf("call-site field missing: %v", obj)
	}
	if obj["msg"] != "appended" {
		t.Fatalf("message missing: %v", obj)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("ERROR"); err != nil || lvl != ErrorLevel {
		t.Fatalf("parse error level: %v %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestApplyConfig(t *testing.T) {
	l, err := ApplyConfig(&Config{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if l.GetLevel() != DebugLevel {
		t.Fatalf("expected debug level, got %v", l.GetLevel())
	}
	if _, err := ApplyConfig(&Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestTextFormatterShape(t *testing.T) {
	out := &bufferOutput{}
	l := NewLogger(WithFormatter(&TextFormatter{}), WithOutput(out))
	l.Info("hello", Str("k", "v"))
	got := out.buf.String()
	if !strings.Contains(got, "INFO hello k=v") {
		t.Fatalf("unexpected text shape: %q", got)
	}
}
