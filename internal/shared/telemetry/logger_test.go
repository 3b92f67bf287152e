package telemetry

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoAndErrorFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	prev := SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	Info("report created", map[string]any{"report_id": "r1", "score": 87})
	Error("extract failed", map[string]any{"err": errors.New("boom")})

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first["report_id"] != "r1" {
		t.Fatalf("expected report_id r1, got %v", first["report_id"])
	}
	if first["score"] != int64(87) {
		t.Fatalf("expected score 87, got %#v", first["score"])
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
	if entries[1].ContextMap()["err"] != "boom" {
		t.Fatalf("expected err field, got %v", entries[1].ContextMap()["err"])
	}
}

func TestWarnRespectsLevel(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	prev := SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	Warn("rate limited", nil)
	if observed.Len() != 0 {
		t.Fatalf("expected warn to be filtered, got %d entries", observed.Len())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(true, "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New(false, "debug"); err != nil {
		t.Fatalf("expected debug level to be accepted: %v", err)
	}
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	prev := SetLogger(nil)
	t.Cleanup(func() { SetLogger(prev) })
	Info("discarded", map[string]any{"k": "v"})
}
