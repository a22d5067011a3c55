package logging

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	if f := String("k", "v"); f.Key != "k" || f.Value != "v" {
		t.Errorf("String: %+v", f)
	}
	if f := Int("n", 7); f.Value != 7 {
		t.Errorf("Int: %+v", f)
	}
	if f := Err(nil); f.Value != "<nil>" {
		t.Errorf("Err(nil): %+v", f)
	}
	if f := Err(errors.New("boom")); f.Key != "error" || f.Value != "boom" {
		t.Errorf("Err: %+v", f)
	}
}

func TestZapLoggerEmitsFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core)

	log.Info("reminder sent",
		String("account_id", "acc-1"),
		Int("days_until", 3),
		Duration("elapsed", 50*time.Millisecond),
	)

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Message != "reminder sent" {
		t.Errorf("unexpected message: %q", e.Message)
	}
	fields := e.ContextMap()
	if fields["account_id"] != "acc-1" {
		t.Errorf("missing account_id field: %v", fields)
	}
	if fields["days_until"] != int64(3) {
		t.Errorf("missing days_until field: %v", fields)
	}
}

func TestWithAttachesFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core).With(String("component", "dispatch"))

	log.Warn("send failed")

	if got := observed.All()[0].ContextMap()["component"]; got != "dispatch" {
		t.Errorf("With field not attached: %v", got)
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if parseLevel("nonsense") != zapcore.InfoLevel {
		t.Error("unknown level should default to info")
	}
	if parseLevel("debug") != zapcore.DebugLevel {
		t.Error("debug level not parsed")
	}
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Must not panic, and chaining must keep returning a usable logger.
	log.With(String("k", "v")).Named("child").Info("ignored")
}
