package logging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("component", "test")

	logger.InfoContext(context.Background(), "tournament created", "tournament_id", int64(7), "error", errors.New("none"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "test" || fields["tournament_id"] != int64(7) || fields["error"] != "none" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestLogger_Mirror(t *testing.T) {
	var mu sync.Mutex
	var got []any
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		got = append([]any{level, msg}, args...)
	})
	defer SetMirror(nil)

	NewNop().With("request_id", "r1").Warn("relay rejected", "status", 502)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 6 || got[0] != LevelWarn || got[1] != "relay rejected" || got[3] != "r1" || got[5] != 502 {
		t.Fatalf("unexpected mirrored call: %+v", got)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("WARN"); err != nil || lvl != LevelWarn {
		t.Fatalf("unexpected level: %v %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.Zap() == nil {
		t.Fatalf("expected nop zap logger")
	}
}
