package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/v1/tournaments"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if !shouldSkipUptraceLog("http request", []any{"path", "/openapi.yaml", "status", 200}) {
		t.Fatalf("expected openapi fetch log to be skipped")
	}
	if shouldSkipUptraceLog("form relay rejected message", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect a non-request event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"organizer_name", "Zeta Esports", "attempt", 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "organizer_name" || attrs[0].Value.AsString() != "Zeta Esports" {
		t.Fatalf("unexpected organizer_name attribute")
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"players": 48,
		"free":    true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}

func TestToOTelLogValue_PointerAndSlice(t *testing.T) {
	badges := []string{"Verified", "Priority Listing"}
	v := toOTelLogValue(&badges, 0)
	if v.Kind() != otellog.KindSlice {
		t.Fatalf("expected slice value, got %s", v.Kind())
	}
	if got := v.AsSlice(); len(got) != 2 || got[1].AsString() != "Priority Listing" {
		t.Fatalf("unexpected slice items: %+v", got)
	}

	var missing *string
	if got := toOTelLogValue(missing, 0); got.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil pointer, got %s", got.Kind())
	}
}

func TestBuildOTelLogAttributes_RedactsSecrets(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{
		"email", "admin@ffmaxarena.gg",
		"access_token", "eyJhbGciOi",
		"Password", "hunter2",
		"sender_email", "",
	})
	if got := attrs[0].Value.AsString(); got != "a***@ffmaxarena.gg" {
		t.Fatalf("unexpected masked email: %q", got)
	}
	if got := attrs[1].Value.AsString(); got != redactedValue {
		t.Fatalf("expected token to be redacted, got %q", got)
	}
	if got := attrs[2].Value.AsString(); got != redactedValue {
		t.Fatalf("expected password to be redacted, got %q", got)
	}
	if got := attrs[3].Value.AsString(); got != redactedValue {
		t.Fatalf("expected empty email to be redacted, got %q", got)
	}
}

func TestToOTelLogValue_NamedScalars(t *testing.T) {
	type gameMode string
	if got := toOTelLogValue(gameMode("Squad"), 0); got.AsString() != "Squad" {
		t.Fatalf("unexpected named string value: %v", got)
	}
	if got := toOTelLogValue(uint16(48), 0); got.AsInt64() != 48 {
		t.Fatalf("unexpected uint value: %v", got)
	}
}
