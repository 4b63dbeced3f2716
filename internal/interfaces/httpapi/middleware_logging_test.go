package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	idgen "github.com/ffmaxarena/arena-api/internal/platform/id"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogging_RecordsStatusAndRequestID(t *testing.T) {
	core, logs := observer.New(logging.LevelInfo)
	logger := logging.FromZap(zap.New(core))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})
	handler := RequestID(idgen.NewUUIDGenerator(), RequestLogging(logger, next))

	req := httptest.NewRequest(http.MethodGet, "/v1/tournaments", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Fatalf("unexpected status field: %#v", fields["status"])
	}
	if fields["bytes"] != int64(len("short and stout")) {
		t.Fatalf("unexpected bytes field: %#v", fields["bytes"])
	}
	if fields["request_id"] != "req-42" {
		t.Fatalf("unexpected request_id field: %#v", fields["request_id"])
	}
}

func TestRequestID_ReplacesOversizedHeader(t *testing.T) {
	var seen string
	handler := RequestID(idgen.NewUUIDGenerator(), http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, string(make([]byte, 200)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" || len(seen) > 128 {
		t.Fatalf("expected a generated request id, got %q", seen)
	}
	if rec.Header().Get(requestIDHeader) != seen {
		t.Fatalf("response header %q does not match context id %q", rec.Header().Get(requestIDHeader), seen)
	}
}
