package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.GetTournament", want: true},
		{in: "httpapi.Handler.StreamTournamentStatus", want: true},
		{in: "httpapi.Handler.", want: false},
		{in: "httpapi.RequestLogging", want: false},
		{in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldCreateHTTPAPISpan(tt.in))
		})
	}
}

func TestStartSpan_NoParentIsNoop(t *testing.T) {
	ctx, span := startSpan(context.Background(), "httpapi.Handler.ListTournaments")
	defer span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.False(t, trace.SpanFromContext(ctx).SpanContext().IsValid())

	// Must not panic without a recording span.
	markSpanError(ctx, http.StatusBadGateway, errors.New("relay rejected message"))
}
