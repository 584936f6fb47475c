package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestLoggerFromContext_AttachesTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x0a, 0x01},
		SpanID:     trace.SpanID{0x0b, 0x02},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	LoggerFromContext(ctx).Info().Msg("request handled")

	assert.Contains(t, buf.String(), sc.TraceID().String())
	assert.Contains(t, buf.String(), sc.SpanID().String())
}

func TestLoggerFromContext_NoSpanFallsBackToGlobal(t *testing.T) {
	assert.Equal(t, &log.Logger, LoggerFromContext(context.Background()))
}
