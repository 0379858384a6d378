package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx := WithContext(ctx, logger)

	retrieved := FromContext(newCtx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()

	retrieved := FromContext(ctx)

	// Should return a no-op logger, not nil
	require.NotNil(t, retrieved)
	assert.NotPanics(t, func() {
		retrieved.Info("test")
	})
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))
	assert.Empty(t, GetSpanID(ctx))
}

func spanContext(t *testing.T) (context.Context, trace.SpanContext) {
	t.Helper()

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc), sc
}

func TestGetTraceID_WithSpan(t *testing.T) {
	ctx, sc := spanContext(t)

	assert.Equal(t, sc.TraceID().String(), GetTraceID(ctx))
	assert.Equal(t, sc.SpanID().String(), GetSpanID(ctx))
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	// Without a valid span the logger comes back unchanged
	result := WithTraceContext(ctx, logger)
	assert.Equal(t, logger, result)
}

func TestContextLogger_InjectsTraceFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	ctx, sc := spanContext(t)
	ctx = WithContext(ctx, baseLogger)
	ctx, _ = WithRequestID(ctx, baseLogger, "req-abc")

	L(ctx).Info("fetching trend report")

	logs := recorded.All()
	require.Len(t, logs, 1)

	fieldMap := make(map[string]string)
	for _, field := range logs[0].Context {
		fieldMap[field.Key] = field.String
	}

	assert.Equal(t, sc.TraceID().String(), fieldMap["trace_id"])
	assert.Equal(t, sc.SpanID().String(), fieldMap["span_id"])
	assert.Equal(t, "req-abc", fieldMap["request_id"])
}

func TestContextLogger_NoSpanOmitsTraceFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	ctx := WithContext(context.Background(), baseLogger)

	L(ctx).Info("plain message")

	logs := recorded.All()
	require.Len(t, logs, 1)

	for _, field := range logs[0].Context {
		assert.NotEqual(t, "trace_id", field.Key)
		assert.NotEqual(t, "span_id", field.Key)
	}
}

func TestContextLogger_With(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	ctx := WithContext(context.Background(), baseLogger)

	L(ctx).With(zap.String("location", "Obzor")).Info("report cached")

	logs := recorded.All()
	require.Len(t, logs, 1)

	found := false
	for _, field := range logs[0].Context {
		if field.Key == "location" {
			found = true
			assert.Equal(t, "Obzor", field.String)
		}
	}
	assert.True(t, found)
}

func TestContextLogger_NilLoggerDoesNotPanic(t *testing.T) {
	cl := WithLogger(context.Background(), nil)
	assert.NotPanics(t, func() {
		cl.Info("noop")
	})
}
