package observability

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitOTel_Disabled(t *testing.T) {
	providers, err := InitOTel(context.Background(), OTelConfig{}, Discard())
	assert.NoError(t, err)
	assert.Nil(t, providers)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitOTel_MissingEndpoint(t *testing.T) {
	_, err := InitOTel(context.Background(), OTelConfig{Enabled: true}, Discard())
	assert.EqualError(t, err, "OpenTelemetry endpoint is required")
}

func TestInitOTel_NoCollector(t *testing.T) {
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})

	// Exporters connect lazily, so an unreachable collector is not an error here
	providers, err := InitOTel(context.Background(), OTelConfig{
		Enabled:        true,
		Endpoint:       "127.0.0.1:1",
		ServiceName:    "planner-test",
		ServiceVersion: "test",
		Insecure:       true,
	}, Discard())
	require.NoError(t, err)
	require.NotNil(t, providers)
	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.MeterProvider)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = providers.Shutdown(ctx)
}

func TestTraceHandler(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)
	handler := TraceHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(WithLogger(r.Context(), logger)).Info("handled")
		w.WriteHeader(http.StatusAccepted)
	}), "planner-api")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/abc/toggle", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST planner-api", spans[0].Name())

	entry := decodeEntry(t, &buf)
	assert.Equal(t, spans[0].SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, spans[0].SpanContext().SpanID().String(), entry["span_id"])
}

func TestFromContext_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	FromContext(WithLogger(context.Background(), NewLogger(InfoLevel, &buf))).Info("plain")

	entry := decodeEntry(t, &buf)
	assert.NotContains(t, entry, "trace_id")
}
