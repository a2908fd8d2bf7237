package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.9.0"

	"github.com/tuanvumaihuynh/shopster-web/internal/config"
)

func TestInitTracer_WithoutCollector(t *testing.T) {
	ctx := context.Background()

	cleanup, err := InitTracer(ctx, config.Otel{ServiceName: "sf-web", TraceIDRatio: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup(ctx) })

	_, span := otel.Tracer("test").Start(ctx, "op")
	defer span.End()

	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().IsSampled())
}

func TestInitTracer_WithCollector(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := config.Otel{
		ServiceName:   "sf-web",
		CollectorURL:  "127.0.0.1:4317",
		CollectorAuth: "Bearer token",
		Insecure:      true,
		TraceIDRatio:  1,
	}

	t.Run("Should build an otlp exporter without dialing eagerly", func(t *testing.T) {
		exporter, err := newExporter(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, exporter)
		assert.NoError(t, exporter.Shutdown(ctx))
	})

	t.Run("Should install a provider that batches to the collector", func(t *testing.T) {
		cleanup, err := InitTracer(ctx, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = cleanup(ctx) })

		_, span := otel.Tracer("test").Start(ctx, "op")
		span.End()

		assert.True(t, span.SpanContext().IsValid())
	})
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(config.Otel{ServiceName: "sf-web", K8sPodName: "pod-1"})

	assert.Contains(t, attrs, semconv.ServiceNameKey.String("sf-web"))
	assert.Contains(t, attrs, semconv.K8SPodNameKey.String("pod-1"))
	assert.Len(t, attrs, 2)
}
