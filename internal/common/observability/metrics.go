// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability exposes engine-level counters through the OpenTelemetry
// meter backed by the Prometheus exporter, so they surface on the same
// /metrics endpoint as the promauto collectors.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	rankCounter   otelmetric.Int64Counter
	rankDuration  otelmetric.Float64Histogram
}

// New wires the meter provider. A failed exporter degrades to a no-op
// Observability rather than aborting startup.
func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("failed to create prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	rankCounter, _ := meter.Int64Counter(
		"rankings.served",
		otelmetric.WithDescription("Number of ranking calls served"),
	)

	rankDuration, _ := meter.Float64Histogram(
		"rankings.duration",
		otelmetric.WithDescription("Ranking call duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		rankCounter:   rankCounter,
		rankDuration:  rankDuration,
	}
}

// RecordRank records one completed ranking call.
func (o *Observability) RecordRank(ctx context.Context, contentType string, durationMs float64, coldStart bool) {
	attrs := otelmetric.WithAttributes(
		attribute.String("content_type", contentType),
		attribute.Bool("cold_start", coldStart),
	)
	if o.rankCounter != nil {
		o.rankCounter.Add(ctx, 1, attrs)
	}
	if o.rankDuration != nil {
		o.rankDuration.Record(ctx, durationMs, attrs)
	}
}

// Shutdown flushes the meter provider.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
