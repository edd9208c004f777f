package adapter

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/libatomic/internal/stats"
)

// Telemetry mirrors the library's fallback counters onto an OpenTelemetry
// meter and wraps diagnostic sections in spans.
type Telemetry struct {
	tracer trace.Tracer
}

// NewTelemetry registers observable counters on meter and keeps tracer for
// WithSpan. Pass a noop tracer if span wrapping is not wanted.
func NewTelemetry(meter metric.Meter, tracer trace.Tracer) (*Telemetry, error) {
	_, err := meter.Int64ObservableCounter(
		"libatomic.fallback.ops",
		metric.WithDescription("Atomic operations served by the lock table fallback."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(stats.FallbackTotal())
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	_, err = meter.Int64ObservableCounter(
		"libatomic.lock.contention",
		metric.WithDescription("Fallback operations that found their lock slot held."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(stats.ContentionTotal())
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Telemetry{tracer: tracer}, nil
}

// WithSpan runs fn inside a span. Meant for debugging a single call path, not
// for wrapping the hot path wholesale.
func (t *Telemetry) WithSpan(ctx context.Context, name string, fn func()) {
	if t == nil || t.tracer == nil {
		fn()
		return
	}
	_, span := t.tracer.Start(ctx, name)
	defer span.End()
	fn()
}
