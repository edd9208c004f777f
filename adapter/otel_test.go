package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestNewTelemetry(t *testing.T) {
	tel, err := NewTelemetry(
		metricnoop.NewMeterProvider().Meter("libatomic-test"),
		tracenoop.NewTracerProvider().Tracer("libatomic-test"),
	)
	assert.Nil(t, err)
	assert.NotNil(t, tel)

	ran := false
	tel.WithSpan(context.Background(), "probe", func() { ran = true })
	assert.True(t, ran)
}

func TestWithSpanNilTelemetry(t *testing.T) {
	var tel *Telemetry
	ran := false
	tel.WithSpan(context.Background(), "probe", func() { ran = true })
	assert.True(t, ran, "a nil bridge must still run the wrapped section")
}
