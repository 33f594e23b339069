package opentelemetry

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option sets the providers an InstrumentedDispatcher takes its Tracer
// and Meter from. Without options, the global otel providers are used.
type Option func(*providers)

type providers struct {
	meters  metric.MeterProvider
	tracers trace.TracerProvider
}

// WithMeterProvider sets the metric.MeterProvider used for the dispatch metrics.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(p *providers) { p.meters = provider }
}

// WithTracerProvider sets the trace.TracerProvider used for the dispatch spans.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(p *providers) { p.tracers = provider }
}
