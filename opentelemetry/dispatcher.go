// Package opentelemetry instruments command dispatching with OpenTelemetry
// spans and metrics.
package opentelemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/get-eventually/go-commander/command"
)

const instrumentationName = "github.com/get-eventually/go-commander/opentelemetry"

// Attribute keys used by the InstrumentedDispatcher instrumentation.
const (
	ErrorAttribute       attribute.Key = "error"
	CommandNameAttribute attribute.Key = "command.name"
	ArgsModeAttribute    attribute.Key = "command.args.mode"
	ArgsCountAttribute   attribute.Key = "command.args.count"
)

var _ command.Dispatcher = &InstrumentedDispatcher{}

// InstrumentedDispatcher is a wrapper type over a command.Dispatcher
// instance to provide instrumentation, in the form of metrics and traces
// using OpenTelemetry.
//
// Use NewInstrumentedDispatcher for constructing a new instance of this type.
type InstrumentedDispatcher struct {
	dispatcher command.Dispatcher

	tracer          trace.Tracer
	executeDuration metric.Int64Histogram
	executeCalls    metric.Int64Counter
}

func (id *InstrumentedDispatcher) registerMetrics(meter metric.Meter) error {
	var err error

	if id.executeDuration, err = meter.Int64Histogram(
		"commander.dispatcher.execute.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of command.Dispatcher.Execute operations performed."),
	); err != nil {
		return fmt.Errorf("opentelemetry.InstrumentedDispatcher: failed to register metric: %w", err)
	}

	if id.executeCalls, err = meter.Int64Counter(
		"commander.dispatcher.execute.calls",
		metric.WithUnit("{call}"),
		metric.WithDescription("Number of command.Dispatcher.Execute operations performed."),
	); err != nil {
		return fmt.Errorf("opentelemetry.InstrumentedDispatcher: failed to register metric: %w", err)
	}

	return nil
}

// NewInstrumentedDispatcher returns a wrapper type to provide OpenTelemetry
// instrumentation (metrics and traces) around a command.Dispatcher.
//
// An error is returned if metrics could not be registered.
func NewInstrumentedDispatcher(dispatcher command.Dispatcher, options ...Option) (*InstrumentedDispatcher, error) {
	p := providers{
		meters:  otel.GetMeterProvider(),
		tracers: otel.GetTracerProvider(),
	}

	for _, opt := range options {
		opt(&p)
	}

	id := &InstrumentedDispatcher{
		dispatcher: dispatcher,
		tracer:     p.tracers.Tracer(instrumentationName),
	}

	if err := id.registerMetrics(p.meters.Meter(instrumentationName)); err != nil {
		return nil, err
	}

	return id, nil
}

func argsCount(args command.Args) int {
	switch a := args.(type) {
	case command.Keywords:
		return len(a)
	case command.Tokens:
		return len(a)
	default:
		return 0
	}
}

func argsMode(args command.Args) string {
	if args == nil {
		return "none"
	}

	return args.Mode().String()
}

// Execute calls the wrapped command.Dispatcher.Execute method and records
// metrics and traces around it.
func (id *InstrumentedDispatcher) Execute(ctx context.Context, name string, args command.Args) (err error) {
	attributes := []attribute.KeyValue{
		CommandNameAttribute.String(name),
	}

	//nolint:gocritic // Not appending to the same slice done on purpose.
	spanAttributes := append(attributes,
		ArgsModeAttribute.String(argsMode(args)),
		ArgsCountAttribute.Int(argsCount(args)),
	)

	ctx, span := id.tracer.Start(ctx, "command.Dispatcher.Execute", trace.WithAttributes(spanAttributes...))
	start := time.Now()

	defer func() {
		attributes := append(attributes, ErrorAttribute.Bool(err != nil))

		duration := time.Since(start)
		id.executeDuration.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))
		id.executeCalls.Add(ctx, 1, metric.WithAttributes(attributes...))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	err = id.dispatcher.Execute(ctx, name, args)

	return
}
