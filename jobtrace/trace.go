package jobtrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jacobmcleman/JobBot/job"
)

// tracerName is the instrumentation scope name for jobbot tracing.
const tracerName = "github.com/jacobmcleman/JobBot"

// Wrap returns fn wrapped in a span named "jobbot.job.run", started
// under tracer, carrying t and h's trace ID as attributes. The wrapped
// function is what [manager.Manager] passes to [job.Pool.Create] in
// place of fn when a tracer is configured via [manager.WithTracer].
func Wrap(tracer trace.Tracer, t job.Type) func(fn job.Func) job.Func {
	return func(fn job.Func) job.Func {
		return func(h job.Handle) {
			_, span := tracer.Start(context.Background(), "jobbot.job.run",
				trace.WithAttributes(
					attribute.String("jobbot.job.type", t.String()),
					attribute.String("jobbot.job.id", h.TraceID().String()),
				),
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			defer func() {
				if r := recover(); r != nil {
					span.RecordError(panicError{r})
					span.SetStatus(codes.Error, "job panicked")
					panic(r)
				}
			}()

			fn(h)
			span.SetStatus(codes.Ok, "")
		}
	}
}

// panicError adapts a recovered panic value to the error interface so
// it can be attached to a span via RecordError.
type panicError struct{ v any }

func (p panicError) Error() string {
	if err, ok := p.v.(error); ok {
		return err.Error()
	}
	return "panic: job function did not recover cleanly"
}
