package arcdb

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName    = "github.com/arcdb/arcdb-go"
	instrumentationVersion = "0.1.0"
)

// otelTracer returns the tracer for this library, from the global tracer
// provider.
func otelTracer() trace.Tracer {
	return otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(instrumentationVersion))
}

func startSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otelTracer().Start(ctx, name, opts...)
}

func spanAttributes(query string, serverAddr string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "arcdb"),
	}
	if serverAddr != "" {
		attrs = append(attrs, attribute.String("db.server.address", serverAddr))
	}
	if query != "" {
		attrs = append(attrs, attribute.String("db.statement", query))
	}
	return attrs
}

func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// endSpan ends the span and records the error if present.
func endSpan(span trace.Span, err *error) {
	if err != nil && *err != nil {
		recordError(span, *err)
	}
	span.End()
}

func (ch *arcdb) getServerAddress() string {
	if len(ch.opt.Addr) > 0 {
		return ch.opt.Addr[0]
	}
	return ""
}

// createQuerySpan creates a span for one operation. Tracing is off unless
// Options.EnableTracing is set; callers must handle a nil span.
func (ch *arcdb) createQuerySpan(ctx context.Context, operation string, query string) (context.Context, trace.Span) {
	if !ch.opt.EnableTracing {
		return ctx, nil
	}

	attrs := spanAttributes(query, ch.getServerAddress())
	attrs = append(attrs, attribute.String("db.operation", operation))

	return startSpan(ctx, fmt.Sprintf("arcdb.%s", operation), trace.WithAttributes(attrs...))
}
