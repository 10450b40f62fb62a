// Package tracing is the span-creation helper shared by the domain packages.
// Without a registered TracerProvider (tests, local dev) the global no-op
// provider makes every call inert.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "nomgrid"

// Start opens a span as a child of the one in ctx, or a root span when ctx
// has none. Callers must end the span:
//
//	ctx, span := tracing.Start(ctx, "matrix.assemble",
//	    attribute.String("nom.project.id", projectID.String()),
//	)
//	defer span.End()
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}
