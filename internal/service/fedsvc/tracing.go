// Package fedsvc provides the store-backed implementation of the
// FederationService interface.
package fedsvc

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ServiceTracerName is the name used for the federation service tracer
	ServiceTracerName = "github.com/cartesiandb/federation-registry-server/service/fedsvc"
)

// Custom attribute keys for business context
const (
	AttrServerName  = attribute.Key("federation.server")
	AttrSchemaName  = attribute.Key("federation.schema")
	AttrTableName   = attribute.Key("federation.table")
	AttrPageSize    = attribute.Key("pagination.per_page")
	AttrResultCount = attribute.Key("result.count")
)

// startSpan starts a new span for a registry operation.
// If the tracer is nil, it returns a no-op span from the context.
func (s *fedService) startSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name, opts...)
}

// recordError records an error on a span and sets the span status to error.
// The status description stays generic so raw engine text, which may embed
// object names, never lands in trace status.
func recordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
