package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns a tracer for the given name
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// StartSpan starts a new span from context
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// StartDBSpan starts a span for database operations
func StartDBSpan(ctx context.Context, operation, table string) (context.Context, trace.Span) {
	return StartSpan(ctx, fmt.Sprintf("DB %s %s", operation, table),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "sql"),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", table),
		),
	)
}

// StartServiceSpan starts a span for service operations
func StartServiceSpan(ctx context.Context, service, operation string) (context.Context, trace.Span) {
	return StartSpan(ctx, fmt.Sprintf("%s.%s", service, operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("service.component", service),
			attribute.String("service.operation", operation),
		),
	)
}

// RecordError records an error on the span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSuccess marks the span as successful
func SetSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddEvent adds an event to the span
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// SharingMetrics holds counters for list and share activity
type SharingMetrics struct {
	listsCreated    metric.Int64Counter
	itemsAdded      metric.Int64Counter
	sharesGranted   metric.Int64Counter
	cascadeMembers  metric.Int64Counter
	cascadeFailures metric.Int64Counter
}

// NewSharingMetrics creates sharing metrics instruments
func NewSharingMetrics() (*SharingMetrics, error) {
	meter := otel.Meter(instrumentationName)

	listsCreated, err := meter.Int64Counter(
		"shoplist.lists.created",
		metric.WithDescription("Total number of lists created"),
		metric.WithUnit("{lists}"),
	)
	if err != nil {
		return nil, err
	}

	itemsAdded, err := meter.Int64Counter(
		"shoplist.items.added",
		metric.WithDescription("Total number of items added to lists"),
		metric.WithUnit("{items}"),
	)
	if err != nil {
		return nil, err
	}

	sharesGranted, err := meter.Int64Counter(
		"shoplist.shares.granted",
		metric.WithDescription("Total number of per-user share upserts"),
		metric.WithUnit("{shares}"),
	)
	if err != nil {
		return nil, err
	}

	cascadeMembers, err := meter.Int64Counter(
		"shoplist.shares.cascade_members",
		metric.WithDescription("Family members reached by cascade shares"),
		metric.WithUnit("{members}"),
	)
	if err != nil {
		return nil, err
	}

	cascadeFailures, err := meter.Int64Counter(
		"shoplist.shares.cascade_failures",
		metric.WithDescription("Per-member failures during cascade shares"),
		metric.WithUnit("{members}"),
	)
	if err != nil {
		return nil, err
	}

	return &SharingMetrics{
		listsCreated:    listsCreated,
		itemsAdded:      itemsAdded,
		sharesGranted:   sharesGranted,
		cascadeMembers:  cascadeMembers,
		cascadeFailures: cascadeFailures,
	}, nil
}

// RecordListCreated records a list creation
func (m *SharingMetrics) RecordListCreated(ctx context.Context) {
	m.listsCreated.Add(ctx, 1)
}

// RecordItemAdded records an item addition
func (m *SharingMetrics) RecordItemAdded(ctx context.Context) {
	m.itemsAdded.Add(ctx, 1)
}

// RecordShareGranted records a per-user share upsert
func (m *SharingMetrics) RecordShareGranted(ctx context.Context, canEdit bool) {
	m.sharesGranted.Add(ctx, 1, metric.WithAttributes(attribute.Bool("can_edit", canEdit)))
}

// RecordCascade records the outcome of a family cascade share
func (m *SharingMetrics) RecordCascade(ctx context.Context, shared, failed int) {
	m.cascadeMembers.Add(ctx, int64(shared))
	if failed > 0 {
		m.cascadeFailures.Add(ctx, int64(failed))
	}
}
