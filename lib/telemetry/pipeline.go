package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var pipelineMeter = otel.Meter("freeroom.pipeline")
var rawRecords, _ = pipelineMeter.Int64Counter("records_raw")
var keptRecords, _ = pipelineMeter.Int64Counter("records_kept")
var deniedRecords, _ = pipelineMeter.Int64Counter("records_denied")

// RecordDay counts the records that went in and came out of the pipeline for
// one day of the report.
func RecordDay(ctx context.Context, day, raw, sanitized, kept int) {
	attrs := metric.WithAttributes(attribute.Int("day", day))
	rawRecords.Add(ctx, int64(raw), attrs)
	keptRecords.Add(ctx, int64(kept), attrs)
	deniedRecords.Add(ctx, int64(sanitized-kept), attrs)
}
