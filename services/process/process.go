package process

import (
	"context"
	"fmt"
	"freeroom/lib/freeroom"
	"freeroom/lib/telemetry"
	"freeroom/services/dataset"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = telemetry.Tracer("freeroom.services.process")

type Options struct {
	DataDir string
	// defaults to 7
	Days     int
	Pipeline freeroom.Options
}

func (o Options) days() int {
	if o.Days <= 0 {
		return 7
	}
	return o.Days
}

// ProcessDay runs the pipeline over the raw files of one day and writes the
// processed file next to them.
func ProcessDay(ctx context.Context, opts Options, offset int) (freeroom.Day, error) {
	ctx, span := tracer.Start(ctx, "ProcessDay")
	defer span.End()
	span.SetAttributes(attribute.Int("day", offset))

	dir := dataset.DayDir(opts.DataDir, offset)
	raw, err := dataset.ReadRawDay(dir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read raw day")
		return freeroom.Day{}, fmt.Errorf("day %d: %w", offset, err)
	}

	day := freeroom.Process(raw, opts.Pipeline)
	telemetry.RecordDay(ctx, offset, day.RawCount, day.SanitizedCount, len(day.Records))

	err = dataset.WriteProcessed(dir, day.Records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write processed day")
		return freeroom.Day{}, fmt.Errorf("day %d: %w", offset, err)
	}

	slog.InfoContext(
		ctx, "processed day",
		"day", offset,
		"raw", day.RawCount,
		"sanitized", day.SanitizedCount,
		"kept", len(day.Records),
	)
	return day, nil
}

// ProcessAll processes every day of the window concurrently, days share
// nothing but the read-only rules, denylist and building table.
func ProcessAll(ctx context.Context, opts Options) ([]freeroom.Day, error) {
	ctx, span := tracer.Start(ctx, "ProcessAll")
	defer span.End()

	days := make([]freeroom.Day, opts.days())
	group, ctx := errgroup.WithContext(ctx)
	for offset := range days {
		group.Go(func() error {
			day, err := ProcessDay(ctx, opts, offset)
			if err != nil {
				return err
			}
			days[offset] = day
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return days, nil
}

// LoadAll reads back the processed files of every day and rebuilds their
// indices.
func LoadAll(ctx context.Context, dataDir string, count int, buildings []freeroom.BuildingRule) ([]freeroom.Day, error) {
	ctx, span := tracer.Start(ctx, "LoadAll")
	defer span.End()

	if count <= 0 {
		count = 7
	}
	days := make([]freeroom.Day, count)
	group, _ := errgroup.WithContext(ctx)
	for offset := range days {
		group.Go(func() error {
			records, err := dataset.ReadProcessed(dataset.DayDir(dataDir, offset))
			if err != nil {
				return fmt.Errorf("day %d: %w", offset, err)
			}
			days[offset] = freeroom.FromCanonical(records, buildings, len(records), len(records))
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return days, nil
}
