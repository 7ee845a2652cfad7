package collect

import (
	"context"
	"fmt"
	"freeroom/lib/freeroom"
	"freeroom/lib/telemetry"
	"freeroom/lib/timezone"
	"freeroom/services/dataset"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("freeroom.services.collect")

// Portal is the part of the portal client the collector needs.
type Portal interface {
	Login(ctx context.Context, username, password string) error
	QueryFreeRooms(ctx context.Context, date time.Time, slot freeroom.SlotId) ([]freeroom.RawRecord, error)
}

// NewPortal creates a fresh, logged-out session.
type NewPortal func(ctx context.Context) (Portal, error)

type Options struct {
	DataDir  string
	Username string
	Password string
	// number of days starting today, defaults to 7
	Days int
	// pause before every slot query
	Delay time.Duration
	// defaults to timezone.Now()
	Now time.Time
}

type SlotResult struct {
	Slot  freeroom.SlotId
	Rows  int
	Error error
}

type DayResult struct {
	Offset int
	Date   time.Time
	Slots  []SlotResult
}

// Collect scrapes every slot of every day in the window and writes the
// non-empty batches under the data directory. A failed login aborts the
// whole run, a failed slot query is logged and treated as an empty batch.
func Collect(ctx context.Context, newPortal NewPortal, opts Options) ([]DayResult, error) {
	ctx, span := tracer.Start(ctx, "Collect")
	defer span.End()

	days := opts.Days
	if days == 0 {
		days = 7
	}
	now := opts.Now
	if now.IsZero() {
		now = timezone.Now()
	}

	var results []DayResult
	for offset := 0; offset < days; offset++ {
		result, err := collectDay(ctx, newPortal, opts, timezone.Day(now, offset), offset)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to collect day")
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func clearRawFiles(dir string) error {
	for _, slot := range freeroom.AllSlots {
		err := os.Remove(filepath.Join(dir, dataset.RawFileName(slot)))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func collectDay(ctx context.Context, newPortal NewPortal, opts Options, date time.Time, offset int) (DayResult, error) {
	ctx, span := tracer.Start(ctx, "collectDay")
	defer span.End()

	span.SetAttributes(
		attribute.Int("offset", offset),
		attribute.String("date", timezone.QueryDate(date)),
	)
	result := DayResult{Offset: offset, Date: date}

	// every day gets its own session, the portal expires them quickly
	portal, err := newPortal(ctx)
	if err != nil {
		return result, err
	}
	err = portal.Login(ctx, opts.Username, opts.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return result, fmt.Errorf("day %d: %w", offset, err)
	}

	dir := dataset.DayDir(opts.DataDir, offset)
	err = clearRawFiles(dir)
	if err != nil {
		return result, err
	}

	slog.InfoContext(ctx, "collecting day", "day", offset, "date", timezone.QueryDate(date))
	for _, slot := range freeroom.QuerySlots {
		err := sleep(ctx, opts.Delay)
		if err != nil {
			return result, err
		}

		records, err := portal.QueryFreeRooms(ctx, date, slot)
		if err != nil {
			slog.WarnContext(ctx, "failed to query slot", "day", offset, "slot", slot, "err", err)
			result.Slots = append(result.Slots, SlotResult{Slot: slot, Error: err})
			continue
		}
		result.Slots = append(result.Slots, SlotResult{Slot: slot, Rows: len(records)})
		if len(records) == 0 {
			slog.InfoContext(ctx, "no free rooms", "day", offset, "slot", slot)
			continue
		}

		err = dataset.WriteRawSlot(dir, slot, records)
		if err != nil {
			return result, err
		}
		slog.InfoContext(ctx, "saved slot", "day", offset, "slot", slot, "rows", len(records))
	}
	return result, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
