package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"freeroom/lib/freeroom"
	"freeroom/lib/telemetry"
	"freeroom/lib/timezone"
	"freeroom/services/snapshots/db"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("freeroom.services.snapshots")

// Store keeps the history of generated reports, one run per report with
// the canonical records of every day it covered.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Migrate creates the tables if they do not exist yet.
func (s Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, db.Schema)
	return err
}

type DaySnapshot struct {
	Offset  int
	Date    time.Time
	Records []freeroom.CanonicalRecord
}

type Run struct {
	ID          string
	Time        time.Time
	ContentHash string
}

func newRunId() (string, error) {
	suffix, err := random.String(8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", timezone.Now().Format("20060102"), suffix), nil
}

// SaveRun stores a report run and returns its id.
func (s Store) SaveRun(ctx context.Context, at time.Time, contentHash string, days []DaySnapshot) (string, error) {
	ctx, span := tracer.Start(ctx, "SaveRun")
	defer span.End()

	id, err := newRunId()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate run id")
		return "", err
	}
	span.SetAttributes(attribute.String("run_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.CreateRun(ctx, db.CreateRunParams{
		ID:          id,
		CreatedAt:   at.Unix(),
		ContentHash: contentHash,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	for _, day := range days {
		date := timezone.QueryDate(day.Date)
		for _, r := range day.Records {
			err := txqry.CreateRoom(ctx, db.CreateRoomParams{
				RunID:     id,
				DayOffset: int64(day.Offset),
				Date:      date,
				TimeSlot:  string(r.TimeSlot),
				Building:  r.Building,
				Name:      r.Name,
				Capacity:  r.Capacity,
				Equipment: r.EquipmentTag,
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return "", err
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return id, nil
}

// LatestRun returns the most recent run, ok is false when there is none.
func (s Store) LatestRun(ctx context.Context) (Run, bool, error) {
	ctx, span := tracer.Start(ctx, "LatestRun")
	defer span.End()

	row, err := s.qry.GetLatestRun(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Run{}, false, err
	}
	return Run{
		ID:          row.ID,
		Time:        time.Unix(row.CreatedAt, 0).In(timezone.Location),
		ContentHash: row.ContentHash,
	}, true, nil
}

// Runs returns the latest runs, newest first.
func (s Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	ctx, span := tracer.Start(ctx, "Runs")
	defer span.End()

	rows, err := s.qry.GetRuns(ctx, int64(limit))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	out := make([]Run, len(rows))
	for i, r := range rows {
		out[i] = Run{
			ID:          r.ID,
			Time:        time.Unix(r.CreatedAt, 0).In(timezone.Location),
			ContentHash: r.ContentHash,
		}
	}
	return out, nil
}

// GetDay returns the records a run stored for a day offset. Only the
// canonical columns are kept in the store, passthrough columns are not.
func (s Store) GetDay(ctx context.Context, runId string, offset int) ([]freeroom.CanonicalRecord, error) {
	ctx, span := tracer.Start(ctx, "GetDay")
	defer span.End()

	rows, err := s.qry.GetRoomsForDay(ctx, db.GetRoomsForDayParams{
		RunID:     runId,
		DayOffset: int64(offset),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]freeroom.CanonicalRecord, len(rows))
	for i, r := range rows {
		out[i] = freeroom.CanonicalRecord{
			Building:     r.Building,
			Name:         r.Name,
			TimeSlot:     freeroom.SlotId(r.TimeSlot),
			Capacity:     r.Capacity,
			EquipmentTag: r.Equipment,
			Extra:        map[string]string{},
		}
	}
	return out, nil
}

// Prune deletes runs older than before and returns how many were removed.
func (s Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "Prune")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteRoomsOfRunsBefore(ctx, before.Unix())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	count, err := txqry.DeleteRunsBefore(ctx, before.Unix())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return count, tx.Commit()
}
