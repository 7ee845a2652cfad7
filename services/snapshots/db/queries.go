package db

import (
	"context"
)

const createRun = `insert into run (id, created_at, content_hash) values (?, ?, ?)`

type CreateRunParams struct {
	ID          string
	CreatedAt   int64
	ContentHash string
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) error {
	_, err := q.db.ExecContext(ctx, createRun, arg.ID, arg.CreatedAt, arg.ContentHash)
	return err
}

const createRoom = `insert into room (
    run_id, day_offset, date, time_slot, building, name, capacity, equipment
) values (?, ?, ?, ?, ?, ?, ?, ?)`

type CreateRoomParams struct {
	RunID     string
	DayOffset int64
	Date      string
	TimeSlot  string
	Building  string
	Name      string
	Capacity  string
	Equipment string
}

func (q *Queries) CreateRoom(ctx context.Context, arg CreateRoomParams) error {
	_, err := q.db.ExecContext(ctx, createRoom,
		arg.RunID,
		arg.DayOffset,
		arg.Date,
		arg.TimeSlot,
		arg.Building,
		arg.Name,
		arg.Capacity,
		arg.Equipment,
	)
	return err
}

const getLatestRun = `select id, created_at, content_hash from run
order by created_at desc, rowid desc
limit 1`

func (q *Queries) GetLatestRun(ctx context.Context) (Run, error) {
	row := q.db.QueryRowContext(ctx, getLatestRun)
	var i Run
	err := row.Scan(&i.ID, &i.CreatedAt, &i.ContentHash)
	return i, err
}

const getRuns = `select id, created_at, content_hash from run
order by created_at desc, rowid desc
limit ?`

func (q *Queries) GetRuns(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, getRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Run
	for rows.Next() {
		var i Run
		if err := rows.Scan(&i.ID, &i.CreatedAt, &i.ContentHash); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRoomsForDay = `select
    run_id, day_offset, date, time_slot, building, name, capacity, equipment
from room
where run_id = ? and day_offset = ?
order by rowid`

type GetRoomsForDayParams struct {
	RunID     string
	DayOffset int64
}

func (q *Queries) GetRoomsForDay(ctx context.Context, arg GetRoomsForDayParams) ([]Room, error) {
	rows, err := q.db.QueryContext(ctx, getRoomsForDay, arg.RunID, arg.DayOffset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Room
	for rows.Next() {
		var i Room
		if err := rows.Scan(
			&i.RunID,
			&i.DayOffset,
			&i.Date,
			&i.TimeSlot,
			&i.Building,
			&i.Name,
			&i.Capacity,
			&i.Equipment,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteRoomsOfRunsBefore = `delete from room where run_id in (
    select id from run where created_at < ?
)`

func (q *Queries) DeleteRoomsOfRunsBefore(ctx context.Context, before int64) error {
	_, err := q.db.ExecContext(ctx, deleteRoomsOfRunsBefore, before)
	return err
}

const deleteRunsBefore = `delete from run where created_at < ?`

func (q *Queries) DeleteRunsBefore(ctx context.Context, before int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRunsBefore, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
