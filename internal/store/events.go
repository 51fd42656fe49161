// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createEvent = `
INSERT INTO events (created_at, level, category, message, profile_id, ip, meta)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	CreatedAt time.Time
	Level     string
	Category  string
	Message   string
	ProfileID sql.NullInt64
	IP        string
	Meta      string
}

// CreateEvent inserts an audit event.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.CreatedAt, arg.Level, arg.Category, arg.Message, arg.ProfileID, arg.IP, arg.Meta)
	return err
}

const listEvents = `
SELECT id, created_at, level, category, message, profile_id, ip, meta
FROM events
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

// ListEventsParams holds pagination bounds for ListEvents.
type ListEventsParams struct {
	Limit  int64
	Offset int64
}

// ListEvents returns a page of events, newest first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Level, &e.Category, &e.Message,
			&e.ProfileID, &e.IP, &e.Meta); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const countEvents = `SELECT COUNT(*) FROM events`

// CountEvents returns the total number of events.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&count)
	return count, err
}

const deleteEventsBefore = `DELETE FROM events WHERE created_at < ?`

// DeleteEventsBefore removes events older than cutoff and reports how
// many rows were pruned.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
