// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/menu-go/internal/model"
	"github.com/olegiv/menu-go/internal/store"
)

// EventService records audit events. Recording never fails the calling
// operation; write errors are logged and swallowed.
type EventService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewEventService creates an EventService backed by db.
func NewEventService(db *sql.DB, logger *slog.Logger) *EventService {
	return &EventService{queries: store.New(db), logger: logger}
}

// EventPage is one page of audit events with the total count.
type EventPage struct {
	Events []EventRecord `json:"events"`
	Total  int64         `json:"total"`
}

// EventRecord is the API-facing shape of one audit event.
type EventRecord struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	ProfileID *int64          `json:"profile_id,omitempty"`
	IP        string          `json:"ip,omitempty"`
	Meta      json.RawMessage `json:"meta,omitempty"`
}

// Log records one audit event. profileID 0 means no signed-in profile.
func (s *EventService) Log(ctx context.Context, level, category, message string, profileID int64, ip string, meta map[string]any) {
	var metaJSON string
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			s.logger.Warn("marshaling event meta", "error", err)
		} else {
			metaJSON = string(b)
		}
	}

	var profile sql.NullInt64
	if profileID != 0 {
		profile = sql.NullInt64{Int64: profileID, Valid: true}
	}

	if err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		CreatedAt: time.Now(),
		Level:     level,
		Category:  category,
		Message:   message,
		ProfileID: profile,
		IP:        ip,
		Meta:      metaJSON,
	}); err != nil {
		s.logger.Error("recording audit event", "error", err, "message", message)
	}
}

// Info records an info-level audit event.
func (s *EventService) Info(ctx context.Context, category, message string, profileID int64, ip string, meta map[string]any) {
	s.Log(ctx, model.EventLevelInfo, category, message, profileID, ip, meta)
}

// Warning records a warning-level audit event.
func (s *EventService) Warning(ctx context.Context, category, message string, profileID int64, ip string, meta map[string]any) {
	s.Log(ctx, model.EventLevelWarning, category, message, profileID, ip, meta)
}

// List returns one page of events, newest first.
func (s *EventService) List(ctx context.Context, limit, offset int64) (EventPage, error) {
	events, err := s.queries.ListEvents(ctx, store.ListEventsParams{Limit: limit, Offset: offset})
	if err != nil {
		return EventPage{}, err
	}
	total, err := s.queries.CountEvents(ctx)
	if err != nil {
		return EventPage{}, err
	}

	page := EventPage{Events: make([]EventRecord, 0, len(events)), Total: total}
	for _, e := range events {
		record := EventRecord{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			Level:     e.Level,
			Category:  e.Category,
			Message:   e.Message,
			IP:        e.IP,
		}
		if e.ProfileID.Valid {
			id := e.ProfileID.Int64
			record.ProfileID = &id
		}
		if json.Valid([]byte(e.Meta)) && e.Meta != "" {
			record.Meta = json.RawMessage(e.Meta)
		}
		page.Events = append(page.Events, record)
	}
	return page, nil
}
