// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance tasks.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/menu-go/internal/store"
)

// pruneSchedule runs the retention job nightly at 03:00.
const pruneSchedule = "0 3 * * *"

// Scheduler handles scheduled tasks like audit event pruning.
type Scheduler struct {
	db            *sql.DB
	cron          *cron.Cron
	logger        *slog.Logger
	retentionDays int
}

// New creates a new scheduler instance. retentionDays controls how long
// audit events are kept.
func New(db *sql.DB, retentionDays int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:            db,
		cron:          cron.New(),
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// Start begins the scheduler with the nightly event retention job.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(pruneSchedule, func() {
		if err := s.pruneEvents(context.Background()); err != nil {
			s.logger.Error("failed to prune events", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "retention_days", s.retentionDays)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// pruneEvents deletes audit events older than the retention window.
func (s *Scheduler) pruneEvents(ctx context.Context) error {
	queries := store.New(s.db)
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	deleted, err := queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.logger.Info("pruned audit events", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
