// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs, currently pruning
// old audit events so the events table does not grow without bound.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/service"
)

// Scheduler handles scheduled maintenance tasks.
type Scheduler struct {
	events        *service.EventService
	cron          *cron.Cron
	logger        *slog.Logger
	retentionDays int
}

// New creates a new scheduler instance. retentionDays of zero disables
// event pruning.
func New(events *service.EventService, logger *slog.Logger, retentionDays int) *Scheduler {
	return &Scheduler{
		events:        events,
		cron:          cron.New(),
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// Start begins the scheduler with a daily event pruning job.
func (s *Scheduler) Start() error {
	if s.retentionDays > 0 {
		// Run daily at 03:00
		_, err := s.cron.AddFunc("0 3 * * *", func() {
			if err := s.PruneEvents(context.Background()); err != nil {
				s.logger.Error("failed to prune old events", "error", err)
			}
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneEvents deletes audit events older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	retention := time.Duration(s.retentionDays) * 24 * time.Hour
	deleted, err := s.events.DeleteOldEvents(ctx, retention)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.logger.Info("pruned old events",
			"deleted", deleted,
			"retention_days", s.retentionDays,
		)
	}
	return nil
}
