// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/service"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerStartStop(t *testing.T) {
	db := testDB(t)
	s := New(service.NewEventService(db), discardLogger(), 30)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if got := len(s.cron.Entries()); got != 1 {
		t.Errorf("registered jobs = %d, want 1", got)
	}
	s.Stop()
}

func TestSchedulerStart_PruningDisabled(t *testing.T) {
	db := testDB(t)
	s := New(service.NewEventService(db), discardLogger(), 0)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if got := len(s.cron.Entries()); got != 0 {
		t.Errorf("registered jobs = %d, want 0", got)
	}
	s.Stop()
}

func TestPruneEvents(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	events := service.NewEventService(db)

	// One recent event, one pushed past the retention cutoff.
	if err := events.LogInfo(ctx, "system", "recent event", "", "", nil); err != nil {
		t.Fatalf("failed to log event: %v", err)
	}
	if err := events.LogInfo(ctx, "system", "stale event", "", "", nil); err != nil {
		t.Fatalf("failed to log event: %v", err)
	}
	_, err := db.ExecContext(ctx,
		`UPDATE events SET created_at = datetime('now', '-60 days') WHERE message = 'stale event'`)
	if err != nil {
		t.Fatalf("failed to backdate event: %v", err)
	}

	s := New(events, discardLogger(), 30)
	if err := s.PruneEvents(ctx); err != nil {
		t.Fatalf("PruneEvents() error: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		t.Fatalf("failed to count events: %v", err)
	}
	if count != 1 {
		t.Errorf("remaining events = %d, want 1", count)
	}
}
