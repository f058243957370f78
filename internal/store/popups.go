// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
)

const popupColumns = `id, title, type, content, link, is_active, delay, show_close, width, height, created_by, created_at, updated_at`

func scanPopup(row interface{ Scan(dest ...any) error }) (model.Popup, error) {
	var p model.Popup
	err := row.Scan(&p.ID, &p.Title, &p.Type, &p.Content, &p.Link, &p.IsActive,
		&p.Delay, &p.ShowClose, &p.Width, &p.Height, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePopupParams holds the fields for creating a popup.
type CreatePopupParams struct {
	ID        string
	Title     string
	Type      string
	Content   string
	Link      sql.NullString
	IsActive  bool
	Delay     int64
	ShowClose bool
	Width     sql.NullInt64
	Height    sql.NullInt64
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePopup inserts a new popup and returns the persisted row.
func (q *Queries) CreatePopup(ctx context.Context, arg CreatePopupParams) (model.Popup, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO popups (id, title, type, content, link, is_active, delay, show_close, width, height, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+popupColumns,
		arg.ID, arg.Title, arg.Type, arg.Content, arg.Link, arg.IsActive,
		arg.Delay, arg.ShowClose, arg.Width, arg.Height, arg.CreatedBy,
		arg.CreatedAt, arg.UpdatedAt)
	return scanPopup(row)
}

// GetPopup fetches a popup by ID.
func (q *Queries) GetPopup(ctx context.Context, id string) (model.Popup, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+popupColumns+` FROM popups WHERE id = ?`, id)
	return scanPopup(row)
}

func (q *Queries) listPopups(ctx context.Context, query string, args ...any) ([]model.Popup, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var popups []model.Popup
	for rows.Next() {
		p, err := scanPopup(rows)
		if err != nil {
			return nil, err
		}
		popups = append(popups, p)
	}
	return popups, rows.Err()
}

// ListPopups returns all popups ordered newest first.
func (q *Queries) ListPopups(ctx context.Context) ([]model.Popup, error) {
	return q.listPopups(ctx,
		`SELECT `+popupColumns+` FROM popups ORDER BY created_at DESC`)
}

// ListActivePopups returns active popups ordered newest first.
// The single-active invariant means the result holds at most one row,
// but the query does not assume it.
func (q *Queries) ListActivePopups(ctx context.Context) ([]model.Popup, error) {
	return q.listPopups(ctx,
		`SELECT `+popupColumns+` FROM popups WHERE is_active = 1 ORDER BY created_at DESC`)
}

// DeactivatePopupsExcept clears is_active on every popup other than the given
// one. Run inside the same transaction as the activating write so the
// single-active invariant holds even under concurrent activations.
func (q *Queries) DeactivatePopupsExcept(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE popups SET is_active = 0, updated_at = ? WHERE is_active = 1 AND id != ?`,
		time.Now(), id)
	return err
}

// UpdatePopupParams holds the fields for updating a popup.
type UpdatePopupParams struct {
	ID        string
	Title     string
	Type      string
	Content   string
	Link      sql.NullString
	IsActive  bool
	Delay     int64
	ShowClose bool
	Width     sql.NullInt64
	Height    sql.NullInt64
	UpdatedAt time.Time
}

// UpdatePopup updates a popup and returns the persisted row.
func (q *Queries) UpdatePopup(ctx context.Context, arg UpdatePopupParams) (model.Popup, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE popups
		SET title = ?, type = ?, content = ?, link = ?, is_active = ?, delay = ?, show_close = ?, width = ?, height = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+popupColumns,
		arg.Title, arg.Type, arg.Content, arg.Link, arg.IsActive, arg.Delay,
		arg.ShowClose, arg.Width, arg.Height, arg.UpdatedAt, arg.ID)
	return scanPopup(row)
}

// DeletePopup removes a popup regardless of its active state.
func (q *Queries) DeletePopup(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM popups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreatePopupActive inserts a popup and, when it is created active,
// deactivates all other popups in the same transaction.
func CreatePopupActive(ctx context.Context, db *sql.DB, arg CreatePopupParams) (model.Popup, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.Popup{}, err
	}
	defer func() { _ = tx.Rollback() }()

	qtx := New(db).WithTx(tx)
	if arg.IsActive {
		if err := qtx.DeactivatePopupsExcept(ctx, arg.ID); err != nil {
			return model.Popup{}, err
		}
	}
	popup, err := qtx.CreatePopup(ctx, arg)
	if err != nil {
		return model.Popup{}, err
	}

	return popup, tx.Commit()
}

// UpdatePopupActive updates a popup and, when the write activates it,
// deactivates all other popups in the same transaction.
func UpdatePopupActive(ctx context.Context, db *sql.DB, arg UpdatePopupParams) (model.Popup, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.Popup{}, err
	}
	defer func() { _ = tx.Rollback() }()

	qtx := New(db).WithTx(tx)
	if arg.IsActive {
		if err := qtx.DeactivatePopupsExcept(ctx, arg.ID); err != nil {
			return model.Popup{}, err
		}
	}
	popup, err := qtx.UpdatePopup(ctx, arg)
	if err != nil {
		return model.Popup{}, err
	}

	return popup, tx.Commit()
}
