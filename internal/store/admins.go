// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
)

const adminColumns = `id, username, email, password_hash, name, role, last_login, created_at, updated_at`

func scanAdmin(row interface{ Scan(dest ...any) error }) (model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Name,
		&a.Role, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateAdminParams holds the fields for creating an admin account.
type CreateAdminParams struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateAdmin inserts a new admin account and returns the persisted row.
func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO admins (id, username, email, password_hash, name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+adminColumns,
		arg.ID, arg.Username, arg.Email, arg.PasswordHash, arg.Name, arg.Role,
		arg.CreatedAt, arg.UpdatedAt)
	return scanAdmin(row)
}

// GetAdminByID fetches an admin account by its ID.
func (q *Queries) GetAdminByID(ctx context.Context, id string) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
	return scanAdmin(row)
}

// GetAdminByUsername fetches an admin account by username.
func (q *Queries) GetAdminByUsername(ctx context.Context, username string) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE username = ?`, username)
	return scanAdmin(row)
}

// GetAdminByEmail fetches an admin account by email.
func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)
	return scanAdmin(row)
}

// GetAdminByIdentifier fetches an admin account whose username or email
// matches the identifier. Login accepts either form.
func (q *Queries) GetAdminByIdentifier(ctx context.Context, identifier string) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE username = ? OR email = ?`,
		identifier, identifier)
	return scanAdmin(row)
}

// ListAdmins returns all admin accounts ordered newest first.
func (q *Queries) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+adminColumns+` FROM admins ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// CountAdmins returns the total number of admin accounts.
func (q *Queries) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	return count, err
}

// UpdateAdminParams holds the fields for updating an admin account.
// All fields are written; callers start from the existing row.
type UpdateAdminParams struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	UpdatedAt    time.Time
}

// UpdateAdmin updates an admin account and returns the persisted row.
func (q *Queries) UpdateAdmin(ctx context.Context, arg UpdateAdminParams) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE admins
		SET username = ?, email = ?, password_hash = ?, name = ?, role = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+adminColumns,
		arg.Username, arg.Email, arg.PasswordHash, arg.Name, arg.Role,
		arg.UpdatedAt, arg.ID)
	return scanAdmin(row)
}

// UpdateAdminLastLogin records a successful authentication.
func (q *Queries) UpdateAdminLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE admins SET last_login = ?, updated_at = ? WHERE id = ?`, at, at, id)
	return err
}

// DeleteAdmin removes an admin account.
func (q *Queries) DeleteAdmin(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id)
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
