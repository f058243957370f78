// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/auth"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "ahmad@ajnusa.com"
	DefaultAdminPassword = "password"
	DefaultAdminName     = "Administrator"
)

// Seed creates the default admin account when seeding is enabled and the
// account does not exist yet.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		return nil
	}

	queries := New(db)

	_, err := queries.GetAdminByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("default admin already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for default admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	admin, err := queries.CreateAdmin(ctx, CreateAdminParams{
		ID:           uuid.NewString(),
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating default admin: %w", err)
	}

	slog.Info("created default admin account",
		"id", admin.ID,
		"username", admin.Username,
		"email", admin.Email,
	)

	return nil
}
