// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including Admin, BlogPost, Popup, and Event.
package model

import (
	"database/sql"
	"time"
)

// Admin roles.
const (
	RoleAdmin    = "ADMIN"
	RoleEditor   = "EDITOR"
	RoleReadOnly = "READ_ONLY"
)

// Admin represents an admin account.
type Admin struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	LastLogin    sql.NullTime `json:"last_login,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsAdmin returns true if the account has the ADMIN role.
func (a *Admin) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known admin roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleReadOnly:
		return true
	}
	return false
}
