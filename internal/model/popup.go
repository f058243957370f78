// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Popup content types.
const (
	PopupTypeImage = "IMAGE"
	PopupTypeHTML  = "HTML"
)

// Popup represents a promotional popup. At most one popup is active at a time;
// activation deactivates all others.
type Popup struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Type      string         `json:"type"`
	Content   string         `json:"content"` // image URL/base64 or sanitized HTML
	Link      sql.NullString `json:"link,omitempty"`
	IsActive  bool           `json:"is_active"`
	Delay     int64          `json:"delay"` // seconds before showing
	ShowClose bool           `json:"show_close"`
	Width     sql.NullInt64  `json:"width,omitempty"`
	Height    sql.NullInt64  `json:"height,omitempty"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ValidPopupType reports whether t is a known popup content type.
func ValidPopupType(t string) bool {
	return t == PopupTypeImage || t == PopupTypeHTML
}
