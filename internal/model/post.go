// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// BlogPost represents a blog article.
type BlogPost struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Excerpt   string         `json:"excerpt"`
	Content   string         `json:"content"`
	Image     sql.NullString `json:"image,omitempty"`
	Category  string         `json:"category"`
	Author    string         `json:"author"`
	Published bool           `json:"published"`
	AuthorID  sql.NullString `json:"author_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IsPublished returns true if the post is publicly visible.
func (p *BlogPost) IsPublished() bool {
	return p.Published
}
