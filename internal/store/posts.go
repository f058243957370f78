// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
)

const postColumns = `id, title, slug, excerpt, content, image, category, author, published, author_id, created_at, updated_at`

func scanPost(row interface{ Scan(dest ...any) error }) (model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Image,
		&p.Category, &p.Author, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePostParams holds the fields for creating a blog post.
type CreatePostParams struct {
	ID        string
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Image     sql.NullString
	Category  string
	Author    string
	Published bool
	AuthorID  sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePost inserts a new blog post and returns the persisted row.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (id, title, slug, excerpt, content, image, category, author, published, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+postColumns,
		arg.ID, arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.Image,
		arg.Category, arg.Author, arg.Published, arg.AuthorID,
		arg.CreatedAt, arg.UpdatedAt)
	return scanPost(row)
}

// GetPost fetches a blog post by ID.
func (q *Queries) GetPost(ctx context.Context, id string) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetPostBySlug fetches a blog post by its slug.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = ?`, slug)
	return scanPost(row)
}

// SlugExists returns 1 if a post with the slug exists, 0 otherwise.
func (q *Queries) SlugExists(ctx context.Context, slug string) (int64, error) {
	var exists int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE slug = ?`, slug).Scan(&exists)
	return exists, err
}

func (q *Queries) listPosts(ctx context.Context, query string, args ...any) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all blog posts ordered newest first.
func (q *Queries) ListPosts(ctx context.Context) ([]model.BlogPost, error) {
	return q.listPosts(ctx,
		`SELECT `+postColumns+` FROM blog_posts ORDER BY created_at DESC`)
}

// ListPublishedPosts returns published blog posts ordered newest first.
func (q *Queries) ListPublishedPosts(ctx context.Context) ([]model.BlogPost, error) {
	return q.listPosts(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE published = 1 ORDER BY created_at DESC`)
}

// UpdatePostParams holds the fields for updating a blog post.
type UpdatePostParams struct {
	ID        string
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Image     sql.NullString
	Category  string
	Author    string
	Published bool
	UpdatedAt time.Time
}

// UpdatePost updates a blog post and returns the persisted row.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE blog_posts
		SET title = ?, slug = ?, excerpt = ?, content = ?, image = ?, category = ?, author = ?, published = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+postColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.Image, arg.Category,
		arg.Author, arg.Published, arg.UpdatedAt, arg.ID)
	return scanPost(row)
}

// DeletePost removes a blog post.
func (q *Queries) DeletePost(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
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
