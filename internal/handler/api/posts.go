// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/middleware"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/store"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/util"
)

// PostResponse represents a blog post in API responses.
type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Image     *string   `json:"image"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	Published bool      `json:"published"`
	AuthorID  *string   `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func postToResponse(p model.BlogPost) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Image:     util.PtrFromNullString(p.Image),
		Category:  p.Category,
		Author:    p.Author,
		Published: p.Published,
		AuthorID:  util.PtrFromNullString(p.AuthorID),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func postsToResponse(posts []model.BlogPost) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, postToResponse(p))
	}
	return out
}

// CreatePostRequest is the request body for creating a blog post.
type CreatePostRequest struct {
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Excerpt   string  `json:"excerpt"`
	Content   string  `json:"content"`
	Image     *string `json:"image"`
	Category  string  `json:"category"`
	Author    string  `json:"author"`
	Published *bool   `json:"published"`
}

// UpdatePostRequest is the request body for updating a blog post.
// Absent fields leave the stored value unchanged.
type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Image     *string `json:"image"`
	Category  *string `json:"category"`
	Author    *string `json:"author"`
	Published *bool   `json:"published"`
}

// ListPosts handles GET /api/blog. Public; `?published=true` filters to
// published posts only. Results are ordered newest first.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []model.BlogPost
		err   error
	)

	if r.URL.Query().Get("published") == "true" {
		posts, err = h.queries.ListPublishedPosts(r.Context())
	} else {
		posts, err = h.queries.ListPosts(r.Context())
	}
	if err != nil {
		slog.Error("listing posts", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list posts")
		return
	}

	WriteJSON(w, http.StatusOK, postsToResponse(posts))
}

// GetPost handles GET /api/blog/{id}. Public.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.queries.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Post not found")
		} else {
			slog.Error("fetching post", "error", err, "post_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to fetch post")
		}
		return
	}

	WriteJSON(w, http.StatusOK, postToResponse(post))
}

// validatePostFields returns the names of required fields that are empty.
func validatePostFields(req CreatePostRequest) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", req.Title},
		{"slug", req.Slug},
		{"excerpt", req.Excerpt},
		{"content", req.Content},
		{"category", req.Category},
		{"author", req.Author},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// checkSlugAvailable verifies slug shape and uniqueness. Returns false with a
// 400 response written when the slug cannot be used.
func (h *Handler) checkSlugAvailable(w http.ResponseWriter, r *http.Request, slug string) bool {
	if !util.IsValidSlug(slug) {
		WriteError(w, http.StatusBadRequest, "Slug must contain only lowercase letters, numbers and hyphens")
		return false
	}

	exists, err := h.queries.SlugExists(r.Context(), slug)
	if err != nil {
		slog.Error("checking slug", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to check slug")
		return false
	}
	if exists != 0 {
		WriteError(w, http.StatusBadRequest, "Slug already used")
		return false
	}
	return true
}

// CreatePost handles POST /api/blog. Requires CREATE_BLOG.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if missing := validatePostFields(req); len(missing) > 0 {
		WriteError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	if !h.checkSlugAvailable(w, r, req.Slug) {
		return
	}

	// An omitted published flag creates a visible post.
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	now := time.Now()
	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Image:     util.NullStringFromPtr(req.Image),
		Category:  req.Category,
		Author:    req.Author,
		Published: published,
		AuthorID:  util.NullStringFromValue(middleware.GetAdminID(r)),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating post", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	if h.events != nil {
		_ = h.events.LogBlogEvent(r.Context(), model.EventLevelInfo, "Blog post created",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"slug": post.Slug})
	}

	WriteJSON(w, http.StatusCreated, postToResponse(post))
}

// UpdatePost handles PUT /api/blog/{id}. Requires EDIT_BLOG.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.queries.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Post not found")
		} else {
			slog.Error("fetching post", "error", err, "post_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to fetch post")
		}
		return
	}

	var req UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Slug != nil && *req.Slug != post.Slug {
		if !h.checkSlugAvailable(w, r, *req.Slug) {
			return
		}
		post.Slug = *req.Slug
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Image != nil {
		post.Image = util.NullStringFromValue(*req.Image)
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Author != nil {
		post.Author = *req.Author
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	updated, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		ID:        post.ID,
		Title:     post.Title,
		Slug:      post.Slug,
		Excerpt:   post.Excerpt,
		Content:   post.Content,
		Image:     post.Image,
		Category:  post.Category,
		Author:    post.Author,
		Published: post.Published,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("updating post", "error", err, "post_id", id)
		WriteError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	if h.events != nil {
		_ = h.events.LogBlogEvent(r.Context(), model.EventLevelInfo, "Blog post updated",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"slug": updated.Slug})
	}

	WriteJSON(w, http.StatusOK, postToResponse(updated))
}

// DeletePost handles DELETE /api/blog/{id}. Requires DELETE_BLOG.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Post not found")
		} else {
			slog.Error("deleting post", "error", err, "post_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to delete post")
		}
		return
	}

	if h.events != nil {
		_ = h.events.LogBlogEvent(r.Context(), model.EventLevelInfo, "Blog post deleted",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"post_id": id})
	}

	WriteMessage(w, http.StatusOK, "Post deleted successfully")
}
