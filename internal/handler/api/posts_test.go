// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
)

func samplePost(slug string) CreatePostRequest {
	published := true
	return CreatePostRequest{
		Title:     "Mengenal Teknologi VSAT",
		Slug:      slug,
		Excerpt:   "Pengenalan singkat teknologi VSAT.",
		Content:   "VSAT menghubungkan lokasi terpencil melalui satelit.",
		Category:  "Teknologi",
		Author:    "Tim AJNUSA",
		Published: &published,
	}
}

func TestCreatePost(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	rec := ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("intro-vsat"))
	wantStatus(t, rec, http.StatusCreated)

	post := decodeBody[PostResponse](t, rec)
	if post.Slug != "intro-vsat" {
		t.Errorf("slug = %q", post.Slug)
	}
	if post.AuthorID == nil || *post.AuthorID != editor.ID {
		t.Errorf("authorId = %v, want %q", post.AuthorID, editor.ID)
	}
	if !post.Published {
		t.Error("post should be published")
	}
}

func TestCreatePost_DefaultsToPublished(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	req := samplePost("intro-vsat")
	req.Published = nil

	rec := ts.request(t, http.MethodPost, "/api/blog", editor.ID, req)
	wantStatus(t, rec, http.StatusCreated)

	post := decodeBody[PostResponse](t, rec)
	if !post.Published {
		t.Error("post created without a published flag should be published")
	}

	// And it shows up in the public published listing.
	published := decodeBody[[]PostResponse](t, ts.request(t, http.MethodGet, "/api/blog?published=true", "", nil))
	if len(published) != 1 || published[0].ID != post.ID {
		t.Errorf("published list = %+v, want the new post", published)
	}
}

func TestCreatePost_MissingFields(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	req := samplePost("intro-vsat")
	req.Title = ""
	req.Category = ""

	rec := ts.request(t, http.MethodPost, "/api/blog", editor.ID, req)
	wantStatus(t, rec, http.StatusBadRequest)

	msg := errorMessage(t, rec)
	if !strings.Contains(msg, "title") || !strings.Contains(msg, "category") {
		t.Errorf("error should name the missing fields, got %q", msg)
	}
}

func TestCreatePost_DuplicateSlug(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	wantStatus(t, ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("intro-vsat")), http.StatusCreated)

	rec := ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("intro-vsat"))
	wantStatus(t, rec, http.StatusBadRequest)
	if msg := errorMessage(t, rec); msg != "Slug already used" {
		t.Errorf("error = %q, want %q", msg, "Slug already used")
	}

	// Only the first post exists.
	list := decodeBody[[]PostResponse](t, ts.request(t, http.MethodGet, "/api/blog", "", nil))
	if len(list) != 1 {
		t.Errorf("got %d posts, want 1", len(list))
	}
}

func TestCreatePost_InvalidSlug(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	req := samplePost("Not A Slug!")
	rec := ts.request(t, http.MethodPost, "/api/blog", editor.ID, req)
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestCreatePost_Unauthenticated(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/blog", "", samplePost("intro-vsat"))
	wantStatus(t, rec, http.StatusUnauthorized)
}

func TestCreatePost_ReadOnlyForbidden(t *testing.T) {
	ts := newTestServer(t)
	viewer := ts.createAdmin(t, "viewer", "viewer@ajnusa.com", model.RoleReadOnly)

	rec := ts.request(t, http.MethodPost, "/api/blog", viewer.ID, samplePost("intro-vsat"))
	wantStatus(t, rec, http.StatusForbidden)

	// No post was created.
	list := decodeBody[[]PostResponse](t, ts.request(t, http.MethodGet, "/api/blog", "", nil))
	if len(list) != 0 {
		t.Errorf("got %d posts, want 0", len(list))
	}
}

func TestListPosts_PublishedFilter(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	wantStatus(t, ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("published-post")), http.StatusCreated)

	draft := samplePost("draft-post")
	notPublished := false
	draft.Published = &notPublished
	wantStatus(t, ts.request(t, http.MethodPost, "/api/blog", editor.ID, draft), http.StatusCreated)

	all := decodeBody[[]PostResponse](t, ts.request(t, http.MethodGet, "/api/blog", "", nil))
	if len(all) != 2 {
		t.Errorf("unfiltered list has %d posts, want 2", len(all))
	}

	published := decodeBody[[]PostResponse](t, ts.request(t, http.MethodGet, "/api/blog?published=true", "", nil))
	if len(published) != 1 || published[0].Slug != "published-post" {
		t.Errorf("published list = %+v, want only published-post", published)
	}
}

func TestGetPost(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	created := decodeBody[PostResponse](t,
		ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("intro-vsat")))

	// Reads need no credentials.
	rec := ts.request(t, http.MethodGet, "/api/blog/"+created.ID, "", nil)
	wantStatus(t, rec, http.StatusOK)
	if got := decodeBody[PostResponse](t, rec); got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}

	wantStatus(t, ts.request(t, http.MethodGet, "/api/blog/missing-id", "", nil), http.StatusNotFound)
}

func TestUpdatePost(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	created := decodeBody[PostResponse](t,
		ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("intro-vsat")))

	newTitle := "Updated Title"
	rec := ts.request(t, http.MethodPut, "/api/blog/"+created.ID, editor.ID, UpdatePostRequest{Title: &newTitle})
	wantStatus(t, rec, http.StatusOK)

	updated := decodeBody[PostResponse](t, rec)
	if updated.Title != newTitle {
		t.Errorf("title = %q, want %q", updated.Title, newTitle)
	}
	if updated.Slug != "intro-vsat" {
		t.Errorf("slug changed unexpectedly: %q", updated.Slug)
	}
}

func TestUpdatePost_UnauthenticatedLeavesPostUnchanged(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	created := decodeBody[PostResponse](t,
		ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("intro-vsat")))

	newTitle := "Hijacked"
	rec := ts.request(t, http.MethodPut, "/api/blog/"+created.ID, "", UpdatePostRequest{Title: &newTitle})
	wantStatus(t, rec, http.StatusUnauthorized)

	got := decodeBody[PostResponse](t, ts.request(t, http.MethodGet, "/api/blog/"+created.ID, "", nil))
	if got.Title != created.Title {
		t.Errorf("title = %q, post was modified by an unauthorized request", got.Title)
	}
}

func TestUpdatePost_SlugConflict(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	wantStatus(t, ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("first")), http.StatusCreated)
	second := decodeBody[PostResponse](t,
		ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("second")))

	taken := "first"
	rec := ts.request(t, http.MethodPut, "/api/blog/"+second.ID, editor.ID, UpdatePostRequest{Slug: &taken})
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestDeletePost(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	created := decodeBody[PostResponse](t,
		ts.request(t, http.MethodPost, "/api/blog", editor.ID, samplePost("intro-vsat")))

	rec := ts.request(t, http.MethodDelete, "/api/blog/"+created.ID, editor.ID, nil)
	wantStatus(t, rec, http.StatusOK)

	wantStatus(t, ts.request(t, http.MethodGet, "/api/blog/"+created.ID, "", nil), http.StatusNotFound)
	wantStatus(t, ts.request(t, http.MethodDelete, "/api/blog/"+created.ID, editor.ID, nil), http.StatusNotFound)
}
