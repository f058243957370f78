// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
)

func sampleUser(username, email string) CreateUserRequest {
	return CreateUserRequest{
		Username: username,
		Password: "secret-password",
		Name:     "New Admin",
		Email:    email,
		Role:     model.RoleEditor,
	}
}

func TestCreateUser(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)

	rec := ts.request(t, http.MethodPost, "/api/admin/users", admin.ID, sampleUser("editor1", "editor1@ajnusa.com"))
	wantStatus(t, rec, http.StatusCreated)

	created := decodeBody[AdminResponse](t, rec)
	if created.Username != "editor1" || created.Role != model.RoleEditor {
		t.Errorf("created = %+v", created)
	}
	if containsHashField(rec.Body.String()) {
		t.Errorf("response leaks password hash: %s", rec.Body.String())
	}
}

func TestCreateUser_DefaultsToReadOnly(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)

	req := sampleUser("viewer1", "viewer1@ajnusa.com")
	req.Role = ""
	rec := ts.request(t, http.MethodPost, "/api/admin/users", admin.ID, req)
	wantStatus(t, rec, http.StatusCreated)

	if created := decodeBody[AdminResponse](t, rec); created.Role != model.RoleReadOnly {
		t.Errorf("role = %q, want READ_ONLY", created.Role)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)

	wantStatus(t, ts.request(t, http.MethodPost, "/api/admin/users", admin.ID,
		sampleUser("editor1", "a@ajnusa.com")), http.StatusCreated)

	rec := ts.request(t, http.MethodPost, "/api/admin/users", admin.ID,
		sampleUser("editor1", "b@ajnusa.com"))
	wantStatus(t, rec, http.StatusBadRequest)

	// No partial user was created.
	count, err := ts.queries.CountAdmins(context.Background())
	if err != nil {
		t.Fatalf("CountAdmins: %v", err)
	}
	if count != 2 { // admin + editor1
		t.Errorf("admin count = %d, want 2", count)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)

	wantStatus(t, ts.request(t, http.MethodPost, "/api/admin/users", admin.ID,
		sampleUser("editor1", "shared@ajnusa.com")), http.StatusCreated)

	rec := ts.request(t, http.MethodPost, "/api/admin/users", admin.ID,
		sampleUser("editor2", "shared@ajnusa.com"))
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestUsersRoutes_RequireUserPermissions(t *testing.T) {
	ts := newTestServer(t)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	// Editors hold blog permissions but no user management rights.
	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/admin/users", nil},
		{http.MethodPost, "/api/admin/users", sampleUser("x", "x@ajnusa.com")},
		{http.MethodPut, "/api/admin/users/" + editor.ID, UpdateUserRequest{}},
		{http.MethodDelete, "/api/admin/users/" + editor.ID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := ts.request(t, tt.method, tt.path, editor.ID, tt.body)
			wantStatus(t, rec, http.StatusForbidden)
		})
	}
}

func TestGetUser(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	rec := ts.request(t, http.MethodGet, "/api/admin/users/"+editor.ID, admin.ID, nil)
	wantStatus(t, rec, http.StatusOK)

	got := decodeBody[AdminResponse](t, rec)
	if got.ID != editor.ID || got.Username != "editor" {
		t.Errorf("got %+v, want user %q", got, editor.ID)
	}
	if containsHashField(rec.Body.String()) {
		t.Error("response leaks password hash")
	}

	rec = ts.request(t, http.MethodGet, "/api/admin/users/missing-id", admin.ID, nil)
	wantStatus(t, rec, http.StatusNotFound)

	// Single-user reads carry the same VIEW_USERS gate as the listing.
	rec = ts.request(t, http.MethodGet, "/api/admin/users/"+admin.ID, editor.ID, nil)
	wantStatus(t, rec, http.StatusForbidden)
}

func TestListUsers(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)
	ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	rec := ts.request(t, http.MethodGet, "/api/admin/users", admin.ID, nil)
	wantStatus(t, rec, http.StatusOK)

	users := decodeBody[[]AdminResponse](t, rec)
	if len(users) != 2 {
		t.Errorf("got %d users, want 2", len(users))
	}
	if containsHashField(rec.Body.String()) {
		t.Error("listing leaks password hashes")
	}
}

func TestUpdateUser(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	newRole := model.RoleReadOnly
	newName := "Demoted"
	rec := ts.request(t, http.MethodPut, "/api/admin/users/"+editor.ID, admin.ID, UpdateUserRequest{
		Role: &newRole,
		Name: &newName,
	})
	wantStatus(t, rec, http.StatusOK)

	updated := decodeBody[AdminResponse](t, rec)
	if updated.Role != model.RoleReadOnly || updated.Name != "Demoted" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUpdateUser_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	taken := "admin"
	rec := ts.request(t, http.MethodPut, "/api/admin/users/"+editor.ID, admin.ID, UpdateUserRequest{
		Username: &taken,
	})
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestDeleteUser(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)
	editor := ts.createAdmin(t, "editor", "editor@ajnusa.com", model.RoleEditor)

	wantStatus(t, ts.request(t, http.MethodDelete, "/api/admin/users/"+editor.ID, admin.ID, nil), http.StatusOK)
	wantStatus(t, ts.request(t, http.MethodDelete, "/api/admin/users/"+editor.ID, admin.ID, nil), http.StatusNotFound)
}

func TestDeleteUser_SelfRejected(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin(t, "admin", "admin@ajnusa.com", model.RoleAdmin)

	rec := ts.request(t, http.MethodDelete, "/api/admin/users/"+admin.ID, admin.ID, nil)
	wantStatus(t, rec, http.StatusBadRequest)
}
