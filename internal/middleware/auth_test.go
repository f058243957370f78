// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/rbac"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "ajnusa-mw-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createAdmin(t *testing.T, db *sql.DB, role string) model.Admin {
	t.Helper()

	now := time.Now()
	admin, err := store.New(db).CreateAdmin(context.Background(), store.CreateAdminParams{
		ID:           uuid.NewString(),
		Username:     "test-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@ajnusa.com",
		PasswordHash: "hash",
		Name:         "Test",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	return admin
}

// okHandler reports whether an admin made it into context.
func okHandler(t *testing.T, wantAdminID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantAdminID != "" {
			admin := GetAdmin(r)
			if admin == nil {
				t.Error("expected admin in context")
			} else if admin.ID != wantAdminID {
				t.Errorf("admin ID = %q, want %q", admin.ID, wantAdminID)
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestResolveAdmin_BearerToken(t *testing.T) {
	db := testDB(t)
	admin := createAdmin(t, db, model.RoleAdmin)

	handler := ResolveAdmin(db)(okHandler(t, admin.ID))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/blog", nil)
	req.Header.Set("Authorization", "Bearer "+admin.ID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestResolveAdmin_AdminIDHeader(t *testing.T) {
	db := testDB(t)
	admin := createAdmin(t, db, model.RoleEditor)

	handler := ResolveAdmin(db)(okHandler(t, admin.ID))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/blog", nil)
	req.Header.Set("X-Admin-Id", admin.ID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestResolveAdmin_UnknownToken(t *testing.T) {
	db := testDB(t)

	called := false
	handler := ResolveAdmin(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if GetAdmin(r) != nil {
			t.Error("unknown token should not resolve an admin")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/blog", nil)
	req.Header.Set("Authorization", "Bearer "+uuid.NewString())
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("next handler should still run without an admin")
	}
}

func TestRequirePermission_NoAdmin(t *testing.T) {
	handler := RequirePermission(rbac.PermViewBlog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/blog", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] != MsgUnauthorized {
		t.Errorf("error = %q, want %q", body["error"], MsgUnauthorized)
	}
}

func TestRequirePermission_Forbidden(t *testing.T) {
	db := testDB(t)
	admin := createAdmin(t, db, model.RoleReadOnly)

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	})
	handler = RequirePermission(rbac.PermCreateBlog)(handler)
	handler = ResolveAdmin(db)(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/blog", nil)
	req.Header.Set("Authorization", "Bearer "+admin.ID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] != MsgForbidden {
		t.Errorf("error = %q, want %q", body["error"], MsgForbidden)
	}
}

func TestRequirePermission_Allowed(t *testing.T) {
	db := testDB(t)
	admin := createAdmin(t, db, model.RoleEditor)

	var handler http.Handler = okHandler(t, admin.ID)
	handler = RequirePermission(rbac.PermCreateBlog)(handler)
	handler = ResolveAdmin(db)(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/blog", nil)
	req.Header.Set("Authorization", "Bearer "+admin.ID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireIdentity(t *testing.T) {
	db := testDB(t)
	admin := createAdmin(t, db, model.RoleReadOnly)

	var handler http.Handler = okHandler(t, "")
	handler = RequireIdentity()(handler)
	handler = ResolveAdmin(db)(handler)

	// Without credentials
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/popup", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without credentials = %d, want 401", rec.Code)
	}

	// With credentials
	req := httptest.NewRequest(http.MethodGet, "/api/admin/popup", nil)
	req.Header.Set("Authorization", "Bearer "+admin.ID)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with credentials = %d, want 200", rec.Code)
	}
}

func TestExtractAdminID(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"bearer", map[string]string{"Authorization": "Bearer abc-123"}, "abc-123"},
		{"bearer case insensitive", map[string]string{"Authorization": "bearer abc-123"}, "abc-123"},
		{"x-admin-id", map[string]string{"X-Admin-Id": "def-456"}, "def-456"},
		{"bearer wins", map[string]string{"Authorization": "Bearer abc", "X-Admin-Id": "def"}, "abc"},
		{"malformed falls back", map[string]string{"Authorization": "Basic abc", "X-Admin-Id": "def"}, "def"},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := extractAdminID(req); got != tt.want {
				t.Errorf("extractAdminID() = %q, want %q", got, tt.want)
			}
		})
	}
}
