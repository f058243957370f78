// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/auth"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/middleware"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/service"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/store"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/version"
)

// testPassword is the plaintext password used for all test accounts.
const testPassword = "password"

// testServer bundles everything an API test needs.
type testServer struct {
	db      *sql.DB
	queries *store.Queries
	handler *Handler
	router  chi.Router
}

// newTestServer builds a migrated database and a router wired exactly the
// way the application wires it.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "ajnusa-api-test-*.db")
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

	events := service.NewEventService(db)
	handler := NewHandler(db, events)
	handler.SetSiteURL("https://ajnusa.com")
	health := NewHealthHandler(db, version.Info{Version: "test"})

	router := chi.NewRouter()
	router.Use(middleware.ResolveAdmin(db))
	handler.MountRoutes(router, nil, health, events)

	return &testServer{
		db:      db,
		queries: store.New(db),
		handler: handler,
		router:  router,
	}
}

// createAdmin inserts an admin account with the given role and a bcrypt hash
// of testPassword.
func (ts *testServer) createAdmin(t *testing.T, username, email, role string) model.Admin {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	now := time.Now()
	admin, err := ts.queries.CreateAdmin(context.Background(), store.CreateAdminParams{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Admin",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	return admin
}

// request performs an HTTP request against the test router. A non-empty
// adminID is sent as the bearer token.
func (ts *testServer) request(t *testing.T, method, path, adminID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if adminID != "" {
		req.Header.Set("Authorization", "Bearer "+adminID)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response body.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

// errorMessage extracts the "error" field from a JSON error response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, rec)["error"]
}

// wantStatus fails the test when the recorded status differs.
func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}
