// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/rbac"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/service"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/store"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/util"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdmin is the context key for the authenticated admin.
const ContextKeyAdmin ContextKey = "admin"

// Error messages returned to API clients.
const (
	MsgUnauthorized = "Unauthorized - please login"
	MsgForbidden    = "Forbidden - insufficient permissions"
)

// WriteJSONError writes a JSON error response in the API error format.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// extractAdminID pulls the caller's admin ID from the Authorization header
// (Bearer token) or the X-Admin-Id header. Returns "" when neither is set.
func extractAdminID(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Admin-Id"))
}

// ResolveAdmin creates middleware that resolves the calling admin from the
// request credentials and stores it in the request context. Requests without
// credentials, or with credentials that match no admin, pass through without
// an admin in context; permission middleware decides whether that matters.
func ResolveAdmin(db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID := extractAdminID(r)
			if adminID == "" {
				next.ServeHTTP(w, r)
				return
			}

			admin, err := queries.GetAdminByID(r.Context(), adminID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin retrieves the authenticated admin from the request context.
// Returns nil if no admin is in context.
func GetAdmin(r *http.Request) *model.Admin {
	admin, ok := r.Context().Value(ContextKeyAdmin).(model.Admin)
	if !ok {
		return nil
	}
	return &admin
}

// GetAdminID returns the authenticated admin's ID from context, or "" if
// not found. Safe to use in event logging where an empty value is acceptable.
func GetAdminID(r *http.Request) string {
	if admin := GetAdmin(r); admin != nil {
		return admin.ID
	}
	return ""
}

// RequireIdentity creates middleware that requires an authenticated admin,
// without checking any particular permission.
func RequireIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetAdmin(r) == nil {
				WriteJSONError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission creates middleware that requires a specific permission.
// Shorthand for RequirePermissionWithEventLog(permission, nil).
func RequirePermission(permission rbac.Permission) func(http.Handler) http.Handler {
	return RequirePermissionWithEventLog(permission, nil)
}

// RequirePermissionWithEventLog creates middleware that requires a specific
// permission and logs denials to the event log when eventService is provided.
// Requests without an authenticated admin get 401; authenticated admins whose
// role lacks the permission get 403.
func RequirePermissionWithEventLog(permission rbac.Permission, eventService *service.EventService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin := GetAdmin(r)
			if admin == nil {
				WriteJSONError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}

			if !rbac.HasPermission(admin.Role, permission) {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"admin_id", admin.ID,
					"admin_role", admin.Role,
					"required_permission", string(permission),
				)

				if eventService != nil {
					metadata := map[string]any{
						"method":              r.Method,
						"path":                r.URL.Path,
						"admin_role":          admin.Role,
						"required_permission": string(permission),
					}
					_ = eventService.LogAuthEvent(r.Context(), model.EventLevelWarning,
						"Access denied: insufficient permissions", admin.ID, util.ClientIP(r), metadata)
				}

				WriteJSONError(w, http.StatusForbidden, MsgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
