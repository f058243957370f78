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

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/auth"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/middleware"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/util"
)

// msgInvalidCredentials is intentionally identical for unknown accounts and
// wrong passwords so callers cannot enumerate usernames.
const msgInvalidCredentials = "Invalid username or password"

// AdminResponse represents an admin account in API responses.
// The password hash is never included.
type AdminResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func adminToResponse(a model.Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		LastLogin: util.PtrFromNullTime(a.LastLogin),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// LoginRequest is the request body for POST /api/auth/login. The username
// field accepts either the account username or its email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response body for a successful login.
type LoginResponse struct {
	Message string        `json:"message"`
	Admin   AdminResponse `json:"admin"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(protection *middleware.LoginProtection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		identifier := strings.TrimSpace(req.Username)
		if identifier == "" || req.Password == "" {
			WriteError(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		ip := util.ClientIP(r)

		if protection != nil {
			if locked, remaining := protection.IsAccountLocked(identifier); locked {
				slog.Warn("login attempt on locked account", "identifier", identifier, "ip", ip)
				WriteError(w, http.StatusTooManyRequests,
					"Account temporarily locked. Try again in "+remaining.Round(time.Second).String())
				return
			}
		}

		admin, err := h.queries.GetAdminByIdentifier(r.Context(), identifier)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				slog.Error("login lookup failed", "error", err)
				WriteError(w, http.StatusInternalServerError, "Login failed")
				return
			}
			h.recordLoginFailure(r, protection, identifier, ip)
			WriteError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}

		if !auth.CheckPassword(req.Password, admin.PasswordHash) {
			h.recordLoginFailure(r, protection, identifier, ip)
			WriteError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}

		now := time.Now()
		if err := h.queries.UpdateAdminLastLogin(r.Context(), admin.ID, now); err != nil {
			slog.Error("updating last login", "error", err, "admin_id", admin.ID)
		}
		admin.LastLogin = sql.NullTime{Time: now, Valid: true}

		if protection != nil {
			protection.RecordSuccessfulLogin(identifier)
		}
		if h.events != nil {
			_ = h.events.LogAuthEvent(r.Context(), model.EventLevelInfo,
				"Admin logged in", admin.ID, ip, map[string]any{"username": admin.Username})
		}

		WriteJSON(w, http.StatusOK, LoginResponse{
			Message: "Login successful",
			Admin:   adminToResponse(admin),
		})
	}
}

func (h *Handler) recordLoginFailure(r *http.Request, protection *middleware.LoginProtection, identifier, ip string) {
	if protection != nil {
		if locked, duration := protection.RecordFailedAttempt(identifier); locked {
			slog.Warn("account locked after repeated login failures",
				"identifier", identifier, "duration", duration)
		}
	}
	if h.events != nil {
		_ = h.events.LogAuthEvent(r.Context(), model.EventLevelWarning,
			"Failed login attempt", "", ip, map[string]any{"identifier": identifier})
	}
}
