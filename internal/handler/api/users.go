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

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/auth"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/middleware"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/model"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/store"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/util"
)

// CreateUserRequest is the request body for creating an admin account.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UpdateUserRequest is the request body for updating an admin account.
// Absent fields leave the stored value unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

// ListUsers handles GET /api/admin/users. Requires VIEW_USERS.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	admins, err := h.queries.ListAdmins(r.Context())
	if err != nil {
		slog.Error("listing admins", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	out := make([]AdminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, adminToResponse(a))
	}
	WriteJSON(w, http.StatusOK, out)
}

// GetUser handles GET /api/admin/users/{id}. Requires VIEW_USERS.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	admin, err := h.queries.GetAdminByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "User not found")
		} else {
			slog.Error("fetching admin", "error", err, "admin_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}

	WriteJSON(w, http.StatusOK, adminToResponse(admin))
}

// checkIdentifierAvailable rejects duplicate usernames and emails with the
// spec'd 400 responses. Runs before any password hashing.
func (h *Handler) checkIdentifierAvailable(w http.ResponseWriter, r *http.Request, username, email, excludeID string) bool {
	if username != "" {
		existing, err := h.queries.GetAdminByUsername(r.Context(), username)
		if err == nil && existing.ID != excludeID {
			WriteError(w, http.StatusBadRequest, "Username already taken")
			return false
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			slog.Error("checking username", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to check username")
			return false
		}
	}

	if email != "" {
		existing, err := h.queries.GetAdminByEmail(r.Context(), email)
		if err == nil && existing.ID != excludeID {
			WriteError(w, http.StatusBadRequest, "Email already taken")
			return false
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			slog.Error("checking email", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to check email")
			return false
		}
	}

	return true
}

// CreateUser handles POST /api/admin/users. Requires CREATE_USERS.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"username", req.Username},
		{"password", req.Password},
		{"name", req.Name},
		{"email", req.Email},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		WriteError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleReadOnly
	}
	if !model.ValidRole(role) {
		WriteError(w, http.StatusBadRequest, "Role must be ADMIN, EDITOR or READ_ONLY")
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Duplicate checks run before hashing so a rejected request has no
	// side effects.
	if !h.checkIdentifierAvailable(w, r, req.Username, req.Email, "") {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	now := time.Now()
	admin, err := h.queries.CreateAdmin(r.Context(), store.CreateAdminParams{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.Error("creating admin", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if h.events != nil {
		_ = h.events.LogUserEvent(r.Context(), model.EventLevelInfo, "Admin account created",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"username": admin.Username, "role": admin.Role})
	}

	WriteJSON(w, http.StatusCreated, adminToResponse(admin))
}

// UpdateUser handles PUT /api/admin/users/{id}. Requires EDIT_USERS.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	admin, err := h.queries.GetAdminByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "User not found")
		} else {
			slog.Error("fetching admin", "error", err, "admin_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}

	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var newUsername, newEmail string
	if req.Username != nil && *req.Username != admin.Username {
		newUsername = *req.Username
	}
	if req.Email != nil && *req.Email != admin.Email {
		newEmail = *req.Email
	}
	if !h.checkIdentifierAvailable(w, r, newUsername, newEmail, admin.ID) {
		return
	}

	if newUsername != "" {
		admin.Username = newUsername
	}
	if newEmail != "" {
		admin.Email = newEmail
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			WriteError(w, http.StatusBadRequest, "Role must be ADMIN, EDITOR or READ_ONLY")
			return
		}
		admin.Role = *req.Role
	}
	if req.Password != nil {
		if err := auth.ValidatePassword(*req.Password); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			slog.Error("hashing password", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		admin.PasswordHash = hash
	}

	updated, err := h.queries.UpdateAdmin(r.Context(), store.UpdateAdminParams{
		ID:           admin.ID,
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Name:         admin.Name,
		Role:         admin.Role,
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		slog.Error("updating admin", "error", err, "admin_id", id)
		WriteError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	if h.events != nil {
		_ = h.events.LogUserEvent(r.Context(), model.EventLevelInfo, "Admin account updated",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"username": updated.Username})
	}

	WriteJSON(w, http.StatusOK, adminToResponse(updated))
}

// DeleteUser handles DELETE /api/admin/users/{id}. Requires DELETE_USERS.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if caller := middleware.GetAdmin(r); caller != nil && caller.ID == id {
		WriteError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := h.queries.DeleteAdmin(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "User not found")
		} else {
			slog.Error("deleting admin", "error", err, "admin_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}

	if h.events != nil {
		_ = h.events.LogUserEvent(r.Context(), model.EventLevelInfo, "Admin account deleted",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"admin_id": id})
	}

	WriteMessage(w, http.StatusOK, "User deleted successfully")
}
