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
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/rbac"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/store"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/util"
)

// PopupResponse represents a promotional popup in API responses.
type PopupResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Link      *string   `json:"link"`
	IsActive  bool      `json:"isActive"`
	Delay     int64     `json:"delay"`
	ShowClose bool      `json:"showClose"`
	Width     *int64    `json:"width"`
	Height    *int64    `json:"height"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func popupToResponse(p model.Popup) PopupResponse {
	return PopupResponse{
		ID:        p.ID,
		Title:     p.Title,
		Type:      p.Type,
		Content:   p.Content,
		Link:      util.PtrFromNullString(p.Link),
		IsActive:  p.IsActive,
		Delay:     p.Delay,
		ShowClose: p.ShowClose,
		Width:     util.PtrFromNullInt64(p.Width),
		Height:    util.PtrFromNullInt64(p.Height),
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func popupsToResponse(popups []model.Popup) []PopupResponse {
	out := make([]PopupResponse, 0, len(popups))
	for _, p := range popups {
		out = append(out, popupToResponse(p))
	}
	return out
}

// CreatePopupRequest is the request body for creating a popup.
type CreatePopupRequest struct {
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Content   string  `json:"content"`
	Link      *string `json:"link"`
	IsActive  *bool   `json:"isActive"`
	Delay     *int64  `json:"delay"`
	ShowClose *bool   `json:"showClose"`
	Width     *int64  `json:"width"`
	Height    *int64  `json:"height"`
}

// UpdatePopupRequest is the request body for updating a popup.
// Absent fields leave the stored value unchanged.
type UpdatePopupRequest struct {
	Title     *string `json:"title"`
	Type      *string `json:"type"`
	Content   *string `json:"content"`
	Link      *string `json:"link"`
	IsActive  *bool   `json:"isActive"`
	Delay     *int64  `json:"delay"`
	ShowClose *bool   `json:"showClose"`
	Width     *int64  `json:"width"`
	Height    *int64  `json:"height"`
}

// AdminListPopups handles GET /api/admin/popups.
// Callers holding VIEW_USERS get the full list; everyone else gets the
// active popup only, wrapped as {"popup": <popup or null>}.
func (h *Handler) AdminListPopups(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r)

	if admin != nil && rbac.HasPermission(admin.Role, rbac.PermViewUsers) {
		popups, err := h.queries.ListPopups(r.Context())
		if err != nil {
			slog.Error("listing popups", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to list popups")
			return
		}
		WriteJSON(w, http.StatusOK, popupsToResponse(popups))
		return
	}

	active, err := h.queries.ListActivePopups(r.Context())
	if err != nil {
		slog.Error("listing active popups", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list popups")
		return
	}

	var popup *PopupResponse
	if len(active) > 0 {
		resp := popupToResponse(active[0])
		popup = &resp
	}
	WriteJSON(w, http.StatusOK, map[string]any{"popup": popup})
}

// GetPopup handles GET /api/admin/popups/{id}. Public read.
func (h *Handler) GetPopup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	popup, err := h.queries.GetPopup(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Popup not found")
		} else {
			slog.Error("fetching popup", "error", err, "popup_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to fetch popup")
		}
		return
	}

	WriteJSON(w, http.StatusOK, popupToResponse(popup))
}

// PublicListPopups handles GET /api/popups. Returns the active popups.
func (h *Handler) PublicListPopups(w http.ResponseWriter, r *http.Request) {
	popups, err := h.queries.ListActivePopups(r.Context())
	if err != nil {
		slog.Error("listing active popups", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list popups")
		return
	}

	WriteJSON(w, http.StatusOK, popupsToResponse(popups))
}

// absoluteLink resolves a root-relative popup link against the configured
// site URL. Absolute links pass through untouched.
func (h *Handler) absoluteLink(link string) string {
	if h.siteURL != "" && strings.HasPrefix(link, "/") {
		return h.siteURL + link
	}
	return link
}

// sanitizePopupContent cleans HTML popup content. IMAGE popups carry a URL
// or data URI and pass through untouched.
func (h *Handler) sanitizePopupContent(popupType, content string) string {
	if popupType == model.PopupTypeHTML {
		return h.sanitizer.Sanitize(content)
	}
	return content
}

// CreatePopup handles POST /api/admin/popups. Requires EDIT_BLOG.
func (h *Handler) CreatePopup(w http.ResponseWriter, r *http.Request) {
	var req CreatePopupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Type) == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(req.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		WriteError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	if !model.ValidPopupType(req.Type) {
		WriteError(w, http.StatusBadRequest, "Type must be IMAGE or HTML")
		return
	}

	delay := int64(0)
	if req.Delay != nil {
		if *req.Delay < 0 {
			WriteError(w, http.StatusBadRequest, "Delay must not be negative")
			return
		}
		delay = *req.Delay
	}

	isActive := false
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	showClose := true
	if req.ShowClose != nil {
		showClose = *req.ShowClose
	}

	var link sql.NullString
	if req.Link != nil {
		link = util.NullStringFromValue(h.absoluteLink(*req.Link))
	}

	now := time.Now()
	popup, err := store.CreatePopupActive(r.Context(), h.db, store.CreatePopupParams{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Type:      req.Type,
		Content:   h.sanitizePopupContent(req.Type, req.Content),
		Link:      link,
		IsActive:  isActive,
		Delay:     delay,
		ShowClose: showClose,
		Width:     util.NullInt64FromPtr(req.Width),
		Height:    util.NullInt64FromPtr(req.Height),
		CreatedBy: middleware.GetAdminID(r),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating popup", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to create popup")
		return
	}

	if h.events != nil {
		_ = h.events.LogPopupEvent(r.Context(), model.EventLevelInfo, "Popup created",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"popup_id": popup.ID, "active": popup.IsActive})
	}

	WriteJSON(w, http.StatusCreated, popupToResponse(popup))
}

// UpdatePopup handles PUT /api/admin/popups/{id}. Requires EDIT_BLOG.
func (h *Handler) UpdatePopup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	popup, err := h.queries.GetPopup(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Popup not found")
		} else {
			slog.Error("fetching popup", "error", err, "popup_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to fetch popup")
		}
		return
	}

	var req UpdatePopupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Type != nil {
		if !model.ValidPopupType(*req.Type) {
			WriteError(w, http.StatusBadRequest, "Type must be IMAGE or HTML")
			return
		}
		popup.Type = *req.Type
	}
	if req.Delay != nil {
		if *req.Delay < 0 {
			WriteError(w, http.StatusBadRequest, "Delay must not be negative")
			return
		}
		popup.Delay = *req.Delay
	}
	if req.Title != nil {
		popup.Title = *req.Title
	}
	if req.Content != nil {
		popup.Content = h.sanitizePopupContent(popup.Type, *req.Content)
	}
	if req.Link != nil {
		popup.Link = util.NullStringFromValue(h.absoluteLink(*req.Link))
	}
	if req.IsActive != nil {
		popup.IsActive = *req.IsActive
	}
	if req.ShowClose != nil {
		popup.ShowClose = *req.ShowClose
	}
	if req.Width != nil {
		popup.Width = sql.NullInt64{Int64: *req.Width, Valid: true}
	}
	if req.Height != nil {
		popup.Height = sql.NullInt64{Int64: *req.Height, Valid: true}
	}

	updated, err := store.UpdatePopupActive(r.Context(), h.db, store.UpdatePopupParams{
		ID:        popup.ID,
		Title:     popup.Title,
		Type:      popup.Type,
		Content:   popup.Content,
		Link:      popup.Link,
		IsActive:  popup.IsActive,
		Delay:     popup.Delay,
		ShowClose: popup.ShowClose,
		Width:     popup.Width,
		Height:    popup.Height,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("updating popup", "error", err, "popup_id", id)
		WriteError(w, http.StatusInternalServerError, "Failed to update popup")
		return
	}

	if h.events != nil {
		_ = h.events.LogPopupEvent(r.Context(), model.EventLevelInfo, "Popup updated",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"popup_id": updated.ID, "active": updated.IsActive})
	}

	WriteJSON(w, http.StatusOK, popupToResponse(updated))
}

// DeletePopup handles DELETE /api/admin/popups/{id}. Requires DELETE_BLOG.
func (h *Handler) DeletePopup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.queries.DeletePopup(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Popup not found")
		} else {
			slog.Error("deleting popup", "error", err, "popup_id", id)
			WriteError(w, http.StatusInternalServerError, "Failed to delete popup")
		}
		return
	}

	if h.events != nil {
		_ = h.events.LogPopupEvent(r.Context(), model.EventLevelInfo, "Popup deleted",
			middleware.GetAdminID(r), util.ClientIP(r), map[string]any{"popup_id": id})
	}

	WriteMessage(w, http.StatusOK, "Popup deleted successfully")
}
