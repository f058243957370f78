// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for the site backend.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/service"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	events    *service.EventService
	sanitizer *bluemonday.Policy
	siteURL   string
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, events *service.EventService) *Handler {
	return &Handler{
		db:        db,
		queries:   store.New(db),
		events:    events,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// SetSiteURL sets the canonical site URL used to resolve root-relative
// popup links into absolute ones. Trailing slashes are stripped.
func (h *Handler) SetSiteURL(siteURL string) {
	h.siteURL = strings.TrimSuffix(siteURL, "/")
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response of the form {"error": message}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]string{"error": message})
}

// WriteMessage writes a JSON response of the form {"message": text}.
func WriteMessage(w http.ResponseWriter, statusCode int, text string) {
	WriteJSON(w, statusCode, map[string]string{"message": text})
}

// decodeJSON decodes the request body into dst.
// Writes a 400 response and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			WriteError(w, http.StatusBadRequest, "Request body is required")
		} else {
			WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		}
		return false
	}
	return true
}
