// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site serves the static marketing catalog: services, solutions,
// partners and contact details shown on the public company pages.
package site

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/handler/api"
)

//go:embed content.json
var contentFS embed.FS

// Service describes one connectivity or IT product offered on the site.
type Service struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// Solution describes a packaged offering built from one or more services.
type Solution struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Partner is a technology or carrier partner shown on the site.
type Partner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WorkingHours holds the office hours split by weekday and weekend.
type WorkingHours struct {
	Weekdays string `json:"weekdays"`
	Weekend  string `json:"weekend"`
}

// ContactInfo holds the company contact details.
type ContactInfo struct {
	Address      string       `json:"address"`
	Phones       []string     `json:"phones"`
	Email        string       `json:"email"`
	WorkingHours WorkingHours `json:"workingHours"`
}

// Catalog is the full embedded site content.
type Catalog struct {
	Services  []Service   `json:"services"`
	Solutions []Solution  `json:"solutions"`
	Partners  []Partner   `json:"partners"`
	Contact   ContactInfo `json:"contact"`
}

// Load parses the embedded catalog. It fails only when the embedded
// content.json is broken, which is a build-time mistake.
func Load() (*Catalog, error) {
	data, err := contentFS.ReadFile("content.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return &c, nil
}

// MustLoad is Load for program startup, panicking on a broken catalog.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Handler serves the catalog over the public API.
type Handler struct {
	catalog *Catalog
}

// NewHandler creates a catalog handler.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// MountRoutes registers the public site content routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/site/services", h.ListServices)
	r.Get("/api/site/services/{id}", h.GetService)
	r.Get("/api/site/solutions", h.ListSolutions)
	r.Get("/api/site/solutions/{id}", h.GetSolution)
	r.Get("/api/site/partners", h.ListPartners)
	r.Get("/api/site/contact", h.GetContact)
}

// ListServices handles GET /api/site/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.catalog.Services)
}

// GetService handles GET /api/site/services/{id}.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, s := range h.catalog.Services {
		if s.ID == id {
			api.WriteJSON(w, http.StatusOK, s)
			return
		}
	}
	api.WriteError(w, http.StatusNotFound, "Service not found")
}

// ListSolutions handles GET /api/site/solutions.
func (h *Handler) ListSolutions(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.catalog.Solutions)
}

// GetSolution handles GET /api/site/solutions/{id}.
func (h *Handler) GetSolution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, s := range h.catalog.Solutions {
		if s.ID == id {
			api.WriteJSON(w, http.StatusOK, s)
			return
		}
	}
	api.WriteError(w, http.StatusNotFound, "Solution not found")
}

// ListPartners handles GET /api/site/partners.
func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.catalog.Partners)
}

// GetContact handles GET /api/site/contact.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.catalog.Contact)
}
