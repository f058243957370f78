// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/Ahmad-Rizki21/ajnusa-site/internal/middleware"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/rbac"
	"github.com/Ahmad-Rizki21/ajnusa-site/internal/service"
)

// MountRoutes registers the API and health routes on the router.
// The router is expected to already carry the ResolveAdmin middleware.
func (h *Handler) MountRoutes(r chi.Router, protection *middleware.LoginProtection, health *HealthHandler, events *service.EventService) {
	// Authentication
	if protection != nil {
		r.With(protection.Middleware()).Post("/api/auth/login", h.Login(protection))
	} else {
		r.Post("/api/auth/login", h.Login(nil))
	}

	// Blog: reads public, mutations guarded per permission
	r.Get("/api/blog", h.ListPosts)
	r.Get("/api/blog/{id}", h.GetPost)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermCreateBlog, events)).
		Post("/api/blog", h.CreatePost)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermEditBlog, events)).
		Put("/api/blog/{id}", h.UpdatePost)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermDeleteBlog, events)).
		Delete("/api/blog/{id}", h.DeletePost)

	// Popups: the admin listing applies its own visibility rule
	r.Get("/api/popups", h.PublicListPopups)
	r.Get("/api/admin/popups", h.AdminListPopups)
	r.Get("/api/admin/popups/{id}", h.GetPopup)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermEditBlog, events)).
		Post("/api/admin/popups", h.CreatePopup)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermEditBlog, events)).
		Put("/api/admin/popups/{id}", h.UpdatePopup)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermDeleteBlog, events)).
		Delete("/api/admin/popups/{id}", h.DeletePopup)

	// Users
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermViewUsers, events)).
		Get("/api/admin/users", h.ListUsers)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermViewUsers, events)).
		Get("/api/admin/users/{id}", h.GetUser)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermCreateUsers, events)).
		Post("/api/admin/users", h.CreateUser)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermEditUsers, events)).
		Put("/api/admin/users/{id}", h.UpdateUser)
	r.With(middleware.RequirePermissionWithEventLog(rbac.PermDeleteUsers, events)).
		Delete("/api/admin/users/{id}", h.DeleteUser)

	// Health
	if health != nil {
		r.Get("/health", health.Health)
		r.Get("/health/live", health.Liveness)
		r.Get("/health/ready", health.Readiness)
	}
}
